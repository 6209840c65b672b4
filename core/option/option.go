package option

import (
	"errors"
)

var ErrNoSuchMatchPattern = errors.New("no such match pattern")
var ErrCannotMatchUnsetValue = errors.New("cannot match unset value")
var ErrCannotMatchValue = errors.New("cannot match value")

type MaybeOption int

const (
	None MaybeOption = iota
	Some
	Error
)

// Maybe is a type used for matching of optional types.
// It will match `Some` if a value is set, `None` if it is unset, or `Error`
// if an error occurs.
type Maybe map[MaybeOption]interface{}

// Of is a type used for matching of optional types.
// It will first try to match concrete values, and in case of no match will
// then try a Maybe match.
type Of map[interface{}]interface{}

// Type is a type for optional values.
type Type interface {
	Match(choices interface{}) (interface{}, error)
	Equals(other interface{}) bool
	IsNone() bool
}

// Match will do a standard matching of o against choices.
// It may be used to create a new type of interface Type.
//
// choices are expected to be a map type, where keys of the map are either
// concrete values for o, or of type MaybeOption. Values of the map may be
// of any type.
//
// If choices is of unknown kind, nil and ErrNoSuchMatchPattern are returned.
//
func Match(o Type, choices interface{}) (value interface{}, err error) {
	switch c := choices.(type) {
	case Of:
		return c.Match(o)
	case Maybe:
		return c.Match(o)
	}
	return nil, ErrNoSuchMatchPattern
}

// Match matches o against concrete values first, then against Some.
func (of Of) Match(o Type) (value interface{}, err error) {
	if o.IsNone() {
		return matchNone(of[None], o)
	}
	err = ErrCannotMatchValue
	matched := false
	for k, expr := range of {
		if _, isLabel := k.(MaybeOption); isLabel {
			continue
		}
		if o.Equals(k) {
			matched = true
			value, err = valueOrExpr(expr, o, Some)
			break
		}
	}
	if !matched {
		if expr, ok := of[Some]; ok {
			value, err = valueOrExpr(expr, o, Some)
		}
	}
	return recoverError(of[Error], o, value, err)
}

// Match matches o against None or Some.
func (maybe Maybe) Match(o Type) (value interface{}, err error) {
	if o.IsNone() {
		return matchNone(maybe[None], o)
	}
	if expr, ok := maybe[Some]; ok {
		value, err = valueOrExpr(expr, o, Some)
	}
	return recoverError(maybe[Error], o, value, err)
}

func matchNone(expr interface{}, o Type) (interface{}, error) {
	if expr == nil {
		return nil, ErrCannotMatchUnsetValue
	}
	return valueOrExpr(expr, o, None)
}

func recoverError(handler interface{}, o Type, value interface{}, err error) (interface{}, error) {
	if err != nil && handler != nil {
		tracer().Debugf("option match error %v caught", err)
		return valueOrExpr(handler, o, Error)
	}
	return value, err
}

func valueOrExpr(op interface{}, value Type, t MaybeOption) (interface{}, error) {
	switch x := op.(type) {
	case func(interface{}, MaybeOption) (interface{}, error):
		return x(value, t)
	case func(interface{}) (interface{}, error):
		return x(value)
	}
	return op, nil
}

// Fail may be used as an option case, causing a Match to fail with an error.
// The error will be returned by Match(…), unless caught with an option.Error
// label.
func Fail(err error) func(interface{}) (interface{}, error) {
	return func(interface{}) (interface{}, error) {
		return nil, err
	}
}

// Safe wraps a Match's return values and drops the error value.
func Safe(x interface{}, err error) interface{} {
	return x
}

// --- StringT ---------------------------------------------------------------

// StringT is an option type for strings, e.g. computed CSS values which
// may be unknown.
type StringT struct {
	s     string
	isSet bool
}

// SomeString creates an optional string with value s.
func SomeString(s string) StringT {
	return StringT{s: s, isSet: true}
}

// String creates an unset optional string.
func String() StringT {
	return StringT{}
}

// Match is part of interface option.Type.
func (o StringT) Match(choices interface{}) (interface{}, error) {
	return Match(o, choices)
}

// Equals is part of interface option.Type.
func (o StringT) Equals(other interface{}) bool {
	switch x := other.(type) {
	case string:
		return o.isSet && o.s == x
	case StringT:
		return o == x
	}
	return false
}

// IsNone returns true if o is unset.
func (o StringT) IsNone() bool {
	return !o.isSet
}

// Unwrap returns the underlying string, or "" if unset.
func (o StringT) Unwrap() string {
	return o.s
}

// OrElse returns the underlying string, or dflt if unset.
func (o StringT) OrElse(dflt string) string {
	if o.isSet {
		return o.s
	}
	return dflt
}

func (o StringT) String() string {
	if !o.isSet {
		return "String.None"
	}
	return o.s
}

var _ Type = StringT{}
