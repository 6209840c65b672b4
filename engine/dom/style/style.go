/*
Package style holds CSS properties for styled HTML nodes.

Properties are kept as strings, in the form they have been specified or
computed by the cascade. Package css converts them to typed values.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer traces with key 'mdlines.css'.
func tracer() tracing.Trace {
	return tracing.Select("mdlines.css")
}

// Property is a raw value for a CSS property. For example, with
//
//     font-size: 1.5em
//
// a property value of "1.5em" is stored.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial returns true if p holds the keyword `initial` (or `unset` on a
// non-inherited property, which has the same effect).
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit returns true if p holds the keyword `inherit`.
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// --- Property Maps ---------------------------------------------------------

// PropertyMap holds CSS properties for a node, keyed by property name.
// The zero value is not usable; create maps with NewPropertyMap.
type PropertyMap struct {
	m map[string]Property
}

// NewPropertyMap creates an empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{m: make(map[string]Property)}
}

// Property returns the value for a key, if present.
func (pmap *PropertyMap) Property(key string) (Property, bool) {
	if pmap == nil {
		return NullStyle, false
	}
	p, ok := pmap.m[normalizeKey(key)]
	return p, ok
}

// GetString returns the value for a key, or "" if it isn't set.
func (pmap *PropertyMap) GetString(key string) string {
	p, _ := pmap.Property(key)
	return string(p)
}

// Set sets a property value.
func (pmap *PropertyMap) Set(key string, p Property) {
	pmap.m[normalizeKey(key)] = p
}

// Size returns the number of properties in pmap.
func (pmap *PropertyMap) Size() int {
	if pmap == nil {
		return 0
	}
	return len(pmap.m)
}

// Keys returns the property names in pmap in sorted order.
func (pmap *PropertyMap) Keys() []string {
	if pmap == nil {
		return nil
	}
	keys := make([]string, 0, len(pmap.m))
	for k := range pmap.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (pmap *PropertyMap) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range pmap.Keys() {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(string(pmap.m[k]))
	}
	b.WriteString("}")
	return b.String()
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// --- Inheritance -----------------------------------------------------------

var inherited = map[string]bool{
	"color":           true,
	"direction":       true,
	"font-family":     true,
	"font-size":       true,
	"font-style":      true,
	"font-variant":    true,
	"font-weight":     true,
	"letter-spacing":  true,
	"line-height":     true,
	"list-style-type": true,
	"text-align":      true,
	"text-indent":     true,
	"visibility":      true,
	"white-space":     true,
	"word-spacing":    true,
}

// IsInherited returns true if a CSS property is inherited by default.
func IsInherited(key string) bool {
	return inherited[normalizeKey(key)]
}

// InitialValue returns the CSS initial value for a property we know about,
// or NullStyle.
func InitialValue(key string) Property {
	switch normalizeKey(key) {
	case "display":
		return "inline"
	case "position":
		return "static"
	case "visibility":
		return "visible"
	case "overflow":
		return "visible"
	case "width", "height":
		return "auto"
	case "font-size":
		return "medium"
	case "font-weight", "font-style", "line-height", "white-space", "font-variant":
		return "normal"
	case "direction":
		return "ltr"
	case "padding-left", "padding-right", "padding-top", "padding-bottom",
		"margin-left", "margin-right", "margin-top", "margin-bottom":
		return "0"
	}
	return NullStyle
}

// --- Styler ----------------------------------------------------------------

// Styler is an interface all concrete types of styled tree nodes
// will have to implement to be usable for probing.
type Styler interface {
	HTMLNode() *html.Node
	Styles() *PropertyMap
	StylesCascade() Styler
}

// GetCascadedProperty returns a property for a styled node, walking up the
// tree for inherited properties which are not set locally.
func GetCascadedProperty(sn Styler, key string) Property {
	for ; sn != nil; sn = sn.StylesCascade() {
		if p, ok := sn.Styles().Property(key); ok {
			return p
		}
		if !IsInherited(key) {
			break
		}
	}
	tracer().Debugf("property %s not found, using initial value", key)
	return InitialValue(key)
}
