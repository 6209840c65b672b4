package css

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/mdlines/core/dimen"
	"github.com/npillmayer/mdlines/core/option"
	"github.com/npillmayer/mdlines/engine/dom/style"
)

// PropertyType is a helper type for special values of properties, e.g.:
//
//     auto
//     initial
//     inherit
//
type PropertyType int

// Auto, Inherit and Initial are constant values for options-matching.
// Use with
//     option.Of{
//          css.Auto: …   // will match a CSS dimension with value "auto"
//     }
const (
	Auto       PropertyType = 1 // for option matching
	Inherit    PropertyType = 2 // for option matching
	Initial    PropertyType = 3 // for option matching
	FontScaled PropertyType = 4 // for option matching: dimension is font-dependent
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	keywordMask   uint32 = 0x000f

	dimenEM      uint32 = 0x0100
	dimenEX      uint32 = 0x0200
	dimenCH      uint32 = 0x0300
	dimenREM     uint32 = 0x0400
	dimenPRCNT   uint32 = 0x0900
	relativeMask uint32 = 0x0f00
)

// --- DimenT-----------------------------------------------------------------

// DimenT is an option type for CSS dimensions.
// Relative dimensions store their factor scaled like a pixel value,
// i.e. `1.5em` is stored as 1.5 × dimen.PX.
type DimenT struct {
	d     dimen.Dimen
	flags uint32
}

// SomeDimen creates an optional dimen with an initial value of x.
func SomeDimen(x dimen.Dimen) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Dimen creates an optional dimen without an initial value.
func Dimen() DimenT {
	return DimenT{d: 0, flags: dimenNone}
}

// Match is part of interface option.Type.
func (o DimenT) Match(choices interface{}) (value interface{}, err error) {
	return option.Match(o, choices)
}

// Equals is part of interface option.Type.
func (o DimenT) Equals(other interface{}) bool {
	switch i := other.(type) {
	case DimenT:
		return o.d == i.d && o.flags == i.flags
	case dimen.Dimen:
		return o.IsAbsolute() && o.Unwrap() == i
	case int:
		return o.IsAbsolute() && o.Unwrap() == dimen.Dimen(i)
	case PropertyType:
		switch i {
		case Auto:
			return o.flags&keywordMask == dimenAuto
		case Initial:
			return o.flags&keywordMask == dimenInitial
		case Inherit:
			return o.flags&keywordMask == dimenInherit
		case FontScaled:
			switch o.flags & relativeMask {
			case dimenEM, dimenEX, dimenCH, dimenREM:
				return true
			}
		}
	case string:
		switch i {
		case "%":
			return o.flags&relativeMask == dimenPRCNT
		}
	}
	return false
}

// Unwrap returns the underlying dimension of o.
func (o DimenT) Unwrap() dimen.Dimen {
	return o.d
}

// IsNone returns true if o is unset.
func (o DimenT) IsNone() bool {
	return o.flags == dimenNone
}

// IsRelative returns true if o represents a valid relative dimension (`%`, `em`, etc.).
func (o DimenT) IsRelative() bool {
	return o.flags&relativeMask > 0
}

// IsAbsolute returns true if o represents a valid absolute dimension.
func (o DimenT) IsAbsolute() bool {
	return o.flags == dimenAbsolute
}

// Resolve computes an absolute dimension from o. fontSize is the reference
// for `em`, rootFontSize for `rem`, and base for percentages.
// Keyword values and unset dimensions do not resolve.
func (o DimenT) Resolve(fontSize, rootFontSize, base dimen.Dimen) (dimen.Dimen, bool) {
	factor := o.d.Pixels()
	switch {
	case o.IsAbsolute():
		return o.d, true
	case o.flags&relativeMask == dimenEM:
		return fontSize.Scale(factor), true
	case o.flags&relativeMask == dimenEX, o.flags&relativeMask == dimenCH:
		return fontSize.Scale(factor / 2), true
	case o.flags&relativeMask == dimenREM:
		return rootFontSize.Scale(factor), true
	case o.flags&relativeMask == dimenPRCNT:
		return base.Scale(factor / 100), true
	}
	return 0, false
}

func (o DimenT) String() string {
	if o.IsNone() {
		return "DimenT.None"
	}
	switch o.flags & keywordMask {
	case dimenAuto:
		return "auto"
	case dimenInitial:
		return "initial"
	case dimenInherit:
		return "inherit"
	}
	if o.IsRelative() {
		if unit, ok := relUnitMap[o.flags&relativeMask]; ok {
			return strconv.FormatFloat(o.d.Pixels(), 'f', -1, 64) + unit
		}
	}
	return o.d.CSS()
}

var relUnitMap map[uint32]string = map[uint32]string{
	dimenEM:    "em",
	dimenEX:    "ex",
	dimenCH:    "ch",
	dimenREM:   "rem",
	dimenPRCNT: "%",
}

var relUnitStringMap map[string]uint32 = map[string]uint32{
	"em":  dimenEM,
	"ex":  dimenEX,
	"ch":  dimenCH,
	"rem": dimenREM,
	"%":   dimenPRCNT,
}

// DimenOption returns an optional dimension type from a property string.
// It will never return an error, even with illegal input, but instead will then
// return an unset dimension.
func DimenOption(p style.Property) DimenT {
	switch p {
	case style.NullStyle:
		return Dimen()
	case "auto":
		return DimenT{flags: dimenAuto}
	case "initial":
		return DimenT{flags: dimenInitial}
	case "inherit":
		return DimenT{flags: dimenInherit}
	}
	d, err := ParseDimen(string(p))
	if err != nil {
		T().Debugf("cannot parse dimension %q: %v", p, err)
		return Dimen()
	}
	return d
}

var dimenPattern = regexp.MustCompile(`^([+\-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+))(%|[a-zA-Z]{2,3})?$`)

// ParseDimen parses a string to return an optional dimension. Syntax is CSS Unit.
// Valid dimensions are
//
//     15px
//     80%
//     -1.5rem
//
func ParseDimen(s string) (DimenT, error) {
	d := dimenPattern.FindStringSubmatch(strings.TrimSpace(s))
	if len(d) < 2 {
		return Dimen(), errors.New("format error parsing dimension")
	}
	unit := strings.ToLower(d[2])
	if flag, ok := relUnitStringMap[unit]; ok {
		n, err := strconv.ParseFloat(d[1], 64)
		if err != nil || math.IsInf(n, 0) {
			return Dimen(), errors.New("format error parsing dimension")
		}
		return DimenT{d: dimen.FromPixels(n), flags: flag}, nil
	}
	x, _, err := dimen.ParseDimen(d[1] + unit)
	if err != nil {
		return Dimen(), fmt.Errorf("format error parsing dimension: %w", err)
	}
	return SomeDimen(x), nil
}
