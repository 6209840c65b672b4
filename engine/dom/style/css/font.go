package css

import (
	"errors"
	"strconv"
	"strings"

	"github.com/npillmayer/mdlines/core/dimen"
	"github.com/npillmayer/mdlines/core/option"
	"github.com/npillmayer/mdlines/engine/dom/style"
)

// Absolute font-size keywords, as most browsers map them for a medium size
// of 16px.
var fontSizeKeywords = map[string]dimen.Dimen{
	"xx-small":  9 * dimen.PX,
	"x-small":   10 * dimen.PX,
	"small":     13 * dimen.PX,
	"medium":    16 * dimen.PX,
	"large":     18 * dimen.PX,
	"x-large":   24 * dimen.PX,
	"xx-large":  32 * dimen.PX,
	"xxx-large": 48 * dimen.PX,
}

var errIllegalFontSize = errors.New("illegal font-size")

// relative keywords scale by this factor
const fontSizeStep = 1.2

// FontSize computes the font size for a property value, given the computed
// font size of the parent element and of the root element.
//
// Percentages and `em` are relative to the parent's font size.
// Unset, `inherit` and invalid values yield the parent's size;
// `initial` yields `medium`.
func FontSize(p style.Property, parent, root dimen.Dimen) dimen.Dimen {
	v := strings.ToLower(strings.TrimSpace(string(p)))
	switch v {
	case "", "inherit", "unset":
		return parent
	case "initial":
		return fontSizeKeywords["medium"]
	case "larger":
		return parent.Scale(fontSizeStep)
	case "smaller":
		return parent.Scale(1 / fontSizeStep)
	}
	if size, ok := fontSizeKeywords[v]; ok {
		return size
	}
	size, err := DimenOption(style.Property(v)).Match(option.Of{
		option.None: parent,
		Auto:        parent,
		option.Some: func(x interface{}) (interface{}, error) {
			// em and percentages refer to the parent's font size
			size, ok := x.(DimenT).Resolve(parent, root, parent)
			if !ok || size < 0 {
				return nil, errIllegalFontSize
			}
			return size, nil
		},
	})
	if err != nil {
		T().Debugf("illegal font-size %q, inheriting", p)
		return parent
	}
	return size.(dimen.Dimen)
}

// FontWeight computes the numeric font weight for a property value, given
// the computed weight of the parent element.
//
// `bolder` and `lighter` follow the table of CSS Fonts Level 4.
// Unset, `inherit` and invalid values yield the parent's weight.
func FontWeight(p style.Property, parent int) int {
	v := strings.ToLower(strings.TrimSpace(string(p)))
	switch v {
	case "", "inherit", "unset":
		return parent
	case "normal", "initial":
		return 400
	case "bold":
		return 700
	case "bolder":
		switch {
		case parent < 350:
			return 400
		case parent < 550:
			return 700
		}
		return 900
	case "lighter":
		switch {
		case parent < 550:
			return 100
		case parent < 750:
			return 400
		}
		return 700
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 1 || n > 1000 {
		T().Debugf("illegal font-weight %q, inheriting", p)
		return parent
	}
	return int(n)
}

// FormatFontWeight formats a weight the way browsers report it.
func FormatFontWeight(w int) string {
	return strconv.Itoa(w)
}
