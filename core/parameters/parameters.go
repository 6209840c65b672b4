/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Package parameters holds scoped registers for inherited style values.
//
// CSS inheritance works like TeX grouping: entering an element opens a group,
// values pushed inside the group shadow outer values, and leaving the element
// restores what was visible before. The cascade in package cssom drives a set
// of registers while walking the HTML tree.
package parameters

import (
	"golang.org/x/text/unicode/bidi"

	"github.com/npillmayer/mdlines/core/dimen"
)

// StyleParameter is a key for an inheritable style value.
type StyleParameter int

const (
	none StyleParameter = iota
	P_FONTSIZE
	P_FONTWEIGHT
	P_FONTFAMILY
	P_FONTSTYLE
	P_LINEHEIGHT
	P_WHITESPACE
	P_TEXTDIRECTION
	P_COLOR
	P_STOPPER
)

// RootFontSize is the font size of the root element, if nothing else is
// specified.
const RootFontSize = 16 * dimen.PX

type parameterGroup struct {
	params map[StyleParameter]interface{}
	level  int
	next   *parameterGroup
}

// StyleRegisters is a stack of register groups on top of a set of
// initial values.
type StyleRegisters struct {
	base       [P_STOPPER]interface{}
	groups     *parameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

// NewStyleRegisters creates a register set initialized with user-agent
// defaults.
func NewStyleRegisters() *StyleRegisters {
	regs := &StyleRegisters{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_FONTSIZE] = RootFontSize      // dimension
	p[P_FONTWEIGHT] = 400             // numeric weight (int)
	p[P_FONTFAMILY] = "serif"         // a string
	p[P_FONTSTYLE] = "normal"         // a string
	p[P_LINEHEIGHT] = "normal"        // a string, resolved by clients
	p[P_WHITESPACE] = "normal"        // a string
	p[P_TEXTDIRECTION] = bidi.LeftToRight
	p[P_COLOR] = "black" // a string
}

// Level returns the current group nesting level.
func (regs *StyleRegisters) Level() int {
	return regs.grouplevel
}

// Begingroup opens a new scope.
func (regs *StyleRegisters) Begingroup() {
	regs.grouplevel++
}

// Endgroup closes the innermost scope, dropping all values pushed in it.
// Calling Endgroup on level 0 is a no-op.
func (regs *StyleRegisters) Endgroup() {
	if regs.grouplevel == 0 {
		return
	}
	if regs.groups != nil && regs.groups.level == regs.grouplevel {
		regs.groups = regs.groups.next
	}
	regs.grouplevel--
}

// Push sets a value in the current scope. On level 0 it overwrites the
// initial value.
func (regs *StyleRegisters) Push(key StyleParameter, value interface{}) {
	checkKey(key)
	if regs.grouplevel == 0 {
		regs.base[key] = value
		return
	}
	g := regs.groups
	if g == nil || g.level < regs.grouplevel {
		g = &parameterGroup{
			params: make(map[StyleParameter]interface{}),
			level:  regs.grouplevel,
			next:   regs.groups,
		}
		regs.groups = g
	}
	g.params[key] = value
}

// Get returns the innermost visible value for key.
func (regs *StyleRegisters) Get(key StyleParameter) interface{} {
	checkKey(key)
	for g := regs.groups; g != nil; g = g.next {
		if value, ok := g.params[key]; ok {
			return value
		}
	}
	return regs.base[key]
}

func checkKey(key StyleParameter) {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of style parameters")
	}
}

// S returns a string-valued parameter.
func (regs *StyleRegisters) S(key StyleParameter) string {
	return regs.Get(key).(string)
}

// N returns an int-valued parameter.
func (regs *StyleRegisters) N(key StyleParameter) int {
	return regs.Get(key).(int)
}

// D returns a dimension-valued parameter.
func (regs *StyleRegisters) D(key StyleParameter) dimen.Dimen {
	return regs.Get(key).(dimen.Dimen)
}

// Dir returns the text direction.
func (regs *StyleRegisters) Dir() bidi.Direction {
	return regs.Get(P_TEXTDIRECTION).(bidi.Direction)
}
