/*
Package cssom holds style sheets and applies them to HTML trees.

Style sheets are parsed with douceur, selectors are compiled with cascadia.
The cascade orders declarations by origin, importance, specificity and
source order:

    user-agent < author < inline style attribute

with !important declarations reversing the origin order. Inherited
properties flow from parent to child through scoped style registers.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/mdlines/engine/dom/style"
	"github.com/npillmayer/schuko/tracing"
)

// T traces with key 'mdlines.css'.
func T() tracing.Trace {
	return tracing.Select("mdlines.css")
}

// Origin is the origin of a style sheet.
type Origin int

// Origins of style sheets, in ascending order of precedence for normal
// declarations.
const (
	UserAgent Origin = iota
	Author
	Inline
)

func (o Origin) String() string {
	switch o {
	case UserAgent:
		return "user-agent"
	case Author:
		return "author"
	case Inline:
		return "inline"
	}
	return "unknown origin"
}

// StyleSheet is a parsed style sheet. Only qualified rules are kept;
// at-rules (media queries, font faces, …) are dropped.
type StyleSheet struct {
	origin Origin
	rules  []*rule
}

type rule struct {
	selectors []cascadia.Sel
	decls     []*css.Declaration
}

// ParseStyleSheet parses CSS source text. Rules with selectors we cannot
// compile are skipped with a trace message, as browsers do.
func ParseStyleSheet(src string, origin Origin) (*StyleSheet, error) {
	sheet, err := parser.Parse(src)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse %s style sheet", origin)
	}
	ss := &StyleSheet{origin: origin}
	for _, r := range sheet.Rules {
		if r.Kind != css.QualifiedRule {
			T().Debugf("ignoring at-rule %s", r.Name)
			continue
		}
		group, err := cascadia.ParseGroup(strings.Join(r.Selectors, ", "))
		if err != nil {
			T().Infof("ignoring rule with invalid selector %q: %v", r.Prelude, err)
			continue
		}
		sels := make([]cascadia.Sel, 0, len(group))
		for _, sel := range group {
			if sel.PseudoElement() != "" {
				continue
			}
			sels = append(sels, sel)
		}
		if len(sels) > 0 {
			ss.rules = append(ss.rules, &rule{selectors: sels, decls: r.Declarations})
		}
	}
	T().Debugf("%s style sheet with %d rules", origin, len(ss.rules))
	return ss, nil
}

// Origin returns the origin of a style sheet.
func (ss *StyleSheet) Origin() Origin {
	return ss.origin
}

// Len returns the number of rules in a style sheet.
func (ss *StyleSheet) Len() int {
	return len(ss.rules)
}

// ParseInlineStyle parses the content of a `style` attribute into a
// property map.
func ParseInlineStyle(s string) (*style.PropertyMap, error) {
	decls, err := parseDeclarations(s)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse style attribute %q", s)
	}
	pmap := style.NewPropertyMap()
	for _, d := range decls {
		pmap.Set(strings.ToLower(d.Property), style.Property(strings.TrimSpace(d.Value)))
	}
	return pmap, nil
}

// parseDeclarations parses a declaration list as found in `style`
// attributes. The douceur parser stores a value only when it sees a
// terminating semicolon, which attributes commonly omit.
func parseDeclarations(s string) ([]*css.Declaration, error) {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasSuffix(s, ";") {
		s += ";"
	}
	return parser.ParseDeclarations(s)
}

// --- CSSOM -----------------------------------------------------------------

// CSSOM is a set of style sheets to be applied to HTML trees.
// A CSSOM always contains the user-agent defaults.
type CSSOM struct {
	sheets []*StyleSheet
}

// NewCSSOM creates a CSSOM with the default user-agent style sheet. Additional
// sheets may be given and will be added in order.
func NewCSSOM(sheets ...*StyleSheet) *CSSOM {
	om := &CSSOM{}
	om.sheets = append(om.sheets, defaultUserAgentSheet())
	for _, ss := range sheets {
		om.AddStyleSheet(ss)
	}
	return om
}

// AddStyleSheet adds a style sheet. Later sheets of the same origin take
// precedence over earlier ones.
func (om *CSSOM) AddStyleSheet(ss *StyleSheet) {
	if ss == nil {
		return
	}
	om.sheets = append(om.sheets, ss)
}

// AddCSS parses CSS source text as an author style sheet and adds it.
func (om *CSSOM) AddCSS(src string) error {
	ss, err := ParseStyleSheet(src, Author)
	if err != nil {
		return err
	}
	om.AddStyleSheet(ss)
	return nil
}

// Sheets returns the number of style sheets, including the user-agent sheet.
func (om *CSSOM) Sheets() int {
	return len(om.sheets)
}
