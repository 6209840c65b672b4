package cssom

import (
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/mdlines/core/dimen"
	"github.com/npillmayer/mdlines/core/parameters"
	"github.com/npillmayer/mdlines/engine/dom/style"
	"github.com/npillmayer/mdlines/engine/dom/style/css"
	"github.com/npillmayer/mdlines/engine/dom/styledtree"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/bidi"
)

// matchedDecl is a declaration that applies to an element, together with
// everything needed to sort it into the cascade.
type matchedDecl struct {
	property    string
	value       style.Property
	origin      Origin
	important   bool
	specificity cascadia.Specificity
	order       int
}

// rank orders origins and importance. Normal declarations rank
// user-agent < author < inline. Important ones rank above all normal ones,
// with important user-agent declarations on top.
func (m matchedDecl) rank() int {
	if !m.important {
		return int(m.origin)
	}
	if m.origin == UserAgent {
		return 5
	}
	return 2 + int(m.origin)
}

func (m matchedDecl) less(other matchedDecl) bool {
	if m.rank() != other.rank() {
		return m.rank() < other.rank()
	}
	if m.specificity != other.specificity {
		return m.specificity.Less(other.specificity)
	}
	return m.order < other.order
}

// inherited properties we keep in style registers
var registerParams = []struct {
	key   string
	param parameters.StyleParameter
}{
	{"font-family", parameters.P_FONTFAMILY},
	{"font-style", parameters.P_FONTSTYLE},
	{"line-height", parameters.P_LINEHEIGHT},
	{"white-space", parameters.P_WHITESPACE},
	{"color", parameters.P_COLOR},
}

// Style applies the CSSOM to an HTML tree and returns the styled tree.
// root may be a document node or any node of an HTML tree; styles of
// elements outside of root are not considered.
func (om *CSSOM) Style(root *html.Node) (*styledtree.Tree, error) {
	if root == nil {
		return nil, nil
	}
	c := &cascade{
		om:       om,
		regs:     parameters.NewStyleRegisters(),
		rootSize: parameters.RootFontSize,
	}
	sroot := c.styleNode(root, nil)
	return styledtree.NewTree(sroot), nil
}

type cascade struct {
	om       *CSSOM
	regs     *parameters.StyleRegisters
	rootSize dimen.Dimen
	rootSeen bool
}

func (c *cascade) styleNode(h *html.Node, parent *styledtree.StyNode) *styledtree.StyNode {
	sn := styledtree.NewNodeForHTMLNode(h)
	if parent != nil {
		parent.AddChild(sn)
	}
	isElement := h.Type == html.ElementNode
	if isElement {
		c.regs.Begingroup()
		sn.SetStyles(c.computeStyles(h, parent))
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		c.styleNode(ch, sn)
	}
	if isElement {
		c.regs.Endgroup()
	}
	return sn
}

// matchingDeclarations collects all declarations applying to an element,
// sorted in cascade order (lowest precedence first).
func (c *cascade) matchingDeclarations(h *html.Node) []matchedDecl {
	var decls []matchedDecl
	order := 0
	for _, ss := range c.om.sheets {
		for _, r := range ss.rules {
			spec, ok := matchSpecificity(r.selectors, h)
			if !ok {
				continue
			}
			for _, d := range r.decls {
				decls = append(decls, matchedDecl{
					property:    strings.ToLower(d.Property),
					value:       style.Property(strings.TrimSpace(d.Value)),
					origin:      ss.origin,
					important:   d.Important,
					specificity: spec,
					order:       order,
				})
				order++
			}
		}
	}
	if attr := attribute(h, "style"); attr != "" {
		if inl, err := parseInlineDeclarations(attr); err == nil {
			for _, d := range inl {
				d.order = order
				decls = append(decls, d)
				order++
			}
		} else {
			T().Infof("ignoring style attribute of <%s>: %v", h.Data, err)
		}
	}
	sort.SliceStable(decls, func(i, j int) bool {
		return decls[i].less(decls[j])
	})
	return decls
}

// matchSpecificity returns the highest specificity of all selectors of a
// rule matching h.
func matchSpecificity(sels []cascadia.Sel, h *html.Node) (cascadia.Specificity, bool) {
	var spec cascadia.Specificity
	matched := false
	for _, sel := range sels {
		if !sel.Match(h) {
			continue
		}
		if s := sel.Specificity(); !matched || spec.Less(s) {
			spec = s
		}
		matched = true
	}
	return spec, matched
}

// computeStyles runs the cascade for a single element. The style registers
// hold the computed values of the parent element on entry and receive the
// element's own values.
func (c *cascade) computeStyles(h *html.Node, parent *styledtree.StyNode) *style.PropertyMap {
	specified := style.NewPropertyMap()
	for _, d := range c.matchingDeclarations(h) {
		specified.Set(d.property, d.value)
	}
	computed := style.NewPropertyMap()
	//
	parentSize := c.regs.D(parameters.P_FONTSIZE)
	size := css.FontSize(style.Property(specified.GetString("font-size")), parentSize, c.rootSize)
	if !c.rootSeen { // rem refers to the outermost element
		c.rootSize, c.rootSeen = size, true
	}
	c.regs.Push(parameters.P_FONTSIZE, size)
	computed.Set("font-size", style.Property(size.CSS()))
	//
	weight := css.FontWeight(style.Property(specified.GetString("font-weight")), c.regs.N(parameters.P_FONTWEIGHT))
	c.regs.Push(parameters.P_FONTWEIGHT, weight)
	computed.Set("font-weight", style.Property(css.FormatFontWeight(weight)))
	//
	for _, rp := range registerParams {
		if p, ok := specified.Property(rp.key); ok {
			switch {
			case p.IsInherit() || p == "unset":
				// keep parent's value
			case p.IsInitial():
				c.regs.Push(rp.param, initialRegisterValue(rp.key))
			default:
				c.regs.Push(rp.param, string(p))
			}
		}
		computed.Set(rp.key, style.Property(c.regs.S(rp.param)))
	}
	//
	if p, ok := specified.Property("direction"); ok {
		switch p {
		case "rtl":
			c.regs.Push(parameters.P_TEXTDIRECTION, bidi.RightToLeft)
		case "ltr", "initial":
			c.regs.Push(parameters.P_TEXTDIRECTION, bidi.LeftToRight)
		}
	}
	computed.Set("direction", directionProperty(c.regs.Dir()))
	//
	for _, key := range specified.Keys() {
		if _, done := computed.Property(key); done {
			continue
		}
		p, _ := specified.Property(key)
		if p.IsInherit() {
			if parent != nil {
				p = style.GetCascadedProperty(parent, key)
			} else {
				p = style.InitialValue(key)
			}
		} else if p.IsInitial() {
			p = style.InitialValue(key)
		}
		computed.Set(key, p)
	}
	T().Debugf("<%s> computed %s", h.Data, computed)
	return computed
}

func directionProperty(dir bidi.Direction) style.Property {
	if dir == bidi.RightToLeft {
		return "rtl"
	}
	return "ltr"
}

func initialRegisterValue(key string) string {
	if p := style.InitialValue(key); p != style.NullStyle {
		return string(p)
	}
	regs := parameters.NewStyleRegisters()
	for _, rp := range registerParams {
		if rp.key == key {
			return regs.S(rp.param)
		}
	}
	return ""
}

func parseInlineDeclarations(s string) ([]matchedDecl, error) {
	inl, err := parseDeclarations(s)
	if err != nil {
		return nil, err
	}
	decls := make([]matchedDecl, 0, len(inl))
	for _, d := range inl {
		decls = append(decls, matchedDecl{
			property:  strings.ToLower(d.Property),
			value:     style.Property(strings.TrimSpace(d.Value)),
			origin:    Inline,
			important: d.Important,
		})
	}
	return decls, nil
}

func attribute(h *html.Node, key string) string {
	for _, a := range h.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
