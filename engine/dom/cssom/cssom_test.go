package cssom

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/mdlines/engine/dom/style"
	"github.com/npillmayer/mdlines/engine/dom/styledtree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/net/html"
)

type CascadeSuite struct {
	suite.Suite
	teardown func()
}

func TestCascade(t *testing.T) {
	suite.Run(t, new(CascadeSuite))
}

func (s *CascadeSuite) SetupSuite() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "mdlines.css")
}

func (s *CascadeSuite) TearDownSuite() {
	s.teardown()
}

func (s *CascadeSuite) styled(doc string, sheets ...string) (*html.Node, *styledtree.Tree) {
	root, err := html.Parse(strings.NewReader(doc))
	s.Require().NoError(err)
	om := NewCSSOM()
	for _, src := range sheets {
		s.Require().NoError(om.AddCSS(src))
	}
	tree, err := om.Style(root)
	s.Require().NoError(err)
	return root, tree
}

func (s *CascadeSuite) prop(root *html.Node, tree *styledtree.Tree, sel, key string) string {
	h := cascadia.Query(root, cascadia.MustCompile(sel))
	s.Require().NotNil(h, "no element for selector %s", sel)
	sn, ok := tree.Lookup(h)
	s.Require().True(ok)
	return string(style.GetCascadedProperty(sn, key))
}

func (s *CascadeSuite) TestUserAgentHeadings() {
	root, tree := s.styled(`<h1>Title <strong>bold</strong></h1><h3>x</h3><p>text <code>c</code></p>`)
	s.Equal("32px", s.prop(root, tree, "h1", "font-size"))
	s.Equal("700", s.prop(root, tree, "h1", "font-weight"))
	s.Equal("32px", s.prop(root, tree, "h1 strong", "font-size"))
	s.Equal("900", s.prop(root, tree, "h1 strong", "font-weight"))
	s.Equal("18.72px", s.prop(root, tree, "h3", "font-size"))
	s.Equal("16px", s.prop(root, tree, "p", "font-size"))
	s.Equal("400", s.prop(root, tree, "p", "font-weight"))
	s.Equal("13px", s.prop(root, tree, "code", "font-size"))
	s.Equal("monospace", s.prop(root, tree, "code", "font-family"))
}

func (s *CascadeSuite) TestSpecificity() {
	root, tree := s.styled(`<p id="x" class="big">a</p><p class="big">b</p>`,
		`#x { font-size: 24px } .big { font-size: 20px } p { font-size: 10px }`)
	s.Equal("24px", s.prop(root, tree, "#x", "font-size"), "id beats class")
	s.Equal("20px", s.prop(root, tree, "p:nth-of-type(2)", "font-size"), "class beats type")
}

func (s *CascadeSuite) TestSourceOrder() {
	root, tree := s.styled(`<p>a</p>`, `p { color: red }`, `p { color: blue }`)
	s.Equal("blue", s.prop(root, tree, "p", "color"))
}

func (s *CascadeSuite) TestImportantAndInline() {
	root, tree := s.styled(
		`<p id="a" style="font-size: 30px">a</p><p id="b" style="font-size: 30px">b</p>`+
			`<p id="c" style="font-size: 30px !important">c</p>`,
		`#a { font-size: 24px } #b { font-size: 12px !important } #c { font-size: 12px !important }`)
	s.Equal("30px", s.prop(root, tree, "#a", "font-size"), "inline beats id")
	s.Equal("12px", s.prop(root, tree, "#b", "font-size"), "important beats inline")
	s.Equal("30px", s.prop(root, tree, "#c", "font-size"), "important inline beats important author")
}

func (s *CascadeSuite) TestInheritance() {
	root, tree := s.styled(`<div class="outer"><span>x</span></div>`,
		`.outer { color: green; padding-left: 32px; font-size: 20px; font-style: italic }`)
	s.Equal("green", s.prop(root, tree, "span", "color"))
	s.Equal("italic", s.prop(root, tree, "span", "font-style"))
	s.Equal("20px", s.prop(root, tree, "span", "font-size"))
	s.Equal("32px", s.prop(root, tree, "div", "padding-left"))
	s.Equal("0", s.prop(root, tree, "span", "padding-left"), "padding is not inherited")
}

func (s *CascadeSuite) TestRelativeUnits() {
	root, tree := s.styled(`<div class="d"><p class="p">x<em class="e">y</em></p></div>`,
		`.d { font-size: 20px } .p { font-size: 150% } .e { font-size: 1rem }`)
	s.Equal("30px", s.prop(root, tree, ".p", "font-size"))
	s.Equal("16px", s.prop(root, tree, ".e", "font-size"), "rem refers to root element")
}

func (s *CascadeSuite) TestUnterminatedInlineStyle() {
	root, tree := s.styled(`<h1 style="font-size: 3em">a</h1><p style="color: red; font-weight: 300">b</p>`)
	s.Equal("48px", s.prop(root, tree, "h1", "font-size"))
	s.Equal("red", s.prop(root, tree, "p", "color"))
	s.Equal("300", s.prop(root, tree, "p", "font-weight"))
}

func (s *CascadeSuite) TestDirection() {
	root, tree := s.styled(`<div dir="rtl"><p class="a">x</p><p class="b" style="direction: ltr">y</p></div><p class="c">z</p>`)
	s.Equal("rtl", s.prop(root, tree, "div", "direction"))
	s.Equal("rtl", s.prop(root, tree, ".a", "direction"), "direction is inherited")
	s.Equal("ltr", s.prop(root, tree, ".b", "direction"))
	s.Equal("ltr", s.prop(root, tree, ".c", "direction"))
}

func (s *CascadeSuite) TestInvalidSelectorIsSkipped() {
	ss, err := ParseStyleSheet(`p:no-such-class { color: red } h1 { color: blue }`, Author)
	s.Require().NoError(err)
	s.Equal(1, ss.Len())
}

func TestParseInlineStyle(t *testing.T) {
	pmap, err := ParseInlineStyle("font-size: 12px; Font-Weight: bold")
	if err != nil {
		t.Fatal(err)
	}
	if pmap.GetString("font-weight") != "bold" || pmap.GetString("font-size") != "12px" {
		t.Errorf("unexpected inline style map %s", pmap)
	}
	pmap, err = ParseInlineStyle("  overflow: hidden  ")
	if err != nil {
		t.Fatal(err)
	}
	if pmap.GetString("overflow") != "hidden" {
		t.Errorf("expected last declaration without semicolon to keep its value, have %s", pmap)
	}
}
