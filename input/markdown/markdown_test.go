package markdown

import (
	"strings"
	"testing"

	"github.com/npillmayer/mdlines/input/markdown/highlight"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestLineHelpers(t *testing.T) {
	assert.True(t, IsCodeBlockFence("  ```go"))
	assert.False(t, IsCodeBlockFence("`` x"))
	//
	lang, ok := CodeBlockLanguage("```python")
	assert.True(t, ok)
	assert.Equal(t, "python", lang)
	lang, ok = CodeBlockLanguage("```")
	assert.True(t, ok)
	assert.Equal(t, "plaintext", lang)
	_, ok = CodeBlockLanguage("text")
	assert.False(t, ok)
	//
	assert.Equal(t, ListItem{Indent: 1, Bullet: "-", Content: "item", IsListItem: true},
		ParseListItem("  - item"))
	assert.Equal(t, ListItem{Indent: 1, Bullet: "+", Content: "odd", IsListItem: true},
		ParseListItem("   + odd"))
	assert.Equal(t, ListItem{Content: "-nospace"}, ParseListItem("-nospace"))
	//
	indent, content := ParseIndentation("     x\ny")
	assert.Equal(t, 2, indent)
	assert.Equal(t, "x\ny", content)
	indent, content = ParseIndentation("")
	assert.Equal(t, 0, indent)
	assert.Equal(t, "", content)
}

// ---------------------------------------------------------------------------

type RenderSuite struct {
	suite.Suite
	teardown func()
	r        *Renderer
}

func TestRender(t *testing.T) {
	suite.Run(t, new(RenderSuite))
}

func (s *RenderSuite) SetupSuite() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "mdlines.markdown")
	s.r = NewRenderer()
}

func (s *RenderSuite) TearDownSuite() {
	s.teardown()
}

func (s *RenderSuite) TestEmpty() {
	s.Equal(NBSP, s.r.Render(""))
	s.Equal(NBSP, s.r.Render(" \t "))
}

func (s *RenderSuite) TestParagraph() {
	s.Equal("<p>plain text</p>", s.r.Render("plain text"))
	s.Equal("<p>a &lt; b > c &amp; &quot;d&quot; &#039;e&#039;</p>", s.r.Render(`a < b > c & "d" 'e'`))
}

func (s *RenderSuite) TestHeadings() {
	s.Equal("<h1>Title</h1>", s.r.Render("# Title"))
	s.Equal("<h3>x &lt;y></h3>", s.r.Render("### x <y>"))
	s.Equal("<h2>Section <strong>one</strong></h2>", s.r.Render("## Section **one**"))
	s.Equal("<p>####### seven</p>", s.r.Render("####### seven"))
	s.Equal("<p>#nospace</p>", s.r.Render("#nospace"))
}

func (s *RenderSuite) TestInline() {
	s.Equal("<strong>x</strong>", s.r.Render("**x**"))
	s.Equal("<em>x</em>", s.r.Render("*x*"))
	s.Equal("<code>x</code>", s.r.Render("`x`"))
	s.Equal("a <strong>b</strong> c <em>d</em>", s.r.Render("a **b** c *d*"))
	s.Equal("<code>**not bold** &lt;b></code>", s.r.Render("`**not bold** <b>`"))
	s.Equal("<strong>a <em>b</em> c</strong>", s.r.Render("**a *b* c**"))
	s.Equal("<em>a <strong>b</strong> c</em>", s.r.Render("*a **b** c*"))
	s.Equal("<p>a * b</p>", s.r.Render("a * b"))
	s.Equal("x &lt; <strong>y</strong>", s.r.Render("x < **y**"))
}

func (s *RenderSuite) TestListItems() {
	out := s.r.Render("  - item <b>")
	s.True(strings.HasPrefix(out, `<div style="display: flex; align-items: flex-start; padding-left: 16px;">`))
	s.Contains(out, "•")
	s.Contains(out, "<div>item &lt;b></div>")
	//
	s.Contains(s.r.Render("* top"), "padding-left: 0px;")
	wide := NewRenderer(WithIndentStep(24))
	s.Equal(24, wide.IndentStep())
	s.Contains(wide.Render("    + deep"), "padding-left: 48px;")
}

func (s *RenderSuite) TestCodeBlocks() {
	out := s.r.Render("```go\nfunc main() {}\n```")
	s.True(strings.HasPrefix(out, `<pre><code class="language-go">`))
	s.True(strings.HasSuffix(out, `</code></pre>`))
	s.Contains(out, "main")
	//
	out = s.r.Render("```\na < b\n```")
	s.Equal("<pre><code class=\"language-plaintext\">\na &lt; b\n</code></pre>", out)
}

func (s *RenderSuite) TestUnknownLanguageFallsBackToPlaintext() {
	out := s.r.Render("```klingon\nx < y\n```")
	s.Equal("<pre><code class=\"language-klingon\">\nx &lt; y\n</code></pre>", out)
}

func (s *RenderSuite) TestUnclosedCodeBlock() {
	out := s.r.Render("```\nstill typing <")
	s.Equal("<pre><code class=\"language-plaintext\">```\nstill typing &lt;</code></pre>", out)
}

func (s *RenderSuite) TestMermaid() {
	out := s.r.Render("```mermaid\ngraph TD; A-->B\n```")
	s.Equal("<div class=\"mermaid\">\ngraph TD; A-->B\n</div>", out)
}

func (s *RenderSuite) TestDefaultRenderer() {
	s.Equal("<strong>x</strong>", Render("**x**"))
}

func TestRendererOptions(t *testing.T) {
	h := highlight.New(highlight.WithStyle("monokai"))
	r := NewRenderer(WithHighlighter(h), WithIndentStep(-3))
	assert.Equal(t, DefaultIndentStep, r.IndentStep())
	assert.Same(t, h, r.highlighter)
}
