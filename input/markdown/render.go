package markdown

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/mdlines/input/markdown/highlight"
)

// DefaultIndentStep is the padding per list indentation level, in pixels.
const DefaultIndentStep = 16

// NBSP is the rendering of an empty line. It keeps the preview element at
// the height of one line of text.
const NBSP = "&nbsp;"

var (
	closedCodeBlock = regexp.MustCompile("^```(\\w*)([\\s\\S]*?)```$")
	heading         = regexp.MustCompile(`^(#{1,6})\s(.+)`)
)

// Renderer renders editor lines to HTML.
type Renderer struct {
	indentStep  int
	highlighter *highlight.Highlighter
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithIndentStep sets the padding per list indentation level, in pixels.
// Negative values are ignored.
func WithIndentStep(px int) Option {
	return func(r *Renderer) {
		if px >= 0 {
			r.indentStep = px
		}
	}
}

// WithHighlighter sets the highlighter for code blocks.
func WithHighlighter(h *highlight.Highlighter) Option {
	return func(r *Renderer) {
		if h != nil {
			r.highlighter = h
		}
	}
}

// NewRenderer creates a renderer. Without options, lists are indented by
// DefaultIndentStep and code is highlighted with the default style.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{indentStep: DefaultIndentStep}
	for _, opt := range opts {
		opt(r)
	}
	if r.highlighter == nil {
		r.highlighter = highlight.New()
	}
	return r
}

// IndentStep returns the padding per list indentation level, in pixels.
func (r *Renderer) IndentStep() int {
	return r.indentStep
}

var defaultRenderer *Renderer
var defaultOnce sync.Once

// Render renders a line with the default renderer.
func Render(text string) string {
	defaultOnce.Do(func() {
		defaultRenderer = NewRenderer()
	})
	return defaultRenderer.Render(text)
}

// Render converts the text of an editor line to HTML.
//
// Rules are tried in order: empty lines, fenced code blocks, headings,
// list items, inline formatting. Text with no markup at all is wrapped
// into a paragraph.
func (r *Renderer) Render(text string) string {
	if strings.TrimSpace(text) == "" {
		return NBSP
	}
	if strings.HasPrefix(text, Fence) {
		return r.renderCodeBlock(text)
	}
	if m := heading.FindStringSubmatchIndex(text); m != nil {
		level := m[3] - m[2]
		content, _ := renderInline(text[m[4]:m[5]])
		rest, _ := renderInline(text[m[1]:])
		tracer().Debugf("heading level %d", level)
		return "<h" + strconv.Itoa(level) + ">" + content + "</h" + strconv.Itoa(level) + ">" + rest
	}
	if item := ParseListItem(text); item.IsListItem {
		return r.renderListItem(item)
	}
	if out, applied := renderInline(text); applied {
		return out
	}
	return "<p>" + Sanitize(text) + "</p>"
}

func (r *Renderer) renderCodeBlock(text string) string {
	m := closedCodeBlock.FindStringSubmatch(text)
	if m == nil { // unclosed block: highlight everything, including the fence
		lang, _ := CodeBlockLanguage(text)
		return r.codeElement(text, lang)
	}
	lang, code := m[1], m[2]
	if lang == "" {
		lang = highlight.Plaintext
	}
	if lang == "mermaid" {
		return `<div class="mermaid">` + Sanitize(code) + `</div>`
	}
	return r.codeElement(code, lang)
}

func (r *Renderer) codeElement(code, lang string) string {
	out, err := r.highlighter.Highlight(code, lang)
	if err != nil {
		tracer().Infof("highlighting %s code failed, rendering as plaintext: %v", lang, err)
	}
	return `<pre><code class="language-` + Sanitize(lang) + `">` + out + `</code></pre>`
}

func (r *Renderer) renderListItem(item ListItem) string {
	var b strings.Builder
	b.WriteString(`<div style="display: flex; align-items: flex-start; padding-left: `)
	b.WriteString(strconv.Itoa(item.Indent * r.indentStep))
	b.WriteString(`px;">`)
	b.WriteString(`<div style="flex-shrink: 0; width: 20px; text-align: center; padding-top: 2px;">•</div>`)
	b.WriteString(`<div>`)
	b.WriteString(Sanitize(item.Content))
	b.WriteString(`</div></div>`)
	return b.String()
}

var sanitizer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Sanitize escapes text for use as HTML content. '>' is left as is.
func Sanitize(s string) string {
	return sanitizer.Replace(s)
}
