/*
Package htmldoc exports editor documents as HTML.

Where package markdown renders single editor lines for preview, htmldoc
renders a whole document at once with goldmark (CommonMark and GitHub
extensions), highlighting code blocks with chroma classes and wrapping
Mermaid diagrams for client-side rendering. The result is sanitized.
A standalone export wraps the body into a complete page with style sheets.
*/
package htmldoc

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/mdlines/core/config"
	"github.com/npillmayer/mdlines/engine/blocks"
	"github.com/npillmayer/mdlines/engine/probe"
	"github.com/npillmayer/mdlines/input/markdown/highlight"
	"github.com/npillmayer/schuko/tracing"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/util"
)

// tracer traces with key 'mdlines.export'.
func tracer() tracing.Trace {
	return tracing.Select("mdlines.export")
}

type exporter struct {
	standalone bool
	title      string
	sheets     []string
}

// Option configures an export.
type Option func(*exporter)

// Standalone makes Export produce a complete HTML page with a title.
func Standalone(title string) Option {
	return func(e *exporter) {
		e.standalone = true
		e.title = title
	}
}

// WithStyleSheets adds CSS source text to the head of standalone pages.
func WithStyleSheets(css ...string) Option {
	return func(e *exporter) {
		e.sheets = append(e.sheets, css...)
	}
}

// Export renders a document as HTML. If cfg is nil, the default
// configuration is used.
func Export(doc *blocks.Document, cfg *config.Config, opts ...Option) ([]byte, error) {
	if doc == nil {
		return nil, core.Error(core.EINVALID, "cannot export nil document")
	}
	return ExportText(doc.Text(), cfg, opts...)
}

// ExportText renders markdown text as HTML. See Export.
func ExportText(text string, cfg *config.Config, opts ...Option) ([]byte, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	e := &exporter{}
	for _, opt := range opts {
		opt(e)
	}
	var body bytes.Buffer
	if err := newMarkdown(cfg.HighlightStyle).Convert([]byte(text), &body); err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot convert markdown")
	}
	clean := sanitizer().SanitizeBytes(body.Bytes())
	tracer().Debugf("exported %d bytes of HTML", len(clean))
	if !e.standalone {
		return clean, nil
	}
	return e.page(clean, cfg)
}

func newMarkdown(style string) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
				highlighting.WithWrapperRenderer(mermaidWrapper()),
			),
		),
	)
}

const mermaidLanguage = "mermaid"

// mermaidWrapper turns ```mermaid fences into divs Mermaid can hydrate.
// Other code blocks which have not been highlighted get a plain
// <pre><code> wrapper.
func mermaidWrapper() highlighting.WrapperRenderer {
	return func(w util.BufWriter, ctx highlighting.CodeBlockContext, entering bool) {
		if ctx.Highlighted() {
			return
		}
		lang, _ := ctx.Language()
		if highlight.Normalize(string(lang)) == mermaidLanguage {
			if entering {
				_, _ = w.WriteString(`<div class="mermaid">`)
			} else {
				_, _ = w.WriteString("</div>\n")
			}
			return
		}
		if entering {
			_, _ = w.WriteString("<pre><code")
			if len(bytes.TrimSpace(lang)) > 0 {
				_, _ = w.WriteString(` class="language-`)
				_, _ = w.Write(util.EscapeHTML(lang))
				_, _ = w.WriteString(`"`)
			}
			_, _ = w.WriteString(">")
			return
		}
		_, _ = w.WriteString("</code></pre>\n")
	}
}

var classNames = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)

func sanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(classNames).OnElements("div", "span", "pre", "code")
	return p
}

func (e *exporter) page(body []byte, cfg *config.Config) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(e.title) + "</title>\n<style>\n")
	if err := highlight.New(highlight.WithStyle(cfg.HighlightStyle)).WriteCSS(&b); err != nil {
		return nil, err
	}
	b.WriteString(probe.PreviewCSS)
	for _, css := range e.sheets {
		b.WriteString(strings.ReplaceAll(css, "</", `<\/`))
		b.WriteString("\n")
	}
	b.WriteString("</style>\n</head>\n<body>\n<div class=\"" + probe.PreviewClass + "\">\n")
	b.Write(body)
	b.WriteString("</div>\n")
	if bytes.Contains(body, []byte(`class="mermaid"`)) {
		b.WriteString(mermaidScript)
	}
	b.WriteString("</body>\n</html>\n")
	return b.Bytes(), nil
}

const mermaidScript = `<script type="module">
import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.esm.min.mjs";
mermaid.initialize({ startOnLoad: true });
</script>
`
