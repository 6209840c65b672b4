/*
Package highlight produces syntax-highlighted HTML for code blocks.

Highlighting is done by chroma lexers, formatted with CSS classes instead of
inline styles. The surrounding <pre><code> is left to the caller.
Theme CSS for the classes is available from WriteCSS.

Language names are normalized through a table of common aliases, which also
serves completion of language names at a code fence.
*/
package highlight

import (
	"html"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/derekparker/trie"
	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdlines.markdown'.
func tracer() tracing.Trace {
	return tracing.Select("mdlines.markdown")
}

// Plaintext is the language of code blocks without a language tag.
const Plaintext = "plaintext"

// DefaultStyle is the chroma style used if none is configured.
const DefaultStyle = "github"

// Highlighter highlights source code for a set of languages.
type Highlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
	mx        sync.Mutex
	lexers    map[string]chroma.Lexer // cache, keyed by normalized language
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithStyle selects a chroma style by name. Unknown names select chroma's
// fallback style.
func WithStyle(name string) Option {
	return func(h *Highlighter) {
		h.style = styles.Get(name)
	}
}

// New creates a highlighter.
func New(opts ...Option) *Highlighter {
	h := &Highlighter{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
		style:  styles.Get(DefaultStyle),
		lexers: make(map[string]chroma.Lexer),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// StyleName returns the name of the highlighter's chroma style.
func (h *Highlighter) StyleName() string {
	return h.style.Name
}

// Highlight renders code as HTML for a language. For plaintext, the result
// is the HTML-escaped code. Whenever highlighting fails, the escaped code is
// returned together with an error, so callers may always use the result.
func (h *Highlighter) Highlight(code, language string) (string, error) {
	lang := Normalize(language)
	if lang == Plaintext {
		return html.EscapeString(code), nil
	}
	lexer, err := h.lexer(lang)
	if err != nil {
		return html.EscapeString(code), err
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return html.EscapeString(code), core.WrapError(err, core.EINTERNAL,
			"cannot tokenise code for language %q", lang)
	}
	var b strings.Builder
	if err = h.formatter.Format(&b, h.style, iterator); err != nil {
		return html.EscapeString(code), core.WrapError(err, core.EINTERNAL,
			"cannot format code for language %q", lang)
	}
	return b.String(), nil
}

func (h *Highlighter) lexer(lang string) (chroma.Lexer, error) {
	h.mx.Lock()
	defer h.mx.Unlock()
	if lexer, ok := h.lexers[lang]; ok {
		return lexer, nil
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		tracer().Infof("no lexer for language %q", lang)
		return nil, core.Error(core.EMISSING, "no highlighter for language %q", lang)
	}
	lexer = chroma.Coalesce(lexer)
	h.lexers[lang] = lexer
	return lexer, nil
}

// Supports returns true if a language can be highlighted.
func (h *Highlighter) Supports(language string) bool {
	lang := Normalize(language)
	if lang == Plaintext {
		return true
	}
	_, err := h.lexer(lang)
	return err == nil
}

// WriteCSS writes the CSS for the highlighter's style classes.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	if err := h.formatter.WriteCSS(w, h.style); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write CSS for style %s", h.style.Name)
	}
	return nil
}

// --- Language names --------------------------------------------------------

var aliases = map[string]string{
	"js":         "javascript",
	"jsx":        "javascript",
	"mjs":        "javascript",
	"ts":         "typescript",
	"tsx":        "typescript",
	"py":         "python",
	"py3":        "python",
	"rb":         "ruby",
	"sh":         "bash",
	"shell":      "bash",
	"zsh":        "bash",
	"yml":        "yaml",
	"golang":     "go",
	"rs":         "rust",
	"md":         "markdown",
	"c++":        "cpp",
	"cs":         "csharp",
	"kt":         "kotlin",
	"ps1":        "powershell",
	"dockerfile": "docker",
	"txt":        Plaintext,
	"text":       Plaintext,
	"plain":      Plaintext,
	"":           Plaintext,
}

// languages offered for completion, besides the aliases
var common = []string{
	"bash", "c", "cpp", "csharp", "css", "docker", "go", "html", "java",
	"javascript", "json", "kotlin", "markdown", "mermaid", "php", "plaintext",
	"powershell", "python", "ruby", "rust", "sql", "swift", "toml",
	"typescript", "xml", "yaml",
}

var names *trie.Trie

func init() {
	names = trie.New()
	for alias, lang := range aliases {
		if alias != "" {
			names.Add(alias, lang)
		}
	}
	for _, lang := range common {
		names.Add(lang, lang)
	}
}

// Normalize maps a language tag from a code fence to a canonical
// language name, e.g. "js" to "javascript". Tags are case-insensitive.
// Unknown tags are returned in lower case.
func Normalize(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		return Plaintext
	}
	if node, ok := names.Find(lang); ok {
		if canonical, ok := node.Meta().(string); ok {
			return canonical
		}
	}
	return lang
}

// Languages lists known language tags (canonical names and aliases)
// starting with prefix, in sorted order.
func Languages(prefix string) []string {
	tags := names.PrefixSearch(strings.ToLower(prefix))
	sort.Strings(tags)
	return tags
}
