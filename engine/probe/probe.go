/*
Package probe computes CSS font metrics of rendered preview HTML.

A browser editor would insert the HTML into a hidden element and ask the
browser for computed styles. Package probe does the same headless: the HTML
fragment is placed into a hidden container of class "markdown-preview", a
CSS cascade runs over it, and font size and weight are read from the first
element of interest.

Without a rendering environment (a nil *Prober) no metrics are available
and all values are unset.
*/
package probe

import (
	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/mdlines/core/option"
	"github.com/npillmayer/mdlines/engine/dom/cssom"
	"github.com/npillmayer/mdlines/engine/dom/style"
	"github.com/npillmayer/mdlines/engine/dom/styledtree"
	"github.com/npillmayer/mdlines/engine/dom/xpathadapter"
	inputhtml "github.com/npillmayer/mdlines/input/html"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdlines.probe'.
func tracer() tracing.Trace {
	return tracing.Select("mdlines.probe")
}

// FontMetrics are computed font values, formatted the way browsers report
// them, e.g. "18.72px" and "700". Values are unset if they cannot be
// computed.
type FontMetrics struct {
	FontSize   option.StringT
	FontWeight option.StringT
}

// IsSet returns true if any of the metrics is set.
func (fm FontMetrics) IsSet() bool {
	return !fm.FontSize.IsNone() || !fm.FontWeight.IsNone()
}

func (fm FontMetrics) String() string {
	return "{font-size: " + fm.FontSize.String() + ", font-weight: " + fm.FontWeight.String() + "}"
}

// PreviewClass is the class of the container element for probing.
const PreviewClass = "markdown-preview"

// PreviewCSS is the style sheet of preview containers.
const PreviewCSS = `
.markdown-preview { font-size: 16px; font-weight: normal; line-height: 1.5; }
.markdown-preview .mermaid { font-family: monospace; white-space: pre; }
`

// the container is hidden and does not take up space
const containerStyle = "position: absolute; visibility: hidden; height: 0; width: 0; overflow: hidden"

// elements a probe looks for, the first in document order wins
var probeSelector = cascadia.MustCompile("h1, h2, p, strong, em, code, pre, div")

// Prober computes styles for HTML fragments.
type Prober struct {
	om *cssom.CSSOM
}

// NewProber creates a prober with the user-agent and preview style sheets
// and, optionally, additional author style sheets (CSS source text).
func NewProber(sheets ...string) (*Prober, error) {
	om := cssom.NewCSSOM()
	if err := om.AddCSS(PreviewCSS); err != nil {
		return nil, err
	}
	for _, src := range sheets {
		if err := om.AddCSS(src); err != nil {
			return nil, err
		}
	}
	return &Prober{om: om}, nil
}

// ComputedStylesFromHTML returns font size and weight of the first element
// in htmlContent which is one of h1, h2, p, strong, em, code, pre or div.
// If there is no such element, the metrics of the surrounding container are
// returned.
func (p *Prober) ComputedStylesFromHTML(htmlContent string) FontMetrics {
	if p == nil {
		return FontMetrics{}
	}
	container, f, err := p.style(htmlContent)
	if err != nil {
		tracer().Errorf("cannot probe HTML: %v", err)
		return FontMetrics{}
	}
	target := container.node
	if h := cascadia.Query(f.Container, probeSelector); h != nil {
		if sn, ok := container.tree.Lookup(h); ok {
			target = sn
		}
	}
	return metricsOf(target)
}

// Query returns font size and weight of the first element selected by an
// XPath expression. The expression is evaluated relative to the container
// of htmlContent, i.e. "//h1" finds the first h1 of the fragment.
func (p *Prober) Query(htmlContent, expr string) (FontMetrics, error) {
	if p == nil {
		return FontMetrics{}, core.Error(core.EMISSING, "no rendering environment for probing")
	}
	container, _, err := p.style(htmlContent)
	if err != nil {
		return FontMetrics{}, err
	}
	nodes, err := xpathadapter.Select(container.node, expr)
	if err != nil {
		return FontMetrics{}, err
	}
	if len(nodes) == 0 {
		return FontMetrics{}, core.Error(core.EMISSING, "no element for %q", expr)
	}
	return metricsOf(nodes[0]), nil
}

type styledContainer struct {
	tree *styledtree.Tree
	node *styledtree.StyNode
}

func (p *Prober) style(htmlContent string) (styledContainer, *inputhtml.Fragment, error) {
	f, err := inputhtml.ParseFragment(htmlContent, inputhtml.Container{
		Class: PreviewClass,
		Style: containerStyle,
	})
	if err != nil {
		return styledContainer{}, nil, err
	}
	tree, err := p.om.Style(f.Document)
	if err != nil {
		return styledContainer{}, nil, err
	}
	sn, ok := tree.Lookup(f.Container)
	if !ok {
		return styledContainer{}, nil, core.Error(core.EINTERNAL, "preview container missing in styled tree")
	}
	return styledContainer{tree: tree, node: sn}, f, nil
}

func metricsOf(sn *styledtree.StyNode) FontMetrics {
	fm := FontMetrics{
		FontSize:   optionalProperty(sn, "font-size"),
		FontWeight: optionalProperty(sn, "font-weight"),
	}
	tracer().Debugf("<%s> metrics %s", sn.HTMLNode().Data, fm)
	return fm
}

func optionalProperty(sn *styledtree.StyNode, key string) option.StringT {
	p := style.GetCascadedProperty(sn, key)
	if p == style.NullStyle {
		return option.String()
	}
	return option.SomeString(string(p))
}
