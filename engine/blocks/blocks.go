/*
Package blocks holds the lines of a block editor document.

A document is an ordered list of lines. Each line carries its markdown text
and the preview HTML rendered from it; the HTML is re-rendered on every
change of the text, so that

    line.RenderedHTML == renderer.Render(line.Text)

holds at any time for lines handed out by a Document. Fenced code blocks
span several lines of text but live in a single editor line.
*/
package blocks

import (
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/mdlines/engine/probe"
	"github.com/npillmayer/mdlines/input/markdown"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdlines.blocks'.
func tracer() tracing.Trace {
	return tracing.Select("mdlines.blocks")
}

// FontMetrics are computed font size and weight of a line's preview.
type FontMetrics = probe.FontMetrics

// Line is a single block of the editor.
type Line struct {
	ID             int
	Text           string
	RenderedHTML   string
	ComputedStyles *FontMetrics // nil if styles have not been probed
}

// Renderer converts line text to preview HTML.
type Renderer interface {
	Render(text string) string
}

// Prober computes font metrics of preview HTML.
type Prober interface {
	ComputedStylesFromHTML(html string) probe.FontMetrics
}

// Document is an ordered list of editor lines.
type Document struct {
	lines    *arraylist.List
	nextID   int
	renderer Renderer
	prober   Prober
}

// NewDocument creates an empty document. If renderer is nil, lines are
// rendered with a default markdown renderer. prober may be nil, in which
// case lines carry no computed styles.
func NewDocument(renderer Renderer, prober Prober) *Document {
	if renderer == nil {
		renderer = markdown.NewRenderer()
	}
	return &Document{
		lines:    arraylist.New(),
		nextID:   1,
		renderer: renderer,
		prober:   prober,
	}
}

// FromText creates a document from markdown text, one line per line of
// text. A fenced code block, from its opening fence up to and including its
// closing fence, becomes a single line. An unclosed fence extends to the end
// of the text.
func FromText(text string, renderer Renderer, prober Prober) *Document {
	doc := NewDocument(renderer, prober)
	for _, block := range SplitBlocks(text) {
		doc.Append(block)
	}
	tracer().Debugf("document with %d lines", doc.Len())
	return doc
}

// SplitBlocks splits markdown text into the texts of editor lines.
func SplitBlocks(text string) []string {
	if text == "" {
		return nil
	}
	var blocks []string
	var fenced []string
	for _, l := range strings.Split(text, "\n") {
		if fenced != nil {
			fenced = append(fenced, l)
			if markdown.IsCodeBlockFence(l) {
				blocks = append(blocks, strings.Join(fenced, "\n"))
				fenced = nil
			}
			continue
		}
		if strings.HasPrefix(l, markdown.Fence) {
			if len(l) >= 2*len(markdown.Fence) && strings.HasSuffix(l, markdown.Fence) {
				blocks = append(blocks, l) // opened and closed on one line
				continue
			}
			fenced = []string{l}
			continue
		}
		blocks = append(blocks, l)
	}
	if fenced != nil {
		blocks = append(blocks, strings.Join(fenced, "\n"))
	}
	return blocks
}

// Len returns the number of lines.
func (doc *Document) Len() int {
	return doc.lines.Size()
}

// Line returns the line at position at.
func (doc *Document) Line(at int) (*Line, error) {
	v, ok := doc.lines.Get(at)
	if !ok {
		return nil, core.Error(core.EINVALID, "line index %d out of range [0…%d)", at, doc.Len())
	}
	return v.(*Line), nil
}

// Lines returns all lines in order.
func (doc *Document) Lines() []*Line {
	lines := make([]*Line, 0, doc.lines.Size())
	it := doc.lines.Iterator()
	for it.Next() {
		lines = append(lines, it.Value().(*Line))
	}
	return lines
}

// Find returns the line with a given id.
func (doc *Document) Find(id int) (at int, line *Line, found bool) {
	at, v := doc.lines.Find(func(_ int, v interface{}) bool {
		return v.(*Line).ID == id
	})
	if at < 0 {
		return -1, nil, false
	}
	return at, v.(*Line), true
}

// Append adds a line at the end of the document.
func (doc *Document) Append(text string) *Line {
	line := doc.newLine(text)
	doc.lines.Add(line)
	return line
}

// Insert inserts a line at position at. Inserting at position Len() appends.
func (doc *Document) Insert(at int, text string) (*Line, error) {
	if at < 0 || at > doc.Len() {
		return nil, core.Error(core.EINVALID, "cannot insert at line index %d, have %d lines", at, doc.Len())
	}
	line := doc.newLine(text)
	if at == doc.Len() {
		doc.lines.Add(line)
	} else {
		doc.lines.Insert(at, line)
	}
	return line, nil
}

// Remove deletes the line at position at.
func (doc *Document) Remove(at int) error {
	if at < 0 || at >= doc.Len() {
		return core.Error(core.EINVALID, "cannot remove line index %d, have %d lines", at, doc.Len())
	}
	doc.lines.Remove(at)
	return nil
}

// SetText replaces the text of the line at position at and re-renders it.
func (doc *Document) SetText(at int, text string) (*Line, error) {
	line, err := doc.Line(at)
	if err != nil {
		return nil, err
	}
	line.Text = text
	doc.render(line)
	return line, nil
}

// Text returns the markdown text of the document.
func (doc *Document) Text() string {
	texts := make([]string, 0, doc.Len())
	for _, l := range doc.Lines() {
		texts = append(texts, l.Text)
	}
	return strings.Join(texts, "\n")
}

func (doc *Document) newLine(text string) *Line {
	line := &Line{ID: doc.nextID, Text: text}
	doc.nextID++
	doc.render(line)
	return line
}

func (doc *Document) render(line *Line) {
	line.RenderedHTML = doc.renderer.Render(line.Text)
	if doc.prober == nil {
		line.ComputedStyles = nil
		return
	}
	fm := doc.prober.ComputedStylesFromHTML(line.RenderedHTML)
	line.ComputedStyles = &fm
}
