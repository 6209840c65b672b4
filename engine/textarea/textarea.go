/*
Package textarea models auto-growing text input elements.

An editor line is edited in a textarea which grows with its content. The
height a browser would report as scroll height is computed from the text,
the box geometry and font metrics: hard lines are wrapped at UAX #14 line
break opportunities, words wider than the box break between graphemes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package textarea

import (
	"strings"
	"sync"

	"github.com/npillmayer/mdlines/core/dimen"
	"github.com/npillmayer/mdlines/core/font"
	"github.com/npillmayer/mdlines/core/font/fontregistry"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
)

// tracer traces with key 'mdlines.textarea'.
func tracer() tracing.Trace {
	return tracing.Select("mdlines.textarea")
}

// DefaultEmptyHeight is the height of a textarea without content.
const DefaultEmptyHeight = 24 * dimen.PX

// Insets are paddings of a box.
type Insets struct {
	Top, Right, Bottom, Left dimen.Dimen
}

// Textarea is the model of a textarea element.
type Textarea struct {
	Value      string
	Width      dimen.Dimen // including horizontal padding; zero for unbounded width
	Padding    Insets
	LineHeight dimen.Dimen // zero selects the font's natural line height
	FontFamily string      // CSS font-family list
	FontSize   dimen.Dimen // zero selects 16px
	FontWeight int         // numeric CSS weight, zero selects 400
	Style      map[string]string
}

// Grower computes textarea heights.
type Grower struct {
	registry    *fontregistry.Registry
	emptyHeight dimen.Dimen
}

// Option configures a Grower.
type Option func(*Grower)

// WithRegistry sets the font registry to resolve font families.
func WithRegistry(r *fontregistry.Registry) Option {
	return func(g *Grower) {
		if r != nil {
			g.registry = r
		}
	}
}

// WithEmptyHeight sets the height of textareas without content.
func WithEmptyHeight(h dimen.Dimen) Option {
	return func(g *Grower) {
		g.emptyHeight = h
	}
}

// NewGrower creates a Grower. Without options it uses the global font
// registry and DefaultEmptyHeight.
func NewGrower(opts ...Option) *Grower {
	g := &Grower{emptyHeight: DefaultEmptyHeight}
	for _, opt := range opts {
		opt(g)
	}
	if g.registry == nil {
		g.registry = fontregistry.GlobalRegistry()
	}
	return g
}

var defaultGrower *Grower
var defaultGrowerOnce sync.Once

func grower() *Grower {
	defaultGrowerOnce.Do(func() {
		defaultGrower = NewGrower()
	})
	return defaultGrower
}

// AutoGrow sets the height style of a textarea to fit its content, using
// the default Grower.
func AutoGrow(ta *Textarea) {
	grower().AutoGrow(ta)
}

// ScrollHeight computes the height of a textarea's content, using the
// default Grower.
func ScrollHeight(ta *Textarea) dimen.Dimen {
	return grower().ScrollHeight(ta)
}

// AutoGrow sets ta.Style["height"] to fit the content of ta. A textarea
// holding whitespace only gets the empty height. A nil textarea is ignored.
func (g *Grower) AutoGrow(ta *Textarea) {
	if ta == nil {
		return
	}
	if ta.Style == nil {
		ta.Style = make(map[string]string)
	}
	if strings.TrimSpace(ta.Value) == "" {
		ta.Style["height"] = g.emptyHeight.CSS()
		return
	}
	ta.Style["height"] = g.ScrollHeight(ta).CSS()
}

// ScrollHeight computes the height of the content of ta, including vertical
// padding, rounded up to whole pixels.
func (g *Grower) ScrollHeight(ta *Textarea) dimen.Dimen {
	if ta == nil {
		return 0
	}
	tc := g.typecase(ta)
	lineHeight := ta.LineHeight
	if lineHeight <= 0 {
		lineHeight = tc.LineHeight()
	}
	width := ta.Width - ta.Padding.Left - ta.Padding.Right
	if ta.Width <= 0 {
		width = 0
	}
	lines := 0
	for _, hard := range strings.Split(ta.Value, "\n") {
		lines += countLines(hard, width, tc)
	}
	h := dimen.Dimen(lines)*lineHeight + ta.Padding.Top + ta.Padding.Bottom
	tracer().Debugf("textarea with %d lines of %s: height %s", lines, lineHeight.CSS(), h.CSS())
	return h.CeilPixels()
}

func (g *Grower) typecase(ta *Textarea) *font.TypeCase {
	size := ta.FontSize
	if size <= 0 {
		size = 16 * dimen.PX
	}
	weight := ta.FontWeight
	if weight <= 0 {
		weight = 400
	}
	family := ta.FontFamily
	if strings.TrimSpace(family) == "" {
		family = "sans-serif"
	}
	tc, err := g.registry.TypeCase(family, weight, size)
	if err != nil {
		tracer().Infof("font %q: %v", family, err)
	}
	return tc
}

// --- Line wrapping ---------------------------------------------------------

type measurer interface {
	Advance(string) dimen.Dimen
}

// countLines counts the lines a hard line occupies when soft-wrapped to
// width. An empty line counts as one line; with width <= 0 no wrapping
// occurs. Trailing spaces of a line hang into the margin.
func countLines(text string, width dimen.Dimen, m measurer) int {
	if text == "" || width <= 0 {
		return 1
	}
	lines := 1
	x := dimen.Dimen(0)
	for _, seg := range lineSegments(text) {
		w := m.Advance(seg)
		visible := m.Advance(strings.TrimRight(seg, " \t"))
		if x > 0 && x+visible > width {
			lines++
			x = 0
		}
		if visible > width { // word does not fit on a line of its own
			for _, g := range graphemes(seg) {
				gw := m.Advance(g)
				if x > 0 && x+gw > width && strings.TrimSpace(g) != "" {
					lines++
					x = 0
				}
				x += gw
			}
			continue
		}
		x += w
	}
	return lines
}

// lineSegments splits text at UAX #14 line break opportunities. Each
// segment carries its trailing whitespace.
func lineSegments(text string) []string {
	seg := segment.NewSegmenter(uax14.NewLineWrap())
	seg.Init(strings.NewReader(text))
	var segs []string
	for seg.Next() {
		segs = append(segs, seg.Text())
	}
	return segs
}

var graphemeSetup sync.Once

// graphemes splits text into grapheme clusters.
func graphemes(text string) []string {
	graphemeSetup.Do(grapheme.SetupGraphemeClasses)
	seg := segment.NewSegmenter(grapheme.NewBreaker(1))
	seg.Init(strings.NewReader(text))
	var gs []string
	for seg.Next() {
		gs = append(gs, seg.Text())
	}
	return gs
}
