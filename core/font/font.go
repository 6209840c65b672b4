/*
Package font is for typeface and font handling.

We stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

* A "typecase" is a scaled font, i.e. a font in a certain size.
An example is "Helvetica regular 16px".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Typecases are used to measure text, e.g. for computing how many visual
lines a text input element will need.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"os"
	"path"
	"strings"
	"sync"

	"github.com/npillmayer/mdlines/core"
	"github.com/npillmayer/mdlines/core/dimen"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'mdlines.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("mdlines.fonts")
}

// ScalableFont is a font variant which may be scaled to any size.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// TypeCase is a font at a fixed size.
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               dimen.Dimen
	mx                 sync.Mutex // faces are not safe for concurrent use
}

// LoadOpenTypeFont loads a font from a TTF or OTF file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses font data.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font data")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// PrepareCase creates a typecase for size given in CSS pixels.
// Sizes outside of 1px…1000px are clamped.
func (sf *ScalableFont) PrepareCase(size dimen.Dimen) (*TypeCase, error) {
	if size < dimen.PX {
		size = dimen.PX
	} else if size > 1000*dimen.PX {
		size = 1000 * dimen.PX
	}
	// at 72 DPI one point of font size equals one pixel
	options := &opentype.FaceOptions{
		Size:    size.Pixels(),
		DPI:     72,
		Hinting: xfont.HintingNone,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot create face for %s", sf.Fontname)
	}
	return &TypeCase{
		scalableFontParent: sf,
		face:               f,
		size:               size,
	}, nil
}

// ScalableFontParent returns the font tc has been derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// Size returns the size of tc.
func (tc *TypeCase) Size() dimen.Dimen {
	return tc.size
}

// Advance measures the horizontal advance of text set in tc.
func (tc *TypeCase) Advance(text string) dimen.Dimen {
	tc.mx.Lock()
	defer tc.mx.Unlock()
	return fixedToDimen(xfont.MeasureString(tc.face, text))
}

// LineHeight returns the font's natural line height, i.e. ascent plus
// descent plus line gap.
func (tc *TypeCase) LineHeight() dimen.Dimen {
	tc.mx.Lock()
	defer tc.mx.Unlock()
	return fixedToDimen(tc.face.Metrics().Height)
}

func fixedToDimen(x fixed.Int26_6) dimen.Dimen {
	return dimen.Dimen(int64(x) * int64(dimen.PX) / 64)
}

// --- Fallback fonts --------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. We use the Go fonts: Go Sans, Go Sans Bold and Go Mono.
func FallbackFont(weight xfont.Weight, mono bool) *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackRegular = loadFallbackFont("Go Sans", goregular.TTF)
		fallbackBold = loadFallbackFont("Go Sans Bold", gobold.TTF)
		fallbackMono = loadFallbackFont("Go Mono", gomono.TTF)
	})
	switch {
	case mono:
		return fallbackMono
	case weight >= xfont.WeightSemiBold:
		return fallbackBold
	}
	return fallbackRegular
}

var fallbackFontLoading sync.Once

var fallbackRegular, fallbackBold, fallbackMono *ScalableFont

func loadFallbackFont(name string, ttf []byte) *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: name,
		Filepath: "internal",
		Binary:   ttf,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}

// ---------------------------------------------------------------------------

// WeightFromCSS converts a numeric CSS font-weight to an x/image weight.
func WeightFromCSS(w int) xfont.Weight {
	switch {
	case w < 150:
		return xfont.WeightThin
	case w < 250:
		return xfont.WeightExtraLight
	case w < 350:
		return xfont.WeightLight
	case w < 450:
		return xfont.WeightNormal
	case w < 550:
		return xfont.WeightMedium
	case w < 650:
		return xfont.WeightSemiBold
	case w < 750:
		return xfont.WeightBold
	case w < 850:
		return xfont.WeightExtraBold
	}
	return xfont.WeightBlack
}

// WeightClass buckets font weights into the three classes font file names
// usually distinguish: light, regular and bold.
type WeightClass int

// Weight classes, see ClassOf.
const (
	Regular WeightClass = iota
	Light
	Bold
)

// ClassOf returns the weight class of w.
func ClassOf(w xfont.Weight) WeightClass {
	switch {
	case w <= xfont.WeightLight:
		return Light
	case w >= xfont.WeightSemiBold:
		return Bold
	}
	return Regular
}

// fileWeightMarkers maps name parts of font files to weight classes.
var fileWeightMarkers = map[string]WeightClass{
	"thin": Light, "extralight": Light, "light": Light, "xlight": Light,
	"semibold": Bold, "demibold": Bold, "bold": Bold, "b": Bold,
	"extrabold": Bold, "xbold": Bold, "heavy": Bold, "black": Bold,
}

// FileWeight guesses the weight class and whether a font is italic from
// the name of its file, e.g. "DejaVuSans-BoldOblique.ttf".
func FileWeight(fontfile string) (WeightClass, bool) {
	base := strings.ToLower(path.Base(fontfile))
	base = strings.TrimSuffix(base, path.Ext(base))
	italic := strings.Contains(base, "italic") || strings.Contains(base, "oblique")
	parts := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	class := Regular
	for _, part := range parts {
		part = strings.TrimSuffix(strings.TrimSuffix(part, "italic"), "oblique")
		if c, ok := fileWeightMarkers[part]; ok {
			class = c
		}
	}
	return class, italic
}

// FileMatches reports whether a located font file is an upright cut of
// family in the weight class of weight. Spaces in family are ignored.
func FileMatches(fontfile, family string, weight xfont.Weight) bool {
	base := strings.ToLower(path.Base(fontfile))
	fam := strings.ToLower(strings.ReplaceAll(family, " ", ""))
	if !strings.Contains(strings.ReplaceAll(base, " ", ""), fam) {
		return false
	}
	class, italic := FileWeight(fontfile)
	tracer().Debugf("font file %s has weight class %d, italic=%v", base, class, italic)
	return !italic && class == ClassOf(weight)
}
