// Package dimen implements dimensions and units.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

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
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Dimen is a dimension type.
// Values are in scaled CSS pixels: 65536 units make up one pixel.
type Dimen int32

// Some pre-defined dimensions. CSS fixes 96 px to the inch.
const (
	Zero Dimen = 0
	SP   Dimen = 1       // scaled pixel = PX / 65536
	PX   Dimen = 65536   // CSS pixel
	BP   Dimen = 87381   // big point = 1/72 inch
	PT   Dimen = 87381   // CSS point, same as BP
	PC   Dimen = 1048576 // pica = 12pt
	MM   Dimen = 247695  // millimeters
	CM   Dimen = 2476951 // centimeters
	IN   Dimen = 6291456 // inch
)

// Infinity is the largest possible dimension
const Infinity = math.MaxInt32

// Stringer implementation.
func (d Dimen) String() string {
	return fmt.Sprintf("%dsp", int32(d))
}

// Pixels returns a dimension in (fractional) CSS pixels.
func (d Dimen) Pixels() float64 {
	return float64(d) / float64(PX)
}

// FromPixels converts a fractional pixel value to a dimension.
func FromPixels(px float64) Dimen {
	return Dimen(math.Round(px * float64(PX)))
}

// CSS formats d the way browsers report computed lengths, e.g. "18.72px".
// Fractions are rounded to two decimal places.
func (d Dimen) CSS() string {
	px := math.Round(d.Pixels()*100) / 100
	return strconv.FormatFloat(px, 'f', -1, 64) + "px"
}

// CeilPixels rounds d up to the next whole pixel.
func (d Dimen) CeilPixels() Dimen {
	if d%PX == 0 {
		return d
	}
	return Dimen(math.Ceil(d.Pixels())) * PX
}

// Scale multiplies d by a factor.
func (d Dimen) Scale(f float64) Dimen {
	return Dimen(math.Round(float64(d) * f))
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+))(%|[a-zA-Z]{2})?$`)

// ParseDimen parses a string to return a dimension. Syntax is CSS Unit.
// If a percentage value is given (`80%`), the second return value will be true
// and the dimension will hold the percentage scaled like a pixel value.
// Unitless numbers are interpreted as pixels.
//
func ParseDimen(s string) (Dimen, bool, error) {
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return 0, false, errors.New("format error parsing dimension")
	}
	scale := PX
	ispcnt := false
	if len(d) > 2 {
		switch d[2] {
		case "px", "PX", "":
			scale = PX
		case "pt", "PT":
			scale = PT
		case "pc", "PC":
			scale = PC
		case "mm", "MM":
			scale = MM
		case "cm", "CM":
			scale = CM
		case "in", "IN":
			scale = IN
		case "sp", "SP":
			scale = SP
		case "%":
			scale, ispcnt = PX, true
		default:
			return 0, false, errors.New("format error parsing dimension")
		}
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return 0, false, errors.New("format error parsing dimension")
	}
	return Dimen(math.Round(n * float64(scale))), ispcnt, nil
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}
