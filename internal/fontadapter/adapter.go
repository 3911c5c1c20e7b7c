// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fontadapter is the production implementation of draw.FontSet,
// wrapping golang.org/x/image/font the same way gobar wraps it around
// xgraphics.Image: a font.Face per configured font, addressed by the 1-based
// index the tag grammar uses, measured and drawn with font.MeasureString and
// fixed.Int26_6 pen arithmetic.
package fontadapter

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/polybar/polybar-go/internal/color"
	"github.com/polybar/polybar-go/internal/draw"
)

// Set holds the bar's configured fonts in preference order. Index 0 is the
// default font a "T-" tag resets to; tag index n (1-based) addresses
// Faces[n-1] when in range.
type Set struct {
	Faces []font.Face
}

var _ draw.FontSet = (*Set)(nil)

// resolve maps a (possibly out-of-range or zero) tag font index to a face,
// falling back to index 0 and reporting whether a fallback was needed.
func (s *Set) resolve(idx int) (font.Face, bool) {
	if len(s.Faces) == 0 {
		return nil, false
	}
	if idx <= 0 || idx > len(s.Faces) {
		return s.Faces[0], idx != 0 && idx != 1
	}
	return s.Faces[idx-1], false
}

// Measure implements draw.FontSet using font.MeasureString, mirroring
// gobar's `font.MeasureString(pFont, piece.Text)` call exactly.
func (s *Set) Measure(idx int, str string) int {
	face, _ := s.resolve(idx)
	if face == nil {
		return 0
	}
	return font.MeasureString(face, str).Round()
}

// Draw implements draw.FontSet, rasterizing str glyph-by-glyph onto canvas
// starting at pen (x, y), advancing with the face's glyph metrics the same
// way gobar's xgraphics.Image.Text loop does, and returning the total
// advance.
func (s *Set) Draw(canvas draw.Canvas, x, y, idx int, str string, fg color.RGBA) int {
	face, _ := s.resolve(idx)
	if face == nil {
		return 0
	}

	dot := fixed.P(x, y)
	start := dot.X
	prev := rune(-1)
	for _, r := range str {
		if prev >= 0 {
			dot.X += face.Kern(prev, r)
		}
		dr, mask, maskp, advance, ok := face.Glyph(dot, r)
		if !ok {
			prev = r
			continue
		}
		paintGlyph(canvas, dr, mask, maskp, fg)
		dot.X += advance
		prev = r
	}
	return (dot.X - start).Round()
}

// paintGlyph copies the alpha-only glyph mask onto canvas at dr, compositing
// fg through the mask's alpha value at each point, the minimal equivalent of
// what xgraphics.Image.Text does via draw.DrawMask internally.
func paintGlyph(canvas draw.Canvas, dr image.Rectangle, mask image.Image, maskp image.Point, fg color.RGBA) {
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; x++ {
			mx := maskp.X + (x - dr.Min.X)
			my := maskp.Y + (y - dr.Min.Y)
			_, _, _, a := mask.At(mx, my).RGBA()
			if a == 0 {
				continue
			}
			canvas.Set(x, y, fg)
		}
	}
}

// New builds a Set from already-loaded faces, erroring if the list is empty
// (a bar with zero usable fonts cannot render text, a fatal config error per
// §7).
func New(faces []font.Face) (*Set, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("fontadapter: no fonts loaded")
	}
	return &Set{Faces: faces}, nil
}
