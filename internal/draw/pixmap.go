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

package draw

import "github.com/polybar/polybar-go/internal/color"

// Pixmap is an in-memory Surface: a flat per-pixel buffer plus a FontSet for
// text. It mirrors gobar's xgraphics.Image usage (a software buffer that
// gets pushed to an X pixmap once per frame by the renderer) without the X
// dependency, which makes it usable both as the real backing store (pushed
// to the bar window by barctl.XFlusher) and directly in tests.
type Pixmap struct {
	w, h  int
	pix   []color.RGBA
	fonts FontSet
}

// NewPixmap allocates a w x h buffer, pre-filled transparent, using fonts
// for all text operations.
func NewPixmap(w, h int, fonts FontSet) *Pixmap {
	return &Pixmap{w: w, h: h, pix: make([]color.RGBA, w*h), fonts: fonts}
}

// Bounds implements Canvas.
func (p *Pixmap) Bounds() (int, int) { return p.w, p.h }

// Set implements Canvas; out-of-bounds writes are silently dropped, matching
// xgraphics.Image.Set's tolerance of pen positions that briefly go outside
// the image rect during reflow.
func (p *Pixmap) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return
	}
	p.pix[y*p.w+x] = c
}

// At returns the color at (x, y), or Transparent if out of bounds.
func (p *Pixmap) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return color.Transparent
	}
	return p.pix[y*p.w+x]
}

// Fill implements Surface.
func (p *Pixmap) Fill(x, y, w, h int, c color.RGBA) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			p.Set(xx, yy, c)
		}
	}
}

// HLine implements Surface.
func (p *Pixmap) HLine(x, y, w int, c color.RGBA) {
	for xx := x; xx < x+w; xx++ {
		p.Set(xx, y, c)
	}
}

// Text implements Surface by delegating rasterization to the FontSet.
func (p *Pixmap) Text(x, y, font int, s string, fg color.RGBA) int {
	return p.fonts.Draw(p, x, y, font, s, fg)
}

// Measure implements Surface.
func (p *Pixmap) Measure(font int, s string) int {
	return p.fonts.Measure(font, s)
}

// CopyRect implements Surface by copying a rectangle to a new origin within
// the same buffer, used when a right/center alignment block is translated
// to its final position on flush (§4.2 "Right/center reflow").
func (p *Pixmap) CopyRect(dstX, dstY, srcX, srcY, w, h int) {
	src := make([]color.RGBA, w*h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			src[row*w+col] = p.At(srcX+col, srcY+row)
		}
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			p.Set(dstX+col, dstY+row, src[row*w+col])
		}
	}
}
