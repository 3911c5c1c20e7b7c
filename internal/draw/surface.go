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

// Package draw turns a parsed element stream into drawing operations against
// an abstract surface (§4.2). It never touches X11 directly; the concrete
// Surface (a pixmap backed by an X pixmap, or the in-memory Pixmap this
// package ships for tests) is supplied by the caller.
package draw

import "github.com/polybar/polybar-go/internal/color"

// Surface is the drawing capability the context renders onto: solid fills,
// horizontal lines (for underline/overline decorations), text, text
// measurement, and same-surface rectangle copies (used when an alignment
// block is translated into its final position on flush).
type Surface interface {
	Fill(x, y, w, h int, c color.RGBA)
	HLine(x, y, w int, c color.RGBA)
	// Text draws s at pen position (x, y) in font and color fg, returning
	// the horizontal advance consumed.
	Text(x, y, font int, s string, fg color.RGBA) int
	// Measure returns the horizontal advance s would consume in font,
	// without drawing anything.
	Measure(font int, s string) int
	CopyRect(dstX, dstY, srcX, srcY, w, h int)
}

// Canvas is the narrow per-pixel capability a FontSet needs to rasterize
// glyphs; it is deliberately smaller than Surface so font code never needs
// to know about fills or measurement bookkeeping.
type Canvas interface {
	Set(x, y int, c color.RGBA)
	Bounds() (w, h int)
}

// FontSet is the injected text layout + rasterize capability (§4.2,
// "own text layout via an injected font capability"). A concrete Surface
// implementation (Pixmap in this package, or an X-pixmap-backed one) holds a
// FontSet and delegates Text/Measure to it. internal/fontadapter provides
// the production implementation over golang.org/x/image/font; StubFont in
// this package is a reference implementation good enough for tests that
// don't care about real glyph shapes.
type FontSet interface {
	Measure(font int, s string) int
	Draw(canvas Canvas, x, y, font int, s string, fg color.RGBA) int
}
