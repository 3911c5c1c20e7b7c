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

// StubFont is a FontSet good enough for exercising layout math in tests: it
// treats every font index as a fixed-advance-per-rune face, drawing a solid
// block instead of a real glyph shape. internal/fontadapter supersedes it in
// production with real glyph rasterization.
type StubFont struct {
	// AdvancePx is the per-rune horizontal advance, defaulting to 6 if 0.
	AdvancePx int
	// HeightPx is the glyph block height, defaulting to 10 if 0.
	HeightPx int
}

func (f StubFont) advance() int {
	if f.AdvancePx <= 0 {
		return 6
	}
	return f.AdvancePx
}

func (f StubFont) height() int {
	if f.HeightPx <= 0 {
		return 10
	}
	return f.HeightPx
}

// Measure implements FontSet.
func (f StubFont) Measure(_ int, s string) int {
	return f.advance() * len([]rune(s))
}

// Draw implements FontSet, painting each rune as a solid AdvancePx x HeightPx
// block in fg, baseline-aligned at y (y is the top of the block).
func (f StubFont) Draw(canvas Canvas, x, y, _ int, s string, fg color.RGBA) int {
	adv := f.advance()
	h := f.height()
	for i := range []rune(s) {
		ox := x + i*adv
		for row := 0; row < h; row++ {
			for col := 0; col < adv-1; col++ { // leave a 1px gap between glyphs
				canvas.Set(ox+col, y+row, fg)
			}
		}
	}
	return adv * len([]rune(s))
}
