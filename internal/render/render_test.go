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

package render

import (
	"testing"

	"github.com/polybar/polybar-go/internal/color"
	"github.com/polybar/polybar-go/internal/draw"
	"github.com/polybar/polybar-go/internal/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(w int) (*Renderer, *draw.Pixmap) {
	font := draw.StubFont{AdvancePx: 4, HeightPx: 8}
	surf := draw.NewPixmap(w, 16, font)
	r := New(surf, w, draw.Defaults{Fg: color.Black, Bg: color.White})
	return r, surf
}

func elementsOf(t *testing.T, src string) []tags.Element {
	t.Helper()
	els, diag := tags.Parse(src)
	require.Empty(t, diag)
	return els
}

// TestRenderOneFrame is scenario E1's shape end-to-end through the renderer.
func TestRenderOneFrame(t *testing.T) {
	r, _ := newTestRenderer(200)
	r.Begin()
	r.Draw(Frame{
		Alignment: tags.AlignLeft,
		Elements:  elementsOf(t, "%{F#ff0000}A%{F-}%{+u}B%{-u}"),
	})
	actions := r.End()
	assert.Equal(t, 0, actions.NumActions())
}

// TestIdempotentRender is Property 6: two identical forced renders of the
// same content produce byte-identical pixmaps and action contexts.
func TestIdempotentRender(t *testing.T) {
	src := `%{A1:run:}click%{A}plain text%{F#00ff00}green`

	r1, surf1 := newTestRenderer(200)
	r1.Begin()
	r1.Draw(Frame{Alignment: tags.AlignLeft, Elements: elementsOf(t, src)})
	actions1 := r1.End()

	r2, surf2 := newTestRenderer(200)
	r2.Begin()
	r2.Draw(Frame{Alignment: tags.AlignLeft, Elements: elementsOf(t, src)})
	actions2 := r2.End()

	w, h := surf1.Bounds()
	w2, h2 := surf2.Bounds()
	require.Equal(t, w, w2)
	require.Equal(t, h, h2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			assert.Equal(t, surf1.At(x, y), surf2.At(x, y), "pixel (%d,%d)", x, y)
		}
	}

	require.Equal(t, actions1.NumActions(), actions2.NumActions())
	assert.Equal(t, actions1.Blocks(), actions2.Blocks())
}

func TestReserveShrinksUsableWidth(t *testing.T) {
	r, _ := newTestRenderer(100)
	r.Reserve(tags.AlignRight, 20)
	r.Begin()
	r.Draw(Frame{Alignment: tags.AlignLeft, Elements: elementsOf(t, "hi")})
	r.End()
	assert.Equal(t, 20, r.reserveRight)
}

func TestRightAlignmentReflowTranslatesContent(t *testing.T) {
	r, surf := newTestRenderer(100)
	r.Begin()
	r.Draw(Frame{Alignment: tags.AlignRight, Elements: elementsOf(t, "hi")})
	r.End()

	// "hi" at 4px/rune = 8px wide; should end flush against the right edge.
	nonBG := 0
	for x := 0; x < 100; x++ {
		if surf.At(x, 0) != color.White {
			nonBG++
		}
	}
	assert.Greater(t, nonBG, 0)

	// Drawn at x=0..7 (each glyph 3px plus a 1px gap), then copied to
	// x=92..99: the first glyph starts at 92 and the last ends at 98.
	assert.Equal(t, color.Black, surf.At(92, 0))
	assert.Equal(t, color.Black, surf.At(98, 0))
}
