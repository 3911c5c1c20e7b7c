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

// Package render is the per-frame orchestrator (C4): it owns the pixmap, the
// drawing context, and the action context, and drives them from a parsed
// element stream arriving over a signalbus so the tag stream (C1) never
// needs a direct reference to either (Design Note "cyclic graphs").
package render

import (
	"github.com/polybar/polybar-go/internal/action"
	"github.com/polybar/polybar-go/internal/draw"
	"github.com/polybar/polybar-go/internal/signalbus"
	"github.com/polybar/polybar-go/internal/tags"
)

// Frame is one alignment's worth of already-parsed content to render.
type Frame struct {
	Alignment tags.Alignment
	Elements  []tags.Element
}

// Renderer runs begin()/draw-calls/end() frames against a draw.Surface,
// per §4.4.
type Renderer struct {
	surface  draw.Surface
	actions  *action.Context
	ctx      *draw.Context
	bus      *signalbus.Bus[tags.Element]
	defaults draw.Defaults

	width int

	reserveLeft, reserveRight int
}

// New builds a Renderer over surface with the given usable width (pixels,
// already net of borders) and bar-default colors.
func New(surface draw.Surface, width int, defaults draw.Defaults) *Renderer {
	actions := action.NewContext()
	ctx := draw.NewContext(surface, actions, defaults)
	bus := signalbus.New[tags.Element]()
	bus.Subscribe(func(el tags.Element) {
		if el.IsTag {
			ctx.Apply(el.Tag)
		} else {
			ctx.DrawText(el.Text, 0)
		}
	})
	return &Renderer{surface: surface, actions: actions, ctx: ctx, bus: bus, defaults: defaults, width: width}
}

// Reserve leaves width pixels untouched on edge for the next frame (used by
// the tray, §4.2 "Reserved space").
func (r *Renderer) Reserve(edge tags.Alignment, width int) {
	switch edge {
	case tags.AlignLeft:
		r.reserveLeft = width
	case tags.AlignRight:
		r.reserveRight = width
	}
	r.ctx.Reserve(edge, width)
}

// Begin clears the pixmap, resets the action context and style, and fills
// the background honoring any reserved strip.
func (r *Renderer) Begin() {
	r.ctx.Begin()
	usableW := r.width - r.reserveLeft - r.reserveRight
	if usableW < 0 {
		usableW = 0
	}
	r.surface.Fill(r.reserveLeft, 0, usableW, frameHeight(r.surface), r.defaults.Bg)
}

func frameHeight(s draw.Surface) int {
	type bounded interface{ Bounds() (int, int) }
	if b, ok := s.(bounded); ok {
		_, h := b.Bounds()
		return h
	}
	return 0
}

// Draw publishes els onto the signal bus, which drives the drawing and
// action contexts. Each frame's alignment start is set to 0 before its
// elements are drawn; End moves the right and center starts to where its
// reflow copies their content.
func (r *Renderer) Draw(frames ...Frame) {
	for _, f := range frames {
		r.ctx.Apply(tags.Tag{Kind: tags.KindAlignment, Alignment: f.Alignment})
		r.ctx.SetAlignmentStart(f.Alignment, 0)
		for _, el := range f.Elements {
			r.bus.Publish(el)
		}
	}
}

// End performs the right/center reflow translation and copies the finished
// content to its final position, returning the action context so the bar
// controller can hit-test the frame that was just drawn.
func (r *Renderer) End() *action.Context {
	rightExtent := int(r.ctx.LaneExtent(tags.AlignRight))
	centerExtent := int(r.ctx.LaneExtent(tags.AlignCenter))

	usableW := r.width - r.reserveRight
	if rightExtent > 0 {
		dst := usableW - rightExtent
		r.surface.CopyRect(dst, 0, r.reserveLeft, 0, rightExtent, frameHeight(r.surface))
		r.ctx.SetAlignmentStart(tags.AlignRight, float64(dst-r.reserveLeft))
	}
	if centerExtent > 0 {
		mid := (r.reserveLeft + usableW) / 2
		dst := mid - centerExtent/2
		r.surface.CopyRect(dst, 0, r.reserveLeft, 0, centerExtent, frameHeight(r.surface))
		r.ctx.SetAlignmentStart(tags.AlignCenter, float64(dst-r.reserveLeft))
	}
	return r.actions
}

// Actions exposes the action context for hit-testing between frames.
func (r *Renderer) Actions() *action.Context { return r.actions }
