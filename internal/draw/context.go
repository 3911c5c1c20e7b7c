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

import (
	"github.com/polybar/polybar-go/internal/action"
	"github.com/polybar/polybar-go/internal/color"
	"github.com/polybar/polybar-go/internal/tags"
)

// Style is the current F/B/T/attribute state the context applies to the next
// drawn run, mirroring tags::context's member layout 1:1.
type Style struct {
	Fg, Bg, Ol, Ul color.RGBA
	Font           int
	Overline       bool
	Underline      bool
	Reverse        bool
}

// Defaults is the bar-wide fallback style a Context resets to at the start
// of every frame and on a "%{P:R}" tag.
type Defaults struct {
	Fg, Bg color.RGBA
}

// lane tracks one alignment block's independent pen and accumulated extent.
type lane struct {
	pen    float64
	origin float64 // bar-relative x this lane's content starts at, set at flush
	extent float64 // total width drawn in this lane so far
}

// Context is the drawing context (C2): it walks a parsed element stream,
// maintains per-alignment pen positions and the current style, and issues
// primitive calls against a Surface. It also drives the action.Context so
// action-block coordinates stay in lockstep with the pen (§4.2, §4.3).
type Context struct {
	surface  Surface
	actions  *action.Context
	defaults Defaults
	style    Style
	align    tags.Alignment
	lanes    map[tags.Alignment]*lane

	reserveLeft, reserveRight int
}

// NewContext builds a drawing context over surface, using actions to track
// clickable regions. defaults is the bar's fallback fg/bg.
func NewContext(surface Surface, actions *action.Context, defaults Defaults) *Context {
	c := &Context{surface: surface, actions: actions, defaults: defaults}
	c.Begin()
	return c
}

// Begin resets style, alignment, and lane state to bar defaults for a new
// frame (§4.4 "begin() ... resets drawing-context style to bar defaults").
func (c *Context) Begin() {
	c.style = Style{Fg: c.defaults.Fg, Bg: c.defaults.Bg}
	c.align = tags.AlignLeft
	c.lanes = map[tags.Alignment]*lane{
		tags.AlignLeft:   {},
		tags.AlignCenter: {},
		tags.AlignRight:  {},
	}
	c.actions.Reset()
}

// Reserve instructs the next End() flush to leave width pixels untouched on
// the given edge, used by the tray strip. edge must be AlignLeft or
// AlignRight.
func (c *Context) Reserve(edge tags.Alignment, width int) {
	switch edge {
	case tags.AlignLeft:
		c.reserveLeft = width
	case tags.AlignRight:
		c.reserveRight = width
	}
}

func (c *Context) lane() *lane { return c.lanes[c.align] }

// Apply mutates style/alignment/action state for one non-text tag element.
// Text elements are handled by DrawText, not Apply.
func (c *Context) Apply(t tags.Tag) {
	switch t.Kind {
	case tags.KindForeground:
		c.style.Fg = c.resolveColor(t.Color, c.defaults.Fg)
	case tags.KindBackground:
		c.style.Bg = c.resolveColor(t.Color, c.defaults.Bg)
	case tags.KindUnderlineColor:
		c.style.Ul = c.resolveColor(t.Color, c.defaults.Fg)
	case tags.KindOverlineColor:
		c.style.Ol = c.resolveColor(t.Color, c.defaults.Fg)
	case tags.KindFont:
		c.style.Font = t.Font
	case tags.KindReverse:
		c.style.Fg, c.style.Bg = c.style.Bg, c.style.Fg
		c.style.Reverse = !c.style.Reverse
	case tags.KindOffset:
		c.offset(float64(t.Offset))
	case tags.KindAttr:
		c.applyAttr(t)
	case tags.KindAlignment:
		c.align = t.Alignment
	case tags.KindActionOpen:
		l := c.lane()
		c.actions.Open(t.Button, t.Cmd, c.align, l.pen)
	case tags.KindActionClose:
		l := c.lane()
		c.actions.Close(t.Button, c.align, l.pen)
	case tags.KindReset:
		c.style = Style{Fg: c.defaults.Fg, Bg: c.defaults.Bg}
	}
}

func (c *Context) resolveColor(cv tags.ColorValue, fallback color.RGBA) color.RGBA {
	if cv.Reset {
		return fallback
	}
	return cv.Color
}

func (c *Context) applyAttr(t tags.Tag) {
	var cur *bool
	switch t.Attr {
	case tags.AttrUnderline:
		cur = &c.style.Underline
	case tags.AttrOverline:
		cur = &c.style.Overline
	default:
		return
	}
	switch t.Activation {
	case tags.AttrOn:
		*cur = true
	case tags.AttrOff:
		*cur = false
	case tags.AttrToggle:
		*cur = !*cur
	}
}

// offset moves the current lane's pen by delta pixels, compensating any open
// action blocks if the move is backwards (§4.2 "Right/center reflow").
func (c *Context) offset(delta float64) {
	l := c.lane()
	old := l.pen
	l.pen += delta
	if l.pen < old {
		c.actions.CompensateForNegativeMove(c.align, old, l.pen)
	}
	if l.pen > l.extent {
		l.extent = l.pen
	}
}

// DrawText renders one text run at the current pen position in the current
// style, advancing the pen and widening action blocks as needed. It returns
// the advance in pixels.
func (c *Context) DrawText(s string, y int) int {
	if s == "" {
		return 0
	}
	l := c.lane()
	x := int(l.pen)

	if c.style.Bg != c.defaults.Bg {
		w := c.surface.Measure(c.style.Font, s)
		c.surface.Fill(x, y, w, 1, c.style.Bg)
	}

	adv := c.surface.Text(x, y, c.style.Font, s, c.style.Fg)

	if c.style.Underline {
		c.surface.HLine(x, y, adv, c.resolveLineColor(c.style.Ul))
	}
	if c.style.Overline {
		c.surface.HLine(x, y, adv, c.resolveLineColor(c.style.Ol))
	}

	c.offset(float64(adv))
	return adv
}

func (c *Context) resolveLineColor(v color.RGBA) color.RGBA {
	if v == 0 {
		return c.style.Fg
	}
	return v
}

// SetAlignmentStart records the bar-relative x coordinate alignment a's
// content begins at, propagated to the action context so hit-testing can
// translate block-local coordinates into bar coordinates.
func (c *Context) SetAlignmentStart(a tags.Alignment, x float64) {
	c.lanes[a].origin = x
	c.actions.SetAlignmentStart(a, x)
}

// LaneExtent returns how many pixels of content alignment a has drawn so
// far, used by the renderer to size the right/center reflow translation.
func (c *Context) LaneExtent(a tags.Alignment) float64 {
	return c.lanes[a].extent
}

// Style returns the context's current style state, mostly for tests.
func (c *Context) Style() Style { return c.style }
