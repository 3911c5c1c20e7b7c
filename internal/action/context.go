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

// Package action tracks the clickable/scrollable regions opened by "%{A...}"
// tags while a format string is being laid out, and answers hit-test queries
// once layout is done (§4.3).
package action

import "github.com/polybar/polybar-go/internal/tags"

// ID identifies an action block. NoAction is guaranteed to sort below any
// valid ID and denotes "nothing here".
type ID int

// NoAction is the zero-value sentinel for "no block matched".
const NoAction ID = -1

// Block is one opened (and possibly since closed) action region.
type Block struct {
	Cmd       string
	Button    tags.Button
	Alignment tags.Alignment
	StartX    float64
	EndX      float64
	Open      bool
}

// Width is the block's pixel extent, rounded to the nearest integer as the
// renderer does when reserving space for it.
func (b Block) Width() uint {
	return uint(b.EndX - b.StartX + 0.5)
}

// Contains reports whether point x (in the bar's integer pixel space) falls
// inside the block's half-open [StartX, EndX) extent.
func (b Block) Contains(x int) bool {
	return int(b.StartX) <= x && int(b.EndX) > x
}

// Context accumulates action blocks over one render pass and serves the
// click/scroll hit-test queries the bar controller runs against the most
// recently completed frame.
type Context struct {
	blocks     []Block
	alignStart map[tags.Alignment]float64
}

// NewContext returns an empty action context.
func NewContext() *Context {
	return &Context{alignStart: make(map[tags.Alignment]float64)}
}

// Reset discards all tracked blocks, ready for the next render pass.
func (c *Context) Reset() {
	c.blocks = nil
}

// SetAlignmentStart records the bar x-position at which alignment block a's
// content starts. Blocks keep alignment-relative coordinates; ActionsAt adds
// this origin when hit-testing.
func (c *Context) SetAlignmentStart(a tags.Alignment, x float64) {
	c.alignStart[a] = x
}

// Open starts a new action block at pen position x and returns its ID.
func (c *Context) Open(btn tags.Button, cmd string, align tags.Alignment, x float64) ID {
	id := ID(len(c.blocks))
	c.blocks = append(c.blocks, Block{
		Cmd:       cmd,
		Button:    btn,
		Alignment: align,
		StartX:    x,
		Open:      true,
	})
	return id
}

// Close closes the topmost still-open block in alignment align matching btn
// (tags.NoButton matches any button), per action_context::action_close's
// reverse scan: the most recently opened matching block is always the one a
// bare "%{A}" closes. It returns the closed block's ID and button, or
// (NoAction, tags.NoButton) if nothing matched.
func (c *Context) Close(btn tags.Button, align tags.Alignment, x float64) (ID, tags.Button) {
	for i := len(c.blocks) - 1; i >= 0; i-- {
		b := &c.blocks[i]
		if b.Open && b.Alignment == align && (btn == tags.NoButton || b.Button == btn) {
			b.Open = false
			c.setEnd(ID(i), x)
			return ID(i), b.Button
		}
	}
	return NoAction, tags.NoButton
}

// SetStart overwrites the start position of block id.
func (c *Context) SetStart(id ID, x float64) {
	c.blocks[id].StartX = x
}

// setEnd only ever increases a block's end position: a larger extent may
// already have been recorded by CompensateForNegativeMove.
func (c *Context) setEnd(id ID, x float64) {
	if x > c.blocks[id].EndX {
		c.blocks[id].EndX = x
	}
}

// CompensateForNegativeMove widens every still-open block in alignment a to
// cover a pen move backwards (a negative "%{O}" offset, or the center/right
// alignment's own right-to-left layout direction): oldX is the pen position
// before the move, newX after, with newX < oldX.
func (c *Context) CompensateForNegativeMove(a tags.Alignment, oldX, newX float64) {
	for i := range c.blocks {
		b := &c.blocks[i]
		if !b.Open || b.Alignment != a {
			continue
		}
		if b.StartX > newX {
			b.StartX = newX
		}
		if oldX > b.EndX {
			b.EndX = oldX
		}
	}
}

// ActionsAt returns, for every button, the ID of the topmost block at pixel x
// that responds to that button (NoAction if none). "Topmost" means highest
// ID: later-opened blocks draw over earlier ones, so they win hit-tests too.
func (c *Context) ActionsAt(x int) map[tags.Button]ID {
	result := map[tags.Button]ID{
		tags.NoButton:     NoAction,
		tags.ButtonLeft:   NoAction,
		tags.ButtonMiddle: NoAction,
		tags.ButtonRight:  NoAction,
		tags.ScrollUp:     NoAction,
		tags.ScrollDown:   NoAction,
		tags.DoubleLeft:   NoAction,
		tags.DoubleMiddle: NoAction,
		tags.DoubleRight:  NoAction,
	}
	for i, b := range c.blocks {
		id := ID(i)
		origin := c.alignStart[b.Alignment]
		shifted := b
		shifted.StartX += origin
		shifted.EndX += origin
		if id > result[b.Button] && shifted.Contains(x) {
			result[b.Button] = id
		}
	}
	return result
}

// HasAction is a convenience wrapper around ActionsAt for a single button.
func (c *Context) HasAction(btn tags.Button, x int) ID {
	return c.ActionsAt(x)[btn]
}

// GetAction returns the command string recorded for block id.
func (c *Context) GetAction(id ID) string {
	return c.blocks[id].Cmd
}

// HasDoubleClick reports whether any tracked block responds to one of the
// synthetic double-click buttons, which tells the bar controller whether it
// needs to run the double-click timer at all (§4.9).
func (c *Context) HasDoubleClick() bool {
	for _, b := range c.blocks {
		switch b.Button {
		case tags.DoubleLeft, tags.DoubleMiddle, tags.DoubleRight:
			return true
		}
	}
	return false
}

// NumActions returns the total number of blocks opened since the last Reset,
// open or closed.
func (c *Context) NumActions() int {
	return len(c.blocks)
}

// NumUnclosed returns the number of blocks still open (a malformed format
// string left an "%{A...}" unmatched by a closing "%{A}").
func (c *Context) NumUnclosed() int {
	n := 0
	for _, b := range c.blocks {
		if b.Open {
			n++
		}
	}
	return n
}

// Blocks exposes the raw block slice for renderers that need to adjust start
// positions after the fact (mirrors the upstream TODO about this being a
// rough edge in the interface).
func (c *Context) Blocks() []Block {
	return c.blocks
}
