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

package action

import (
	"testing"

	"github.com/polybar/polybar-go/internal/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCloseBasic(t *testing.T) {
	c := NewContext()
	id := c.Open(tags.ButtonLeft, "echo hi", tags.AlignLeft, 10)
	require.Equal(t, ID(0), id)

	closedID, btn := c.Close(tags.NoButton, tags.AlignLeft, 42)
	assert.Equal(t, id, closedID)
	assert.Equal(t, tags.ButtonLeft, btn)

	assert.Equal(t, "echo hi", c.GetAction(id))
	assert.EqualValues(t, 32, c.Blocks()[0].Width())
}

func TestCloseMatchesTopmostOpen(t *testing.T) {
	c := NewContext()
	c.Open(tags.ButtonLeft, "first", tags.AlignLeft, 0)
	second := c.Open(tags.ButtonLeft, "second", tags.AlignLeft, 5)

	id, _ := c.Close(tags.ButtonLeft, tags.AlignLeft, 20)
	assert.Equal(t, second, id)
	assert.True(t, c.Blocks()[0].Open)
}

func TestCloseIgnoresOtherAlignment(t *testing.T) {
	c := NewContext()
	c.Open(tags.ButtonLeft, "left-block", tags.AlignLeft, 0)
	id, btn := c.Close(tags.ButtonLeft, tags.AlignRight, 10)
	assert.Equal(t, NoAction, id)
	assert.Equal(t, tags.NoButton, btn)
}

func TestEndNeverDecreases(t *testing.T) {
	c := NewContext()
	id := c.Open(tags.ButtonLeft, "x", tags.AlignLeft, 0)
	c.setEnd(id, 50)
	c.setEnd(id, 10)
	assert.EqualValues(t, 50, c.Blocks()[0].EndX)
}

// TestCompensateForNegativeMove is scenario E2 from spec.md:
// "%{A1:do:}X%{O-10}Y%{A}" -- drawing X, then a negative 10px offset, then Y,
// must widen the still-open action block to cover the whole visual span
// instead of leaving a 10px gap that the offset skipped over.
func TestCompensateForNegativeMove(t *testing.T) {
	c := NewContext()
	c.SetAlignmentStart(tags.AlignLeft, 0)

	id := c.Open(tags.ButtonLeft, "do", tags.AlignLeft, 0)
	penAfterX := 10.0
	c.setEnd(id, penAfterX)

	// "%{O-10}" moves the pen back by 10px before drawing Y.
	penAfterOffset := penAfterX - 10
	c.CompensateForNegativeMove(tags.AlignLeft, penAfterX, penAfterOffset)

	penAfterY := penAfterOffset + 6
	c.setEnd(id, penAfterY)

	c.Close(tags.ButtonLeft, tags.AlignLeft, penAfterY)

	block := c.Blocks()[0]
	assert.EqualValues(t, 0, block.StartX)
	assert.EqualValues(t, penAfterX, block.EndX)
	assert.True(t, block.Contains(3))
	assert.True(t, block.Contains(9))
}

func TestActionsAtPicksHighestID(t *testing.T) {
	c := NewContext()
	c.Open(tags.ButtonLeft, "under", tags.AlignLeft, 0)
	c.setEnd(ID(0), 20)
	c.Open(tags.ButtonLeft, "over", tags.AlignLeft, 5)
	c.setEnd(ID(1), 15)

	id := c.HasAction(tags.ButtonLeft, 10)
	assert.Equal(t, ID(1), id)
	assert.Equal(t, "over", c.GetAction(id))
}

func TestActionsAtNoMatch(t *testing.T) {
	c := NewContext()
	c.Open(tags.ButtonLeft, "x", tags.AlignLeft, 0)
	c.setEnd(ID(0), 5)

	assert.Equal(t, NoAction, c.HasAction(tags.ButtonLeft, 100))
	assert.Equal(t, NoAction, c.HasAction(tags.ButtonRight, 2))
}

func TestHasDoubleClick(t *testing.T) {
	c := NewContext()
	assert.False(t, c.HasDoubleClick())
	c.Open(tags.DoubleLeft, "x", tags.AlignLeft, 0)
	assert.True(t, c.HasDoubleClick())
}

func TestNumActionsAndUnclosed(t *testing.T) {
	c := NewContext()
	c.Open(tags.ButtonLeft, "a", tags.AlignLeft, 0)
	c.Open(tags.ButtonLeft, "b", tags.AlignLeft, 0)
	c.Close(tags.NoButton, tags.AlignLeft, 5)

	assert.Equal(t, 2, c.NumActions())
	assert.Equal(t, 1, c.NumUnclosed())
}

func TestResetClearsBlocks(t *testing.T) {
	c := NewContext()
	c.Open(tags.ButtonLeft, "a", tags.AlignLeft, 0)
	c.Reset()
	assert.Equal(t, 0, c.NumActions())
}
