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

package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestThrottleCoalescesBurst is scenario E3's first half: 10 Updates within
// 20ms (well inside a 50ms window) produce exactly one render.
func TestThrottleCoalescesBurst(t *testing.T) {
	th := NewOutputThrottle(5, 50*time.Millisecond)
	start := time.Unix(0, 0)

	renders := 0
	for i := 0; i < 10; i++ {
		now := start.Add(time.Duration(i) * 2 * time.Millisecond)
		if th.Admit(now, false) {
			renders++
		}
	}
	assert.Equal(t, 1, renders)
}

// TestThrottleInputInterrupts is scenario E3's second half: 3 Updates, an
// Input, then 3 more Updates, all within 20ms, dispatch as
// [render, input, render].
func TestThrottleInputInterrupts(t *testing.T) {
	th := NewOutputThrottle(5, 50*time.Millisecond)
	start := time.Unix(0, 0)

	var dispatches []string
	tick := func(n int) time.Time { return start.Add(time.Duration(n) * 2 * time.Millisecond) }

	for i := 0; i < 3; i++ {
		if th.Admit(tick(i), false) {
			dispatches = append(dispatches, "render")
		}
	}
	th.Interrupt()
	dispatches = append(dispatches, "input")

	for i := 3; i < 6; i++ {
		if th.Admit(tick(i), false) {
			dispatches = append(dispatches, "render")
		}
	}

	assert.Equal(t, []string{"render", "input", "render"}, dispatches)
}

// TestThrottleWindowExpiryReopens checks that once the window elapses, the
// next Update renders again, bounding renders by roughly ceil(K/window)
// rather than ceil(K/N) as an upper bound (Property 3).
func TestThrottleWindowExpiryReopens(t *testing.T) {
	th := NewOutputThrottle(5, 10*time.Millisecond)
	start := time.Unix(0, 0)

	assert.True(t, th.Admit(start, false))
	assert.False(t, th.Admit(start.Add(5*time.Millisecond), false))
	assert.True(t, th.Admit(start.Add(11*time.Millisecond), false))
}

func TestThrottleForceBypasses(t *testing.T) {
	th := NewOutputThrottle(5, 50*time.Millisecond)
	start := time.Unix(0, 0)

	assert.True(t, th.Admit(start, false))
	assert.True(t, th.Admit(start.Add(time.Millisecond), true))
}

func TestInputThrottleDropsRapidRepeats(t *testing.T) {
	th := NewInputThrottle(50 * time.Millisecond)
	start := time.Unix(0, 0)

	assert.True(t, th.Admit(start))
	assert.False(t, th.Admit(start.Add(10*time.Millisecond)))
	assert.True(t, th.Admit(start.Add(60*time.Millisecond)))
}

func TestInputThrottleZeroWindowNeverDrops(t *testing.T) {
	th := NewInputThrottle(0)
	start := time.Unix(0, 0)
	assert.True(t, th.Admit(start))
	assert.True(t, th.Admit(start))
}
