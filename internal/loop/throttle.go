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
	"time"

	"golang.org/x/time/rate"
)

// OutputThrottle implements throttle-output/throttle-output-for coalescing:
// once a render-triggering event opens a window, further Update/Check
// events arriving before Window elapses are coalesced into that same
// pending render instead of triggering one of their own. An intervening
// Input/Quit (via Interrupt) closes the window early, so the next Update
// opens a fresh one and renders immediately. Grounded on
// include/services/event_throttler.hpp's limit+timewindow fields; the
// event_queue/expire bookkeeping there is unneeded since Loop already
// drains its own queue, so this only tracks the open coalescing window.
//
// Limit (throttle-output) bounds how many additional queued events Loop's
// drain pass will absorb in one go before yielding back to select, so a
// flood of Updates can't starve the X11/IPC/inotify fds indefinitely; it
// does not gate whether an individual event renders.
type OutputThrottle struct {
	Limit  int
	Window time.Duration

	opened   bool
	deadline time.Time
}

// NewOutputThrottle constructs a throttle with the given drain limit and
// coalescing window.
func NewOutputThrottle(limit int, window time.Duration) *OutputThrottle {
	return &OutputThrottle{Limit: limit, Window: window}
}

// Admit reports whether the event arriving at now should trigger an
// immediate render (true), or be coalesced into the currently open window
// (false). force bypasses the coalescer unconditionally.
func (t *OutputThrottle) Admit(now time.Time, force bool) bool {
	if force || t.Window <= 0 {
		t.opened = false
		return true
	}
	if !t.opened || now.After(t.deadline) {
		t.opened = true
		t.deadline = now.Add(t.Window)
		return true
	}
	return false
}

// Interrupt closes any currently open coalescing window, so the next
// Update starts a fresh one. Called after an Input or Quit event
// short-circuits the coalescer.
func (t *OutputThrottle) Interrupt() {
	t.opened = false
}

// InputThrottle implements throttle-input-for: input events arriving
// faster than the configured window are dropped. A straightforward fit for
// golang.org/x/time/rate.Limiter's token bucket, since the polybar
// semantics (at most one input per window) is exactly rate.Every(window)
// with a burst of 1.
type InputThrottle struct {
	limiter *rate.Limiter
}

// NewInputThrottle constructs an input throttle dropping events more
// frequent than one per window. A zero window disables throttling.
func NewInputThrottle(window time.Duration) *InputThrottle {
	if window <= 0 {
		return &InputThrottle{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &InputThrottle{limiter: rate.NewLimiter(rate.Every(window), 1)}
}

// Admit reports whether an input event arriving at now should be
// processed (true) or dropped (false).
func (t *InputThrottle) Admit(now time.Time) bool {
	return t.limiter.AllowN(now, 1)
}
