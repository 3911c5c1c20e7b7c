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

package module

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/polybar/polybar-go/internal/timerfd"
)

// TimerTicker periodically invokes a callback using a CLOCK_MONOTONIC
// timerfd, waited on by one goroutine per ticker rather than a time.Ticker;
// the event loop's select() set does not include it. Grounded on the teacher's timerfd-backed realtime scheduler,
// reduced to the periodic-only case polybar's Timer discipline needs (no
// At/After one-shot, no test-mode clock, no time-zone tracking).
type TimerTicker struct {
	tfd *timerfd.Timerfd

	mu      sync.Mutex
	stopped bool
}

// NewTimerTicker arms a periodic timer at interval and calls f on every
// expiration, from a dedicated goroutine, until Stop is called.
func NewTimerTicker(interval time.Duration, f func()) (*TimerTicker, error) {
	tfd, err := timerfd.NewMonotonicTimerfd()
	if err != nil {
		return nil, err
	}
	spec := unix.NsecToTimespec(interval.Nanoseconds())
	if err := tfd.Settime(&unix.ItimerSpec{Interval: spec, Value: spec}, nil, false, false); err != nil {
		tfd.Close()
		return nil, err
	}

	t := &TimerTicker{tfd: tfd}
	go t.loop(f)
	return t, nil
}

// Fd exposes the underlying timerfd for callers that want
// to select() on it directly instead of using the built-in goroutine.
func (t *TimerTicker) Fd() uintptr {
	return t.tfd.Fd()
}

func (t *TimerTicker) loop(f func()) {
	for {
		_, err := t.tfd.Wait()
		if err != nil {
			return // closed, or a fatal timerfd error: either way, stop.
		}
		f()
	}
}

// Stop disarms and closes the timer. Idempotent.
func (t *TimerTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	t.tfd.Close()
}
