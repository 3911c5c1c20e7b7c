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

// Package clock is the Timer-discipline demo module: a generic clock,
// reduced from the teacher's timezone/granularity/click-handler-rich clock
// down to the time-formatting core the Timer discipline needs to exercise.
package clock

import (
	"sync"
	"time"

	"github.com/polybar/polybar-go/internal/format"
	"github.com/polybar/polybar-go/internal/module"
)

// Module displays the current time, formatted by Format, ticking every
// Interval. When Elapsed is true, it shows the time since Start in the
// "1d 4h"/"2h 9m" style instead of a clock face.
type Module struct {
	Format   string
	Interval time.Duration
	Location *time.Location
	Elapsed  bool

	mu      sync.Mutex
	content string
	ticker  *module.TimerTicker
	running bool
	started time.Time
}

// New constructs a clock module using time.Local and a 24-hour HH:MM format,
// ticking once a minute.
func New() *Module {
	return &Module{
		Format:   "15:04",
		Interval: time.Minute,
		Location: time.Local,
	}
}

func (m *Module) render() {
	now := time.Now().In(m.Location)
	m.mu.Lock()
	if m.Elapsed {
		m.content = format.Duration(now.Sub(m.started))
	} else {
		m.content = now.Format(m.Format)
	}
	m.mu.Unlock()
}

// Start renders the initial time and arms the periodic ticker.
func (m *Module) Start() error {
	m.started = time.Now()
	m.render()
	ticker, err := module.NewTimerTicker(m.Interval, m.render)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.ticker = ticker
	m.running = true
	m.mu.Unlock()
	return nil
}

// Stop disarms the ticker.
func (m *Module) Stop() {
	m.mu.Lock()
	t := m.ticker
	m.running = false
	m.mu.Unlock()
	if t != nil {
		t.Stop()
	}
}

// Running reports whether the ticker is armed.
func (m *Module) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Contents returns the last-rendered time string.
func (m *Module) Contents() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// Input is unused: clicking a clock has no default behavior.
func (m *Module) Input(string) bool { return false }
