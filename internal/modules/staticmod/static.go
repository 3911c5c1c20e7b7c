// Copyright 2018 Google Inc.
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

// Package staticmod is the Static-discipline demo module: content set once
// at construction (or later via Set), never polled or watched.
package staticmod

import "sync"

// Module displays fixed text that only changes when Set is called, e.g. by
// the IPC endpoint's "hook" command.
type Module struct {
	mu      sync.Mutex
	content string
}

// New constructs a static module with the given initial content.
func New(initial string) *Module {
	return &Module{content: initial}
}

// Start is a no-op: static content needs no background work.
func (m *Module) Start() error { return nil }

// Stop is a no-op.
func (m *Module) Stop() {}

// Running is always true once constructed; static modules have no failure
// mode to stop them.
func (m *Module) Running() bool { return true }

// Contents returns the current text.
func (m *Module) Contents() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// Set replaces the displayed text.
func (m *Module) Set(content string) {
	m.mu.Lock()
	m.content = content
	m.mu.Unlock()
}

// Input is never consumed; static modules have nothing to react to by
// default.
func (m *Module) Input(string) bool { return false }
