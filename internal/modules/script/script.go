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

// Package script runs an external command and shows its output, selectable
// between the Static discipline (run once) and the Timer discipline (run
// every Interval), grounded on original_source's script_runner (exec/tail/
// interval fields) and structurally on the teacher's shell.Once/shell.Every
// pair, collapsed into one type with a Tail flag instead of two module
// constructors plus a funcs.Channel plumbing layer.
package script

import (
	"bufio"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/polybar/polybar-go/internal/module"
)

// Module runs Exec and displays its output.
type Module struct {
	// Exec is the command line, split on spaces (no shell interpretation,
	// same as the teacher's exec.Command-based modules).
	Exec []string
	// Interval re-runs Exec periodically. Zero means run once, at Start.
	Interval time.Duration
	// Tail treats Exec as long-running, showing its last emitted line as it
	// streams, instead of waiting for it to exit.
	Tail bool

	mu      sync.Mutex
	content string
	running bool
	ticker  *module.TimerTicker
	cmd     *exec.Cmd
	done    chan struct{}
	onEvent func()
}

// New constructs a script module. onEvent, if non-nil, is called every time
// the output changes.
func New(exec []string, onEvent func()) *Module {
	return &Module{Exec: exec, onEvent: onEvent}
}

func (m *Module) runOnce() {
	if len(m.Exec) == 0 {
		return
	}
	out, err := exec.Command(m.Exec[0], m.Exec[1:]...).Output()
	m.mu.Lock()
	if err == nil {
		m.content = strings.TrimSpace(string(out))
	}
	m.mu.Unlock()
	m.notify()
}

func (m *Module) notify() {
	m.mu.Lock()
	cb := m.onEvent
	m.mu.Unlock()
	if cb != nil {
		cb()
	}
}

func (m *Module) runTail(done chan struct{}) {
	if len(m.Exec) == 0 {
		return
	}
	cmd := exec.Command(m.Exec[0], m.Exec[1:]...)
	// Keep SIGUSR1/bar-reload signals from propagating to the child; some
	// scripts don't handle them gracefully.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return
	}
	if err := cmd.Start(); err != nil {
		return
	}

	m.mu.Lock()
	m.cmd = cmd
	m.mu.Unlock()

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		select {
		case <-done:
			return
		default:
		}
		m.mu.Lock()
		m.content = scanner.Text()
		m.mu.Unlock()
		m.notify()
	}
	cmd.Wait()
}

// Start launches the module per its configuration: once, on a timer, or
// tailing a long-running process.
func (m *Module) Start() error {
	switch {
	case m.Tail:
		done := make(chan struct{})
		m.mu.Lock()
		m.done = done
		m.running = true
		m.mu.Unlock()
		go m.runTail(done)
		return nil
	case m.Interval > 0:
		m.runOnce()
		ticker, err := module.NewTimerTicker(m.Interval, m.runOnce)
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.ticker = ticker
		m.running = true
		m.mu.Unlock()
		return nil
	default:
		m.runOnce()
		m.mu.Lock()
		m.running = true
		m.mu.Unlock()
		return nil
	}
}

// Stop tears down whichever background work Start launched.
func (m *Module) Stop() {
	m.mu.Lock()
	ticker, done, cmd := m.ticker, m.done, m.cmd
	m.running = false
	m.mu.Unlock()

	if ticker != nil {
		ticker.Stop()
	}
	if done != nil {
		close(done)
	}
	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
	}
}

// Running reports whether the module is active.
func (m *Module) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Contents returns the last-captured output.
func (m *Module) Contents() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// Input re-runs the command immediately, for a click-to-refresh script.
func (m *Module) Input(string) bool {
	if m.Tail {
		return false
	}
	m.runOnce()
	return true
}
