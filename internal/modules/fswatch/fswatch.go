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

// Package fswatch is the Inotify-discipline demo module: it shows the
// current contents of a file, re-reading on every write, structurally
// grounded on the teacher's shell.TailModule (long-running, streamed
// output) but driven by fsnotify instead of a child process's stdout pipe.
package fswatch

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/martinlindhe/unit"

	"github.com/polybar/polybar-go/internal/format"
)

// Module shows the trimmed contents of Path, re-read every time the
// watcher fires (write, create, or rename-over). When Numeric is true, the
// file is expected to hold a raw byte count (as sysfs counters like
// backlight/max_brightness or a cgroup memory.current do) and the content
// is instead the IEC-formatted size, e.g. "4.2 MiB".
type Module struct {
	Path    string
	Numeric bool

	mu      sync.Mutex
	content string
	running bool
	watcher *fsnotify.Watcher
	done    chan struct{}
	onEvent func()
}

// New constructs a module watching path, calling onEvent (if non-nil) on
// every observed change so the host can Broadcast.
func New(path string, onEvent func()) *Module {
	return &Module{Path: path, onEvent: onEvent}
}

func (m *Module) read() {
	b, err := os.ReadFile(m.Path)
	content := ""
	if err == nil {
		content = strings.TrimSpace(string(b))
		if m.Numeric {
			content = formatNumeric(content)
		}
	}
	m.mu.Lock()
	m.content = content
	m.mu.Unlock()
}

func formatNumeric(s string) string {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return s
	}
	return format.IBytesize(unit.Datasize(n) * unit.Byte)
}

// Start reads the file once, then arms an fsnotify watch on it.
func (m *Module) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(m.Path); err != nil {
		watcher.Close()
		return err
	}

	m.read()

	done := make(chan struct{})
	m.mu.Lock()
	m.watcher = watcher
	m.done = done
	m.running = true
	m.mu.Unlock()

	go m.loop(watcher, done)
	return nil
}

func (m *Module) loop(watcher *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				// A file renamed over Path is a new inode: watch it again.
				_ = watcher.Add(m.Path)
			} else if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			m.read()
			m.mu.Lock()
			cb := m.onEvent
			m.mu.Unlock()
			if cb != nil {
				cb()
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		case <-done:
			return
		}
	}
}

// Stop closes the watcher.
func (m *Module) Stop() {
	m.mu.Lock()
	w, done := m.watcher, m.done
	m.running = false
	m.mu.Unlock()
	if done != nil {
		close(done)
	}
	if w != nil {
		w.Close()
	}
}

// Running reports whether the watch goroutine is active.
func (m *Module) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Contents returns the last-read file contents.
func (m *Module) Contents() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// Input is unused.
func (m *Module) Input(string) bool { return false }
