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

// Package logind is the Event-discipline demo module: it watches
// logind's PrepareForSleep signal over the system bus and shows whether the
// machine is about to suspend, structurally grounded on the teacher's
// systemd module's direct use of github.com/godbus/dbus/v5, retargeted from
// a unit-status watch at a fixed login1.Manager signal.
package logind

import (
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	loginDest       = "org.freedesktop.login1"
	loginPath       = "/org/freedesktop/login1"
	loginIface      = "org.freedesktop.login1.Manager"
	prepareForSleep = "PrepareForSleep"
)

// Module shows "suspending" while logind is about to sleep and "awake" once
// it has resumed.
type Module struct {
	conn *dbus.Conn

	mu      sync.Mutex
	content string
	running bool
	sigs    chan *dbus.Signal
	done    chan struct{}
	onEvent func()
}

// New constructs a logind module. onEvent, if non-nil, is called (from the
// watcher goroutine) every time the state changes, so the host can
// Broadcast.
func New(onEvent func()) *Module {
	return &Module{content: "awake", onEvent: onEvent}
}

// Start connects to the system bus and subscribes to PrepareForSleep.
func (m *Module) Start() error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return err
	}
	call := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0,
		"type='signal',interface='"+loginIface+"',member='"+prepareForSleep+"'")
	if call.Err != nil {
		conn.Close()
		return call.Err
	}

	sigs := make(chan *dbus.Signal, 8)
	conn.Signal(sigs)

	m.mu.Lock()
	m.conn = conn
	m.sigs = sigs
	m.done = make(chan struct{})
	m.running = true
	m.mu.Unlock()

	go m.watch(sigs, m.done)
	return nil
}

func (m *Module) watch(sigs chan *dbus.Signal, done chan struct{}) {
	for {
		select {
		case sig, ok := <-sigs:
			if !ok {
				return
			}
			if sig.Name != loginIface+"."+prepareForSleep || len(sig.Body) == 0 {
				continue
			}
			sleeping, _ := sig.Body[0].(bool)
			m.mu.Lock()
			if sleeping {
				m.content = "suspending"
			} else {
				m.content = "awake"
			}
			cb := m.onEvent
			m.mu.Unlock()
			if cb != nil {
				cb()
			}
		case <-done:
			return
		}
	}
}

// Stop unsubscribes and closes the bus connection.
func (m *Module) Stop() {
	m.mu.Lock()
	conn, done := m.conn, m.done
	m.running = false
	m.mu.Unlock()
	if done != nil {
		close(done)
	}
	if conn != nil {
		conn.Close()
	}
}

// Running reports whether the watcher goroutine is active.
func (m *Module) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Contents returns the current sleep-state text.
func (m *Module) Contents() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// Input is unused.
func (m *Module) Input(string) bool { return false }
