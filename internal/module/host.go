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

// Package module is the module host (C5): it wraps a Behavior with one of
// four update disciplines and turns content changes into broadcasts onto
// the event loop, generalizing the run/restart skeleton of the teacher's
// core.Module away from click-driven restarts (polybar modules don't
// restart themselves on click) and towards discipline-driven scheduling.
package module

import "fmt"

// Behavior is what a module implementation provides to the host.
type Behavior interface {
	// Start launches any background work the module needs (a goroutine for
	// Event/Timer/Inotify disciplines; a no-op for Static). It must return
	// quickly.
	Start() error
	// Stop tears down background work. Idempotent.
	Stop()
	// Running reports whether the module is still active.
	Running() bool
	// Contents returns the module's current formatted output. Safe to call
	// concurrently with Start/Stop/a running background goroutine.
	Contents() string
	// Input handles a click/scroll payload routed to this module, returning
	// true if it was consumed.
	Input(payload string) bool
}

// Discipline is the sum-type tag distinguishing the four update strategies
// (§4.5), implemented by StaticState, TimerState, EventState, InotifyState.
// It exists so Host can report which discipline a module uses (for
// diagnostics/tests) without a type switch leaking into callers.
type Discipline interface {
	disciplineName() string
}

// StaticState marks a module that produces its content once, at Start.
type StaticState struct{}

func (StaticState) disciplineName() string { return "static" }

// TimerState marks a module driven by a periodic timerfd wakeup.
type TimerState struct {
	IntervalSeconds float64
}

func (TimerState) disciplineName() string { return "timer" }

// EventState marks a module driven by a blocking read on an external fd
// (bspwm/i3 socket, mpd idle connection, alsa mixer poll) in its own
// goroutine.
type EventState struct{}

func (EventState) disciplineName() string { return "event" }

// InotifyState marks a module driven by filesystem watch events.
type InotifyState struct {
	Paths []string
}

func (InotifyState) disciplineName() string { return "inotify" }

// Host owns one module's lifecycle and bridges its content changes onto a
// broadcast callback the bar controller wires to the event loop's UPDATE
// enqueue (§4.5 "Broadcast").
type Host struct {
	Name       string
	Discipline Discipline
	behavior   Behavior
	broadcast  func()
}

// NewHost wraps behavior under name with the given discipline. broadcast is
// called (never concurrently, but from whatever goroutine the behavior's
// background work runs on) every time the module's contents change.
func NewHost(name string, discipline Discipline, behavior Behavior, broadcast func()) *Host {
	return &Host{Name: name, Discipline: discipline, behavior: behavior, broadcast: broadcast}
}

// NewStatic builds a Host for a Static-discipline module.
func NewStatic(name string, behavior Behavior, broadcast func()) *Host {
	return NewHost(name, StaticState{}, behavior, broadcast)
}

// NewTimer builds a Host for a Timer-discipline module with the given
// interval.
func NewTimer(name string, intervalSeconds float64, behavior Behavior, broadcast func()) *Host {
	return NewHost(name, TimerState{IntervalSeconds: intervalSeconds}, behavior, broadcast)
}

// NewEvent builds a Host for an Event-discipline module.
func NewEvent(name string, behavior Behavior, broadcast func()) *Host {
	return NewHost(name, EventState{}, behavior, broadcast)
}

// NewInotify builds a Host for an Inotify-discipline module watching paths.
func NewInotify(name string, paths []string, behavior Behavior, broadcast func()) *Host {
	return NewHost(name, InotifyState{Paths: paths}, behavior, broadcast)
}

// Start launches the wrapped module.
func (h *Host) Start() error {
	if err := h.behavior.Start(); err != nil {
		return fmt.Errorf("module %q: %w", h.Name, err)
	}
	return nil
}

// Stop tears down the wrapped module.
func (h *Host) Stop() {
	h.behavior.Stop()
}

// Running reports the wrapped module's state.
func (h *Host) Running() bool {
	return h.behavior.Running()
}

// Contents returns the wrapped module's current output.
func (h *Host) Contents() string {
	return h.behavior.Contents()
}

// Input routes a click/scroll payload to the wrapped module.
func (h *Host) Input(payload string) bool {
	return h.behavior.Input(payload)
}

// Broadcast notifies the owning event loop that this module's contents
// changed and a re-render is due. It is safe to call from the module's own
// background goroutine.
func (h *Host) Broadcast() {
	if h.broadcast != nil {
		h.broadcast()
	}
}
