// Copyright 2016 Michael Carlberg & contributors (polybar)

package tray

import (
	"sync"
	"time"
)

// SelectionBinding is the X11 surface the selection handshake drives,
// grounded on tray.hpp's query_atom/acquire_selection/notify_manager.
type SelectionBinding interface {
	// GetSelectionOwner returns the current owner of the tray selection
	// atom, or 0 if unowned.
	GetSelectionOwner() (Window, error)
	// SetSelectionOwner claims the tray selection atom for win.
	SetSelectionOwner(win Window) error
	// WatchDestroyed arranges for onDestroyed to be called once owner is
	// destroyed (subscribing to StructureNotify on it).
	WatchDestroyed(owner Window, onDestroyed func()) error
	// BroadcastManager sends the MANAGER client message to the root window
	// announcing win as the new selection owner.
	BroadcastManager(win Window) error
}

// Selection negotiates ownership of the per-screen
// _NET_SYSTEM_TRAY_S<screen> selection atom (§4.7 "Selection handshake").
type Selection struct {
	binding SelectionBinding
	win     Window

	mu          sync.Mutex
	owned       bool
	firstActive bool

	// afterDelay lets tests substitute a synchronous stand-in for
	// time.AfterFunc's 1-second MANAGER-broadcast deferral.
	afterDelay func(d time.Duration, f func())
}

// NewSelection constructs a Selection that will claim the atom on behalf
// of win (the tray container/bar window).
func NewSelection(binding SelectionBinding, win Window) *Selection {
	return &Selection{
		binding:    binding,
		win:        win,
		afterDelay: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// Acquire attempts to become the tray selection owner. If another manager
// currently owns it, Acquire subscribes to its destruction and will retry
// automatically once it disappears.
func (s *Selection) Acquire() error {
	owner, err := s.binding.GetSelectionOwner()
	if err != nil {
		return err
	}
	if owner != 0 && owner != s.win {
		return s.binding.WatchDestroyed(owner, func() { s.Acquire() })
	}
	if err := s.binding.SetSelectionOwner(s.win); err != nil {
		return err
	}

	s.mu.Lock()
	first := !s.firstActive
	s.firstActive = true
	s.owned = true
	s.mu.Unlock()

	if first {
		// Give other clients one second to unembed from the previous
		// manager before announcing ourselves, per §4.7.
		s.afterDelay(time.Second, func() { s.binding.BroadcastManager(s.win) })
		return nil
	}
	return s.binding.BroadcastManager(s.win)
}

// Owned reports whether this Selection currently holds the atom.
func (s *Selection) Owned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owned
}

// Release marks the selection as no longer held, e.g. on deactivate.
func (s *Selection) Release() {
	s.mu.Lock()
	s.owned = false
	s.mu.Unlock()
}
