// Copyright 2016 Michael Carlberg & contributors (polybar)

package tray

import (
	"errors"
	"sync"
)

// ErrAlreadyEmbedded is returned by Dock when win is already a docked
// client (the docking protocol's step 1: "if already embedded, warn and
// ignore").
var ErrAlreadyEmbedded = errors.New("tray: client already embedded")

// Window identifies a client (or the tray container itself) by its X window
// id. Kept as a plain type alias target rather than an xproto.Window import
// so this package's core state machine has no X11 dependency.
type Window uint32

// Client is a single embedded tray icon, grounded on trayclient.
type Client struct {
	Win    Window
	XEmbed bool
	Info   Info
	Mapped bool
}

// Binding is the X11 surface Manager drives to actually reparent, resize,
// map, and notify client windows — injected so the docking state machine
// (this file) is testable without a real X connection. internal/tray/x11.go
// implements this against jezek/xgbutil for production use.
type Binding interface {
	QueryXEmbedInfo(win Window) (Info, bool, error)
	SetEventMask(win Window) error
	Reparent(win Window, into Window) error
	Move(win Window, x, y int) error
	Resize(win Window, w, h int) error
	Map(win Window) error
	Unmap(win Window) error
	SendEmbeddedNotify(win Window, embedder Window, version uint32) error
	Unembed(win Window) error
	SetColors(container Window, colors Colors) error
	SetOrientation(container Window, orientation uint32) error
}

// Manager owns the docked client list and the container window they're
// embedded into.
type Manager struct {
	Container Window
	CellW     int
	CellH     int
	Spacing   int

	binding Binding

	mu      sync.Mutex
	clients []*Client
	hidden  bool
}

// NewManager constructs a Manager embedding clients into container at
// cellW x cellH with the given inter-client spacing.
func NewManager(binding Binding, container Window, cellW, cellH, spacing int) *Manager {
	return &Manager{
		Container: container,
		CellW:     cellW,
		CellH:     cellH,
		Spacing:   spacing,
		binding:   binding,
	}
}

// Dock implements the eight-step docking protocol (§4.7) triggered by a
// SYSTEM_TRAY_REQUEST_DOCK client message for win.
func (m *Manager) Dock(win Window) error {
	m.mu.Lock()
	for _, c := range m.clients {
		if c.Win == win {
			m.mu.Unlock()
			return ErrAlreadyEmbedded
		}
	}
	m.mu.Unlock()

	info, hasInfo, err := m.binding.QueryXEmbedInfo(win)
	if err != nil {
		return err
	}
	xembed := hasInfo

	if err := m.binding.SetEventMask(win); err != nil {
		return err
	}
	if err := m.binding.Reparent(win, m.Container); err != nil {
		return err
	}
	if err := m.binding.Resize(win, m.CellW, m.CellH); err != nil {
		return err
	}

	c := &Client{Win: win, XEmbed: xembed, Info: info}

	if xembed {
		if err := m.binding.SendEmbeddedNotify(win, m.Container, info.Version); err != nil {
			return err
		}
	}

	shouldMap := !xembed || info.Mapped()
	if shouldMap {
		if err := m.binding.Map(win); err != nil {
			return err
		}
		c.Mapped = true
	}

	m.mu.Lock()
	m.clients = append(m.clients, c)
	m.mu.Unlock()
	return nil
}

// Undock removes win, e.g. on DestroyNotify or ReparentNotify-out.
func (m *Manager) Undock(win Window) error {
	m.mu.Lock()
	idx := -1
	for i, c := range m.clients {
		if c.Win == win {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return nil
	}
	m.clients = append(m.clients[:idx], m.clients[idx+1:]...)
	m.mu.Unlock()
	return m.binding.Unembed(win)
}

// SetMapped updates win's mapped state, e.g. in response to an
// _XEMBED_INFO PropertyNotify changing XEmbedMapped.
func (m *Manager) SetMapped(win Window, mapped bool) error {
	m.mu.Lock()
	var c *Client
	for _, cl := range m.clients {
		if cl.Win == win {
			c = cl
			break
		}
	}
	m.mu.Unlock()
	if c == nil {
		return nil
	}
	if mapped == c.Mapped {
		return nil
	}
	var err error
	if mapped {
		err = m.binding.Map(win)
	} else {
		err = m.binding.Unmap(win)
	}
	if err != nil {
		return err
	}
	m.mu.Lock()
	c.Mapped = mapped
	m.mu.Unlock()
	return nil
}

// Clients returns a snapshot of the currently docked clients, in dock
// order.
func (m *Manager) Clients() []Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Client, 0, len(m.clients))
	for _, c := range m.clients {
		out = append(out, *c)
	}
	return out
}

// Layout computes the container width and each mapped client's x position,
// left-to-right at Spacing intervals (§4.7, Property 4). Unmapped clients
// are skipped but remain docked.
func (m *Manager) Layout() (width int, positions map[Window]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return computeLayout(m.clients, m.CellW, m.Spacing)
}

// Reflow repositions every mapped client per Layout and returns the width
// the tray currently occupies, so the caller can reserve that much space
// from the renderer (§4.7 / C4's "reserved strip of the bar"). It is a
// no-op while the container is hidden, since change_visibility's analogue
// here is simply skipping the wasted X round trips until the bar shows
// again.
func (m *Manager) Reflow() (int, error) {
	m.mu.Lock()
	hidden := m.hidden
	m.mu.Unlock()

	width, positions := m.Layout()
	if hidden {
		return width, nil
	}
	for win, x := range positions {
		if err := m.binding.Move(win, x, 0); err != nil {
			return width, err
		}
	}
	return width, nil
}

// SetHidden records the container's visibility, grounded on
// change_visibility's m_hidden bookkeeping. The container is the bar
// window itself, so hiding it already unmaps every reparented client;
// SetHidden only gates Reflow's X traffic.
func (m *Manager) SetHidden(hidden bool) {
	m.mu.Lock()
	m.hidden = hidden
	m.mu.Unlock()
}

// Activate sets the tray container's orientation and colors atoms, called
// once when the tray selection is acquired (§4.7 "Colors atom").
func (m *Manager) Activate(colors Colors) error {
	if err := m.binding.SetOrientation(m.Container, OrientationHorizontal); err != nil {
		return err
	}
	return m.binding.SetColors(m.Container, colors)
}

// Refresh re-reads win's _XEMBED_INFO and updates its mapped state,
// called in response to a PropertyNotify on that property.
func (m *Manager) Refresh(win Window) error {
	info, ok, err := m.binding.QueryXEmbedInfo(win)
	if err != nil || !ok {
		return err
	}
	return m.SetMapped(win, info.Mapped())
}

func computeLayout(clients []*Client, cellW, spacing int) (int, map[Window]int) {
	positions := make(map[Window]int)
	n := 0
	for _, c := range clients {
		if !c.Mapped {
			continue
		}
		positions[c.Win] = spacing + n*(cellW+spacing)
		n++
	}
	return spacing + n*(cellW+spacing), positions
}
