// Copyright 2016 Michael Carlberg & contributors (polybar)
//
// Package tray is the XEMBED system-tray manager (C7): selection-ownership
// negotiation, docking protocol, per-client lifecycle, and layout inside a
// reserved slot of the bar, grounded on include/components/x11/tray.hpp's
// trayclient/traymanager classes.
package tray

// XEMBED protocol constants (trayclient/xembed.hpp).
const (
	XEmbedVersion = 0

	// XEmbedMapped is the flag bit in _XEMBED_INFO's second cardinal
	// controlling whether the embedder should map the client.
	XEmbedMapped = 1 << 0
)

// System tray protocol message opcodes (SYSTEM_TRAY_REQUEST_DOCK et al).
const (
	SystemTrayRequestDock   = 0
	SystemTrayBeginMessage  = 1
	SystemTrayCancelMessage = 2
)

// Orientation values for the _NET_SYSTEM_TRAY_ORIENTATION atom.
const (
	OrientationHorizontal = 0
	OrientationVertical   = 1
)

// Info is a client's _XEMBED_INFO property: {version, flags}.
type Info struct {
	Version uint32
	Flags   uint32
}

// Mapped reports whether XEmbedMapped is set.
func (i Info) Mapped() bool {
	return i.Flags&XEmbedMapped != 0
}
