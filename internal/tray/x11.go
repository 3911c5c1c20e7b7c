// Copyright 2016 Michael Carlberg & contributors (polybar)

package tray

import (
	"encoding/binary"
	"fmt"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/xevent"
	"github.com/jezek/xgbutil/xprop"
	"github.com/jezek/xgbutil/xwindow"
)

// XConn is the production Binding and SelectionBinding, driving a real
// X connection via jezek/xgbutil. Grounded on tray.hpp's use of
// xembed/xembed_traits plus gobar's xwindow/ewmh/xevent idioms for the
// surrounding connection plumbing.
type XConn struct {
	X *xgbutil.XUtil

	atomXEmbedInfo  xproto.Atom
	atomXEmbed      xproto.Atom
	atomManager     xproto.Atom
	screenSelection xproto.Atom
	atomTrayColors  xproto.Atom
	atomOrientation xproto.Atom
}

// NewXConn resolves the atoms the tray protocol needs against an already
// connected xgbutil.XUtil and returns a ready-to-use binding for the given
// screen number.
func NewXConn(x *xgbutil.XUtil, screen int) (*XConn, error) {
	c := &XConn{X: x}

	var err error
	if c.atomXEmbedInfo, err = xprop.Atm(x, "_XEMBED_INFO"); err != nil {
		return nil, err
	}
	if c.atomXEmbed, err = xprop.Atm(x, "_XEMBED"); err != nil {
		return nil, err
	}
	if c.atomManager, err = xprop.Atm(x, "MANAGER"); err != nil {
		return nil, err
	}
	if c.screenSelection, err = xprop.Atm(x, fmt.Sprintf("_NET_SYSTEM_TRAY_S%d", screen)); err != nil {
		return nil, err
	}
	if c.atomTrayColors, err = xprop.Atm(x, "_NET_SYSTEM_TRAY_COLORS"); err != nil {
		return nil, err
	}
	if c.atomOrientation, err = xprop.Atm(x, "_NET_SYSTEM_TRAY_ORIENTATION"); err != nil {
		return nil, err
	}
	return c, nil
}

// QueryXEmbedInfo reads win's _XEMBED_INFO property, {version, flags}.
func (c *XConn) QueryXEmbedInfo(win Window) (Info, bool, error) {
	reply, err := xprop.GetProperty(c.X, xproto.Window(win), "_XEMBED_INFO")
	if err != nil {
		// No such property: not an XEMBED-aware client.
		return Info{}, false, nil
	}
	if len(reply.Value) < 8 {
		return Info{}, false, nil
	}
	version := binary.LittleEndian.Uint32(reply.Value[0:4])
	flags := binary.LittleEndian.Uint32(reply.Value[4:8])
	return Info{Version: version, Flags: flags}, true, nil
}

// SetEventMask arms win for PropertyChange/StructureNotify so the manager
// observes _XEMBED_INFO changes and the client's own destruction. Called
// before Reparent, per the docking protocol's step 3.
func (c *XConn) SetEventMask(win Window) error {
	mask := uint32(xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify)
	return xproto.ChangeWindowAttributesChecked(
		c.X.Conn(), xproto.Window(win), xproto.CwEventMask, []uint32{mask},
	).Check()
}

// Reparent moves win into into, preserving its save-set membership so the
// client survives the embedder's death (per ICCCM 4.2).
func (c *XConn) Reparent(win Window, into Window) error {
	if err := xproto.ChangeSaveSetChecked(c.X.Conn(), xproto.SetModeInsert, xproto.Window(win)).Check(); err != nil {
		return err
	}
	return xproto.ReparentWindowChecked(c.X.Conn(), xproto.Window(win), xproto.Window(into), 0, 0).Check()
}

// Move repositions win within its parent, used to lay out docked clients
// left-to-right inside the tray container (§4.7, Property 4).
func (c *XConn) Move(win Window, x, y int) error {
	values := []uint32{uint32(int32(x)), uint32(int32(y))}
	return xproto.ConfigureWindowChecked(
		c.X.Conn(), xproto.Window(win), xproto.ConfigWindowX|xproto.ConfigWindowY, values,
	).Check()
}

// Resize sets win's width and height.
func (c *XConn) Resize(win Window, w, h int) error {
	return xwindow.New(c.X, xproto.Window(win)).MoveResize(0, 0, w, h)
}

// Map maps win.
func (c *XConn) Map(win Window) error {
	return xproto.MapWindowChecked(c.X.Conn(), xproto.Window(win)).Check()
}

// Unmap unmaps win.
func (c *XConn) Unmap(win Window) error {
	return xproto.UnmapWindowChecked(c.X.Conn(), xproto.Window(win)).Check()
}

// SendEmbeddedNotify sends the XEMBED_EMBEDDED_NOTIFY client message
// informing win which embedder accepted it and at which protocol version.
func (c *XConn) SendEmbeddedNotify(win Window, embedder Window, version uint32) error {
	return c.sendXEmbedMessage(win, xEmbedEmbeddedNotify, 0, uint32(embedder), version)
}

// Unembed reparents win back to the root window, undoing Reparent, e.g.
// when the tray manager itself is shutting down.
func (c *XConn) Unembed(win Window) error {
	root := c.X.RootWin()
	if err := xproto.ReparentWindowChecked(c.X.Conn(), xproto.Window(win), root, 0, 0).Check(); err != nil {
		return err
	}
	return xproto.ChangeSaveSetChecked(c.X.Conn(), xproto.SetModeDelete, xproto.Window(win)).Check()
}

// SetColors writes the _NET_SYSTEM_TRAY_COLORS cardinal array onto
// container: four consecutive RGB triples (normal, error, warning,
// success), grounded on legacy_tray_manager.cpp's set_tray_colors.
func (c *XConn) SetColors(container Window, colors Colors) error {
	vals := make([]uint32, 0, 12)
	for _, triple := range [][3]uint16{colors.Normal, colors.Error, colors.Warning, colors.Success} {
		for _, v := range triple {
			vals = append(vals, uint32(v))
		}
	}
	buf := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return xproto.ChangePropertyChecked(
		c.X.Conn(), xproto.PropModeReplace, xproto.Window(container),
		c.atomTrayColors, xproto.AtomCardinal, 32, uint32(len(vals)), buf,
	).Check()
}

// SetOrientation writes the _NET_SYSTEM_TRAY_ORIENTATION cardinal onto
// container (OrientationHorizontal/OrientationVertical).
func (c *XConn) SetOrientation(container Window, orientation uint32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, orientation)
	return xproto.ChangePropertyChecked(
		c.X.Conn(), xproto.PropModeReplace, xproto.Window(container),
		c.atomOrientation, xproto.AtomCardinal, 32, 1, buf,
	).Check()
}

// GetSelectionOwner returns the current _NET_SYSTEM_TRAY_Sn owner, 0 if
// unowned.
func (c *XConn) GetSelectionOwner() (Window, error) {
	reply, err := xproto.GetSelectionOwner(c.X.Conn(), c.screenSelection).Reply()
	if err != nil {
		return 0, err
	}
	return Window(reply.Owner), nil
}

// SetSelectionOwner claims the _NET_SYSTEM_TRAY_Sn selection for win.
func (c *XConn) SetSelectionOwner(win Window) error {
	return xproto.SetSelectionOwnerChecked(
		c.X.Conn(), xproto.Window(win), c.screenSelection, xproto.TimeCurrentTime,
	).Check()
}

// WatchDestroyed subscribes a one-shot DestroyNotify callback on owner.
func (c *XConn) WatchDestroyed(owner Window, onDestroyed func()) error {
	xwindow.New(c.X, xproto.Window(owner)).Listen(xproto.EventMaskStructureNotify)
	xevent.DestroyNotifyFun(func(_ *xgbutil.XUtil, _ xevent.DestroyNotifyEvent) {
		onDestroyed()
	}).Connect(c.X, xproto.Window(owner))
	return nil
}

// BroadcastManager sends the root window the MANAGER client message
// announcing win as the _NET_SYSTEM_TRAY_Sn owner (ICCCM selection
// acquisition convention).
func (c *XConn) BroadcastManager(win Window) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.X.RootWin(),
		Type:   c.atomManager,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			xproto.TimeCurrentTime,
			uint32(c.screenSelection),
			uint32(win),
			0,
			0,
		}),
	}
	return xproto.SendEventChecked(
		c.X.Conn(), false, c.X.RootWin(), xproto.EventMaskStructureNotify, string(ev.Bytes()),
	).Check()
}

// XEMBED message opcodes (xembed.h).
const (
	xEmbedEmbeddedNotify = 0
)

func (c *XConn) sendXEmbedMessage(win Window, opcode uint32, detail, data1, data2 uint32) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(win),
		Type:   c.atomXEmbed,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			xproto.TimeCurrentTime,
			opcode,
			detail,
			data1,
			data2,
		}),
	}
	return xproto.SendEventChecked(
		c.X.Conn(), false, xproto.Window(win), xproto.EventMaskNoEvent, string(ev.Bytes()),
	).Check()
}
