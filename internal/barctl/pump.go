// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import (
	"errors"
	"time"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/xevent"
	"github.com/jezek/xgbutil/xprop"
	"github.com/jezek/xgbutil/xwindow"

	"github.com/polybar/polybar-go/internal/tags"
	"github.com/polybar/polybar-go/internal/tray"
)

// xButtonToTag maps an X11 button-press Detail field to the tag grammar's
// button enum (§3 "%{A<button>:cmd:}"), grounded on the original's
// mousebtn enum ordering (left=1, middle=2, right=3, scroll-up=4,
// scroll-down=5).
func xButtonToTag(detail byte) tags.Button {
	switch detail {
	case 1:
		return tags.ButtonLeft
	case 2:
		return tags.ButtonMiddle
	case 3:
		return tags.ButtonRight
	case 4:
		return tags.ScrollUp
	case 5:
		return tags.ScrollDown
	default:
		return tags.NoButton
	}
}

// startXEventPump subscribes the bar window to ButtonPress (hit-tested via
// c.Click) and the root window to ClientMessage (SYSTEM_TRAY_REQUEST_DOCK,
// routed to c.trayMgr.Dock), then runs xgbutil's own dispatcher loop on a
// dedicated goroutine. This mirrors x11.go's existing xevent.DestroyNotifyFun
// use rather than threading X's fd through the select-based Loop: the
// callbacks below only ever call c.Click/c.loop.Enqueue/c.trayMgr.Dock, all
// of which are documented safe to call from any goroutine.
func (c *Controller) startXEventPump() error {
	if c.xu == nil {
		return nil
	}

	win := c.win.ID()
	xwindow.New(c.xu, win).Listen(xproto.EventMaskButtonPress)
	xevent.ButtonPressFun(func(_ *xgbutil.XUtil, e xevent.ButtonPressEvent) {
		btn := xButtonToTag(e.Detail)
		if btn == tags.NoButton {
			return
		}
		c.Click(btn, int(e.EventX), time.Now())
	}).Connect(c.xu, win)

	if c.trayMgr != nil {
		opcodeAtom, err := xprop.Atm(c.xu, "_NET_SYSTEM_TRAY_OPCODE")
		if err != nil {
			return err
		}
		root := c.xu.RootWin()
		xwindow.New(c.xu, root).Listen(xproto.EventMaskStructureNotify)
		xevent.ClientMessageFun(func(_ *xgbutil.XUtil, e xevent.ClientMessageEvent) {
			if e.Type != opcodeAtom {
				return
			}
			data := e.Data.Data32
			if len(data) < 3 || data[1] != tray.SystemTrayRequestDock {
				return
			}
			win := tray.Window(data[2])
			if err := c.trayMgr.Dock(win); err != nil {
				if errors.Is(err, tray.ErrAlreadyEmbedded) {
					c.log.Debugf("tray client %d already embedded, ignoring dock request", win)
				} else {
					c.log.WithError(err).Warn("docking tray client failed")
				}
				return
			}
			c.watchTrayClient(win)
			c.reflowTray()
		}).Connect(c.xu, root)
	}

	go xevent.Main(c.xu)
	return nil
}

// watchTrayClient subscribes to the events the docking protocol needs
// after a client is embedded: its destruction (auto-Undock) and its
// _XEMBED_INFO property changing (re-evaluate Mapped), both followed by a
// layout reflow (§4.7, comment "Wire Dock/Undock/SetMapped").
func (c *Controller) watchTrayClient(win tray.Window) {
	xwin := xproto.Window(win)
	xwindow.New(c.xu, xwin).Listen(xproto.EventMaskStructureNotify | xproto.EventMaskPropertyChange)

	xevent.DestroyNotifyFun(func(_ *xgbutil.XUtil, _ xevent.DestroyNotifyEvent) {
		_ = c.trayMgr.Undock(win)
		c.reflowTray()
	}).Connect(c.xu, xwin)

	xembedInfoAtom, err := xprop.Atm(c.xu, "_XEMBED_INFO")
	if err != nil {
		return
	}
	xevent.PropertyNotifyFun(func(_ *xgbutil.XUtil, e xevent.PropertyNotifyEvent) {
		if e.Atom != xembedInfoAtom {
			return
		}
		if err := c.trayMgr.Refresh(win); err == nil {
			c.reflowTray()
		}
	}).Connect(c.xu, xwin)
}
