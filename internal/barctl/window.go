// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/xwindow"
)

// Position is which screen edge the bar docks against.
type Position int

const (
	PositionTop Position = iota
	PositionBottom
)

// Geometry is a bar window's placement within its target monitor, in the
// same x/y/width/height/offset terms as the "bar/<name>" config section.
type Geometry struct {
	X, Y          int
	Width, Height int
}

// Window owns the X11 window backing one bar instance: creation, EWMH
// dock/strut properties, and destruction. Grounded directly on gobar's
// Bar.create (NewBar/create), adapted from "one window per monitor head"
// to "one window per Controller" since a Controller already receives a
// single resolved monitor geometry from the config (§6 "monitor" key).
type Window struct {
	X   *xgbutil.XUtil
	Win *xwindow.Window
}

// CreateWindow creates and maps a dock window at geom relative to the root,
// writing the strut hints that reserve screen space on position's edge.
func CreateWindow(xu *xgbutil.XUtil, geom Geometry, position Position, screenHeight int) (*Window, error) {
	win, err := xwindow.Generate(xu)
	if err != nil {
		return nil, err
	}
	if err := win.CreateChecked(xu.RootWin(), geom.X, geom.Y, geom.Width, geom.Height, 0); err != nil {
		return nil, err
	}

	strutP := ewmh.WmStrutPartial{}
	strut := ewmh.WmStrut{}
	switch position {
	case PositionBottom:
		bottom := uint(screenHeight - geom.Y)
		strutP.BottomStartX = uint(geom.X)
		strutP.BottomEndX = uint(geom.X + geom.Width)
		strutP.Bottom = bottom
		strut.Bottom = bottom
	default:
		strutP.TopStartX = uint(geom.X)
		strutP.TopEndX = uint(geom.X + geom.Width)
		strutP.Top = uint(geom.Height)
		strut.Top = uint(geom.Height)
	}

	if err := ewmh.WmWindowTypeSet(xu, win.Id, []string{"_NET_WM_WINDOW_TYPE_DOCK"}); err != nil {
		return nil, err
	}
	if err := ewmh.WmStateSet(xu, win.Id, []string{"_NET_WM_STATE_STICKY"}); err != nil {
		return nil, err
	}
	if err := ewmh.WmDesktopSet(xu, win.Id, 0xFFFFFFFF); err != nil {
		return nil, err
	}
	if err := ewmh.WmStrutPartialSet(xu, win.Id, &strutP); err != nil {
		return nil, err
	}
	if err := ewmh.WmStrutSet(xu, win.Id, &strut); err != nil {
		return nil, err
	}

	win.Map()
	return &Window{X: xu, Win: win}, nil
}

// SetName sets WM_NAME/_NET_WM_NAME, consulted by -w/--print-wmname.
func (w *Window) SetName(name string) error {
	return ewmh.WmNameSet(w.X, w.Win.Id, name)
}

// ID is the raw X window id, used by the tray manager as its container.
func (w *Window) ID() xproto.Window {
	return w.Win.Id
}

// Destroy tears down the window.
func (w *Window) Destroy() {
	w.Win.Destroy()
}

// Hide unmaps the window, for the IPC "hide"/"toggle" commands.
func (w *Window) Hide() error {
	return xproto.UnmapWindowChecked(w.X.Conn(), w.Win.Id).Check()
}

// Show re-maps the window, for the IPC "show"/"toggle" commands.
func (w *Window) Show() error {
	return xproto.MapWindowChecked(w.X.Conn(), w.Win.Id).Check()
}
