// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import (
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/xinerama"
	"github.com/jezek/xgbutil/xwindow"
)

// ResolveGeometry fills in a monitor-relative Geometry from settings,
// choosing the monitor head named by monitor (empty string means "the
// first/primary head", matching the "monitor" config key's documented
// default). Width 0 in settings means "full monitor width" (§6). Grounded
// directly on gobar's Bar.create, which walks xinerama.PhysicalHeads and
// falls back to the root window's geometry when Xinerama isn't active.
func ResolveGeometry(xu *xgbutil.XUtil, s Settings, monitor string) (Geometry, int, error) {
	heads, err := xinerama.PhysicalHeads(xu)
	if err != nil || len(heads) == 0 {
		root := xwindow.RootGeometry(xu)
		return geometryFor(s, 0, 0, int(root.Width()), int(root.Height())), int(root.Height()), nil
	}

	idx := 0
	if monitor != "" {
		if n, ok := monitorIndex(monitor, len(heads)); ok {
			idx = n
		}
	}
	if idx >= len(heads) {
		idx = 0
	}

	hx, hy, hw, hh := heads[idx].Pieces()
	return geometryFor(s, int(hx), int(hy), int(hw), int(hh)), int(hh), nil
}

func geometryFor(s Settings, monX, monY, monW, monH int) Geometry {
	width := s.Width
	if width <= 0 {
		width = monW
	}
	return Geometry{
		X:      monX + s.X,
		Y:      monY + s.Y,
		Width:  width,
		Height: s.Height,
	}
}

// monitorIndex parses a "monitor" config value of the form "N" (a bare
// Xinerama head index), returning false for any other form so the caller
// falls back to head 0. Named-output matching (as xrandr names them) needs
// RandR, which is out of scope (§ Non-goals "multi-monitor name matching").
func monitorIndex(monitor string, n int) (int, bool) {
	idx := 0
	for _, c := range monitor {
		if c < '0' || c > '9' {
			return 0, false
		}
		idx = idx*10 + int(c-'0')
	}
	if idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}
