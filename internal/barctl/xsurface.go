// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"

	"github.com/polybar/polybar-go/internal/draw"
)

// XFlusher pushes a *draw.Pixmap's software buffer to a real X window once
// per render pass; it is the X-aware pusher draw.Pixmap's doc comment
// names. Kept in
// internal/barctl rather than internal/draw/internal/render since it is the
// one place in those packages that would otherwise need an X11 import,
// mirroring how internal/tray keeps its X11 binding (x11.go) out of the
// dependency-free core.
type XFlusher struct {
	conn          *xgbutil.XUtil
	win           xproto.Window
	width, height int
	depth         byte
}

// NewXFlusher builds a flusher targeting win, assumed created at the given
// width/height and depth (24, the common truecolor depth; the bar window in
// window.go is created against the root window's depth via CopyFromParent,
// so 24 is correct on the overwhelming majority of modern X setups).
func NewXFlusher(conn *xgbutil.XUtil, win xproto.Window, width, height int) *XFlusher {
	return &XFlusher{conn: conn, win: win, width: width, height: height, depth: 24}
}

// Flush copies p's pixels to the window via PutImage in ZPixmap format,
// assuming a little-endian 32-bit-per-pixel BGRx truecolor visual (the
// default on essentially every modern X server; a non-standard visual would
// need a color-conversion pass this bar does not implement).
func (f *XFlusher) Flush(p *draw.Pixmap) error {
	w, h := p.Bounds()
	if w != f.width {
		w = f.width
	}
	if h != f.height {
		h = f.height
	}

	data := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		row := y * w * 4
		for x := 0; x < w; x++ {
			c := p.At(x, y)
			o := row + x*4
			data[o+0] = c.B()
			data[o+1] = c.G()
			data[o+2] = c.R()
			data[o+3] = c.A()
		}
	}

	const maxRequestPixels = 1 << 16
	rowsPerChunk := h
	if w > 0 {
		if max := maxRequestPixels / w; max > 0 && max < rowsPerChunk {
			rowsPerChunk = max
		}
	}
	if rowsPerChunk < 1 {
		rowsPerChunk = 1
	}

	gc, err := xproto.NewGcontextId(f.conn.Conn())
	if err != nil {
		return err
	}
	if err := xproto.CreateGCChecked(f.conn.Conn(), gc, xproto.Drawable(f.win), 0, nil).Check(); err != nil {
		return err
	}
	defer xproto.FreeGC(f.conn.Conn(), gc)

	for y0 := 0; y0 < h; y0 += rowsPerChunk {
		rows := rowsPerChunk
		if y0+rows > h {
			rows = h - y0
		}
		chunk := data[y0*w*4 : (y0+rows)*w*4]
		err := xproto.PutImageChecked(
			f.conn.Conn(), xproto.ImageFormatZPixmap, xproto.Drawable(f.win), gc,
			uint16(w), uint16(rows), 0, int16(y0), 0, f.depth, chunk,
		).Check()
		if err != nil {
			return err
		}
	}
	return nil
}
