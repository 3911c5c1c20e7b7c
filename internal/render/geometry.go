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

package render

import "fmt"

// Origin is the bar's vertical anchor on its monitor.
type Origin int

const (
	OriginTop Origin = iota
	OriginBottom
)

// Rect is an integer-pixel rectangle in root-window coordinates.
type Rect struct {
	X, Y, W, H int
}

// Value is a configured size/offset that may be either an absolute pixel
// count or a percentage of the monitor's matching dimension, mirroring the
// config grammar's "N" vs "N%" forms.
type Value struct {
	Percent bool
	Amount  int
}

// Px constructs an absolute-pixel Value.
func Px(n int) Value { return Value{Amount: n} }

// Pct constructs a percentage Value.
func Pct(n int) Value { return Value{Percent: true, Amount: n} }

// Resolve implements percentage_to_value: a percentage Value scales total,
// an absolute Value passes through unchanged.
func (v Value) Resolve(total int) int {
	if !v.Percent {
		return v.Amount
	}
	return v.Amount * total / 100
}

// Borders is the configured border thickness on each edge, in pixels.
type Borders struct {
	Top, Bottom, Left, Right int
}

// Geometry is the resolved, bit-exact placement of the bar window on its
// monitor, transcribed from spec.md §4.4's formulas.
type Geometry struct {
	Rect
	CenterX, CenterY int
}

// Compute resolves a bar's pixel geometry on monitor m, given the
// configured width/height/offset (each possibly a percentage of m's
// matching dimension), vertical origin, and border thickness. It returns an
// error if the resolved width exceeds m's width, a fatal startup condition;
// the height and the x/y position are not checked against m.
func Compute(m Rect, width, height, offsetX, offsetY Value, origin Origin, b Borders) (Geometry, error) {
	w := width.Resolve(m.W)
	h := height.Resolve(m.H)
	ox := offsetX.Resolve(m.W)
	oy := offsetY.Resolve(m.H)

	x := ox + m.X
	var y int
	if origin == OriginBottom {
		y = m.Y + m.H - h - oy
	} else {
		y = oy + m.Y
	}

	h += b.Top + b.Bottom

	if w > m.W {
		return Geometry{}, fmt.Errorf("render: geometry width %d exceeds monitor width %d", w, m.W)
	}

	g := Geometry{
		Rect:    Rect{X: x, Y: y, W: w, H: h},
		CenterX: (w-b.Right)/2 + b.Left,
		CenterY: (h-b.Bottom)/2 + b.Top,
	}
	return g, nil
}
