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

// Package color parses the hex color literals used by the tag markup
// (§3, §4.1 of the format grammar) into premultiplied ARGB32 values.
//
// Premultiplication happens exactly once, at parse time (design note, open
// question 1) -- nothing downstream of Parse multiplies alpha again.
package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a premultiplied 32-bit ARGB color, stored as 0xAARRGGBB.
type RGBA uint32

// A returns the alpha channel (0-255).
func (c RGBA) A() uint8 { return uint8(c >> 24) }

// R returns the premultiplied red channel (0-255).
func (c RGBA) R() uint8 { return uint8(c >> 16) }

// G returns the premultiplied green channel (0-255).
func (c RGBA) G() uint8 { return uint8(c >> 8) }

// B returns the premultiplied blue channel (0-255).
func (c RGBA) B() uint8 { return uint8(c) }

// Hex renders the color as a canonical "#AARRGGBB" literal. The channels are
// un-premultiplied (rounding up) so that Parse of the result yields c again;
// for a translucent color the digits can differ from the literal c was parsed
// from, since premultiplication drops precision.
func (c RGBA) Hex() string {
	a := uint32(c.A())
	if a == 0 || a == 0xff {
		return fmt.Sprintf("#%02x%02x%02x%02x", a, c.R(), c.G(), c.B())
	}
	un := func(p uint8) uint32 {
		v := (uint32(p)*255 + a - 1) / a
		if v > 0xff {
			v = 0xff
		}
		return v
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", a, un(c.R()), un(c.G()), un(c.B()))
}

// Colorful exposes the (premultiplied) components through go-colorful, for
// code that wants to do further color-space math (blending, schemes).
func (c RGBA) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R()) / 255,
		G: float64(c.G()) / 255,
		B: float64(c.B()) / 255,
	}
}

func premultiply(a, r, g, b uint8) RGBA {
	pr := uint32(r) * uint32(a) / 255
	pg := uint32(g) * uint32(a) / 255
	pb := uint32(b) * uint32(a) / 255
	return RGBA(uint32(a)<<24 | pr<<16 | pg<<8 | pb)
}

// Parse decodes a hex color literal in one of the four forms the tag grammar
// allows: #RGB, #ARGB, #RRGGBB, #AARRGGBB. 3/4-digit forms expand by digit
// doubling; 6-digit forms get full alpha. The result is premultiplied.
func Parse(s string) (RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3: // RGB
		r, g, b, err := hexTriple(s)
		if err != nil {
			return 0, err
		}
		return premultiply(0xff, dup(r), dup(g), dup(b)), nil
	case 4: // ARGB
		a, r, g, b, err := hexQuad(s)
		if err != nil {
			return 0, err
		}
		return premultiply(dup(a), dup(r), dup(g), dup(b)), nil
	case 6: // RRGGBB
		v, err := parseHexUint(s, 24)
		if err != nil {
			return 0, err
		}
		r := uint8(v >> 16)
		g := uint8(v >> 8)
		b := uint8(v)
		return premultiply(0xff, r, g, b), nil
	case 8: // AARRGGBB
		v, err := parseHexUint(s, 32)
		if err != nil {
			return 0, err
		}
		a := uint8(v >> 24)
		r := uint8(v >> 16)
		g := uint8(v >> 8)
		b := uint8(v)
		return premultiply(a, r, g, b), nil
	default:
		return 0, fmt.Errorf("color: invalid literal #%s", s)
	}
}

func dup(nibble uint8) uint8 { return nibble<<4 | nibble }

func hexTriple(s string) (r, g, b uint8, err error) {
	v, err := parseHexUint(s, 12)
	if err != nil {
		return 0, 0, 0, err
	}
	return uint8(v >> 8), uint8(v >> 4 & 0xf), uint8(v & 0xf), nil
}

func hexQuad(s string) (a, r, g, b uint8, err error) {
	v, err := parseHexUint(s, 16)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return uint8(v >> 12), uint8(v >> 8 & 0xf), uint8(v >> 4 & 0xf), uint8(v & 0xf), nil
}

func parseHexUint(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 16, bits)
	if err != nil {
		return 0, fmt.Errorf("color: invalid literal #%s: %w", s, err)
	}
	return v, nil
}

// Black, White, Transparent are the fallback colors used when a tag
// references a color that fails to parse.
const (
	Black       RGBA = 0xff000000
	White       RGBA = 0xffffffff
	Transparent RGBA = 0x00000000
)
