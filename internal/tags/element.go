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

// Package tags lexes and parses polybar's "%{...}" formatting markup into a
// stream of styling and text elements.
package tags

import "github.com/polybar/polybar-go/internal/color"

// Alignment is one of the three logical bar columns.
type Alignment int

// The three alignment blocks, in the order a format string may switch
// between them with the l/c/r tags.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "l"
	case AlignCenter:
		return "c"
	case AlignRight:
		return "r"
	default:
		return "?"
	}
}

// Button identifies a mouse button or scroll direction an action block
// responds to. Values 1-5 mirror X11 button numbers, with 6-8 used for the
// "double click" synthetic variants the bar controller synthesizes.
type Button int

// Recognized buttons. NoButton is only valid when closing an action block
// (it means "close whichever block is topmost, regardless of button").
const (
	NoButton     Button = 0
	ButtonLeft   Button = 1
	ButtonMiddle Button = 2
	ButtonRight  Button = 3
	ScrollUp     Button = 4
	ScrollDown   Button = 5
	DoubleLeft   Button = 6
	DoubleMiddle Button = 7
	DoubleRight  Button = 8
)

// Kind discriminates the payload carried by a Tag element.
type Kind int

// All recognized tag kinds, named after the markup letters from spec.md §3.
const (
	KindForeground Kind = iota
	KindBackground
	KindFont
	KindReverse
	KindOffset
	KindUnderlineColor
	KindOverlineColor
	KindAttr
	KindAlignment
	KindActionOpen
	KindActionClose
	KindReset
)

// Attr names a togglable decoration.
type Attr int

// The two togglable decorations.
const (
	AttrUnderline Attr = iota
	AttrOverline
)

// AttrActivation is the verb applied to an Attr by a +x/-x/!x tag.
type AttrActivation int

// The three toggle verbs.
const (
	AttrOn AttrActivation = iota
	AttrOff
	AttrToggle
)

// ColorValue is either a concrete color or the "-" reset sentinel that closes
// a previously opened color tag.
type ColorValue struct {
	Color color.RGBA
	Reset bool
}

// Tag is one parsed "%{...}" body: a single letter plus its decoded payload.
type Tag struct {
	Kind Kind

	// KindForeground, KindBackground, KindUnderlineColor, KindOverlineColor.
	Color ColorValue

	// KindFont. Font <= 0 means "T-" (reset to default).
	Font int

	// KindOffset, signed pixel count.
	Offset int

	// KindAttr.
	Attr       Attr
	Activation AttrActivation

	// KindAlignment.
	Alignment Alignment

	// KindActionOpen: button/cmd populated. KindActionClose: button is the
	// filter (NoButton matches any open block).
	Button Button
	Cmd    string
}

// Element is one item in a parsed format stream: either a run of literal
// text or a single Tag.
type Element struct {
	IsTag bool
	Text  string
	Tag   Tag
}

// Text constructs a text element.
func Text(s string) Element { return Element{Text: s} }

// TagElement constructs a tag element.
func TagElement(t Tag) Element { return Element{IsTag: true, Tag: t} }
