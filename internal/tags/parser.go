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

package tags

import (
	"strconv"
	"strings"

	"github.com/polybar/polybar-go/internal/color"
)

// Parse lexes and parses a raw module-output string into an ordered element
// stream, per §4.1. Parsing never aborts: unknown tag letters and malformed
// tag values are reported as Diagnostics and skipped locally, per §7's
// "parser errors... recovery is local, never aborts the frame". Whether
// action opens and closes pair up is not checked here.
func Parse(src string) ([]Element, []Diagnostic) {
	p := &parser{lexer: newLexer(src)}
	return p.run()
}

type parser struct {
	*lexer
}

func (p *parser) run() ([]Element, []Diagnostic) {
	var out []Element
	for _, tok := range p.tokens() {
		if !tok.isTag {
			if tok.text != "" {
				out = append(out, Text(tok.text))
			}
			continue
		}
		for _, body := range strings.Split(tok.tag.body, " ") {
			if body == "" {
				continue
			}
			tag, ok := p.parseBody(body, tok.tag.pos)
			if ok {
				out = append(out, TagElement(tag))
			}
		}
	}
	return out, p.diag
}

func (p *parser) warn(pos int, msg string) {
	p.diag = append(p.diag, Diagnostic{Pos: pos, Message: msg})
}

// parseBody parses a single space-delimited body within a tag group.
func (p *parser) parseBody(body string, pos int) (Tag, bool) {
	if len(body) >= 2 {
		switch body[0] {
		case '+', '-', '!':
			if attr, ok := attrFromLetter(body[1]); ok && len(body) == 2 {
				return Tag{
					Kind:       KindAttr,
					Attr:       attr,
					Activation: activationFromByte(body[0]),
				}, true
			}
		}
	}

	letter := body[0]
	rest := body[1:]
	switch letter {
	case 'F':
		return p.colorTag(KindForeground, rest, pos)
	case 'B':
		return p.colorTag(KindBackground, rest, pos)
	case 'u':
		return p.colorTag(KindUnderlineColor, rest, pos)
	case 'o':
		return p.colorTag(KindOverlineColor, rest, pos)
	case 'T':
		return p.fontTag(rest, pos)
	case 'R':
		return Tag{Kind: KindReverse}, true
	case 'O':
		return p.offsetTag(rest, pos)
	case 'l':
		return Tag{Kind: KindAlignment, Alignment: AlignLeft}, true
	case 'c':
		return Tag{Kind: KindAlignment, Alignment: AlignCenter}, true
	case 'r':
		return Tag{Kind: KindAlignment, Alignment: AlignRight}, true
	case 'A':
		return p.actionTag(rest, pos)
	case 'P':
		return p.controlTag(rest, pos)
	default:
		p.warn(pos, "unknown tag letter '"+string(letter)+"', skipping")
		return Tag{}, false
	}
}

func attrFromLetter(b byte) (Attr, bool) {
	switch b {
	case 'u':
		return AttrUnderline, true
	case 'o':
		return AttrOverline, true
	default:
		return 0, false
	}
}

func activationFromByte(b byte) AttrActivation {
	switch b {
	case '+':
		return AttrOn
	case '-':
		return AttrOff
	default:
		return AttrToggle
	}
}

func (p *parser) colorTag(kind Kind, value string, pos int) (Tag, bool) {
	cv, ok := p.parseColorValue(value, pos)
	if !ok {
		return Tag{}, false
	}
	return Tag{Kind: kind, Color: cv}, true
}

func (p *parser) parseColorValue(value string, pos int) (ColorValue, bool) {
	if value == "-" {
		return ColorValue{Reset: true}, true
	}
	c, err := color.Parse(value)
	if err != nil {
		p.warn(pos, "invalid color '"+value+"': "+err.Error())
		return ColorValue{}, false
	}
	return ColorValue{Color: c}, true
}

func (p *parser) fontTag(value string, pos int) (Tag, bool) {
	if value == "-" || value == "" {
		return Tag{Kind: KindFont, Font: 0}, true
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		p.warn(pos, "invalid font index 'T"+value+"'")
		return Tag{}, false
	}
	return Tag{Kind: KindFont, Font: n}, true
}

func (p *parser) offsetTag(value string, pos int) (Tag, bool) {
	n, err := strconv.Atoi(value)
	if err != nil {
		p.warn(pos, "invalid offset 'O"+value+"'")
		return Tag{}, false
	}
	return Tag{Kind: KindOffset, Offset: n}, true
}

// actionTag parses "A", "A:cmd:" or "A<btn>:cmd:". An escaped colon "\:" in
// cmd is unescaped to a literal ':'.
func (p *parser) actionTag(rest string, pos int) (Tag, bool) {
	if rest == "" {
		return Tag{Kind: KindActionClose, Button: NoButton}, true
	}

	btn := ButtonLeft
	if rest[0] != ':' {
		if rest[0] < '1' || rest[0] > '9' {
			p.warn(pos, "invalid action button 'A"+rest+"'")
			return Tag{}, false
		}
		btn = Button(rest[0] - '0')
		rest = rest[1:]
	}
	if len(rest) == 0 || rest[0] != ':' {
		p.warn(pos, "malformed action tag, expected ':cmd:'")
		return Tag{}, false
	}
	rest = rest[1:]

	cmd, ok := unescapeActionCmd(rest)
	if !ok {
		p.warn(pos, "unterminated action command")
		return Tag{}, false
	}
	return Tag{Kind: KindActionOpen, Button: btn, Cmd: cmd}, true
}

// unescapeActionCmd consumes cmd up to (and including) the terminating
// unescaped ':', unescaping "\:" to ':' along the way.
func unescapeActionCmd(s string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == ':' {
			b.WriteByte(':')
			i++
			continue
		}
		if s[i] == ':' {
			return b.String(), true
		}
		b.WriteByte(s[i])
	}
	return "", false
}

func (p *parser) controlTag(rest string, pos int) (Tag, bool) {
	switch rest {
	case ":R":
		return Tag{Kind: KindReset}, true
	case ":t":
		// The tray marker is a no-op for the parser/renderer; the bar
		// controller substitutes the actual reserved-space output before
		// the format string ever reaches the parser (§4.4 "reserve").
		return Tag{}, false
	default:
		p.warn(pos, "unknown control tag 'P"+rest+"'")
		return Tag{}, false
	}
}
