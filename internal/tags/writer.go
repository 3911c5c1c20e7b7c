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
)

// Write renders an element stream back to its canonical "%{...}" form. The
// result need not be byte-identical to whatever source produced the original
// elements (spacing inside a tag group is normalized), but re-parsing it
// always yields the same element stream (§8, Property 1).
func Write(els []Element) string {
	var b strings.Builder
	for _, el := range els {
		if !el.IsTag {
			b.WriteString(el.Text)
			continue
		}
		b.WriteString("%{")
		b.WriteString(writeBody(el.Tag))
		b.WriteString("}")
	}
	return b.String()
}

func writeBody(t Tag) string {
	switch t.Kind {
	case KindForeground:
		return "F" + writeColorValue(t.Color)
	case KindBackground:
		return "B" + writeColorValue(t.Color)
	case KindUnderlineColor:
		return "u" + writeColorValue(t.Color)
	case KindOverlineColor:
		return "o" + writeColorValue(t.Color)
	case KindFont:
		if t.Font <= 0 {
			return "T-"
		}
		return "T" + strconv.Itoa(t.Font)
	case KindReverse:
		return "R"
	case KindOffset:
		return "O" + writeSigned(t.Offset)
	case KindAttr:
		return writeAttr(t)
	case KindAlignment:
		return t.Alignment.String()
	case KindActionOpen:
		return writeActionOpen(t)
	case KindActionClose:
		return "A"
	case KindReset:
		return "P:R"
	default:
		return ""
	}
}

func writeColorValue(cv ColorValue) string {
	if cv.Reset {
		return "-"
	}
	return cv.Color.Hex()
}

func writeSigned(n int) string {
	if n >= 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func writeAttr(t Tag) string {
	var verb byte
	switch t.Activation {
	case AttrOn:
		verb = '+'
	case AttrOff:
		verb = '-'
	default:
		verb = '!'
	}
	var letter byte
	if t.Attr == AttrOverline {
		letter = 'o'
	} else {
		letter = 'u'
	}
	return string([]byte{verb, letter})
}

func writeActionOpen(t Tag) string {
	var b strings.Builder
	b.WriteByte('A')
	if t.Button != ButtonLeft && t.Button != NoButton {
		b.WriteString(strconv.Itoa(int(t.Button)))
	}
	b.WriteByte(':')
	b.WriteString(escapeActionCmd(t.Cmd))
	b.WriteByte(':')
	return b.String()
}

func escapeActionCmd(cmd string) string {
	if !strings.ContainsRune(cmd, ':') {
		return cmd
	}
	return strings.ReplaceAll(cmd, ":", `\:`)
}
