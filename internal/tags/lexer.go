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

import "strings"

// rawTag is one unparsed "%{...}" occurrence: its body (everything between
// the braces) and the byte offset it started at, for diagnostics.
type rawTag struct {
	body string
	pos  int
}

// lexer splits a raw format string into a sequence of either literal text
// runs or rawTag bodies, without trying to interpret tag contents. It is
// greedy on "%{" and tolerant of unterminated tags per §4.1: an unmatched
// "%{" is emitted back out as literal text.
type lexer struct {
	src  string
	pos  int
	diag []Diagnostic
}

// Diagnostic is a single non-fatal parse-time warning (§7: "per-tag
// diagnostic, recovery is local").
type Diagnostic struct {
	Pos     int
	Message string
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

// token is either a text run or a raw (unparsed) tag body.
type token struct {
	isTag bool
	text  string
	tag   rawTag
}

func (l *lexer) tokens() []token {
	var out []token
	for l.pos < len(l.src) {
		idx := strings.Index(l.src[l.pos:], "%{")
		if idx < 0 {
			out = append(out, token{text: l.src[l.pos:]})
			l.pos = len(l.src)
			break
		}
		if idx > 0 {
			out = append(out, token{text: l.src[l.pos : l.pos+idx]})
		}
		openPos := l.pos + idx
		bodyStart := openPos + 2
		end := strings.IndexByte(l.src[bodyStart:], '}')
		if end < 0 {
			// Unterminated tag: treat "%{" as literal text and resume
			// scanning for more text/tags right after it.
			l.diag = append(l.diag, Diagnostic{Pos: openPos, Message: "unterminated tag, treating '%{' as literal text"})
			out = append(out, token{text: "%{"})
			l.pos = bodyStart
			continue
		}
		body := l.src[bodyStart : bodyStart+end]
		out = append(out, token{isTag: true, tag: rawTag{body: body, pos: openPos}})
		l.pos = bodyStart + end + 1
	}
	return out
}
