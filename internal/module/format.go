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

package module

import (
	"fmt"
	"regexp"
	"strings"
)

// Decoration is the per-format styling a module's config section can set
// (§4.5, grounded on include/modules/base.hpp's Format fields).
type Decoration struct {
	Fg, Bg, Ul, Ol          string
	Padding, Margin, Offset int
	Spacing                 int
}

var tokenPattern = regexp.MustCompile(`<[a-zA-Z][a-zA-Z0-9_-]*>`)

// Format is one named template (e.g. "format-playing") a module exposes,
// naming both its literal text and the token set it is allowed to use.
type Format struct {
	Template   string
	Decoration Decoration
	allowed    map[string]bool
}

// NewFormat validates template against the allowed token list and returns a
// Format ready to Render. An unrecognized token is a fatal config error at
// module-construction time (§4.5 "unknown tokens abort startup with a
// diagnostic naming the module and token"); name is only used to build that
// diagnostic.
func NewFormat(name, template string, allowed []string, dec Decoration) (*Format, error) {
	allowedSet := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = true
	}
	for _, m := range tokenPattern.FindAllString(template, -1) {
		tag := strings.Trim(m, "<>")
		if !allowedSet[tag] {
			return nil, fmt.Errorf("module %q: format %q: unknown token <%s>", name, name, tag)
		}
	}
	return &Format{Template: template, Decoration: dec, allowed: allowedSet}, nil
}

// HasTag reports whether tag appears (as a token) in the template, letting a
// module skip computing a tag's content entirely when the config never
// references it.
func (f *Format) HasTag(tag string) bool {
	return strings.Contains(f.Template, "<"+tag+">")
}

// Render substitutes every token in the template by calling lookup with its
// name (without angle brackets), then wraps the result in the format's
// decoration: offset, margin, padding, and fg/bg/underline/overline tags.
func (f *Format) Render(lookup func(tag string) string) string {
	body := tokenPattern.ReplaceAllStringFunc(f.Template, func(m string) string {
		return lookup(strings.Trim(m, "<>"))
	})

	var b strings.Builder
	d := f.Decoration

	writeSpaces := func(n int) {
		if n > 0 {
			b.WriteString(strings.Repeat(" ", n))
		}
	}

	writeSpaces(d.Margin)
	if d.Offset != 0 {
		fmt.Fprintf(&b, "%%{O%+d}", d.Offset)
	}
	if d.Bg != "" {
		fmt.Fprintf(&b, "%%{B%s}", d.Bg)
	}
	if d.Fg != "" {
		fmt.Fprintf(&b, "%%{F%s}", d.Fg)
	}
	if d.Ul != "" {
		b.WriteString("%{+u}")
		fmt.Fprintf(&b, "%%{u%s}", d.Ul)
	}
	if d.Ol != "" {
		b.WriteString("%{+o}")
		fmt.Fprintf(&b, "%%{o%s}", d.Ol)
	}
	writeSpaces(d.Padding)
	b.WriteString(body)
	writeSpaces(d.Padding)
	if d.Fg != "" {
		b.WriteString("%{F-}")
	}
	if d.Bg != "" {
		b.WriteString("%{B-}")
	}
	if d.Ul != "" {
		b.WriteString("%{-u}")
	}
	if d.Ol != "" {
		b.WriteString("%{-o}")
	}
	writeSpaces(d.Margin)

	return b.String()
}
