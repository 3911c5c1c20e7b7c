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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatRejectsUnknownToken(t *testing.T) {
	_, err := NewFormat("clock", "<label> <time>", []string{"label"}, Decoration{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time")
	assert.Contains(t, err.Error(), "clock")
}

func TestNewFormatAcceptsKnownTokens(t *testing.T) {
	f, err := NewFormat("clock", "<label> <time>", []string{"label", "time"}, Decoration{})
	require.NoError(t, err)
	assert.True(t, f.HasTag("time"))
	assert.False(t, f.HasTag("date"))
}

func TestRenderSubstitutesTokens(t *testing.T) {
	f, err := NewFormat("clock", "<label>: <time>", []string{"label", "time"}, Decoration{})
	require.NoError(t, err)

	lookup := func(tag string) string {
		switch tag {
		case "label":
			return "clock"
		case "time":
			return "12:00"
		}
		return ""
	}
	assert.Equal(t, "clock: 12:00", f.Render(lookup))
}

func TestRenderWrapsDecoration(t *testing.T) {
	f, err := NewFormat("clock", "<time>", []string{"time"}, Decoration{
		Fg:      "#ffffff",
		Bg:      "#000000",
		Padding: 1,
		Margin:  1,
		Offset:  5,
	})
	require.NoError(t, err)

	got := f.Render(func(string) string { return "X" })
	want := " %{O+5}%{B#000000}%{F#ffffff} X %{F-}%{B-} "
	assert.Equal(t, want, got)
}

func TestRenderUnderlineOverline(t *testing.T) {
	f, err := NewFormat("clock", "<time>", []string{"time"}, Decoration{Ul: "#ff0000", Ol: "#00ff00"})
	require.NoError(t, err)

	got := f.Render(func(string) string { return "X" })
	want := "%{+u}%{u#ff0000}%{+o}%{o#00ff00}X%{-u}%{-o}"
	assert.Equal(t, want, got)
}

func TestRenderNoDecorationIsPlain(t *testing.T) {
	f, err := NewFormat("clock", "<time>", []string{"time"}, Decoration{})
	require.NoError(t, err)
	assert.Equal(t, "X", f.Render(func(string) string { return "X" }))
}
