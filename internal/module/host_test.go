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

type fakeBehavior struct {
	running  bool
	contents string
	started  int
	stopped  int
	input    string
}

func (f *fakeBehavior) Start() error { f.started++; f.running = true; return nil }
func (f *fakeBehavior) Stop()        { f.stopped++; f.running = false }
func (f *fakeBehavior) Running() bool {
	return f.running
}
func (f *fakeBehavior) Contents() string { return f.contents }
func (f *fakeBehavior) Input(payload string) bool {
	f.input = payload
	return true
}

func TestHostLifecycle(t *testing.T) {
	fb := &fakeBehavior{contents: "hi"}
	broadcasts := 0
	h := NewStatic("test", fb, func() { broadcasts++ })

	require.NoError(t, h.Start())
	assert.True(t, h.Running())
	assert.Equal(t, "hi", h.Contents())

	h.Broadcast()
	assert.Equal(t, 1, broadcasts)

	assert.True(t, h.Input("click"))
	assert.Equal(t, "click", fb.input)

	h.Stop()
	assert.False(t, h.Running())
}

func TestDisciplineConstructors(t *testing.T) {
	fb := &fakeBehavior{}
	noop := func() {}

	assert.Equal(t, "static", NewStatic("s", fb, noop).Discipline.disciplineName())
	assert.Equal(t, "timer", NewTimer("t", 1.0, fb, noop).Discipline.disciplineName())
	assert.Equal(t, "event", NewEvent("e", fb, noop).Discipline.disciplineName())
	assert.Equal(t, "inotify", NewInotify("i", []string{"/tmp/x"}, fb, noop).Discipline.disciplineName())
}

func TestBroadcastNilIsNoop(t *testing.T) {
	fb := &fakeBehavior{}
	h := NewStatic("s", fb, nil)
	assert.NotPanics(t, func() { h.Broadcast() })
}
