// Copyright 2018 Google Inc.
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

package logind

import (
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

func TestLogindDefaultsToAwake(t *testing.T) {
	m := New(nil)
	assert.Equal(t, "awake", m.Contents())
	assert.False(t, m.Running())
}

func TestLogindWatchTransitionsOnSignal(t *testing.T) {
	events := make(chan struct{}, 4)
	m := New(func() { events <- struct{}{} })
	sigs := make(chan *dbus.Signal, 4)
	done := make(chan struct{})
	go m.watch(sigs, done)
	defer close(done)

	sigs <- &dbus.Signal{
		Name: loginIface + "." + prepareForSleep,
		Body: []interface{}{true},
	}
	select {
	case <-events:
	case <-time.After(time.Second):
		t.Fatal("no callback for sleep signal")
	}
	assert.Equal(t, "suspending", m.Contents())

	sigs <- &dbus.Signal{
		Name: loginIface + "." + prepareForSleep,
		Body: []interface{}{false},
	}
	select {
	case <-events:
	case <-time.After(time.Second):
		t.Fatal("no callback for wake signal")
	}
	assert.Equal(t, "awake", m.Contents())
}

func TestLogindIgnoresUnrelatedSignal(t *testing.T) {
	m := New(nil)
	sigs := make(chan *dbus.Signal, 1)
	done := make(chan struct{})
	sigs <- &dbus.Signal{Name: "org.freedesktop.DBus.NameOwnerChanged", Body: []interface{}{}}
	close(sigs)
	m.watch(sigs, done)
	assert.Equal(t, "awake", m.Contents())
}
