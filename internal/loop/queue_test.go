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

package loop

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Type: Update})
	q.Push(Event{Type: Input})
	q.Push(Event{Type: Quit})

	ev, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, Update, ev.Type)

	ev, ok = q.Pop()
	assert.True(t, ok)
	assert.Equal(t, Input, ev.Type)

	ev, ok = q.Pop()
	assert.True(t, ok)
	assert.Equal(t, Quit, ev.Type)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestQueueConcurrentPush(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Push(Event{Type: Update})
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, q.Len())
}
