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

package staticmod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticModule(t *testing.T) {
	m := New("hello")
	require.NoError(t, m.Start())
	assert.True(t, m.Running())
	assert.Equal(t, "hello", m.Contents())

	m.Set("world")
	assert.Equal(t, "world", m.Contents())

	assert.False(t, m.Input("anything"))

	m.Stop()
	assert.True(t, m.Running())
}
