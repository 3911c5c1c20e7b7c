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

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTopOrigin(t *testing.T) {
	m := Rect{X: 0, Y: 0, W: 1920, H: 1080}
	g, err := Compute(m, Px(1920), Px(24), Px(0), Px(0), OriginTop, Borders{})
	require.NoError(t, err)
	assert.Equal(t, 0, g.X)
	assert.Equal(t, 0, g.Y)
	assert.Equal(t, 1920, g.W)
	assert.Equal(t, 24, g.H)
}

func TestComputeBottomOriginWithOffset(t *testing.T) {
	m := Rect{X: 0, Y: 0, W: 1920, H: 1080}
	g, err := Compute(m, Px(1920), Px(24), Px(0), Px(5), OriginBottom, Borders{})
	require.NoError(t, err)
	assert.Equal(t, 1080-24-5, g.Y)
}

func TestComputeBordersAddToHeight(t *testing.T) {
	m := Rect{X: 0, Y: 0, W: 1920, H: 1080}
	g, err := Compute(m, Px(1920), Px(24), Px(0), Px(0), OriginTop, Borders{Top: 2, Bottom: 3, Left: 1, Right: 1})
	require.NoError(t, err)
	assert.Equal(t, 24+2+3, g.H)
	assert.Equal(t, (g.H-3)/2+2, g.CenterY)
	assert.Equal(t, (1920-1)/2+1, g.CenterX)
}

func TestComputePercentages(t *testing.T) {
	m := Rect{X: 0, Y: 0, W: 2000, H: 1000}
	g, err := Compute(m, Pct(50), Pct(10), Px(0), Px(0), OriginTop, Borders{})
	require.NoError(t, err)
	assert.Equal(t, 1000, g.W)
	assert.Equal(t, 100, g.H)
}

func TestComputeRejectsOverWidth(t *testing.T) {
	m := Rect{X: 0, Y: 0, W: 100, H: 100}
	_, err := Compute(m, Px(200), Px(24), Px(0), Px(0), OriginTop, Borders{})
	assert.Error(t, err)
}
