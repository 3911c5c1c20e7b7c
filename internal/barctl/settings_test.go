// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import (
	"testing"

	"github.com/polybar/polybar-go/internal/color"
	"github.com/polybar/polybar-go/internal/config"
	"github.com/polybar/polybar-go/internal/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const barConfig = `
[bar/main]
height = 24
offset-x = 2
background = #ff0000
foreground = #ffffff
module-margin = 4
throttle-output = 3
throttle-output-for = 25
click-right = notify-send hi
`

func TestLoadSettingsAppliesConfigValues(t *testing.T) {
	cfg, err := config.Parse([]byte(barConfig))
	require.NoError(t, err)

	s, err := LoadSettings(cfg, "main")
	require.NoError(t, err)

	assert.Equal(t, 24, s.Height)
	assert.Equal(t, 2, s.X)
	assert.Equal(t, 4, s.ModuleMargin)
	assert.Equal(t, 3, s.ThrottleOutput)
	c, _ := color.Parse("#ff0000")
	assert.Equal(t, c, s.Defaults.Bg)
	assert.Equal(t, "notify-send hi", s.Fallbacks[tags.ButtonRight])
}

func TestLoadSettingsDefaultsWhenMissing(t *testing.T) {
	cfg, err := config.Parse([]byte("[bar/main]\n"))
	require.NoError(t, err)

	s, err := LoadSettings(cfg, "main")
	require.NoError(t, err)

	assert.Equal(t, 24, s.Height)
	assert.Equal(t, PositionTop, s.Position)
	assert.Equal(t, 5, s.ThrottleOutput)
}

func TestLoadSettingsBottomPosition(t *testing.T) {
	cfg, err := config.Parse([]byte("[bar/main]\nbottom = true\n"))
	require.NoError(t, err)

	s, err := LoadSettings(cfg, "main")
	require.NoError(t, err)
	assert.Equal(t, PositionBottom, s.Position)
}

func TestLoadSettingsTrayPosition(t *testing.T) {
	cfg, err := config.Parse([]byte("[bar/main]\n"))
	require.NoError(t, err)
	s, err := LoadSettings(cfg, "main")
	require.NoError(t, err)
	assert.Equal(t, tags.AlignRight, s.TrayPosition)

	cfg, err = config.Parse([]byte("[bar/main]\ntray-position = left\n"))
	require.NoError(t, err)
	s, err = LoadSettings(cfg, "main")
	require.NoError(t, err)
	assert.Equal(t, tags.AlignLeft, s.TrayPosition)
}
