// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import (
	"strings"
	"time"

	"github.com/polybar/polybar-go/internal/color"
	"github.com/polybar/polybar-go/internal/config"
	"github.com/polybar/polybar-go/internal/draw"
	"github.com/polybar/polybar-go/internal/tags"
)

// Settings is the subset of a "bar/<name>" section the controller needs to
// construct the window, renderer, loop, and click dispatcher.
type Settings struct {
	Name   string
	Width  int
	Height int
	X, Y   int

	Position Position

	Defaults draw.Defaults

	ModuleMargin int

	ThrottleOutput      int
	ThrottleOutputFor   time.Duration
	ThrottleInputFor    time.Duration
	DoubleClickInterval time.Duration

	Fallbacks Fallbacks

	PipePath string

	Monitor string

	// TrayPosition is the edge the tray's reserved strip is carved from,
	// per the "tray-position" config key.
	TrayPosition tags.Alignment

	ModulesLeft, ModulesCenter, ModulesRight []string
}

// LoadSettings reads bar/<name> out of cfg, applying the same defaults
// polybar ships (§6 config key reference).
func LoadSettings(cfg *config.Config, name string) (Settings, error) {
	cfg.SetBar(name)
	section := "bar/" + name

	s := Settings{Name: name, Position: PositionTop}

	var err error
	if s.Height, err = cfg.Int(section, "height"); err != nil {
		s.Height = 24
	}
	if s.Width, err = cfg.Int(section, "width"); err != nil {
		s.Width = 0 // 0 means "full monitor width", resolved by the caller
	}
	if s.X, err = cfg.Int(section, "offset-x"); err != nil {
		s.X = 0
	}
	if s.Y, err = cfg.Int(section, "offset-y"); err != nil {
		s.Y = 0
	}
	if cfg.GetDefault(section, "bottom", "false") == "true" {
		s.Position = PositionBottom
	}

	s.Defaults.Bg = parseColor(cfg.GetDefault(section, "background", "#000000"))
	s.Defaults.Fg = parseColor(cfg.GetDefault(section, "foreground", "#ffffff"))

	if s.ModuleMargin, err = cfg.Int(section, "module-margin"); err != nil {
		s.ModuleMargin = 0
	}
	if s.ThrottleOutput, err = cfg.Int(section, "throttle-output"); err != nil {
		s.ThrottleOutput = 5
	}
	s.ThrottleOutputFor = durationMsDefault(cfg, section, "throttle-output-for", 50)
	s.ThrottleInputFor = durationMsDefault(cfg, section, "throttle-input-for", 30)
	s.DoubleClickInterval = durationMsDefault(cfg, section, "double-click-interval", 400)

	s.Fallbacks = Fallbacks{}
	if v, ok := cfg.Get(section, "click-left"); ok {
		s.Fallbacks[tags.ButtonLeft] = v
	}
	if v, ok := cfg.Get(section, "click-middle"); ok {
		s.Fallbacks[tags.ButtonMiddle] = v
	}
	if v, ok := cfg.Get(section, "click-right"); ok {
		s.Fallbacks[tags.ButtonRight] = v
	}
	if v, ok := cfg.Get(section, "scroll-up"); ok {
		s.Fallbacks[tags.ScrollUp] = v
	}
	if v, ok := cfg.Get(section, "scroll-down"); ok {
		s.Fallbacks[tags.ScrollDown] = v
	}

	s.PipePath, _ = cfg.Get(section, "pipe")
	s.Monitor = cfg.GetDefault(section, "monitor", "")

	s.TrayPosition = tags.AlignRight
	switch cfg.GetDefault(section, "tray-position", "right") {
	case "left":
		s.TrayPosition = tags.AlignLeft
	case "center":
		s.TrayPosition = tags.AlignCenter
	}

	s.ModulesLeft = fields(cfg.GetDefault(section, "modules-left", ""))
	s.ModulesCenter = fields(cfg.GetDefault(section, "modules-center", ""))
	s.ModulesRight = fields(cfg.GetDefault(section, "modules-right", ""))

	return s, nil
}

func fields(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}

func durationMsDefault(cfg *config.Config, section, key string, def int) time.Duration {
	n, err := cfg.Int(section, key)
	if err != nil {
		n = def
	}
	return time.Duration(n) * time.Millisecond
}

func parseColor(hex string) color.RGBA {
	c, err := color.Parse(hex)
	if err != nil {
		return color.Black
	}
	return c
}
