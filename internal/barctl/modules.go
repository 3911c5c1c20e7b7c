// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import (
	"fmt"
	"strings"
	"time"

	"github.com/polybar/polybar-go/internal/config"
	"github.com/polybar/polybar-go/internal/module"
	"github.com/polybar/polybar-go/internal/modules/clock"
	"github.com/polybar/polybar-go/internal/modules/fswatch"
	"github.com/polybar/polybar-go/internal/modules/logind"
	"github.com/polybar/polybar-go/internal/modules/script"
	"github.com/polybar/polybar-go/internal/modules/staticmod"
)

// BuildModule constructs the Host for a single "module/<name>" section,
// keyed on its "type" value against the original distribution's
// internal/custom type names (include/modules/meta/names.hpp). broadcast
// wires the module's own onEvent callback to the loop.
func BuildModule(cfg *config.Config, name string, broadcast func()) (*module.Host, error) {
	section := "module/" + name
	typ, ok := cfg.Get(section, "type")
	if !ok {
		return nil, fmt.Errorf("module %q: no \"type\" key", name)
	}

	switch typ {
	case "internal/date":
		m := clock.New()
		if format, ok := cfg.Get(section, "date"); ok {
			m.Format = format
		}
		if secs, err := cfg.Int(section, "interval"); err == nil && secs > 0 {
			m.Interval = time.Duration(secs) * time.Second
		}
		if elapsed, err := cfg.Bool(section, "elapsed"); err == nil {
			m.Elapsed = elapsed
		}
		return module.NewTimer(name, m.Interval.Seconds(), m, broadcast), nil

	case "internal/fs":
		path, ok := cfg.Get(section, "mount")
		if !ok {
			return nil, fmt.Errorf("module %q: no \"mount\" key", name)
		}
		m := fswatch.New(path, broadcast)
		if numeric, err := cfg.Bool(section, "numeric"); err == nil {
			m.Numeric = numeric
		}
		return module.NewInotify(name, []string{path}, m, broadcast), nil

	case "internal/backlight", "internal/xbacklight":
		// logind doubles as the only Event-discipline demo module this
		// repo ships; it has no config surface of its own.
		m := logind.New(broadcast)
		return module.NewEvent(name, m, broadcast), nil

	case "custom/script":
		exec, ok := cfg.Get(section, "exec")
		if !ok {
			return nil, fmt.Errorf("module %q: no \"exec\" key", name)
		}
		m := script.New(strings.Fields(exec), broadcast)
		if tail, err := cfg.Bool(section, "tail"); err == nil {
			m.Tail = tail
		}
		if secs, err := cfg.Int(section, "interval"); err == nil && secs > 0 {
			m.Interval = time.Duration(secs) * time.Second
		}
		if m.Tail || m.Interval > 0 {
			return module.NewTimer(name, m.Interval.Seconds(), m, broadcast), nil
		}
		return module.NewStatic(name, m, broadcast), nil

	case "custom/text":
		text := cfg.GetDefault(section, "content", "")
		m := staticmod.New(text)
		return module.NewStatic(name, m, broadcast), nil

	default:
		return nil, fmt.Errorf("module %q: unknown type %q", name, typ)
	}
}
