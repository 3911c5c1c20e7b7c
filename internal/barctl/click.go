// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import (
	"time"

	"github.com/polybar/polybar-go/internal/action"
	"github.com/polybar/polybar-go/internal/tags"
)

// EventTimer debounces a stream of timestamps, grounded on types.hpp's
// event_timer: Allow(t) is true iff t is at least Offset past the
// previously seen timestamp, and it always remembers t as the new
// baseline regardless of the outcome.
type EventTimer struct {
	last   time.Time
	Offset time.Duration
}

// NewEventTimer returns a timer debouncing at the given offset.
func NewEventTimer(offset time.Duration) *EventTimer {
	return &EventTimer{Offset: offset}
}

// Allow reports whether now is far enough past the last call to pass,
// and records now as the new baseline either way.
func (t *EventTimer) Allow(now time.Time) bool {
	pass := !now.Before(t.last.Add(t.Offset))
	t.last = now
	return pass
}

func doubleOf(btn tags.Button) tags.Button {
	switch btn {
	case tags.ButtonLeft:
		return tags.DoubleLeft
	case tags.ButtonMiddle:
		return tags.DoubleMiddle
	case tags.ButtonRight:
		return tags.DoubleRight
	default:
		return tags.NoButton
	}
}

// Fallbacks holds the bar's configured click-left/click-middle/click-right/
// scroll-up/scroll-down commands, consulted when no action block covers the
// press point (§4.9).
type Fallbacks map[tags.Button]string

// ClickResult is what the controller hands to the IPC/action dispatch path
// after resolving a single press.
type ClickResult struct {
	// Payload is the command to run, either from a hit action block or a
	// fallback. Empty means "nothing to do" (still logged by the caller).
	Payload string
	// Matched is false when neither an action block nor a fallback fired.
	Matched bool
}

// ClickDispatcher resolves a button press at a given x against the most
// recently rendered action.Context, upgrading to a double-click button when
// the press follows a previous same-button press within the configured
// interval and the current frame has at least one double-click action.
type ClickDispatcher struct {
	actions   *action.Context
	fallbacks Fallbacks
	double    *EventTimer
	lastBtn   tags.Button
}

// NewClickDispatcher wires a dispatcher against actions, with the given
// fallback map and double-click-interval.
func NewClickDispatcher(actions *action.Context, fallbacks Fallbacks, doubleClickInterval time.Duration) *ClickDispatcher {
	return &ClickDispatcher{
		actions:   actions,
		fallbacks: fallbacks,
		double:    NewEventTimer(doubleClickInterval),
	}
}

// Dispatch resolves a press of btn at pixel x at time now.
func (d *ClickDispatcher) Dispatch(btn tags.Button, x int, now time.Time) ClickResult {
	lookup := btn
	if d.actions.HasDoubleClick() && btn == d.lastBtn && !d.double.Allow(now) {
		if dbl := doubleOf(btn); dbl != tags.NoButton {
			lookup = dbl
		}
	} else {
		d.double.Allow(now)
	}
	d.lastBtn = btn

	if id := d.actions.HasAction(lookup, x); id != action.NoAction {
		return ClickResult{Payload: d.actions.GetAction(id), Matched: true}
	}

	if cmd, ok := d.fallbacks[btn]; ok {
		return ClickResult{Payload: cmd, Matched: true}
	}
	return ClickResult{}
}
