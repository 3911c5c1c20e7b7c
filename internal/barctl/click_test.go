// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import (
	"testing"
	"time"

	"github.com/polybar/polybar-go/internal/action"
	"github.com/polybar/polybar-go/internal/tags"
	"github.com/stretchr/testify/assert"
)

func TestEventTimerAllowsFirstCallAlways(t *testing.T) {
	timer := NewEventTimer(100 * time.Millisecond)
	now := time.Unix(0, 0)
	assert.True(t, timer.Allow(now))
}

func TestEventTimerDeniesWithinOffset(t *testing.T) {
	timer := NewEventTimer(100 * time.Millisecond)
	base := time.Unix(0, 0)
	assert.True(t, timer.Allow(base))
	assert.False(t, timer.Allow(base.Add(50*time.Millisecond)))
	assert.True(t, timer.Allow(base.Add(200*time.Millisecond)))
}

// TestFallbackClick is scenario E6.
func TestFallbackClick(t *testing.T) {
	ctx := action.NewContext()
	fallbacks := Fallbacks{tags.ButtonRight: "notify-send hi"}
	d := NewClickDispatcher(ctx, fallbacks, 400*time.Millisecond)

	result := d.Dispatch(tags.ButtonRight, 5, time.Unix(0, 0))
	assert.True(t, result.Matched)
	assert.Equal(t, "notify-send hi", result.Payload)

	result = d.Dispatch(tags.ButtonLeft, 5, time.Unix(0, 0))
	assert.False(t, result.Matched)
	assert.Empty(t, result.Payload)
}

func TestClickHitsActionBlockOverFallback(t *testing.T) {
	ctx := action.NewContext()
	id := ctx.Open(tags.ButtonLeft, "do-thing", tags.AlignLeft, 0)
	_, _ = ctx.Close(tags.ButtonLeft, tags.AlignLeft, 10)
	_ = id

	d := NewClickDispatcher(ctx, Fallbacks{tags.ButtonLeft: "fallback"}, 400*time.Millisecond)
	result := d.Dispatch(tags.ButtonLeft, 5, time.Unix(0, 0))
	assert.True(t, result.Matched)
	assert.Equal(t, "do-thing", result.Payload)
}

func TestDoubleClickUpgradesButtonWhenFrameSupportsIt(t *testing.T) {
	ctx := action.NewContext()
	ctx.Open(tags.DoubleLeft, "double-action", tags.AlignLeft, 0)
	_, _ = ctx.Close(tags.DoubleLeft, tags.AlignLeft, 10)

	d := NewClickDispatcher(ctx, Fallbacks{}, 400*time.Millisecond)
	base := time.Unix(0, 0)

	first := d.Dispatch(tags.ButtonLeft, 5, base)
	assert.False(t, first.Matched)

	second := d.Dispatch(tags.ButtonLeft, 5, base.Add(100*time.Millisecond))
	assert.True(t, second.Matched)
	assert.Equal(t, "double-action", second.Payload)
}

func TestDoubleClickNotTriggeredAfterInterval(t *testing.T) {
	ctx := action.NewContext()
	ctx.Open(tags.DoubleLeft, "double-action", tags.AlignLeft, 0)
	_, _ = ctx.Close(tags.DoubleLeft, tags.AlignLeft, 10)

	d := NewClickDispatcher(ctx, Fallbacks{}, 400*time.Millisecond)
	base := time.Unix(0, 0)

	d.Dispatch(tags.ButtonLeft, 5, base)
	second := d.Dispatch(tags.ButtonLeft, 5, base.Add(time.Second))
	assert.False(t, second.Matched)
}
