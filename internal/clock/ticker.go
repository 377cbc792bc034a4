// Package clock emits an event on every wall-clock minute boundary.
package clock

import (
	"context"
	"time"

	"github.com/quietpress/typewriter-clock/internal/event"
	"github.com/quietpress/typewriter-clock/internal/logging/events"
)

// DefaultInterval is how often the wall clock is polled. Five seconds is
// plenty to catch a minute boundary without aligning to :00.
const DefaultInterval = 5 * time.Second

// Ticker publishes at most one tick per distinct (hour, minute) pair. The
// first poll always ticks, which is what puts a quote on screen at startup.
type Ticker struct {
	bus      *event.Bus
	interval time.Duration

	// now is swapped out by tests.
	now func() time.Time
}

// NewTicker returns a ticker polling at the given interval.
func NewTicker(bus *event.Bus, interval time.Duration) *Ticker {
	return &Ticker{
		bus:      bus,
		interval: interval,
		now:      time.Now,
	}
}

// Run polls until ctx is cancelled. It never fails; a clock cannot
// disconnect.
func (t *Ticker) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	var last struct {
		hour, minute int
		seen         bool
	}

	for {
		now := t.now()
		hour, minute := now.Hour(), now.Minute()
		if !last.seen || hour != last.hour || minute != last.minute {
			events.Clock.Tick(hour, minute)
			if !t.bus.Publish(ctx, event.ClockTick(hour, minute)) {
				return nil
			}
			last.hour, last.minute, last.seen = hour, minute, true
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
