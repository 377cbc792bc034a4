package clock

import (
	"context"
	"testing"
	"time"

	"github.com/quietpress/typewriter-clock/internal/event"
)

func collect(bus *event.Bus) []event.Event {
	var got []event.Event
	for {
		select {
		case evt := <-bus.Events():
			got = append(got, evt)
		default:
			return got
		}
	}
}

func TestTickerEmitsOncePerMinute(t *testing.T) {
	bus := event.New()
	tk := NewTicker(bus, time.Millisecond)

	// Three polls inside the same minute, then two in the next.
	times := []time.Time{
		time.Date(2024, 1, 1, 9, 30, 5, 0, time.UTC),
		time.Date(2024, 1, 1, 9, 30, 10, 0, time.UTC),
		time.Date(2024, 1, 1, 9, 30, 55, 0, time.UTC),
		time.Date(2024, 1, 1, 9, 31, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 9, 31, 5, 0, time.UTC),
	}
	idx := 0
	ctx, cancel := context.WithCancel(context.Background())
	tk.now = func() time.Time {
		if idx >= len(times) {
			cancel()
			return times[len(times)-1]
		}
		now := times[idx]
		idx++
		return now
	}

	if err := tk.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := collect(bus)
	if len(got) != 2 {
		t.Fatalf("expected 2 ticks across 2 distinct minutes, got %d", len(got))
	}
	if got[0].Hour != 9 || got[0].Minute != 30 {
		t.Fatalf("first tick: expected 09:30, got %02d:%02d", got[0].Hour, got[0].Minute)
	}
	if got[1].Hour != 9 || got[1].Minute != 31 {
		t.Fatalf("second tick: expected 09:31, got %02d:%02d", got[1].Hour, got[1].Minute)
	}
}

func TestTickerFirstPollAlwaysTicks(t *testing.T) {
	bus := event.New()
	tk := NewTicker(bus, time.Millisecond)

	calls := 0
	ctx, cancel := context.WithCancel(context.Background())
	tk.now = func() time.Time {
		calls++
		if calls > 1 {
			cancel()
		}
		return time.Date(2024, 1, 1, 0, 0, 30, 0, time.UTC)
	}

	tk.Run(ctx)

	got := collect(bus)
	if len(got) != 1 {
		t.Fatalf("expected exactly one startup tick, got %d", len(got))
	}
}
