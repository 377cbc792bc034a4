package input

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quietpress/typewriter-clock/internal/event"
	"github.com/quietpress/typewriter-clock/internal/keyboard"
)

// scriptedDevice replays a fixed sequence of transitions, then fails.
type scriptedDevice struct {
	events []keyboard.RawEvent
	err    error
}

func (d *scriptedDevice) Next() (keyboard.RawEvent, error) {
	if len(d.events) == 0 {
		if d.err == nil {
			d.err = errors.New("device unplugged")
		}
		return keyboard.RawEvent{}, d.err
	}
	ev := d.events[0]
	d.events = d.events[1:]
	return ev, nil
}

func (d *scriptedDevice) Name() string { return "scripted" }

func (d *scriptedDevice) Close() error { return nil }

// steppedClock advances by a fixed amount per call.
type steppedClock struct {
	t    time.Time
	step time.Duration
}

func (c *steppedClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func runReader(t *testing.T, dev keyboard.Device, step time.Duration) ([]event.Event, error) {
	t.Helper()
	bus := event.New()
	r := NewReader(dev, bus, DefaultDebounce)
	r.now = (&steppedClock{t: time.Unix(0, 0), step: step}).now

	err := r.Run(context.Background())

	var got []event.Event
	for {
		select {
		case evt := <-bus.Events():
			got = append(got, evt)
		default:
			return got, err
		}
	}
}

func TestDebounceDropsFastRepeats(t *testing.T) {
	dev := &scriptedDevice{events: []keyboard.RawEvent{
		{Code: "KEY_H", Down: true},
		{Code: "KEY_H", Down: true},
	}}
	got, err := runReader(t, dev, 10*time.Millisecond)
	if err == nil {
		t.Fatalf("expected a device error after the script ran out")
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 accepted event at 10ms spacing, got %d", len(got))
	}
}

func TestDebouncePassesSlowRepeats(t *testing.T) {
	dev := &scriptedDevice{events: []keyboard.RawEvent{
		{Code: "KEY_H", Down: true},
		{Code: "KEY_H", Down: true},
	}}
	got, _ := runReader(t, dev, 60*time.Millisecond)
	if len(got) != 2 {
		t.Fatalf("expected 2 accepted events at 60ms spacing, got %d", len(got))
	}
}

func TestShiftStateTracksAcrossKeys(t *testing.T) {
	dev := &scriptedDevice{events: []keyboard.RawEvent{
		{Code: "KEY_LEFTSHIFT", Down: true},
		{Code: "KEY_A", Down: true},
		{Code: "KEY_A", Down: false},
		{Code: "KEY_LEFTSHIFT", Down: false},
		{Code: "KEY_A", Down: true},
	}}
	got, _ := runReader(t, dev, 60*time.Millisecond)
	if len(got) != 2 {
		t.Fatalf("expected 2 key events, got %d", len(got))
	}
	if got[0].Key.Rune != 'A' {
		t.Fatalf("expected shifted 'A', got %q", got[0].Key.Rune)
	}
	if got[1].Key.Rune != 'a' {
		t.Fatalf("expected unshifted 'a', got %q", got[1].Key.Rune)
	}
}

func TestKeyUpAndUnknownCodesIgnored(t *testing.T) {
	dev := &scriptedDevice{events: []keyboard.RawEvent{
		{Code: "KEY_A", Down: false},
		{Code: "KEY_F1", Down: true},
		{Code: "KEY_B", Down: true},
	}}
	got, _ := runReader(t, dev, 60*time.Millisecond)
	if len(got) != 1 {
		t.Fatalf("expected only KEY_B to publish, got %d events", len(got))
	}
	if got[0].Key.Rune != 'b' {
		t.Fatalf("expected 'b', got %q", got[0].Key.Rune)
	}
}

func TestDeviceFailureStopsReader(t *testing.T) {
	dev := &scriptedDevice{err: errors.New("io: read/write on closed pipe")}
	_, err := runReader(t, dev, time.Millisecond)
	if err == nil {
		t.Fatalf("expected reader to surface the device error")
	}
}
