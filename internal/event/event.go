// Package event carries tagged events from the producers to the consumer.
package event

import (
	"context"

	"github.com/quietpress/typewriter-clock/internal/key"
)

// Kind tags the event union.
type Kind int

const (
	KindKey Kind = iota
	KindClockTick
)

// Event is one message on the bus. Key is meaningful for KindKey; Hour and
// Minute for KindClockTick.
type Event struct {
	Kind   Kind
	Key    key.Key
	Hour   int
	Minute int
}

// KeyEvent builds a key event.
func KeyEvent(k key.Key) Event {
	return Event{Kind: KindKey, Key: k}
}

// ClockTick builds a minute-boundary event.
func ClockTick(hour, minute int) Event {
	return Event{Kind: KindClockTick, Hour: hour, Minute: minute}
}

// Bus is the single queue between both producers and the one consumer. All
// state mutation happens on the receiving side; producers only publish.
type Bus struct {
	ch chan Event
}

// New returns a bus with enough buffering that human-speed producers never
// block behind a slow display refresh.
func New() *Bus {
	return &Bus{ch: make(chan Event, 64)}
}

// Publish enqueues evt, giving up when ctx is cancelled. It reports whether
// the event was accepted.
func (b *Bus) Publish(ctx context.Context, evt Event) bool {
	select {
	case b.ch <- evt:
		return true
	case <-ctx.Done():
		return false
	}
}

// Events exposes the receive side of the bus.
func (b *Bus) Events() <-chan Event {
	return b.ch
}
