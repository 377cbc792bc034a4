// Package input turns raw key transitions into logical key events.
package input

import (
	"context"
	"errors"
	"time"

	"github.com/quietpress/typewriter-clock/internal/event"
	"github.com/quietpress/typewriter-clock/internal/key"
	"github.com/quietpress/typewriter-clock/internal/keyboard"
	"github.com/quietpress/typewriter-clock/internal/logging/events"
)

// DefaultDebounce suppresses mechanical contact bounce on the typewriter's
// switches.
const DefaultDebounce = 50 * time.Millisecond

// Reader consumes the keyboard device's event stream and publishes decoded
// key events to the bus. It is the only writer of shift state, which never
// leaves this goroutine.
type Reader struct {
	dev      keyboard.Device
	bus      *event.Bus
	debounce time.Duration

	// now is swapped out by tests.
	now func() time.Time

	shift        bool
	lastAccepted time.Time
}

// NewReader returns a reader with the given debounce window. A zero debounce
// disables the gate.
func NewReader(dev keyboard.Device, bus *event.Bus, debounce time.Duration) *Reader {
	return &Reader{
		dev:      dev,
		bus:      bus,
		debounce: debounce,
		now:      time.Now,
	}
}

// Run blocks on the device until it fails or ctx is cancelled. A device
// failure is fatal to the session: the error propagates so the caller can
// shut everything down. Physical reconnection requires a restart.
func (r *Reader) Run(ctx context.Context) error {
	// Next has no context form; closing the device unblocks it.
	stop := context.AfterFunc(ctx, func() { r.dev.Close() })
	defer stop()

	for {
		raw, err := r.dev.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			events.Input.Disconnect(err)
			return errors.Join(errDeviceLost, err)
		}

		if key.IsShift(raw.Code) {
			r.shift = raw.Down
			continue
		}
		if !raw.Down {
			continue
		}

		now := r.now()
		if r.debounce > 0 && now.Sub(r.lastAccepted) < r.debounce {
			events.Input.Debounced(raw.Code)
			continue
		}

		k, ok := key.Decode(raw.Code, r.shift)
		if !ok {
			continue
		}
		events.Input.Key(raw.Code, r.shift)
		if !r.bus.Publish(ctx, event.KeyEvent(k)) {
			return nil
		}
		r.lastAccepted = now
	}
}

var errDeviceLost = errors.New("keyboard device lost")
