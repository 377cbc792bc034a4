// Package keyboard is the boundary to the physical character-input device.
package keyboard

// RawEvent is a single key transition as reported by the device.
type RawEvent struct {
	// Code is the evdev-style key name, e.g. "KEY_A" or "KEY_LEFTSHIFT".
	Code string
	// Down is true for press events, false for release.
	Down bool
}

// Device exposes a blocking stream of raw key transitions. Next returns an
// error only when the device is gone; callers treat that as fatal.
type Device interface {
	Name() string
	Next() (RawEvent, error)
	Close() error
}
