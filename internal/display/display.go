// Package display is the boundary to the e-paper panel. The panel's own
// transfer protocol lives outside this repo; everything here talks to the
// Device interface.
package display

import (
	"context"
	"errors"
	"image"
)

// ErrBusy marks the transient refresh-in-progress failure class. Callers
// log it and move on; the next frame is a natural retry.
var ErrBusy = errors.New("display busy")

// Device is a monochrome frame sink.
type Device interface {
	// Clear blanks the panel.
	Clear() error
	// WaitReady blocks until the panel can accept a frame. Failures here
	// are best-effort only: callers may proceed to Present regardless.
	WaitReady(ctx context.Context) error
	// Present hands over a full frame. May return ErrBusy.
	Present(img *image.Gray) error
	// Size reports the actual pixel dimensions, which can differ from the
	// configured nominal size after physical rotation.
	Size() (width, height int)
	Close() error
}
