// Package render rasterizes laid-out text into grayscale frames for the
// display device.
package render

import (
	"context"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/quietpress/typewriter-clock/internal/display"
	"github.com/quietpress/typewriter-clock/internal/layout"
	"github.com/quietpress/typewriter-clock/internal/logging/events"
)

// LineSpacing is the extra gap between lines in pixels.
const LineSpacing = 12

// BottomMargin keeps the newest clock quote just above the canvas bottom.
const BottomMargin = 50

// Renderer draws wrapped text into frames and hands them to the display.
type Renderer struct {
	dev    display.Device
	face   font.Face
	width  int // nominal canvas width
	height int // nominal canvas height
}

// New builds a renderer for the given device, face and nominal canvas size.
func New(dev display.Device, face font.Face, width, height int) *Renderer {
	return &Renderer{dev: dev, face: face, width: width, height: height}
}

// Typewriter renders the current page anchored at yOffset and crops the
// frame to the text's bounding box before handing it over.
func (r *Renderer) Typewriter(ctx context.Context, text string, yOffset int) error {
	lines := layout.Wrap(text, layout.ColumnWidth)
	img := newCanvas(r.width, r.height)
	box := r.drawLines(img, lines, layout.FixedXOffset, yOffset)

	frame := img
	if crop := box.Intersect(img.Bounds()); !crop.Empty() {
		frame = img.SubImage(crop).(*image.Gray)
	}

	events.Render.Frame("typewriter", len(lines))
	return r.present(ctx, frame)
}

// Clock renders the quote history bottom-anchored on a canvas sized to the
// device's actual dimensions. The frame is never cropped: the display keeps
// full-canvas frames in place, which is what preserves the bottom anchor.
func (r *Renderer) Clock(ctx context.Context, quotes []string) error {
	width, height := r.dev.Size()
	if width <= 0 || height <= 0 {
		width, height = r.width, r.height
	}

	var lines []string
	for i, q := range quotes {
		if i > 0 {
			lines = append(lines, "", "")
		}
		lines = append(lines, layout.Wrap(q, layout.ColumnWidth)...)
	}

	y := layout.BottomAnchor(r.textHeight(len(lines)), height, BottomMargin)

	img := newCanvas(width, height)
	r.drawLines(img, lines, layout.FixedXOffset, y)

	events.Render.Frame("clock", len(lines))
	return r.present(ctx, img)
}

// drawLines paints lines top to bottom, each centered against the widest
// line of the block, and returns the block's bounding box.
func (r *Renderer) drawLines(img *image.Gray, lines []string, x, y int) image.Rectangle {
	maxWidth := 0
	widths := make([]int, len(lines))
	for i, line := range lines {
		widths[i] = font.MeasureString(r.face, line).Ceil()
		if widths[i] > maxWidth {
			maxWidth = widths[i]
		}
	}

	metrics := r.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()

	d := &font.Drawer{Dst: img, Src: image.Black, Face: r.face}
	for i, line := range lines {
		if line == "" {
			continue
		}
		lx := x + (maxWidth-widths[i])/2
		ly := y + ascent + i*(lineHeight+LineSpacing)
		d.Dot = fixed.P(lx, ly)
		d.DrawString(line)
	}

	return image.Rect(x, y, x+maxWidth, y+r.textHeight(len(lines)))
}

// textHeight is the painted height of n lines at the current face.
func (r *Renderer) textHeight(n int) int {
	if n <= 0 {
		return 0
	}
	lineHeight := r.face.Metrics().Height.Ceil()
	return n*lineHeight + (n-1)*LineSpacing
}

// present waits for the panel best-effort, then hands the frame over. A
// failed readiness wait is logged and ignored; the panel either takes the
// frame or reports busy.
func (r *Renderer) present(ctx context.Context, frame *image.Gray) error {
	if err := r.dev.WaitReady(ctx); err != nil {
		events.Render.Busy("wait-ready")
	}
	return r.dev.Present(frame)
}

func newCanvas(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}
