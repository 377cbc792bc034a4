// Package ui is a terminal stand-in for the physical hardware: a Bubble Tea
// program that shows rendered frames as character art and feeds terminal
// keystrokes into the pipeline as raw key transitions. It exists so the
// whole input/layout/render path can be exercised without the panel or the
// typewriter attached.
package ui

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quietpress/typewriter-clock/internal/display"
	"github.com/quietpress/typewriter-clock/internal/keyboard"
)

// ErrClosed reports that the simulator window was closed; the session ends
// the same way a yanked keyboard cable would, minus the log noise.
var ErrClosed = errors.New("simulator closed")

// Sim bundles the simulated keyboard and display around one Bubble Tea
// program.
type Sim struct {
	width, height int

	keys chan keyboard.RawEvent
	done chan struct{}
	once sync.Once

	mu      sync.Mutex
	program *tea.Program
}

// New returns a simulator for a panel of the given pixel dimensions.
func New(width, height int) *Sim {
	return &Sim{
		width:  width,
		height: height,
		keys:   make(chan keyboard.RawEvent, 64),
		done:   make(chan struct{}),
	}
}

// Run executes the terminal program until the user quits or ctx is
// cancelled, then reports ErrClosed so the rest of the session shuts down.
func (s *Sim) Run(ctx context.Context) error {
	p := tea.NewProgram(newModel(s), tea.WithAltScreen())
	s.mu.Lock()
	s.program = p
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, p.Quit)
	defer stop()

	_, err := p.Run()
	s.close()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return ErrClosed
}

func (s *Sim) close() {
	s.once.Do(func() { close(s.done) })
}

func (s *Sim) send(msg tea.Msg) {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// pushStroke queues the raw transitions for one typed rune, including the
// synthetic shift press around shifted characters.
func (s *Sim) pushStroke(ks keystroke) {
	if ks.shift {
		s.push(keyboard.RawEvent{Code: "KEY_LEFTSHIFT", Down: true})
	}
	s.push(keyboard.RawEvent{Code: ks.code, Down: true})
	s.push(keyboard.RawEvent{Code: ks.code, Down: false})
	if ks.shift {
		s.push(keyboard.RawEvent{Code: "KEY_LEFTSHIFT", Down: false})
	}
}

func (s *Sim) push(ev keyboard.RawEvent) {
	select {
	case s.keys <- ev:
	default:
		// Dropping input under backpressure beats blocking the UI loop.
	}
}

// Keyboard returns the simulated input device.
func (s *Sim) Keyboard() keyboard.Device {
	return &simKeyboard{sim: s}
}

// Display returns the simulated panel.
func (s *Sim) Display() display.Device {
	return &simDisplay{sim: s}
}

type simKeyboard struct {
	sim *Sim
}

func (k *simKeyboard) Name() string { return "terminal simulator" }

func (k *simKeyboard) Next() (keyboard.RawEvent, error) {
	select {
	case ev := <-k.sim.keys:
		return ev, nil
	case <-k.sim.done:
		return keyboard.RawEvent{}, ErrClosed
	}
}

func (k *simKeyboard) Close() error {
	k.sim.close()
	return nil
}

type simDisplay struct {
	sim *Sim
}

func (d *simDisplay) Clear() error {
	d.sim.send(clearMsg{})
	return nil
}

func (d *simDisplay) WaitReady(ctx context.Context) error { return nil }

// Present composes the frame onto a full white canvas at the frame's own
// offsets, so cropped typewriter frames keep their on-panel position, then
// ships it to the terminal as character art.
func (d *simDisplay) Present(img *image.Gray) error {
	canvas := image.NewGray(image.Rect(0, 0, d.sim.width, d.sim.height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, img.Bounds().Intersect(canvas.Bounds()), img, img.Bounds().Min, draw.Src)

	d.sim.send(frameMsg{frame: canvas})
	return nil
}

func (d *simDisplay) Size() (int, int) { return d.sim.width, d.sim.height }

func (d *simDisplay) Close() error { return nil }
