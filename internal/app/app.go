// Package app assembles the collaborators and runs the session.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quietpress/typewriter-clock/internal/clock"
	"github.com/quietpress/typewriter-clock/internal/display"
	"github.com/quietpress/typewriter-clock/internal/event"
	"github.com/quietpress/typewriter-clock/internal/input"
	"github.com/quietpress/typewriter-clock/internal/keyboard"
	"github.com/quietpress/typewriter-clock/internal/logging"
	"github.com/quietpress/typewriter-clock/internal/logging/events"
	"github.com/quietpress/typewriter-clock/internal/machine"
	"github.com/quietpress/typewriter-clock/internal/quote"
	"github.com/quietpress/typewriter-clock/internal/render"
	"github.com/quietpress/typewriter-clock/internal/ui"
)

// Display backends.
const (
	DisplayTerm = "term"
	DisplayPNG  = "png"
)

// Config describes user-provided application options.
type Config struct {
	DeviceHint string
	QuotesPath string
	FontPath   string
	FontSize   float64
	Width      int
	Height     int
	Display    string
	FramesDir  string
	Debounce   time.Duration
	Verbose    bool
}

// Run wires the pipeline and blocks until shutdown. Both producers, the
// consumer and (in term mode) the simulator run under one errgroup: the
// first fatal error or an interrupt cancels everything else.
func Run(cfg Config) error {
	store, err := quote.Open(cfg.QuotesPath)
	if err != nil {
		return fmt.Errorf("quote store: %w", err)
	}
	defer store.Close()

	if cfg.Verbose {
		quotes, _ := store.QuoteCount()
		times, _ := store.TimeCount()
		fmt.Printf("Loaded %d quotes for %d unique times\n", quotes, times)
	}

	face, err := render.LoadFace(cfg.FontPath, cfg.FontSize)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		dev      display.Device
		kbd      keyboard.Device
		sim      *ui.Sim
		debounce = cfg.Debounce
	)
	switch cfg.Display {
	case DisplayTerm:
		// Terminal input has no contact bounce to suppress.
		sim = ui.New(cfg.Width, cfg.Height)
		dev = sim.Display()
		kbd = sim.Keyboard()
		debounce = 0
	case DisplayPNG:
		dev, err = display.NewPNGDir(cfg.FramesDir, cfg.Width, cfg.Height)
		if err != nil {
			return err
		}
		kbd, err = keyboard.Find(cfg.DeviceHint)
		if err != nil {
			return fmt.Errorf("keyboard: %w", err)
		}
	default:
		return fmt.Errorf("unknown display backend %q", cfg.Display)
	}
	defer dev.Close()

	if cfg.Verbose {
		fmt.Printf("Using keyboard device: %s\n", kbd.Name())
	}
	if err := dev.Clear(); err != nil {
		logging.Errorf("clear display: %w", err)
	}

	bus := event.New()
	m := machine.New(render.New(dev, face, cfg.Width, cfg.Height), store)
	reader := input.NewReader(kbd, bus, debounce)
	ticker := clock.NewTicker(bus, clock.DefaultInterval)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return reader.Run(ctx) })
	g.Go(func() error { return ticker.Run(ctx) })
	g.Go(func() error { return m.Run(ctx, bus) })
	if sim != nil {
		g.Go(func() error { return sim.Run(ctx) })
	}

	err = g.Wait()
	events.App.Shutdown(shutdownReason(err))
	if errors.Is(err, ui.ErrClosed) {
		return nil
	}
	return err
}

func shutdownReason(err error) string {
	switch {
	case err == nil:
		return "interrupt"
	case errors.Is(err, ui.ErrClosed):
		return "simulator closed"
	default:
		return err.Error()
	}
}
