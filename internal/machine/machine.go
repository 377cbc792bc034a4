// Package machine owns the mode state and every mutable buffer in the
// system. It is the single consumer of the event bus: no other goroutine
// ever touches this state, so none of it is locked.
package machine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quietpress/typewriter-clock/internal/display"
	"github.com/quietpress/typewriter-clock/internal/event"
	"github.com/quietpress/typewriter-clock/internal/key"
	"github.com/quietpress/typewriter-clock/internal/layout"
	"github.com/quietpress/typewriter-clock/internal/logging"
	"github.com/quietpress/typewriter-clock/internal/logging/events"
	"github.com/quietpress/typewriter-clock/internal/quote"
)

// Mode is the operating mode. Exactly one is active.
type Mode int

const (
	ModeClock Mode = iota
	ModeTypewriter
)

const quoteHistoryCap = 15

// Screen renders one mode's content into a frame.
type Screen interface {
	Typewriter(ctx context.Context, text string, yOffset int) error
	Clock(ctx context.Context, quotes []string) error
}

// Source supplies the quote for a given minute.
type Source interface {
	Lookup(hour, minute int) (*quote.Quote, bool, error)
}

// Machine is the mode state machine. It starts in clock mode.
type Machine struct {
	screen Screen
	source Source

	// now feeds the immediate quote fetch on the ;clock command.
	now func() time.Time

	mode    Mode
	text    []rune
	command []rune
	quotes  []string
	yOffset int
}

// New returns a machine in clock mode with empty buffers.
func New(screen Screen, source Source) *Machine {
	return &Machine{
		screen:  screen,
		source:  source,
		now:     time.Now,
		mode:    ModeClock,
		yOffset: layout.StartYOffset,
	}
}

// Run consumes the bus until ctx is cancelled. Rendering is synchronous
// here; a slow refresh delays later events, which is fine at typing speed.
func (m *Machine) Run(ctx context.Context, bus *event.Bus) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt := <-bus.Events():
			switch evt.Kind {
			case event.KindKey:
				m.HandleKey(ctx, evt.Key)
			case event.KindClockTick:
				m.HandleTick(ctx, evt.Hour, evt.Minute)
			}
		}
	}
}

// HandleKey applies one decoded key.
func (m *Machine) HandleKey(ctx context.Context, k key.Key) {
	// Any key leaves clock mode. The key is consumed by the switch itself;
	// the first frame appears on the next keystroke.
	if m.mode == ModeClock {
		m.mode = ModeTypewriter
		m.text = nil
		m.command = nil
		m.yOffset = layout.StartYOffset
		events.Mode.EnterTypewriter()
		return
	}

	m.pushCommand(k)
	if matchesClockCommand(m.command) {
		m.enterClock(ctx)
		return
	}

	switch k.Kind {
	case key.KindSpace:
		m.text = append(m.text, ' ')
	case key.KindBackspace:
		if len(m.text) > 0 {
			m.text = m.text[:len(m.text)-1]
		}
	case key.KindEnter:
		m.text = append(m.text, ' ', '\n', ' ')
	case key.KindChar:
		m.text = append(m.text, k.Rune)
	}

	m.yOffset = layout.Scroll(m.yOffset, len(m.text))
	if err := m.screen.Typewriter(ctx, string(m.text), m.yOffset); err != nil {
		// Keystroke is already in the buffer; the next one re-renders it.
		m.logRenderError("typewriter", err)
	}
}

// HandleTick appends the new minute's quote while in clock mode. Ticks that
// arrive during a typing session are discarded.
func (m *Machine) HandleTick(ctx context.Context, hour, minute int) {
	if m.mode != ModeClock {
		return
	}
	m.showQuote(ctx, hour, minute)
}

// enterClock switches modes and puts the current minute's quote up
// immediately rather than waiting for the next tick.
func (m *Machine) enterClock(ctx context.Context) {
	m.mode = ModeClock
	m.command = nil
	m.quotes = nil
	events.Mode.EnterClock()

	now := m.now()
	m.showQuote(ctx, now.Hour(), now.Minute())
}

func (m *Machine) showQuote(ctx context.Context, hour, minute int) {
	text := fmt.Sprintf("No quote found for %02d:%02d", hour, minute)
	q, ok, err := m.source.Lookup(hour, minute)
	switch {
	case err != nil:
		logging.Error(err)
	case !ok:
		events.Quote.Missing(hour, minute)
	default:
		text = quote.Clean(q.Text)
	}

	m.quotes = append(m.quotes, text)
	if len(m.quotes) > quoteHistoryCap {
		m.quotes = m.quotes[1:]
	}

	if err := m.screen.Clock(ctx, m.quotes); err != nil {
		m.logRenderError("clock", err)
	}
}

func (m *Machine) logRenderError(stage string, err error) {
	if errors.Is(err, display.ErrBusy) {
		events.Render.Busy(stage)
		return
	}
	logging.Errorf("render %s: %w", stage, err)
}

// Mode reports the active mode.
func (m *Machine) Mode() Mode { return m.mode }

// Text reports the typewriter page contents.
func (m *Machine) Text() string { return string(m.text) }

// CommandBuffer reports the trailing command window.
func (m *Machine) CommandBuffer() string { return string(m.command) }

// QuoteHistory reports the quotes currently on the clock page, oldest first.
func (m *Machine) QuoteHistory() []string { return append([]string(nil), m.quotes...) }

// YOffset reports the typewriter draw anchor.
func (m *Machine) YOffset() int { return m.yOffset }
