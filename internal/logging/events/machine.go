package events

import "github.com/quietpress/typewriter-clock/internal/logging"

type ModeTracer struct{}

type RenderTracer struct{}

type QuoteTracer struct{}

var (
	Mode   = ModeTracer{}
	Render = RenderTracer{}
	Quote  = QuoteTracer{}
)

func (ModeTracer) EnterTypewriter() {
	logging.Trace("mode.typewriter", nil)
}

func (ModeTracer) EnterClock() {
	logging.Trace("mode.clock", nil)
}

func (RenderTracer) Busy(context string) {
	logging.Trace("render.busy", map[string]interface{}{"context": context})
}

func (RenderTracer) Frame(mode string, lines int) {
	logging.Trace("render.frame", map[string]interface{}{"mode": mode, "lines": lines})
}

func (QuoteTracer) Loaded(path string, quotes, times int) {
	logging.Trace("quote.loaded", map[string]interface{}{
		"path":   path,
		"quotes": quotes,
		"times":  times,
	})
}

func (QuoteTracer) Missing(hour, minute int) {
	logging.Trace("quote.missing", map[string]interface{}{"hour": hour, "minute": minute})
}
