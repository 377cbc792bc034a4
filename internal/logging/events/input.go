package events

import "github.com/quietpress/typewriter-clock/internal/logging"

type InputTracer struct{}

type ClockTracer struct{}

var (
	Input = InputTracer{}
	Clock = ClockTracer{}
)

func (InputTracer) Device(name, path string) {
	logging.Trace("input.device", map[string]interface{}{"name": name, "path": path})
}

func (InputTracer) Key(code string, shift bool) {
	logging.Trace("input.key", map[string]interface{}{"code": code, "shift": shift})
}

func (InputTracer) Debounced(code string) {
	logging.Trace("input.debounced", map[string]interface{}{"code": code})
}

func (InputTracer) Disconnect(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("input.disconnect", payload)
}

func (ClockTracer) Tick(hour, minute int) {
	logging.Trace("clock.tick", map[string]interface{}{"hour": hour, "minute": minute})
}
