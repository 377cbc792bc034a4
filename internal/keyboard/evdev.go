package keyboard

import (
	"fmt"
	"strings"

	"github.com/holoplot/go-evdev"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/quietpress/typewriter-clock/internal/logging/events"
)

type evdevDevice struct {
	dev  *evdev.InputDevice
	name string
}

// Next blocks until the next press/release transition. Key-repeat events are
// filtered here so holding shift does not read as a release.
func (d *evdevDevice) Next() (RawEvent, error) {
	for {
		ev, err := d.dev.ReadOne()
		if err != nil {
			return RawEvent{}, fmt.Errorf("read %s: %w", d.name, err)
		}
		if ev.Type != evdev.EV_KEY || ev.Value == 2 {
			continue
		}
		return RawEvent{
			Code: evdev.CodeName(ev.Type, ev.Code),
			Down: ev.Value == 1,
		}, nil
	}
}

func (d *evdevDevice) Name() string { return d.name }

func (d *evdevDevice) Close() error { return d.dev.Close() }

// Find locates the typewriter keyboard among the input devices. A non-empty
// hint is fuzzy-matched against device names and the best rank wins;
// otherwise the name and capability heuristics from the hardware build apply.
func Find(hint string) (Device, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input devices found")
	}

	if hint != "" {
		if dev := findByHint(paths, hint); dev != nil {
			return dev, nil
		}
	}

	// Prefer the actual USB Typewriter; fall back to any real keyboard.
	for _, p := range paths {
		if strings.Contains(strings.ToLower(p.Name), "typewriter") {
			return open(&p)
		}
	}
	for _, p := range paths {
		name := strings.ToLower(p.Name)
		if strings.Contains(name, "keyboard") &&
			!strings.Contains(name, "virtual") &&
			!strings.Contains(name, "hdmi") {
			return open(&p)
		}
	}
	for _, p := range paths {
		name := strings.ToLower(p.Name)
		if strings.Contains(name, "virtual") || strings.Contains(name, "hdmi") {
			continue
		}
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		if hasLetterKeys(dev) {
			events.Input.Device(p.Name, p.Path)
			return &evdevDevice{dev: dev, name: p.Name}, nil
		}
		dev.Close()
	}

	return nil, fmt.Errorf("no keyboard device found")
}

func findByHint(paths []evdev.InputPath, hint string) Device {
	best := -1
	var bestPath *evdev.InputPath
	for _, p := range paths {
		rank := fuzzy.RankMatchNormalizedFold(hint, p.Name)
		if rank < 0 {
			continue
		}
		if best < 0 || rank < best {
			best = rank
			bestPath = &p
		}
	}
	if bestPath == nil {
		return nil
	}
	dev, err := open(bestPath)
	if err != nil {
		return nil
	}
	return dev
}

func open(p *evdev.InputPath) (Device, error) {
	dev, err := evdev.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.Path, err)
	}
	events.Input.Device(p.Name, p.Path)
	return &evdevDevice{dev: dev, name: p.Name}, nil
}

func hasLetterKeys(dev *evdev.InputDevice) bool {
	var hasA, hasZ bool
	for _, code := range dev.CapableEvents(evdev.EV_KEY) {
		switch code {
		case evdev.KEY_A:
			hasA = true
		case evdev.KEY_Z:
			hasZ = true
		}
	}
	return hasA && hasZ
}
