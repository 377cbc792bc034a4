package main

import (
	"testing"

	"github.com/quietpress/typewriter-clock/internal/app"
	"github.com/quietpress/typewriter-clock/internal/config"
)

func TestProbeTTYsCoversStandardDescriptors(t *testing.T) {
	probes := probeTTYs()
	if len(probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			DeviceHint: "typewriter",
			QuotesPath: "quotes.csv",
			Width:      1400,
			Height:     1404,
			Display:    app.DisplayPNG,
			Verbose:    true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"device":  "typewriter",
			"quotes":  "quotes.csv",
			"width":   "1400",
			"height":  "1404",
			"display": "png",
			"verbose": "true",
		},
		Args: []string{"--device", "typewriter"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["device"] != "typewriter" {
		t.Fatalf("expected device flag %q, got %v", "typewriter", flagsValue["device"])
	}
	if flagsValue["display"] != "png" {
		t.Fatalf("expected display png, got %v", flagsValue["display"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if payload["panel"] != "1400x1404" {
		t.Fatalf("expected panel summary, got %v", payload["panel"])
	}
	if _, ok := payload["tty"].([]ttyProbe); !ok {
		t.Fatalf("expected tty probes in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
