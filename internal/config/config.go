package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quietpress/typewriter-clock/internal/app"
	"github.com/quietpress/typewriter-clock/internal/input"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envDevice    = "TYPEWRITER_CLOCK_DEVICE"
	envQuotes    = "TYPEWRITER_CLOCK_QUOTES"
	envFont      = "TYPEWRITER_CLOCK_FONT"
	envFontSize  = "TYPEWRITER_CLOCK_FONT_SIZE"
	envWidth     = "TYPEWRITER_CLOCK_WIDTH"
	envHeight    = "TYPEWRITER_CLOCK_HEIGHT"
	envDisplay   = "TYPEWRITER_CLOCK_DISPLAY"
	envFramesDir = "TYPEWRITER_CLOCK_FRAMES_DIR"
	envDebounce  = "TYPEWRITER_CLOCK_DEBOUNCE"
	envVerbose   = "TYPEWRITER_CLOCK_VERBOSE"
	envTrace     = "TYPEWRITER_CLOCK_TRACE"
	envLogFile   = "TYPEWRITER_CLOCK_LOG_FILE"
)

// Nominal panel dimensions. The device may report more after rotation.
const (
	defaultWidth  = 1400
	defaultHeight = 1404
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("typewriter-clock", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	device := fs.String("device", envOrDefault(env, envDevice, ""), "keyboard device name hint (fuzzy-matched; empty uses discovery heuristics)")
	quotes := fs.String("quotes", envOrDefault(env, envQuotes, "litclock_annotated.csv"), "path to the literature clock CSV (downloaded when missing)")
	font := fs.String("font", envOrDefault(env, envFont, "remington_noiseless.ttf"), "path to the page font")
	fontSize := fs.Float64("font-size", envOrFloat(env, envFontSize, 48), "font size in points")
	width := fs.Int("width", envOrInt(env, envWidth, defaultWidth), "nominal panel width in pixels")
	height := fs.Int("height", envOrInt(env, envHeight, defaultHeight), "nominal panel height in pixels")
	displayKind := fs.String("display", envOrDefault(env, envDisplay, app.DisplayTerm), "display backend: term (terminal simulator) or png (frame files + real keyboard)")
	framesDir := fs.String("frames-dir", envOrDefault(env, envFramesDir, "frames"), "output directory for the png backend")
	debounce := fs.Duration("debounce", envOrDuration(env, envDebounce, input.DefaultDebounce), "minimum interval between accepted keystrokes")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print startup details to stdout")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			DeviceHint: *device,
			QuotesPath: *quotes,
			FontPath:   *font,
			FontSize:   *fontSize,
			Width:      *width,
			Height:     *height,
			Display:    *displayKind,
			FramesDir:  *framesDir,
			Debounce:   *debounce,
			Verbose:    *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"device":    *device,
			"quotes":    *quotes,
			"font":      *font,
			"fontSize":  strconv.FormatFloat(*fontSize, 'f', -1, 64),
			"width":     strconv.Itoa(*width),
			"height":    strconv.Itoa(*height),
			"display":   *displayKind,
			"framesDir": *framesDir,
			"debounce":  debounce.String(),
			"verbose":   strconv.FormatBool(*verbose),
			"trace":     strconv.FormatBool(*trace),
			"logFile":   *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Width <= 0 || cfg.App.Height <= 0 {
		return fmt.Errorf("panel dimensions must be positive (got %dx%d)", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.FontSize <= 0 {
		return fmt.Errorf("font size must be positive (got %g)", cfg.App.FontSize)
	}
	if cfg.App.Debounce < 0 {
		return fmt.Errorf("debounce must be >= 0 (got %s)", cfg.App.Debounce)
	}
	switch cfg.App.Display {
	case app.DisplayTerm, app.DisplayPNG:
	default:
		return fmt.Errorf("unknown display backend %q", cfg.App.Display)
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrFloat(env map[string]string, key string, fallback float64) float64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
