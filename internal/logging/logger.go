package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "GO_NOTES_LOG_LEVEL"
	EnvLogNoColor = "GO_NOTES_LOG_NOCOLOR"

	app = "go-notes"
)

type Options struct {
	Level   string
	Format  string
	NoColor bool
	Out     io.Writer
}

// New builds the process logger. Environment variables override opts.
func New(opts Options) zerolog.Logger {
	applyEnvOverrides(&opts)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    opts.NoColor,
		}
	}

	level, ok := ParseLevel(opts.Level)
	if !ok {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("app", app).Logger()
}

func applyEnvOverrides(opts *Options) {
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		if _, ok := ParseLevel(raw); ok {
			opts.Level = raw
		}
	}
	if v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(EnvLogNoColor))); err == nil {
		opts.NoColor = v
	}
}

func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
