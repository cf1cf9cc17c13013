// Package slogx sets up the service's structured logger and the
// per-request access logging that wraps the HTTP mux.
package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects output shape and verbosity. Service, Version and Env ride
// along on every record so lines stay attributable after aggregation.
type Config struct {
	Service string
	Version string
	Env     string
	Level   string    // debug, info, warn, error
	Format  string    // json (default) or text
	Writer  io.Writer // defaults to os.Stdout
}

// New builds the process logger. Source locations are recorded in dev
// only; they are noise in aggregated production logs.
func New(cfg Config) *slog.Logger {
	out := cfg.Writer
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.Env == "dev",
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	return slog.New(handler).With(
		"service", cfg.Service,
		"version", cfg.Version,
		"env", cfg.Env,
	)
}

// ParseLevel maps LOG_LEVEL strings to slog levels, defaulting to info on
// anything unrecognised.
func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
