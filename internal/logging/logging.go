// SPDX-License-Identifier: MIT
// Package logging builds the slog loggers used across pibble.
//
// Library packages never write logs unless a caller passes a logger through
// their WithLogger option; Null is the default they fall back to. The CLI
// uses New to build a text or JSON handler from its flags.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Null returns a logger that discards all output.
func Null() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrNull returns l, or Null when l is nil.
func OrNull(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Null()
	}

	return l
}

// Config selects the handler built by New.
type Config struct {
	Level slog.Level
	JSON  bool
}

// New returns a logger writing to w at cfg.Level.
func New(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level;
// anything else yields slog.LevelInfo and false.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}

	return slog.LevelInfo, false
}
