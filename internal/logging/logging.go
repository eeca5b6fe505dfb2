// Package logging installs ghostbook's slog logger from its configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tatianab/ghostbook/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Configure makes the logger described by cfg the slog default. Output is
// appended to cfg.LogFile when it is set and written to fallback otherwise;
// a nil fallback drops every line. The caller must close the returned
// io.Closer once logging is done.
func Configure(cfg *config.Config, fallback io.Writer) (io.Closer, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	out := fallback
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		f, err := OpenFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		out, closer = f, f
	}
	if out == nil {
		out = io.Discard
	}

	slog.SetDefault(slog.New(handler(out, level, cfg.LogFormat)))
	return closer, nil
}

func handler(w io.Writer, level slog.Level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// OpenFile opens path for appending log lines.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// For is the default logger with a component=<name> attribute.
func For(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
