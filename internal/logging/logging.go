// Package logging opens the session log shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adriangreen/ideas/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns a text logger appending to cfg.Log.File. When the file cannot
// be opened the logger discards records, so callers never need to check.
func Open(cfg *config.Config, session string) (*slog.Logger, io.Closer) {
	level := ParseLevel(cfg.Log.Level)
	if cfg.Log.File == "" {
		return Discard(), nopCloser{}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
		return Discard(), nopCloser{}
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return Discard(), nopCloser{}
	}

	fmt.Fprintf(f, "\n=== %s session started: %s ===\n", session, time.Now().Format(time.RFC3339))

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger.With("session", session), f
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a config string to a slog level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
