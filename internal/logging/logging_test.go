package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/adriangreen/ideas/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Log: config.LogConfig{File: filepath.Join(dir, "state", "ideas.log"), Level: "debug"}}

	logger, closer := Open(cfg, "icli")
	logger.Debug("analysis skipped", "project", "alpha")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "icli session started")
	assert.Contains(t, string(data), "analysis skipped")
	assert.Contains(t, string(data), "project=alpha")
}

func TestOpen_UnwritableFallsBackToDiscard(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	cfg := &config.Config{Log: config.LogConfig{File: filepath.Join(blocker, "nested", "ideas.log")}}
	logger, closer := Open(cfg, "tui")
	require.NotNil(t, logger)
	logger.Info("dropped")
	assert.NoError(t, closer.Close())
}
