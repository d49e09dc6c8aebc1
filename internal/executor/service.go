// Package executor runs the inventory's bash generators (inventory scan,
// project analysis, summary generation) and logs each run.
package executor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrScriptNotFound is returned when the configured script does not exist
var ErrScriptNotFound = errors.New("script not found")

// maxLineSize bounds one line of script output held for the log
const maxLineSize = 1024 * 1024

// Command represents a single script execution record
type Command struct {
	Script   string
	Args     []string
	When     time.Time
	Duration time.Duration
	ExitCode int
	Err      error
}

// Invocation describes one script run. Nil writers discard that stream,
// which is what the dashboard wants; the CLI passes its own stdout/stderr.
type Invocation struct {
	Script string
	Args   []string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// Service runs scripts through a shell and logs their outcome
type Service struct {
	shell  string
	logger *slog.Logger
}

// NewService creates an executor that runs scripts with bash
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{shell: "bash", logger: logger}
}

// Run executes the script and blocks until it exits. A non-zero exit is
// returned as an error carrying the exit code.
func (s *Service) Run(ctx context.Context, inv Invocation) (Command, error) {
	record := Command{Script: inv.Script, Args: inv.Args, When: time.Now()}

	if _, err := os.Stat(inv.Script); err != nil {
		record.ExitCode = -1
		record.Err = fmt.Errorf("%w: %s", ErrScriptNotFound, inv.Script)
		s.finish(record)
		return record, record.Err
	}

	args := append([]string{inv.Script}, inv.Args...)
	cmd := exec.CommandContext(ctx, s.shell, args...)
	cmd.Dir = inv.Dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return record, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return record, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		record.ExitCode = -1
		record.Err = fmt.Errorf("failed to start %s: %w", filepath.Base(inv.Script), err)
		s.finish(record)
		return record, record.Err
	}

	name := filepath.Base(inv.Script)
	s.logger.Info("script started", "script", name, "args", strings.Join(inv.Args, " "))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.streamOutput(stdout, inv.Stdout, name)
	}()
	go func() {
		defer wg.Done()
		s.streamOutput(stderr, inv.Stderr, name)
	}()
	wg.Wait()

	err = cmd.Wait()
	record.Duration = time.Since(record.When)
	if err != nil {
		record.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			record.ExitCode = exitErr.ExitCode()
		}
		record.Err = fmt.Errorf("%s exited with code %d: %w", name, record.ExitCode, err)
	}

	s.finish(record)

	return record, record.Err
}

func (s *Service) finish(record Command) {
	name := filepath.Base(record.Script)
	if record.Err != nil {
		s.logger.Warn("script failed", "script", name, "exit", record.ExitCode, "err", record.Err)
	} else {
		s.logger.Info("script completed", "script", name, "duration", record.Duration.Round(time.Millisecond))
	}
}

// streamOutput copies lines to w (when set) and to the debug log. The pipe
// is always read to EOF so the script never blocks on a full pipe.
func (s *Service) streamOutput(r io.Reader, w io.Writer, name string) {
	if w == nil {
		w = io.Discard
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Fprintln(w, line)
		s.logger.Debug("script output", "script", name, "line", line)
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn("script output not line-readable, copying the rest raw", "script", name, "err", err)
		if _, err := io.Copy(w, r); err != nil {
			s.logger.Warn("failed to drain script output", "script", name, "err", err)
		}
	}
}
