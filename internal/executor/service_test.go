package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setupTestScript writes a bash script into a temp directory
func setupTestScript(t *testing.T, body string) string {
	t.Helper()
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "script.sh")
	if err := os.WriteFile(path, []byte("#!/usr/bin/env bash\n"+body), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

// TestNewService verifies service initialization
func TestNewService(t *testing.T) {
	service := NewService(nil)

	if service.shell != "bash" {
		t.Errorf("expected bash shell, got %q", service.shell)
	}
	if service.logger == nil {
		t.Error("a nil logger should be replaced")
	}
}

// TestRun_Success verifies output is forwarded and the run recorded
func TestRun_Success(t *testing.T) {
	script := setupTestScript(t, `echo "scanning $1"; echo "warn" >&2`)
	service := NewService(nil)

	var stdout, stderr bytes.Buffer
	record, err := service.Run(context.Background(), Invocation{
		Script: script,
		Args:   []string{"alpha"},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", record.ExitCode)
	}
	if got := strings.TrimSpace(stdout.String()); got != "scanning alpha" {
		t.Errorf("unexpected stdout: %q", got)
	}
	if got := strings.TrimSpace(stderr.String()); got != "warn" {
		t.Errorf("unexpected stderr: %q", got)
	}

	if len(record.Args) != 1 || record.Args[0] != "alpha" {
		t.Errorf("record did not keep args: %v", record.Args)
	}
}

// TestRun_QuietDiscardsOutput verifies nil writers are allowed
func TestRun_QuietDiscardsOutput(t *testing.T) {
	script := setupTestScript(t, `for i in $(seq 1 50); do echo "line $i"; done`)
	service := NewService(nil)

	if _, err := service.Run(context.Background(), Invocation{Script: script}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestRun_LongLineDoesNotBlock verifies output past the line limit is
// drained so the script can exit
func TestRun_LongLineDoesNotBlock(t *testing.T) {
	script := setupTestScript(t, `head -c 3000000 /dev/zero | tr '\0' 'x'; echo; echo "done"; echo "err tail" >&2`)
	service := NewService(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	var stdout bytes.Buffer
	done := make(chan error, 1)
	go func() {
		_, err := service.Run(ctx, Invocation{Script: script, Stdout: &stdout})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("Run blocked on a long output line")
	}
	if !strings.HasSuffix(strings.TrimSpace(stdout.String()), "done") {
		t.Errorf("output after the long line was lost")
	}
}

// TestRun_Failure verifies non-zero exits surface the exit code
func TestRun_Failure(t *testing.T) {
	script := setupTestScript(t, `exit 3`)
	service := NewService(nil)

	record, err := service.Run(context.Background(), Invocation{Script: script})
	if err == nil {
		t.Fatal("expected error for failing script")
	}
	if record.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", record.ExitCode)
	}
	if !strings.Contains(err.Error(), "code 3") {
		t.Errorf("error should mention exit code: %v", err)
	}
}

// TestRun_MissingScript verifies the sentinel error
func TestRun_MissingScript(t *testing.T) {
	service := NewService(nil)

	_, err := service.Run(context.Background(), Invocation{Script: filepath.Join(t.TempDir(), "missing.sh")})
	if !errors.Is(err, ErrScriptNotFound) {
		t.Fatalf("expected ErrScriptNotFound, got %v", err)
	}
}

// TestRun_ContextCancel verifies a cancelled context stops the script
func TestRun_ContextCancel(t *testing.T) {
	script := setupTestScript(t, `exec sleep 10`)
	service := NewService(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := service.Run(ctx, Invocation{Script: script})
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("script was not stopped by context cancellation")
	}
}

// TestRun_WorkingDirectory verifies Dir is honored
func TestRun_WorkingDirectory(t *testing.T) {
	script := setupTestScript(t, `pwd`)
	dir := t.TempDir()
	service := NewService(nil)

	var stdout bytes.Buffer
	if _, err := service.Run(context.Background(), Invocation{Script: script, Dir: dir, Stdout: &stdout}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
	if got != want {
		t.Errorf("expected pwd %s, got %s", want, got)
	}
}
