package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForChange(t *testing.T, w *Watcher, timeout time.Duration) Change {
	t.Helper()
	select {
	case change := <-w.Events():
		return change
	case err := <-w.Errors():
		t.Fatalf("Watcher error: %v", err)
	case <-time.After(timeout):
		t.Fatal("Timeout waiting for file change event")
	}
	return Change{}
}

// TestWatcher_SingleFileChange tests that watcher reports which file changed
func TestWatcher_SingleFileChange(t *testing.T) {
	tmpDir := t.TempDir()
	inventory := filepath.Join(tmpDir, "project-inventory.json")
	if err := os.WriteFile(inventory, []byte(`{"projects":[]}`), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	watcher, err := NewWatcher(ctx, inventory)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(50 * time.Millisecond); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(inventory, []byte(`{"projects":[{"name":"a"}]}`), 0644); err != nil {
		t.Fatalf("Failed to modify test file: %v", err)
	}

	change := waitForChange(t, watcher, 2*time.Second)
	if change.Path != inventory {
		t.Errorf("Expected change for %s, got %s", inventory, change.Path)
	}
}

// TestWatcher_DebounceMultipleWrites tests that rapid writes to one file collapse into one change
func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "_meta.json")
	if err := os.WriteFile(testFile, []byte(`{}`), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	watcher, err := NewWatcher(ctx, testFile)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	debounceInterval := 200 * time.Millisecond
	if err := watcher.Start(debounceInterval); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(testFile, []byte(`{"version":1}`), 0644); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	eventCount := 0
	timeout := time.After(debounceInterval + 500*time.Millisecond)
	for {
		select {
		case <-watcher.Events():
			eventCount++
		case <-timeout:
			if eventCount != 1 {
				t.Errorf("Expected 1 debounced event, got %d", eventCount)
			}
			return
		case err := <-watcher.Errors():
			t.Fatalf("Watcher error: %v", err)
		}
	}
}

// TestWatcher_IgnoresUnwatchedFiles tests that siblings in a watched directory are filtered out
func TestWatcher_IgnoresUnwatchedFiles(t *testing.T) {
	tmpDir := t.TempDir()
	watched := filepath.Join(tmpDir, "dx-inventory.json")
	other := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(watched, []byte(`{"items":[]}`), 0644); err != nil {
		t.Fatalf("Failed to create watched file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	watcher, err := NewWatcher(ctx, watched)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(50 * time.Millisecond); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(other, []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to write other file: %v", err)
	}

	select {
	case change := <-watcher.Events():
		t.Fatalf("Unexpected change for unwatched file: %s", change.Path)
	case <-time.After(300 * time.Millisecond):
	}
}

// TestWatcher_MultipleFiles tests watching files in different directories
func TestWatcher_MultipleFiles(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	file1 := filepath.Join(dir1, "project-inventory.json")
	file2 := filepath.Join(dir2, "dx-inventory.json")

	for _, f := range []string{file1, file2} {
		if err := os.WriteFile(f, []byte(`{}`), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", f, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	watcher, err := NewWatcher(ctx, file1, file2)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(50 * time.Millisecond); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(file1, []byte(`{"projects":[]}`), 0644); err != nil {
		t.Fatalf("Failed to modify file1: %v", err)
	}
	if got := waitForChange(t, watcher, 2*time.Second); got.Path != file1 {
		t.Errorf("Expected change for %s, got %s", file1, got.Path)
	}

	if err := os.WriteFile(file2, []byte(`{"items":[]}`), 0644); err != nil {
		t.Fatalf("Failed to modify file2: %v", err)
	}
	if got := waitForChange(t, watcher, 2*time.Second); got.Path != file2 {
		t.Errorf("Expected change for %s, got %s", file2, got.Path)
	}
}

func TestWatcher_MissingDirectoryIsSkipped(t *testing.T) {
	tmpDir := t.TempDir()
	present := filepath.Join(tmpDir, "_tracker.csv")
	missing := filepath.Join(tmpDir, "does-not-exist", "dx-inventory.json")
	if err := os.WriteFile(present, []byte("folder\n"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	watcher, err := NewWatcher(context.Background(), present, missing)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(50 * time.Millisecond); err != nil {
		t.Fatalf("Expected start to succeed with one watchable directory, got: %v", err)
	}

	if err := watcher.Start(50 * time.Millisecond); err == nil {
		t.Error("Expected error when starting twice")
	}
}

// TestWatcher_StopSilencesEvents tests that no changes are delivered after Stop
func TestWatcher_StopSilencesEvents(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "_meta.json")
	if err := os.WriteFile(testFile, []byte(`{}`), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	watcher, err := NewWatcher(context.Background(), testFile)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	if err := watcher.Start(50 * time.Millisecond); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	if err := watcher.Stop(); err != nil {
		t.Fatalf("Failed to stop watcher: %v", err)
	}

	if err := os.WriteFile(testFile, []byte(`{"version":1}`), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	select {
	case change := <-watcher.Events():
		t.Fatalf("Unexpected change after stop: %s", change.Path)
	case <-time.After(200 * time.Millisecond):
	}
}
