package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change names a watched file that was written, created or replaced
type Change struct {
	Path string
}

// Watcher wraps fsnotify to watch data files and emit one debounced
// Change per file that was touched during the debounce window.
type Watcher struct {
	watcher  *fsnotify.Watcher
	paths    map[string]string // base name -> full path
	events   chan Change
	errors   chan error
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	watching bool
}

// NewWatcher creates a new file watcher for the specified paths
func NewWatcher(ctx context.Context, paths ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	byName := make(map[string]string, len(paths))
	for _, p := range paths {
		byName[filepath.Base(p)] = p
	}

	watcherCtx, cancel := context.WithCancel(ctx)
	return &Watcher{
		watcher: fsw,
		paths:   byName,
		events:  make(chan Change, len(paths)+1),
		errors:  make(chan error, 1),
		ctx:     watcherCtx,
		cancel:  cancel,
	}, nil
}

// Start begins watching the parent directories of the configured paths.
// Directories that do not exist are skipped; it is an error only when none
// can be watched.
func (w *Watcher) Start(debounceInterval time.Duration) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return fmt.Errorf("watcher already started")
	}
	w.watching = true
	w.mu.Unlock()

	dirs := make(map[string]bool)
	for _, p := range w.paths {
		dirs[filepath.Dir(p)] = true
	}

	var added int
	var lastErr error
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			lastErr = fmt.Errorf("failed to watch %s: %w", dir, err)
			continue
		}
		added++
	}
	if added == 0 && lastErr != nil {
		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
		return lastErr
	}

	go w.processEvents(debounceInterval)
	return nil
}

func (w *Watcher) processEvents(debounceInterval time.Duration) {
	var (
		pmu     sync.Mutex
		pending = make(map[string]bool)
		timer   *time.Timer
	)

	flush := func() {
		pmu.Lock()
		names := make([]string, 0, len(pending))
		for name := range pending {
			names = append(names, name)
		}
		pending = make(map[string]bool)
		pmu.Unlock()

		sort.Strings(names)
		for _, name := range names {
			select {
			case w.events <- Change{Path: w.paths[name]}:
			case <-w.ctx.Done():
				return
			default:
				// reader is behind; a change for this file is already queued
			}
		}
	}

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name := filepath.Base(event.Name)
			if _, watched := w.paths[name]; !watched {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			pmu.Lock()
			pending[name] = true
			pmu.Unlock()

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceInterval, flush)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.ctx.Done():
				return
			default:
			}
		}
	}
}

// Events returns the channel of debounced changes
func (w *Watcher) Events() <-chan Change {
	return w.events
}

// Errors returns the channel for receiving watcher errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Stop stops the watcher and cleans up resources
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.watching {
		w.mu.Unlock()
		return nil
	}
	w.watching = false
	w.mu.Unlock()

	w.cancel()
	return w.watcher.Close()
}
