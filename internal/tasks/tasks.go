// Package tasks runs slow work (scripts, rescans) off the UI goroutine. A
// Slot allows one task in flight; its single result is collected by Poll on
// the next UI tick.
package tasks

import (
	"log/slog"
	"time"
)

// DefaultMessageTTL is how long a finished task's message stays visible
const DefaultMessageTTL = 3 * time.Second

// Result is the single message a task sends when it finishes
type Result[T any] struct {
	Success bool
	Message string
	Payload T
}

// Outcome reports what Poll observed
type Outcome int

const (
	// Idle means no task is in flight
	Idle Outcome = iota
	// Pending means the task has not finished yet
	Pending
	// Finished means a result was received and should be merged
	Finished
	// Disconnected means the task ended without sending a result
	Disconnected
)

func (o Outcome) String() string {
	switch o {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Finished:
		return "finished"
	case Disconnected:
		return "disconnected"
	}
	return "unknown"
}

// Slot holds at most one in-flight task of a category.
// All methods must be called from the same goroutine.
type Slot[T any] struct {
	name    string
	ch      chan Result[T]
	busy    bool
	message string
	expires time.Time // zero while a task is running
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Slot
type Option func(*options)

type options struct {
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// WithTTL sets how long finished messages stay visible
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger logs task starts, results and recovered panics
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewSlot creates an idle slot. name appears in log records only.
func NewSlot[T any](name string, opts ...Option) *Slot[T] {
	o := options{
		ttl:    DefaultMessageTTL,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Slot[T]{name: name, ttl: o.ttl, now: o.now, logger: o.logger}
}

// Start runs work on a new goroutine unless a task is already in flight,
// in which case the call is dropped and Start returns false. The progress
// message stays visible until the task finishes.
func (s *Slot[T]) Start(progress string, work func() Result[T]) bool {
	if s.ch != nil {
		s.logger.Debug("task already running, request dropped", "slot", s.name)
		return false
	}

	ch := make(chan Result[T], 1)
	s.ch = ch
	s.busy = true
	s.message = progress
	s.expires = time.Time{}
	s.logger.Info("task started", "slot", s.name, "message", progress)

	go func() {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("task panicked", "slot", s.name, "panic", r)
			}
		}()
		ch <- work()
	}()
	return true
}

// Poll collects the task's result without blocking. On Finished the caller
// merges the returned payload; the slot is idle again and shows the result
// message until it expires. On Disconnected nothing is merged and no
// message is shown.
func (s *Slot[T]) Poll() (Result[T], Outcome) {
	var zero Result[T]
	if s.ch == nil {
		return zero, Idle
	}

	select {
	case res, ok := <-s.ch:
		s.ch = nil
		s.busy = false
		if !ok {
			s.message = ""
			s.expires = time.Time{}
			s.logger.Warn("task ended without a result", "slot", s.name)
			return zero, Disconnected
		}
		s.message = res.Message
		s.expires = s.now().Add(s.ttl)
		s.logger.Info("task finished", "slot", s.name, "success", res.Success, "message", res.Message)
		return res, Finished
	default:
		return zero, Pending
	}
}

// Tick clears the result message once its display time has passed
func (s *Slot[T]) Tick() {
	if s.message == "" || s.expires.IsZero() {
		return
	}
	if !s.now().Before(s.expires) {
		s.message = ""
		s.expires = time.Time{}
	}
}

// Busy reports whether the slot is showing a running task
func (s *Slot[T]) Busy() bool {
	return s.busy
}

// Message returns the progress or result message, empty when none
func (s *Slot[T]) Message() string {
	return s.message
}
