// Package memory is a small key/value store for dashboard state that
// outlives a session. BadgerDB backs it; a JSON file is the fallback when
// the database cannot be opened.
package memory

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyEmpty    = errors.New("key cannot be empty")
)

// Memory defines the interface for persisted key/value storage
type Memory interface {
	// Store saves a value under key
	Store(ctx context.Context, key string, value []byte) error

	// Retrieve gets a value by key
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// List returns keys with the given prefix in sorted order
	List(ctx context.Context, prefix string) ([]string, error)

	// Close flushes and releases the store
	Close() error
}
