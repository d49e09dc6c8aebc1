package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// InMemoryStorage implements Memory with a map written through to a JSON
// file. An empty file path keeps everything in memory.
type InMemoryStorage struct {
	data     map[string][]byte
	filePath string
	mutex    sync.RWMutex
}

// NewInMemoryStorage creates the store, loading filePath when it exists
func NewInMemoryStorage(filePath string) (*InMemoryStorage, error) {
	storage := &InMemoryStorage{
		data:     make(map[string][]byte),
		filePath: filePath,
	}
	if filePath == "" {
		return storage, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return storage, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	var stored map[string]string
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	for k, v := range stored {
		storage.data[k] = []byte(v)
	}
	return storage, nil
}

// Store implements the Memory interface Store method
func (s *InMemoryStorage) Store(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ErrKeyEmpty
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[key] = slices.Clone(value)
	return s.persist()
}

// Retrieve implements the Memory interface Retrieve method
func (s *InMemoryStorage) Retrieve(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrKeyEmpty
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return slices.Clone(value), nil
}

// Delete implements the Memory interface Delete method
func (s *InMemoryStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, key)
	return s.persist()
}

// List implements the Memory interface List method
func (s *InMemoryStorage) List(_ context.Context, prefix string) ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := []string{}
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// Close implements the Memory interface Close method
func (s *InMemoryStorage) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.persist()
}

// persist writes the map to a temp file and renames it into place.
// Callers hold the write lock.
func (s *InMemoryStorage) persist() error {
	if s.filePath == "" {
		return nil
	}

	stored := make(map[string]string, len(s.data))
	for k, v := range s.data {
		stored[k] = string(v)
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return err
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}
