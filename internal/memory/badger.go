package memory

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// BadgerMemory implements Memory on an embedded BadgerDB
type BadgerMemory struct {
	db *badger.DB
}

// NewBadgerMemory opens (or creates) the database directory at path. Badger
// holds a directory lock, so a second dashboard gets an error here.
func NewBadgerMemory(path string) (*BadgerMemory, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.NumVersionsToKeep = 1

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}
	return &BadgerMemory{db: db}, nil
}

// Store implements the Memory interface Store method
func (b *BadgerMemory) Store(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ErrKeyEmpty
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), value))
	})
}

// Retrieve implements the Memory interface Retrieve method
func (b *BadgerMemory) Retrieve(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrKeyEmpty
	}

	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}
		// Copy value to prevent access after transaction
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Delete implements the Memory interface Delete method
func (b *BadgerMemory) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrKeyEmpty
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// List implements the Memory interface List method. Badger iterates in key
// order, so the result is already sorted.
func (b *BadgerMemory) List(_ context.Context, prefix string) ([]string, error) {
	keys := []string{}
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Close runs one value log GC pass and closes the database. GC usually has
// nothing to rewrite for a store this small, so its result is ignored.
func (b *BadgerMemory) Close() error {
	if b.db == nil {
		return nil
	}
	_ = b.db.RunValueLogGC(0.7)
	return b.db.Close()
}
