package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
)

// UIPrefix namespaces every key the dashboard writes
const UIPrefix = "ui:"

// PrefsKey holds the dashboard preferences document
const PrefsKey = UIPrefix + "prefs"

// Prefs is the dashboard state restored on the next start. Sort modes and
// the status filter are stored as their enum values.
type Prefs struct {
	Tab          int               `json:"tab"`
	IdeaSort     int               `json:"idea_sort"`
	ProjectSort  int               `json:"project_sort"`
	PlanSort     int               `json:"plan_sort"`
	DotfilesSort int               `json:"dotfiles_sort"`
	StatusFilter int               `json:"status_filter"`
	Selected     map[string]string `json:"selected,omitempty"` // tab label -> item name
}

// Helper is a convenience wrapper around the Memory interface
type Helper struct {
	Store Memory // Exported to allow direct access
}

// NewHelper creates a new memory helper with the specified store
func NewHelper(store Memory) *Helper {
	return &Helper{Store: store}
}

// Open uses BadgerDB under stateDir, falling back to a JSON file next to it
// when the database is locked by another process or cannot be created.
func Open(stateDir string, logger *slog.Logger) (*Helper, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	db, err := NewBadgerMemory(filepath.Join(stateDir, "prefs"))
	if err == nil {
		return NewHelper(db), nil
	}
	logger.Warn("badger unavailable, using json preferences", "err", err)

	store, ferr := NewInMemoryStorage(filepath.Join(stateDir, "prefs.json"))
	if ferr != nil {
		return nil, errors.Join(err, ferr)
	}
	return NewHelper(store), nil
}

// StoreJSON stores a JSON-serializable object
func (h *Helper) StoreJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return h.Store.Store(ctx, key, data)
}

// RetrieveJSON retrieves a JSON object and deserializes it
func (h *Helper) RetrieveJSON(ctx context.Context, key string, value any) error {
	data, err := h.Store.Retrieve(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, value)
}

// LoadPrefs returns the saved preferences. ok is false, with zero Prefs,
// when none exist or the stored document is unreadable.
func (h *Helper) LoadPrefs(ctx context.Context) (p Prefs, ok bool, err error) {
	err = h.RetrieveJSON(ctx, PrefsKey, &p)
	if errors.Is(err, ErrKeyNotFound) {
		return Prefs{}, false, nil
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return Prefs{}, false, nil
	}
	if err != nil {
		return Prefs{}, false, err
	}
	return p, true, nil
}

// SavePrefs stores the preferences
func (h *Helper) SavePrefs(ctx context.Context, p Prefs) error {
	return h.StoreJSON(ctx, PrefsKey, p)
}

// ClearPrefs forgets every saved dashboard key
func (h *Helper) ClearPrefs(ctx context.Context) error {
	keys, err := h.Store.List(ctx, UIPrefix)
	if err != nil {
		return fmt.Errorf("failed to list dashboard state: %w", err)
	}
	var errs []error
	for _, k := range keys {
		if err := h.Store.Delete(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close properly shuts down the store
func (h *Helper) Close() error {
	return h.Store.Close()
}
