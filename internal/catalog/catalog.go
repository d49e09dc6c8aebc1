// Package catalog loads and saves the inventory records (ideas, projects,
// plans, dotfiles items and analysis metadata) and answers the derived
// questions asked about them: staleness, untracked repositories and recent
// activity.
//
// Missing optional data (no inventory file, no plans directory) loads as an
// empty collection. Parse and IO errors are returned to the caller.
package catalog

import (
	"errors"
	"log/slog"

	"github.com/adriangreen/ideas/internal/config"
	"github.com/adriangreen/ideas/internal/gitinfo"
	"github.com/adriangreen/ideas/internal/mdquery"
)

var (
	// ErrProjectNotFound is returned when a project name is not in the inventory
	ErrProjectNotFound = errors.New("project not found in inventory")
	// ErrNoAnalysis is returned when a project has no analysis file
	ErrNoAnalysis = errors.New("no analysis file")
)

// Store resolves every record against one configuration. It holds no
// loaded data, so a Store can be shared by the CLI and by background tasks.
type Store struct {
	cfg    *config.Config
	git    gitinfo.Client
	md     mdquery.Querier
	logger *slog.Logger
}

// New creates a store. A nil logger discards.
func New(cfg *config.Config, git gitinfo.Client, md mdquery.Querier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{cfg: cfg, git: git, md: md, logger: logger}
}

// Config returns the configuration the store reads from
func (s *Store) Config() *config.Config {
	return s.cfg
}

// Git returns the git client used for derived lookups
func (s *Store) Git() gitinfo.Client {
	return s.git
}
