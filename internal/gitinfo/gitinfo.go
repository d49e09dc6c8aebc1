// Package gitinfo answers the handful of read-only questions the inventory
// asks about project repositories. Every query degrades to ok=false (or 0)
// instead of returning an error.
package gitinfo

import (
	"context"
	"log/slog"
	"time"

	"github.com/adriangreen/ideas/internal/config"
)

// Commit is the most recent commit inside an activity window
type Commit struct {
	Date    string // YYYY-MM-DD, committer date
	Subject string
	When    time.Time
}

// Client is implemented by the git CLI backend and the go-git backend
type Client interface {
	// HeadCommit returns the short hash of HEAD
	HeadCommit(ctx context.Context, dir string) (string, bool)
	// CountCommitsSince counts commits reachable from HEAD but not from since
	CountCommitsSince(ctx context.Context, dir, since string) (int, bool)
	// CommitCount counts all commits reachable from HEAD, 0 on failure
	CommitCount(ctx context.Context, dir string) int
	// LastCommitWithin returns the newest commit younger than days
	LastCommitWithin(ctx context.Context, dir string, days int) (Commit, bool)
	// Toplevel returns the worktree root containing dir
	Toplevel(ctx context.Context, dir string) (string, bool)
}

// New returns the backend selected by the configuration
func New(backend string, logger *slog.Logger) Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if backend == config.GitGoGit {
		return &GoGit{logger: logger}
	}
	return &CLI{Binary: "git", logger: logger}
}

// ToplevelFunc adapts a client to the repo discovery callback in config
func ToplevelFunc(ctx context.Context, c Client) func(string) (string, bool) {
	return func(dir string) (string, bool) {
		return c.Toplevel(ctx, dir)
	}
}
