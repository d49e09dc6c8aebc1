package gitinfo

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

const shortHashLen = 7

// GoGit reads repositories in-process with go-git
type GoGit struct {
	logger *slog.Logger
}

// NewGoGit returns an in-process client
func NewGoGit(logger *slog.Logger) *GoGit {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GoGit{logger: logger}
}

func (g *GoGit) open(dir string, detect bool) (*git.Repository, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: detect})
	if err != nil {
		g.logger.Debug("go-git open failed", "dir", dir, "err", err)
		return nil, false
	}
	return repo, true
}

func (g *GoGit) head(dir string) (*git.Repository, plumbing.Hash, bool) {
	repo, ok := g.open(dir, false)
	if !ok {
		return nil, plumbing.ZeroHash, false
	}
	ref, err := repo.Head()
	if err != nil {
		g.logger.Debug("go-git head failed", "dir", dir, "err", err)
		return nil, plumbing.ZeroHash, false
	}
	return repo, ref.Hash(), true
}

func (g *GoGit) HeadCommit(_ context.Context, dir string) (string, bool) {
	_, hash, ok := g.head(dir)
	if !ok {
		return "", false
	}
	return hash.String()[:shortHashLen], true
}

func (g *GoGit) CountCommitsSince(ctx context.Context, dir, since string) (int, bool) {
	if since == "" {
		return 0, false
	}
	repo, head, ok := g.head(dir)
	if !ok {
		return 0, false
	}
	base, err := repo.ResolveRevision(plumbing.Revision(since))
	if err != nil {
		g.logger.Debug("go-git resolve failed", "dir", dir, "rev", since, "err", err)
		return 0, false
	}

	seen := make(map[plumbing.Hash]bool)
	if err := g.walk(ctx, repo, *base, func(c *object.Commit) error {
		seen[c.Hash] = true
		return nil
	}); err != nil {
		return 0, false
	}

	count := 0
	if err := g.walk(ctx, repo, head, func(c *object.Commit) error {
		if !seen[c.Hash] {
			count++
		}
		return nil
	}); err != nil {
		return 0, false
	}
	return count, true
}

func (g *GoGit) CommitCount(ctx context.Context, dir string) int {
	repo, head, ok := g.head(dir)
	if !ok {
		return 0
	}
	count := 0
	if err := g.walk(ctx, repo, head, func(*object.Commit) error {
		count++
		return nil
	}); err != nil {
		return 0
	}
	return count
}

func (g *GoGit) LastCommitWithin(_ context.Context, dir string, days int) (Commit, bool) {
	repo, head, ok := g.head(dir)
	if !ok {
		return Commit{}, false
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	iter, err := repo.Log(&git.LogOptions{From: head, Order: git.LogOrderCommitterTime, Since: &cutoff})
	if err != nil {
		return Commit{}, false
	}
	defer iter.Close()

	c, err := iter.Next()
	if err != nil {
		return Commit{}, false
	}
	when := c.Committer.When
	subject, _, _ := strings.Cut(c.Message, "\n")
	return Commit{Date: when.Format("2006-01-02"), Subject: subject, When: when}, true
}

func (g *GoGit) Toplevel(_ context.Context, dir string) (string, bool) {
	repo, ok := g.open(dir, true)
	if !ok {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", false
	}
	return wt.Filesystem.Root(), true
}

// walk visits every commit reachable from start, stopping early when ctx ends
func (g *GoGit) walk(ctx context.Context, repo *git.Repository, start plumbing.Hash, fn func(*object.Commit) error) error {
	iter, err := repo.Log(&git.LogOptions{From: start})
	if err != nil {
		return err
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if ctx.Err() != nil {
			return storer.ErrStop
		}
		return fn(c)
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return err
	}
	return ctx.Err()
}
