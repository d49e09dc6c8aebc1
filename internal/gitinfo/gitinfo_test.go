package gitinfo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/adriangreen/ideas/internal/config"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository with n commits, the last one committed now
func initRepo(t *testing.T, n int) (string, []plumbing.Hash) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	var hashes []plumbing.Hash
	for i := 0; i < n; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte(fmt.Sprintf("revision %d\n", i)), 0644))
		_, err := wt.Add("notes.md")
		require.NoError(t, err)

		when := time.Now().Add(time.Duration(i-n+1) * time.Minute)
		hash, err := wt.Commit(fmt.Sprintf("commit %d\n\nbody", i), &git.CommitOptions{
			Author: &object.Signature{Name: "Test", Email: "test@example.com", When: when},
		})
		require.NoError(t, err)
		hashes = append(hashes, hash)
	}
	return dir, hashes
}

func backends(t *testing.T) map[string]Client {
	clients := map[string]Client{"go-git": NewGoGit(nil)}
	if _, err := exec.LookPath("git"); err == nil {
		clients["cli"] = NewCLI("git", nil)
	}
	return clients
}

func TestNew(t *testing.T) {
	assert.IsType(t, &GoGit{}, New(config.GitGoGit, nil))
	assert.IsType(t, &CLI{}, New(config.GitCLI, nil))
	assert.IsType(t, &CLI{}, New("", nil))
}

func TestClients(t *testing.T) {
	ctx := context.Background()
	dir, hashes := initRepo(t, 4)

	for name, client := range backends(t) {
		t.Run(name, func(t *testing.T) {
			head, ok := client.HeadCommit(ctx, dir)
			require.True(t, ok)
			assert.Equal(t, hashes[3].String()[:7], head[:7])

			since, ok := client.CountCommitsSince(ctx, dir, hashes[1].String()[:7])
			require.True(t, ok)
			assert.Equal(t, 2, since)

			upToDate, ok := client.CountCommitsSince(ctx, dir, head)
			require.True(t, ok)
			assert.Equal(t, 0, upToDate)

			assert.Equal(t, 4, client.CommitCount(ctx, dir))

			last, ok := client.LastCommitWithin(ctx, dir, 7)
			require.True(t, ok)
			assert.Equal(t, "commit 3", last.Subject)
			assert.Equal(t, time.Now().Format("2006-01-02")[:4], last.Date[:4])

			sub := filepath.Join(dir, "nested")
			require.NoError(t, os.MkdirAll(sub, 0755))
			root, ok := client.Toplevel(ctx, sub)
			require.True(t, ok)
			want, _ := filepath.EvalSymlinks(dir)
			got, _ := filepath.EvalSymlinks(root)
			assert.Equal(t, want, got)
		})
	}
}

func TestClients_Degrade(t *testing.T) {
	ctx := context.Background()
	notRepo := t.TempDir()
	dir, _ := initRepo(t, 1)

	for name, client := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := client.HeadCommit(ctx, notRepo)
			assert.False(t, ok)

			_, ok = client.CountCommitsSince(ctx, notRepo, "abc1234")
			assert.False(t, ok)

			_, ok = client.CountCommitsSince(ctx, dir, "")
			assert.False(t, ok)

			_, ok = client.CountCommitsSince(ctx, dir, "0000000")
			assert.False(t, ok, "unknown revision must not count")

			assert.Equal(t, 0, client.CommitCount(ctx, notRepo))

			_, ok = client.LastCommitWithin(ctx, notRepo, 7)
			assert.False(t, ok)
		})
	}
}

func TestParseLogLine(t *testing.T) {
	c, ok := parseLogLine("2024-05-01 10:00:00 +0200|Fix parser | again")
	require.True(t, ok)
	assert.Equal(t, "2024-05-01", c.Date)
	assert.Equal(t, "Fix parser | again", c.Subject)
	assert.Equal(t, 2024, c.When.Year())

	_, ok = parseLogLine("|no date")
	assert.False(t, ok)
}

func TestToplevelFunc(t *testing.T) {
	dir, _ := initRepo(t, 1)
	fn := ToplevelFunc(context.Background(), NewGoGit(nil))
	_, ok := fn(dir)
	assert.True(t, ok)
}
