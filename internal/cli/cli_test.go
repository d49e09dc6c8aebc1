package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	home  string
	ideas string
	cfg   string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	home := t.TempDir()
	e := &env{
		home:  home,
		ideas: filepath.Join(home, "ideas"),
		cfg:   filepath.Join(home, "config.yaml"),
	}

	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".state"))
	t.Setenv("IDEAS_REPO", "")
	t.Setenv("IDEAS_CONFIG", "")
	t.Setenv("IDEAS_LOG_LEVEL", "")

	e.write(t, e.cfg, `paths:
  ideas_repo: `+e.ideas+`
  developer_dir: `+filepath.Join(home, "dev")+`
  dotfiles_repo: `+filepath.Join(home, "dotfiles")+`
  plans_dir: `+filepath.Join(home, "plans")+`
tools:
  markdown: builtin
  git: go-git
`)
	e.write(t, filepath.Join(e.ideas, "_tracker.csv"), `folder,tags,description,created,modified,sessions
local-notes,sync,Notes that sync,2025-01-01,2025-02-01,3
graph-viz,,Graph explorer,2025-01-05,2025-01-06,1
`)
	e.write(t, filepath.Join(e.ideas, "local-notes", "README.md"), "# Local notes\n\n**Status:** active\n")
	e.write(t, filepath.Join(e.ideas, "_data", "project-inventory.json"), `{
  "projects": [
    {"name": "alpha", "path": "/dev/alpha", "source": "local", "category": "cli", "tech": "go", "last_commit": "2026-01-01", "summary": "Alpha tool"},
    {"name": "beta", "path": "/dev/beta", "source": "github", "category": "tui", "tech": "rust", "last_commit": "2025-12-01", "description": "Beta"}
  ]
}`)
	return e
}

func (e *env) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// run executes icli with args and returns stdout, stderr and the exit code
func (e *env) run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.cfg}, args...))
	code := Execute(cmd)
	return out.String(), errOut.String(), code
}

func TestIdeasCommand(t *testing.T) {
	e := newEnv(t)

	t.Run("lists every idea", func(t *testing.T) {
		out, _, code := e.run(t, "ideas")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "FOLDER")
		assert.Contains(t, out, "local-notes")
		assert.Contains(t, out, "graph-viz")
	})

	t.Run("search filters rows", func(t *testing.T) {
		out, _, code := e.run(t, "ideas", "-q", "GRAPH")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "graph-viz")
		assert.NotContains(t, out, "local-notes")
	})
}

func TestProjectsCommand(t *testing.T) {
	e := newEnv(t)

	out, _, code := e.run(t, "projects", "--category", "tui")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "beta")
	assert.NotContains(t, out, "alpha")

	t.Run("analyzed only", func(t *testing.T) {
		e.write(t, filepath.Join(e.ideas, "_data", "analysis", "alpha.md"), "# alpha\n")
		out, _, code := e.run(t, "projects", "--analyzed")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "alpha")
		assert.NotContains(t, out, "beta")
	})
}

func TestSummaryMissing(t *testing.T) {
	e := newEnv(t)

	out, errOut, code := e.run(t, "summary", "gamma")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No analysis file for 'gamma'")
	assert.Contains(t, errOut, "icli analyze gamma --deep")
}

func TestSearchCommand(t *testing.T) {
	e := newEnv(t)

	out, _, code := e.run(t, "search", "alpha")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "=== Projects (1) ===")
	assert.Contains(t, out, "[cli]")
	assert.Contains(t, out, "total matches for 'alpha'")
	assert.NotContains(t, out, "=== Ideas")
}

func TestConfigErrors(t *testing.T) {
	e := newEnv(t)

	t.Run("explicit config must exist", func(t *testing.T) {
		var errOut bytes.Buffer
		cmd := NewRootCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&errOut)
		cmd.SetArgs([]string{"--config", filepath.Join(e.home, "missing.yaml"), "ideas"})
		assert.Equal(t, 1, Execute(cmd))
		assert.Contains(t, errOut.String(), "failed to read config file")
	})

	t.Run("unknown markdown backend", func(t *testing.T) {
		bad := filepath.Join(e.home, "bad.yaml")
		e.write(t, bad, "tools:\n  markdown: pandoc\n")
		var errOut bytes.Buffer
		cmd := NewRootCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&errOut)
		cmd.SetArgs([]string{"--config", bad, "ideas"})
		assert.Equal(t, 1, Execute(cmd))
	})
}

func TestTUIRootCommand(t *testing.T) {
	cmd := NewTUIRootCommand()
	assert.Equal(t, "ideas-tui", cmd.Name())
	assert.NotNil(t, cmd.Flags().Lookup("clear-state"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))

	root := NewRootCommand()
	sub, _, err := root.Find([]string{"tui"})
	require.NoError(t, err)
	assert.Equal(t, "tui", sub.Name())
}
