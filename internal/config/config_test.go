package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := LoadFrom(home, "", envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Developer", "ideas"), cfg.Paths.IdeasRepo)
	assert.Equal(t, filepath.Join(home, "Developer"), cfg.Paths.DeveloperDir)
	assert.Equal(t, filepath.Join(home, "dotfiles"), cfg.Paths.DotfilesRepo)
	assert.Equal(t, filepath.Join(home, ".claude", "plans"), cfg.Paths.PlansDir)

	assert.Equal(t, filepath.Join(home, "Developer", "ideas", "_data"), cfg.Paths.IdeasDataDir)
	assert.Equal(t, filepath.Join(cfg.Paths.IdeasDataDir, "analysis"), cfg.Paths.AnalysisDir)
	assert.Equal(t, filepath.Join(cfg.Paths.IdeasDataDir, "project-inventory.json"), cfg.Paths.ProjectInventory)
	assert.Equal(t, filepath.Join(cfg.Paths.AnalysisDir, "_meta.json"), cfg.Paths.AnalysisMeta)
	assert.Equal(t, filepath.Join(home, "dotfiles", "_data", "dx-inventory.json"), cfg.Paths.DxInventory)

	scripts := filepath.Join(home, "dotfiles", "scripts", "ideas", "mq")
	assert.Equal(t, filepath.Join(scripts, "projects-scan.sh"), cfg.Scripts.ScanInventory)
	assert.Equal(t, filepath.Join(scripts, "analyze-project.sh"), cfg.Scripts.Analyze)
	assert.Equal(t, filepath.Join(scripts, "analyze-project-deep.sh"), cfg.Scripts.AnalyzeDeep)
	assert.Equal(t, filepath.Join(scripts, "generate-summary.sh"), cfg.Scripts.GenerateSummary)

	assert.Equal(t, 100*time.Millisecond, cfg.TUI.PollInterval)
	assert.Equal(t, 3*time.Second, cfg.TUI.MessageTTL)
	assert.True(t, cfg.TUI.Watch)
	assert.Equal(t, MarkdownMQ, cfg.Tools.Markdown)
	assert.Equal(t, GitCLI, cfg.Tools.Git)
	assert.Equal(t, "vim", cfg.Tools.Editor)
	assert.Empty(t, cfg.Source)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	home := t.TempDir()

	cfg, err := LoadFrom(home, "", envMap(map[string]string{
		EnvIdeasRepo:    "/srv/ideas",
		EnvDeveloperDir: "~/code",
		EnvDotfilesRepo: "/srv/dotfiles",
		EnvPlansDir:     "/srv/plans",
		"EDITOR":        "nvim",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/srv/ideas", cfg.Paths.IdeasRepo)
	assert.Equal(t, filepath.Join(home, "code"), cfg.Paths.DeveloperDir)
	assert.Equal(t, "/srv/plans", cfg.Paths.PlansDir)
	assert.Equal(t, "/srv/ideas/_data/project-inventory.json", cfg.Paths.ProjectInventory)
	assert.Equal(t, "/srv/dotfiles/_data/dx-inventory.json", cfg.Paths.DxInventory)
	assert.Equal(t, "/srv/dotfiles/scripts/ideas/mq/analyze-project.sh", cfg.Scripts.Analyze)
	assert.Equal(t, "nvim", cfg.Tools.Editor)
}

func TestLoadFrom_ConfigFile(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, ".config", "ideas", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`
paths:
  ideas_repo: ~/work/ideas
scripts:
  analyze: /opt/bin/analyze.sh
tools:
  markdown: builtin
  git: go-git
tui:
  poll_interval: 250ms
  watch: false
  keys:
    analyze: x
log:
  level: debug
`), 0644))

	t.Run("file values merge over defaults", func(t *testing.T) {
		cfg, err := LoadFrom(home, "", envMap(nil))
		require.NoError(t, err)

		assert.Equal(t, path, cfg.Source)
		assert.Equal(t, filepath.Join(home, "work", "ideas"), cfg.Paths.IdeasRepo)
		assert.Equal(t, "/opt/bin/analyze.sh", cfg.Scripts.Analyze)
		assert.Equal(t, filepath.Join(home, "dotfiles", "scripts", "ideas", "mq", "projects-scan.sh"), cfg.Scripts.ScanInventory)
		assert.Equal(t, MarkdownBuiltin, cfg.Tools.Markdown)
		assert.Equal(t, GitGoGit, cfg.Tools.Git)
		assert.Equal(t, 250*time.Millisecond, cfg.TUI.PollInterval)
		assert.Equal(t, 3*time.Second, cfg.TUI.MessageTTL)
		assert.False(t, cfg.TUI.Watch)
		assert.Equal(t, map[string]string{"analyze": "x"}, cfg.TUI.Keys)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		cfg, err := LoadFrom(home, "", envMap(map[string]string{EnvIdeasRepo: "/elsewhere"}))
		require.NoError(t, err)
		assert.Equal(t, "/elsewhere", cfg.Paths.IdeasRepo)
	})
}

func TestLoadFrom_Errors(t *testing.T) {
	home := t.TempDir()

	t.Run("explicit file must exist", func(t *testing.T) {
		_, err := LoadFrom(home, filepath.Join(home, "missing.yaml"), envMap(nil))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(home, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("paths: [unclosed"), 0644))
		_, err := LoadFrom(home, path, envMap(nil))
		assert.Error(t, err)
	})

	t.Run("invalid backend", func(t *testing.T) {
		path := filepath.Join(home, "backend.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tools:\n  git: svn\n"), 0644))
		_, err := LoadFrom(home, path, envMap(nil))
		assert.ErrorContains(t, err, "invalid git backend")
	})

	t.Run("empty home", func(t *testing.T) {
		_, err := LoadFrom("", "", envMap(nil))
		assert.Error(t, err)
	})
}

func TestFindIdeasRepo(t *testing.T) {
	home := t.TempDir()
	cfg, err := LoadFrom(home, "", envMap(nil))
	require.NoError(t, err)

	withTracker := func(dir string) string {
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, TrackerFile), []byte("folder\n"), 0644))
		return dir
	}

	t.Run("working directory first", func(t *testing.T) {
		cwd := withTracker(filepath.Join(home, "cwd-repo"))
		root, err := cfg.FindIdeasRepo(cwd, func(string) (string, bool) {
			t.Fatal("toplevel should not matter when cwd has the tracker")
			return "", false
		})
		require.NoError(t, err)
		assert.Equal(t, cwd, root)
	})

	t.Run("git toplevel second", func(t *testing.T) {
		top := withTracker(filepath.Join(home, "top-repo"))
		sub := filepath.Join(top, "nested", "dir")
		require.NoError(t, os.MkdirAll(sub, 0755))

		root, err := cfg.FindIdeasRepo(sub, func(string) (string, bool) { return top, true })
		require.NoError(t, err)
		assert.Equal(t, top, root)
	})

	t.Run("configured repo last", func(t *testing.T) {
		configured := withTracker(cfg.Paths.IdeasRepo)
		root, err := cfg.FindIdeasRepo(t.TempDir(), nil)
		require.NoError(t, err)
		assert.Equal(t, configured, root)
		require.NoError(t, os.Remove(filepath.Join(configured, TrackerFile)))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := cfg.FindIdeasRepo(t.TempDir(), func(string) (string, bool) { return "", false })
		assert.True(t, errors.Is(err, ErrRepoNotFound))
		assert.Contains(t, err.Error(), "no _tracker.csv found")
	})
}

func TestAnalysisFile(t *testing.T) {
	cfg := Default("/home/u")
	cfg.Resolve()
	assert.Equal(t, "/home/u/Developer/ideas/_data/analysis/demo.md", cfg.AnalysisFile("demo"))
}
