package snapshot

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adriangreen/ideas/internal/catalog"
	"github.com/adriangreen/ideas/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readZip(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	out := make(map[string]string)
	for _, f := range r.File {
		assert.Equal(t, zip.Deflate, f.Method, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = string(data)
	}
	return out
}

func TestDefaultOutput(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "/home/u/Downloads/ideas-snapshot-2026-03-09.zip", DefaultOutput("/home/u", now))
}

func TestCreate(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.Resolve()
	store := catalog.New(cfg, nil, nil, nil)

	writeFile(t, cfg.AnalysisFile("alpha"), "# alpha analysis")
	writeFile(t, cfg.AnalysisFile("beta"), "# beta analysis")
	writeFile(t, cfg.Paths.AnalysisMeta, `{"version":1,"projects":{}}`)
	writeFile(t, cfg.Paths.ProjectInventory, `{"projects":[
		{"name":"alpha","path":"/dev/alpha","category":"cli","tech":"go","last_commit":"2026-01-01","description":"Alpha desc"},
		{"name":"beta","path":"/dev/beta","category":"cli","tech":"rust","summary":"Beta summary","description":"unused"},
		{"name":"gamma","path":"/dev/gamma","category":"api","tech":"go"}
	]}`)
	writeFile(t, filepath.Join(cfg.Paths.IdeasRepo, config.TrackerFile), "folder,tags,description,created,modified,sessions\nnotes,\"a, b\",Notes,2025-01-01,2025-01-02,2\n")
	writeFile(t, filepath.Join(cfg.Paths.IdeasRepo, "README.md"), "# Ideas")

	out := filepath.Join(t.TempDir(), "out", "snap.zip")
	sum, err := Create(store, out)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.AnalysisFiles)
	assert.True(t, sum.Inventory)
	assert.True(t, sum.Tracker)
	assert.Equal(t, 1, sum.Docs, "CLAUDE.md is missing")
	assert.Positive(t, sum.Size)

	files := readZip(t, out)
	assert.Len(t, files, 5)
	assert.Equal(t, "# alpha analysis", files["analysis/alpha.md"])
	assert.NotContains(t, files, "analysis/_meta.json")
	assert.Equal(t, "# Ideas", files["README.md"])

	inv := files["project-inventory.md"]
	assert.Contains(t, inv, "Total projects: 3")
	require.Contains(t, inv, "## cli (2 projects)")
	assert.Less(t, strings.Index(inv, "## api (1 projects)"), strings.Index(inv, "## cli (2 projects)"))
	assert.Contains(t, inv, "- **Description**: Beta summary")
	assert.Contains(t, inv, "- **Description**: Alpha desc")

	assert.Contains(t, files["ideas-tracker.md"], "| notes | a, b | Notes | 2025-01-01 | 2025-01-02 | 2 |")
}

func TestCreateEmpty(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.Resolve()

	out := filepath.Join(t.TempDir(), "empty.zip")
	sum, err := Create(catalog.New(cfg, nil, nil, nil), out)
	require.NoError(t, err)
	assert.Zero(t, sum.AnalysisFiles)
	assert.False(t, sum.Inventory)
	assert.False(t, sum.Tracker)
	assert.Empty(t, readZip(t, out))
}
