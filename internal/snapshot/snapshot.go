// Package snapshot bundles the analysis files, the inventories rendered as
// markdown and the repo docs into one zip archive for upload elsewhere.
package snapshot

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adriangreen/ideas/internal/catalog"
	"github.com/adriangreen/ideas/internal/config"
)

// repoDocs are copied verbatim from the ideas repo root when present
var repoDocs = []string{"README.md", "CLAUDE.md"}

// Summary describes what went into an archive
type Summary struct {
	Path          string
	AnalysisFiles int
	Inventory     bool
	Tracker       bool
	Docs          int
	Size          int64
}

// DefaultOutput is ~/Downloads/ideas-snapshot-YYYY-MM-DD.zip
func DefaultOutput(home string, now time.Time) string {
	return filepath.Join(home, "Downloads", fmt.Sprintf("ideas-snapshot-%s.zip", now.Format("2006-01-02")))
}

// Create writes the archive to output. Sections whose source is missing are
// skipped.
func Create(store *catalog.Store, output string) (Summary, error) {
	cfg := store.Config()
	sum := Summary{Path: output}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return sum, fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(output)
	if err != nil {
		return sum, fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	if sum.AnalysisFiles, err = addAnalysis(zw, cfg.Paths.AnalysisDir); err != nil {
		return sum, err
	}

	if exists(cfg.Paths.ProjectInventory) {
		projects, err := store.LoadProjects()
		if err != nil {
			return sum, err
		}
		if err := addString(zw, "project-inventory.md", InventoryMarkdown(projects)); err != nil {
			return sum, err
		}
		sum.Inventory = true
	}

	root := cfg.Paths.IdeasRepo
	if exists(filepath.Join(root, config.TrackerFile)) {
		rows, err := catalog.ReadTracker(root)
		if err != nil {
			return sum, err
		}
		if err := addString(zw, "ideas-tracker.md", TrackerMarkdown(rows)); err != nil {
			return sum, err
		}
		sum.Tracker = true
	}

	for _, name := range repoDocs {
		path := filepath.Join(root, name)
		if !exists(path) {
			continue
		}
		if err := addFile(zw, name, path); err != nil {
			return sum, err
		}
		sum.Docs++
	}

	if err := zw.Close(); err != nil {
		return sum, fmt.Errorf("failed to finish snapshot: %w", err)
	}
	if info, err := f.Stat(); err == nil {
		sum.Size = info.Size()
	}
	return sum, nil
}

func addAnalysis(zw *zip.Writer, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read analysis directory: %w", err)
	}

	count := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		if err := addFile(zw, "analysis/"+e.Name(), filepath.Join(dir, e.Name())); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func addFile(zw *zip.Writer, name, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer src.Close()

	w, err := create(zw, name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	return nil
}

func addString(zw *zip.Writer, name, content string) error {
	w, err := create(zw, name)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	return nil
}

func create(zw *zip.Writer, name string) (io.Writer, error) {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", name, err)
	}
	return w, nil
}

// InventoryMarkdown groups projects by category, categories sorted and
// projects in inventory order.
func InventoryMarkdown(projects []catalog.Project) string {
	var b strings.Builder
	b.WriteString("# Project Inventory\n\n")
	fmt.Fprintf(&b, "Total projects: %d\n\n", len(projects))

	byCategory := make(map[string][]catalog.Project)
	for _, p := range projects {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	slices.Sort(categories)

	for _, c := range categories {
		group := byCategory[c]
		fmt.Fprintf(&b, "## %s (%d projects)\n\n", c, len(group))
		for _, p := range group {
			fmt.Fprintf(&b, "### %s\n\n", p.Name)
			fmt.Fprintf(&b, "- **Path**: %s\n", p.Path)
			fmt.Fprintf(&b, "- **Tech**: %s\n", p.Tech)
			fmt.Fprintf(&b, "- **Last commit**: %s\n", p.LastCommit)
			fmt.Fprintf(&b, "- **Description**: %s\n\n", p.Blurb())
		}
	}
	return b.String()
}

// TrackerMarkdown renders the tracker as a table
func TrackerMarkdown(rows []catalog.TrackerRow) string {
	var b strings.Builder
	b.WriteString("# Ideas Tracker\n\n")
	b.WriteString("| Folder | Tags | Description | Created | Modified | Sessions |\n")
	b.WriteString("|--------|------|-------------|---------|----------|----------|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			r.Folder, r.Tags, r.Description, r.Created, r.Modified, r.Sessions)
	}
	return b.String()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
