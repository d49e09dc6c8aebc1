package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// HasAnalysisFile reports whether an analysis markdown file exists
func (s *Store) HasAnalysisFile(name string) bool {
	_, err := os.Stat(s.cfg.AnalysisFile(name))
	return err == nil
}

// AnalysisContent returns the full analysis markdown for a project
func (s *Store) AnalysisContent(name string) (string, error) {
	data, err := os.ReadFile(s.cfg.AnalysisFile(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w for '%s'", ErrNoAnalysis, name)
		}
		return "", fmt.Errorf("failed to read analysis for %s: %w", name, err)
	}
	return string(data), nil
}

// AnalysisSummary returns the summary section of a project's analysis, or
// ok=false when the file is missing or has no summary.
func (s *Store) AnalysisSummary(name string) (string, bool) {
	content, err := s.AnalysisContent(name)
	if err != nil {
		return "", false
	}
	summary := ExtractSummary(content)
	return summary, summary != ""
}

// ExtractSummary collects lines from the first title or quote line up to
// the first rule or "## Deep Dive" heading.
func ExtractSummary(content string) string {
	var b strings.Builder
	inSummary := false

	for line := range strings.Lines(content) {
		line = strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "> ") {
			inSummary = true
		}
		if line == "---" || strings.HasPrefix(line, "## Deep Dive") {
			break
		}
		if inSummary {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// LoadAnalysisMeta reads _meta.json. A missing file is empty metadata.
func (s *Store) LoadAnalysisMeta() (*AnalysisMeta, error) {
	data, err := os.ReadFile(s.cfg.Paths.AnalysisMeta)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewAnalysisMeta(), nil
		}
		return nil, fmt.Errorf("failed to read analysis metadata: %w", err)
	}

	meta := NewAnalysisMeta()
	if err := json.Unmarshal(data, meta); err != nil {
		return nil, fmt.Errorf("failed to parse analysis metadata: %w", err)
	}
	if meta.Projects == nil {
		meta.Projects = make(map[string]ProjectAnalysis)
	}
	return meta, nil
}

// SaveAnalysisMeta writes _meta.json pretty-printed. There is no locking;
// the last writer wins.
func (s *Store) SaveAnalysisMeta(meta *AnalysisMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis metadata: %w", err)
	}
	path := s.cfg.Paths.AnalysisMeta
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create analysis directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write analysis metadata: %w", err)
	}
	return nil
}

// CheckDirty compares the project's head with its analyzed commit. Commits
// since are only counted when both the metadata entry and HEAD exist.
func (s *Store) CheckDirty(ctx context.Context, p Project, meta *AnalysisMeta) DirtyProject {
	d := DirtyProject{Name: p.Name, Path: p.Path, CommitsSince: -1}

	head, headOK := s.git.HeadCommit(ctx, p.Path)
	if headOK {
		d.CurrentCommit = head
	}

	entry, ok := meta.Projects[p.Name]
	if !ok {
		return d
	}
	d.AnalyzedAt = entry.AnalyzedAt
	d.AnalyzedCommit = entry.AnalyzedCommit
	if headOK {
		if n, ok := s.git.CountCommitsSince(ctx, p.Path, entry.AnalyzedCommit); ok {
			d.CommitsSince = n
		}
	}
	return d
}

// NeedsAnalysis reports whether analyze should run without --force
func (d DirtyProject) NeedsAnalysis() bool {
	return !d.Analyzed() || d.Stale()
}

// Orphan is an analysis file whose project left the inventory
type Orphan struct {
	Name string
	Path string
}

// OrphanedAnalyses lists analysis markdown files that match no project,
// sorted by name.
func (s *Store) OrphanedAnalyses(projects []Project) ([]Orphan, error) {
	entries, err := os.ReadDir(s.cfg.Paths.AnalysisDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read analysis directory: %w", err)
	}

	known := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		known[p.Name] = struct{}{}
	}

	var orphans []Orphan
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		if _, ok := known[name]; ok {
			continue
		}
		orphans = append(orphans, Orphan{Name: name, Path: filepath.Join(s.cfg.Paths.AnalysisDir, entry.Name())})
	}

	slices.SortFunc(orphans, func(a, b Orphan) int { return strings.Compare(a.Name, b.Name) })
	return orphans, nil
}

// RemoveOrphans deletes the files and drops their metadata entries
func (s *Store) RemoveOrphans(orphans []Orphan, meta *AnalysisMeta) error {
	for _, o := range orphans {
		if err := os.Remove(o.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete %s: %w", o.Path, err)
		}
		delete(meta.Projects, o.Name)
	}
	return s.SaveAnalysisMeta(meta)
}
