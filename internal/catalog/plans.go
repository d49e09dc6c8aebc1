package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const noTitle = "(no title)"

// LoadPlans lists the markdown plans, newest first. A missing plans
// directory is an empty list.
func (s *Store) LoadPlans(ctx context.Context) ([]Plan, error) {
	dir := s.cfg.Paths.PlansDir
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Plan{}, nil
		}
		return nil, fmt.Errorf("failed to read plans directory: %w", err)
	}

	plans := []Plan{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		modified := "-"
		if info, err := entry.Info(); err == nil {
			modified = info.ModTime().Format("2006-01-02")
		}

		title, ok := s.md.Title(ctx, path)
		if !ok {
			title = noTitle
		}

		plans = append(plans, Plan{
			Name:     strings.TrimSuffix(entry.Name(), ".md"),
			Title:    title,
			Modified: modified,
			Path:     path,
		})
	}

	slices.SortStableFunc(plans, func(a, b Plan) int {
		return cmp.Compare(b.Modified, a.Modified)
	})
	return plans, nil
}

// ReadPlan returns the raw markdown of a plan
func ReadPlan(p Plan) (string, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read plan %s: %w", p.Name, err)
	}
	return string(data), nil
}
