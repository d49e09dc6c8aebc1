package catalog

import (
	"cmp"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// projectMarkers are the files that make a directory count as a project
var projectMarkers = []string{".git", "Cargo.toml", "package.json", "go.mod"}

// DetectUntracked scans the immediate children of the developer directory
// for repositories missing from the inventory, most commits first.
func (s *Store) DetectUntracked(ctx context.Context) ([]UntrackedProject, error) {
	projects, err := s.LoadProjects()
	if err != nil {
		s.logger.Warn("inventory unreadable during discovery", "err", err)
		projects = nil
	}
	known := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		known[normalizePath(p.Path)] = struct{}{}
	}

	var untracked []UntrackedProject
	for _, candidate := range discoverProjectDirs(s.cfg.Paths.DeveloperDir) {
		if _, ok := known[normalizePath(candidate)]; ok {
			continue
		}

		u := UntrackedProject{
			Name: filepath.Base(candidate),
			Path: candidate,
			Tech: InferTech(candidate),
		}
		if exists(filepath.Join(candidate, ".git")) {
			u.Commits = s.git.CommitCount(ctx, candidate)
		}
		untracked = append(untracked, u)
	}

	slices.SortStableFunc(untracked, func(a, b UntrackedProject) int {
		return cmp.Compare(b.Commits, a.Commits)
	})
	return untracked, nil
}

// InferTech guesses the stack from marker files: rust, then go, then js
func InferTech(dir string) string {
	switch {
	case exists(filepath.Join(dir, "Cargo.toml")):
		return "rust"
	case exists(filepath.Join(dir, "go.mod")):
		return "go"
	case exists(filepath.Join(dir, "package.json")):
		return "js"
	default:
		return "unknown"
	}
}

func discoverProjectDirs(root string) []string {
	if root == "" {
		return nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var results []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		candidate := filepath.Join(root, name)
		if info, err := os.Stat(candidate); err != nil || !info.IsDir() {
			continue
		}
		if isProject(candidate) {
			results = append(results, candidate)
		}
	}
	return results
}

func isProject(path string) bool {
	for _, marker := range projectMarkers {
		if exists(filepath.Join(path, marker)) {
			return true
		}
	}
	return false
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func normalizePath(path string) string {
	return strings.TrimRight(path, "/")
}
