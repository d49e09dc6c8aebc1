package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type projectInventory struct {
	Projects []Project `json:"projects"`
}

// LoadProjects reads the project inventory. A missing file is an empty list.
func (s *Store) LoadProjects() ([]Project, error) {
	path := s.cfg.Paths.ProjectInventory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Project{}, nil
		}
		return nil, fmt.Errorf("failed to read project inventory: %w", err)
	}

	var inv projectInventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse project inventory %s: %w", path, err)
	}
	if inv.Projects == nil {
		inv.Projects = []Project{}
	}
	return inv.Projects, nil
}

// SaveProjects writes the inventory, keeping any other top-level keys the
// scan script stored alongside the project list.
func (s *Store) SaveProjects(projects []Project) error {
	return saveInventory(s.cfg.Paths.ProjectInventory, "projects", projects)
}

// FindProject returns the project with the given name
func FindProject(projects []Project, name string) (Project, error) {
	for _, p := range projects {
		if p.Name == name {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("%w: '%s'", ErrProjectNotFound, name)
}

// saveInventory rewrites one list key of a JSON document
func saveInventory(path, key string, list any) error {
	doc := make(map[string]json.RawMessage)
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &doc); err != nil {
			doc = make(map[string]json.RawMessage)
		}
	}

	encoded, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	doc[key] = encoded

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
