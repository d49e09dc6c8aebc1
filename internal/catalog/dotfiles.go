package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type dxInventory struct {
	Items []DxItem `json:"items"`
}

// LoadDotfiles reads the DX inventory. A missing file is an empty list.
func (s *Store) LoadDotfiles() ([]DxItem, error) {
	path := s.cfg.Paths.DxInventory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []DxItem{}, nil
		}
		return nil, fmt.Errorf("failed to read dx inventory: %w", err)
	}

	var inv dxInventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse dx inventory %s: %w", path, err)
	}
	if inv.Items == nil {
		inv.Items = []DxItem{}
	}
	return inv.Items, nil
}

// SaveDotfiles writes the DX inventory item list
func (s *Store) SaveDotfiles(items []DxItem) error {
	return saveInventory(s.cfg.Paths.DxInventory, "items", items)
}
