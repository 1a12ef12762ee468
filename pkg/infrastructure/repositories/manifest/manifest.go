// Package manifest reads the YAML description of a multi-warehouse batch.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest lists the datasets of a batch run. Relative paths resolve
// against the manifest's directory.
type Manifest struct {
	ProfilesDir string      `yaml:"profiles_dir"`
	Warehouses  []Warehouse `yaml:"warehouses"`
}

// Warehouse is one dataset. Profile is a profile file path; WarehouseID
// looks the profile up in ProfilesDir instead. Both may be empty.
type Warehouse struct {
	Name        string `yaml:"name"`
	Orders      string `yaml:"orders"`
	Sheet       string `yaml:"sheet"`
	Profile     string `yaml:"profile"`
	WarehouseID string `yaml:"warehouse_id"`
}

// Load reads, validates and resolves a manifest file
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	m.resolve(filepath.Dir(path))
	return &m, nil
}

// Validate checks that every warehouse is named once and has an orders file
func (m *Manifest) Validate() error {
	if len(m.Warehouses) == 0 {
		return fmt.Errorf("at least one warehouse is required")
	}
	seen := make(map[string]bool, len(m.Warehouses))
	for i, w := range m.Warehouses {
		if w.Name == "" {
			return fmt.Errorf("warehouse %d: name is required", i+1)
		}
		if seen[w.Name] {
			return fmt.Errorf("duplicate warehouse name %s", w.Name)
		}
		seen[w.Name] = true
		if w.Orders == "" {
			return fmt.Errorf("warehouse %s: orders file is required", w.Name)
		}
		if w.Profile != "" && w.WarehouseID != "" {
			return fmt.Errorf("warehouse %s: set profile or warehouse_id, not both", w.Name)
		}
		if w.WarehouseID != "" && m.ProfilesDir == "" {
			return fmt.Errorf("warehouse %s: warehouse_id needs profiles_dir", w.Name)
		}
	}
	return nil
}

func (m *Manifest) resolve(base string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	m.ProfilesDir = abs(m.ProfilesDir)
	for i := range m.Warehouses {
		m.Warehouses[i].Orders = abs(m.Warehouses[i].Orders)
		m.Warehouses[i].Profile = abs(m.Warehouses[i].Profile)
	}
}
