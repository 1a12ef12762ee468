// Package profile stores warehouse geometry profiles as YAML files.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/domain/repositories"
)

const fileExt = ".yaml"

// LoadFile reads and validates one profile file
func LoadFile(path string) (*entities.WarehouseProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return Decode(raw)
}

// Decode parses and validates profile YAML. Unknown keys are rejected.
func Decode(raw []byte) (*entities.WarehouseProfile, error) {
	dec := yaml.NewDecoder(strings.NewReader(string(raw)))
	dec.KnownFields(true)

	var p entities.WarehouseProfile
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", p.WarehouseID, err)
	}
	return &p, nil
}

// FileRepository keeps one <warehouse_id>.yaml per warehouse in a directory
type FileRepository struct {
	dir string
}

// Verify interface compliance
var _ repositories.ProfileRepository = (*FileRepository)(nil)

// NewFileRepository creates a repository rooted at dir
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// GetProfile loads the profile of warehouseID
func (r *FileRepository) GetProfile(_ context.Context, warehouseID string) (*entities.WarehouseProfile, error) {
	path, err := r.pathFor(warehouseID)
	if err != nil {
		return nil, err
	}
	p, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", repositories.ErrProfileNotFound, warehouseID)
	}
	if err != nil {
		return nil, err
	}
	if p.WarehouseID == "" {
		p.WarehouseID = warehouseID
	}
	return p, nil
}

// SaveProfile writes the profile, replacing any previous version
func (r *FileRepository) SaveProfile(_ context.Context, p *entities.WarehouseProfile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile %s: %w", p.WarehouseID, err)
	}
	path, err := r.pathFor(p.WarehouseID)
	if err != nil {
		return err
	}
	raw, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile %s: %w", p.WarehouseID, err)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", p.WarehouseID, err)
	}
	return nil
}

// ListWarehouses returns the ids of every stored profile, sorted
func (r *FileRepository) ListWarehouses(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != fileExt {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *FileRepository) pathFor(warehouseID string) (string, error) {
	if warehouseID == "" || strings.ContainsAny(warehouseID, `/\`) || warehouseID == "." || warehouseID == ".." {
		return "", fmt.Errorf("invalid warehouse id %q", warehouseID)
	}
	return filepath.Join(r.dir, warehouseID+fileExt), nil
}
