// Package memory provides in-process repository implementations.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/domain/repositories"
)

// ProfileRepository provides in-memory warehouse profile storage
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*entities.WarehouseProfile
}

// NewProfileRepository creates a new in-memory profile repository
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[string]*entities.WarehouseProfile)}
}

// Verify interface compliance
var _ repositories.ProfileRepository = (*ProfileRepository)(nil)

// GetProfile returns a copy of the stored profile
func (r *ProfileRepository) GetProfile(_ context.Context, warehouseID string) (*entities.WarehouseProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[warehouseID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repositories.ErrProfileNotFound, warehouseID)
	}
	return p.Normalized(), nil
}

// SaveProfile stores a normalized copy of the profile
func (r *ProfileRepository) SaveProfile(_ context.Context, p *entities.WarehouseProfile) error {
	if p == nil || p.WarehouseID == "" {
		return fmt.Errorf("profile requires a warehouse id")
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile %s: %w", p.WarehouseID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.WarehouseID] = p.Normalized()
	return nil
}

// ListWarehouses returns the stored warehouse ids, sorted
func (r *ProfileRepository) ListWarehouses(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
