package repositories

import (
	"context"
	"errors"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// ErrProfileNotFound is returned when no profile exists for a warehouse
var ErrProfileNotFound = errors.New("warehouse profile not found")

// ProfileRepository provides access to warehouse geometry profiles
type ProfileRepository interface {
	GetProfile(ctx context.Context, warehouseID string) (*entities.WarehouseProfile, error)
	SaveProfile(ctx context.Context, profile *entities.WarehouseProfile) error
	ListWarehouses(ctx context.Context) ([]string, error)
}
