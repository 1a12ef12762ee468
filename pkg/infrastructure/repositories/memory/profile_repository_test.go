package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/domain/repositories"
)

func TestProfileRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository()

	profile := &entities.WarehouseProfile{
		WarehouseID: "WH-1",
		Zones:       []string{"a", "b"},
		Coordinates: map[string]entities.Point{"a-01-01": {X: 1, Y: 2}},
	}
	if err := repo.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}

	got, err := repo.GetProfile(ctx, "WH-1")
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if got.Zones[0] != "A" {
		t.Errorf("Expected zone names upper-cased, got %v", got.Zones)
	}
	if _, ok := got.Coordinates["A-01-01"]; !ok {
		t.Errorf("Expected normalized location code, got %v", got.Coordinates)
	}

	// callers cannot mutate stored state through returned copies
	got.Zones[0] = "Z"
	again, _ := repo.GetProfile(ctx, "WH-1")
	if again.Zones[0] != "A" {
		t.Errorf("Stored profile was mutated through a returned copy")
	}
}

func TestProfileRepository_NotFound(t *testing.T) {
	_, err := NewProfileRepository().GetProfile(context.Background(), "missing")
	if !errors.Is(err, repositories.ErrProfileNotFound) {
		t.Errorf("Expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileRepository_Rejects(t *testing.T) {
	repo := NewProfileRepository()
	ctx := context.Background()

	if err := repo.SaveProfile(ctx, &entities.WarehouseProfile{}); err == nil {
		t.Error("Expected error for profile without warehouse id")
	}
	if err := repo.SaveProfile(ctx, &entities.WarehouseProfile{WarehouseID: "X", AreaSqM: -1}); err == nil {
		t.Error("Expected error for negative area")
	}
}

func TestProfileRepository_ListWarehouses(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository()
	for _, id := range []string{"WH-3", "WH-1", "WH-2"} {
		if err := repo.SaveProfile(ctx, &entities.WarehouseProfile{WarehouseID: id}); err != nil {
			t.Fatalf("Failed to save %s: %v", id, err)
		}
	}

	ids, err := repo.ListWarehouses(ctx)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(ids) != 3 || ids[0] != "WH-1" || ids[2] != "WH-3" {
		t.Errorf("Expected sorted ids, got %v", ids)
	}
}
