package entities

import "testing"

func TestWarehouseProfile_Normalized(t *testing.T) {
	original := &WarehouseProfile{
		Zones:         []string{" a", "b "},
		LocationZones: map[string]string{"x-01": "a"},
		Coordinates:   map[string]Point{" a-01-01 ": {X: 1, Y: 2}},
		Dock:          &Point{X: 5},
	}

	normalized := original.Normalized()

	if normalized.Zones[0] != "A" || normalized.Zones[1] != "B" {
		t.Errorf("Expected upper-cased zones, got %v", normalized.Zones)
	}
	if normalized.LocationZones["X-01"] != "A" {
		t.Errorf("Expected upper-cased location zone map, got %v", normalized.LocationZones)
	}
	if _, ok := normalized.Coordinates["A-01-01"]; !ok {
		t.Errorf("Expected trimmed coordinate key, got %v", normalized.Coordinates)
	}
	if original.Zones[0] != " a" {
		t.Error("Expected original profile to be left untouched")
	}
	normalized.Dock.X = 99
	if original.Dock.X != 5 {
		t.Error("Expected dock point to be copied")
	}
}

func TestWarehouseProfile_Capabilities(t *testing.T) {
	var nilProfile *WarehouseProfile
	if nilProfile.HasLayout() || nilProfile.HasGeometry() {
		t.Error("Expected nil profile to have no layout or geometry")
	}
	if got := nilProfile.ZoneOrder(); len(got) != 4 {
		t.Errorf("Expected default zone order, got %v", got)
	}

	geometry := &WarehouseProfile{AreaSqM: 5000, AisleWidthM: 3, AisleCount: 10}
	if !geometry.HasGeometry() {
		t.Error("Expected geometry profile to report geometry")
	}

	dup := &WarehouseProfile{Zones: []string{"A", "A"}}
	if err := dup.Validate(); err == nil {
		t.Error("Expected duplicate zones to fail validation")
	}
}

func TestPoint_Manhattan(t *testing.T) {
	if d := (Point{X: 1, Y: 1}).Manhattan(Point{X: 4, Y: -3}); d != 7 {
		t.Errorf("Expected 7, got %g", d)
	}
}
