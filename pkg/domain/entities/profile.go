package entities

import (
	"fmt"
	"math"
	"strings"
)

// DefaultZoneOrder lists zones from nearest to farthest from the dock
var DefaultZoneOrder = []string{"A", "B", "C", "D"}

// Point represents a position on the warehouse floor plan in meters
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Manhattan returns the rectilinear travel distance between two points
func (p Point) Manhattan(q Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

// WarehouseProfile represents the geometry a caller knows about a warehouse.
// Every field is optional; the distance model degrades with what is missing.
type WarehouseProfile struct {
	WarehouseID   string            `json:"warehouse_id" yaml:"warehouse_id"`
	Zones         []string          `json:"zones,omitempty" yaml:"zones"`
	LocationZones map[string]string `json:"location_zones,omitempty" yaml:"location_zones"`
	Coordinates   map[string]Point  `json:"coordinates,omitempty" yaml:"coordinates"`
	Dock          *Point            `json:"dock,omitempty" yaml:"dock"`
	AreaSqM       float64           `json:"area_sqm,omitempty" yaml:"area_sqm"`
	AisleWidthM   float64           `json:"aisle_width_m,omitempty" yaml:"aisle_width_m"`
	AisleCount    int               `json:"aisle_count,omitempty" yaml:"aisle_count"`
}

// HasLayout reports whether real coordinates are available
func (p *WarehouseProfile) HasLayout() bool {
	return p != nil && len(p.Coordinates) > 0
}

// HasGeometry reports whether aisle metrics are available
func (p *WarehouseProfile) HasGeometry() bool {
	return p != nil && p.AreaSqM > 0 && p.AisleWidthM > 0 && p.AisleCount > 0
}

// DockPoint returns the shipping dock reference point, the origin when unset
func (p *WarehouseProfile) DockPoint() Point {
	if p == nil || p.Dock == nil {
		return Point{}
	}
	return *p.Dock
}

// ZoneOrder returns the profile's zone order or DefaultZoneOrder
func (p *WarehouseProfile) ZoneOrder() []string {
	if p == nil || len(p.Zones) == 0 {
		return DefaultZoneOrder
	}
	return p.Zones
}

// Normalized returns a copy with upper-cased location codes and zone names.
// The receiver is left untouched.
func (p *WarehouseProfile) Normalized() *WarehouseProfile {
	if p == nil {
		return nil
	}
	out := *p
	out.Zones = make([]string, len(p.Zones))
	for i, z := range p.Zones {
		out.Zones[i] = strings.ToUpper(strings.TrimSpace(z))
	}
	out.LocationZones = make(map[string]string, len(p.LocationZones))
	for loc, zone := range p.LocationZones {
		out.LocationZones[strings.ToUpper(strings.TrimSpace(loc))] = strings.ToUpper(strings.TrimSpace(zone))
	}
	out.Coordinates = make(map[string]Point, len(p.Coordinates))
	for loc, pt := range p.Coordinates {
		out.Coordinates[strings.ToUpper(strings.TrimSpace(loc))] = pt
	}
	if p.Dock != nil {
		dock := *p.Dock
		out.Dock = &dock
	}
	return &out
}

// Validate checks the profile for values no distance model can use
func (p *WarehouseProfile) Validate() error {
	if p.AreaSqM < 0 {
		return fmt.Errorf("area cannot be negative, got %g", p.AreaSqM)
	}
	if p.AisleWidthM < 0 {
		return fmt.Errorf("aisle width cannot be negative, got %g", p.AisleWidthM)
	}
	if p.AisleCount < 0 {
		return fmt.Errorf("aisle count cannot be negative, got %d", p.AisleCount)
	}
	seen := make(map[string]bool, len(p.Zones))
	for _, z := range p.Zones {
		if z == "" {
			return fmt.Errorf("zone names cannot be empty")
		}
		if seen[z] {
			return fmt.Errorf("duplicate zone %s", z)
		}
		seen[z] = true
	}
	return nil
}
