// Package distance estimates travel distance from the shipping dock to a
// storage location. Three modes of decreasing fidelity are supported and the
// mode is chosen from whatever warehouse geometry the caller supplies:
//
//   - layout_based: real floor coordinates, rectilinear travel to the dock
//   - profile_informed_no_layout: area and aisle metrics, zones as depth bands
//   - ordinal_fallback: a configured base distance per zone letter
//
// Estimation never fails. Unknown or malformed location codes resolve to a
// documented default and are recorded as warnings.
package distance

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// Mode identifies the fidelity of the distance model
type Mode string

const (
	ModeLayout  Mode = "layout_based"
	ModeProfile Mode = "profile_informed_no_layout"
	ModeOrdinal Mode = "ordinal_fallback"
)

// Config holds the constants of the ordinal model. They are estimates, not measurements.
type Config struct {
	ZoneBaseDistances    map[string]float64
	DefaultZoneDistanceM float64
	WithinZoneOffsetM    float64
}

// DefaultConfig returns the ordinal constants used when none are configured
func DefaultConfig() Config {
	return Config{
		ZoneBaseDistances: map[string]float64{
			"A": 15,
			"B": 45,
			"C": 75,
			"D": 105,
		},
		DefaultZoneDistanceM: 50,
		WithinZoneOffsetM:    5,
	}
}

// Validate checks that the ordinal constants keep A < B < C
func (c Config) Validate() error {
	if c.DefaultZoneDistanceM < 0 {
		return fmt.Errorf("default zone distance cannot be negative, got %g", c.DefaultZoneDistanceM)
	}
	if c.WithinZoneOffsetM < 0 {
		return fmt.Errorf("within-zone offset cannot be negative, got %g", c.WithinZoneOffsetM)
	}
	prev := -1.0
	for _, zone := range []string{"A", "B", "C"} {
		d, ok := c.ZoneBaseDistances[zone]
		if !ok {
			return fmt.Errorf("zone %s base distance is required", zone)
		}
		if d < 0 {
			return fmt.Errorf("zone %s base distance cannot be negative, got %g", zone, d)
		}
		if d <= prev {
			return fmt.Errorf("zone base distances must increase A < B < C, zone %s has %g", zone, d)
		}
		prev = d
	}
	return nil
}

// Estimator maps location codes to distances for one analysis run.
// It records fallback warnings as it goes and is not safe for concurrent use.
type Estimator struct {
	mode    Mode
	config  Config
	profile *entities.WarehouseProfile
	dock    entities.Point

	zoneIndex    map[string]int
	zoneDistance map[string]float64
	warnings     map[string]entities.Warning
}

// NewEstimator selects the highest fidelity mode the profile supports.
// A nil profile is valid and yields the ordinal model.
func NewEstimator(profile *entities.WarehouseProfile, config Config) *Estimator {
	if config.ZoneBaseDistances == nil {
		config.ZoneBaseDistances = DefaultConfig().ZoneBaseDistances
	}

	e := &Estimator{
		config:       config,
		profile:      profile.Normalized(),
		zoneIndex:    make(map[string]int),
		zoneDistance: make(map[string]float64),
		warnings:     make(map[string]entities.Warning),
	}

	switch {
	case e.profile.HasLayout():
		e.mode = ModeLayout
		e.dock = e.profile.DockPoint()
	case e.profile.HasGeometry():
		e.mode = ModeProfile
	default:
		e.mode = ModeOrdinal
		e.warn(entities.WarnMissingGeometry, "profile", "no layout or aisle geometry supplied; using ordinal zone distances")
	}

	for i, zone := range e.profile.ZoneOrder() {
		e.zoneIndex[zone] = i
	}
	e.precomputeZones()

	return e
}

// Mode returns the selected fidelity mode
func (e *Estimator) Mode() Mode {
	return e.mode
}

// ZoneOf resolves the zone of a location code: the profile's explicit mapping
// first, then the leading letter run of the code. Returns "" when neither applies.
func (e *Estimator) ZoneOf(location string) string {
	loc := normalizeLocation(location)
	if loc == "" {
		return ""
	}
	if e.profile != nil {
		if zone, ok := e.profile.LocationZones[loc]; ok && zone != "" {
			return zone
		}
	}
	return zonePrefix(loc)
}

// DistanceTo returns the one-way distance in meters from the dock to location
func (e *Estimator) DistanceTo(location string) float64 {
	loc := normalizeLocation(location)

	if e.mode == ModeLayout {
		if pt, ok := e.profile.Coordinates[loc]; ok {
			return pt.Manhattan(e.dock)
		}
		if loc != "" {
			e.warn(entities.WarnLocationNotInLayout, loc, "location missing from layout; using zone estimate")
		}
	}

	zone := e.ZoneOf(loc)
	if zone == "" {
		e.warn(entities.WarnUnknownLocation, loc, fmt.Sprintf("cannot resolve zone; using default %gm", e.config.DefaultZoneDistanceM))
		return e.config.DefaultZoneDistanceM
	}
	return e.ZoneDistance(zone)
}

// ZoneDistance returns the reference distance of a zone
func (e *Estimator) ZoneDistance(zone string) float64 {
	zone = strings.ToUpper(strings.TrimSpace(zone))
	if d, ok := e.zoneDistance[zone]; ok {
		return d
	}
	if d, ok := e.config.ZoneBaseDistances[zone]; ok {
		if e.mode != ModeOrdinal {
			e.warn(entities.WarnMissingGeometry, zone, "zone not covered by profile geometry; using ordinal distance")
		}
		return d
	}
	e.warn(entities.WarnUnknownZone, zone, fmt.Sprintf("zone has no reference distance; using default %gm", e.config.DefaultZoneDistanceM))
	return e.config.DefaultZoneDistanceM
}

// Between returns the travel distance between two locations. With real
// coordinates it is rectilinear; otherwise it is the difference of dock
// distances plus the within-zone offset. Identical locations are 0 apart.
func (e *Estimator) Between(a, b string) float64 {
	locA, locB := normalizeLocation(a), normalizeLocation(b)
	if locA == locB && locA != "" {
		return 0
	}
	if e.mode == ModeLayout {
		ptA, okA := e.profile.Coordinates[locA]
		ptB, okB := e.profile.Coordinates[locB]
		if okA && okB {
			return ptA.Manhattan(ptB)
		}
	}
	return math.Abs(e.DistanceTo(locA)-e.DistanceTo(locB)) + e.config.WithinZoneOffsetM
}

// CandidateSlots returns the known layout locations of a zone ordered by
// distance to the dock, then code. Outside layout mode there are none.
func (e *Estimator) CandidateSlots(zone string) []string {
	if e.mode != ModeLayout {
		return nil
	}
	zone = strings.ToUpper(strings.TrimSpace(zone))

	var slots []string
	for loc := range e.profile.Coordinates {
		if e.ZoneOf(loc) == zone {
			slots = append(slots, loc)
		}
	}
	sort.Slice(slots, func(i, j int) bool {
		di := e.profile.Coordinates[slots[i]].Manhattan(e.dock)
		dj := e.profile.Coordinates[slots[j]].Manhattan(e.dock)
		if di != dj {
			return di < dj
		}
		return slots[i] < slots[j]
	})
	return slots
}

// Warnings returns the fallbacks recorded so far, sorted
func (e *Estimator) Warnings() []entities.Warning {
	out := make([]entities.Warning, 0, len(e.warnings))
	for _, w := range e.warnings {
		out = append(out, w)
	}
	entities.SortWarnings(out)
	return out
}

func (e *Estimator) precomputeZones() {
	switch e.mode {
	case ModeLayout:
		// Mean dock distance of the layout locations in each zone. Keys are
		// sorted so the floating point sums are reproducible.
		locs := make([]string, 0, len(e.profile.Coordinates))
		for loc := range e.profile.Coordinates {
			locs = append(locs, loc)
		}
		sort.Strings(locs)

		sums := make(map[string]float64)
		counts := make(map[string]int)
		for _, loc := range locs {
			zone := e.ZoneOf(loc)
			if zone == "" {
				continue
			}
			sums[zone] += e.profile.Coordinates[loc].Manhattan(e.dock)
			counts[zone]++
		}
		for zone, sum := range sums {
			e.zoneDistance[zone] = sum / float64(counts[zone])
		}

	case ModeProfile:
		order := e.profile.ZoneOrder()
		width := float64(e.profile.AisleCount) * e.profile.AisleWidthM * 2
		depth := e.profile.AreaSqM / width
		band := depth / float64(len(order))
		for zone, k := range e.zoneIndex {
			e.zoneDistance[zone] = (float64(k)+0.5)*band + width/4
		}

	case ModeOrdinal:
		for zone, d := range e.config.ZoneBaseDistances {
			e.zoneDistance[strings.ToUpper(zone)] = d
		}
	}
}

func (e *Estimator) warn(code, subject, message string) {
	key := code + "|" + subject
	if _, ok := e.warnings[key]; ok {
		return
	}
	e.warnings[key] = entities.Warning{Code: code, Subject: subject, Message: message}
}

func normalizeLocation(location string) string {
	return strings.ToUpper(strings.TrimSpace(location))
}

// zonePrefix returns the leading run of letters of a location code
func zonePrefix(loc string) string {
	end := 0
	for i, r := range loc {
		if !unicode.IsLetter(r) {
			break
		}
		end = i + len(string(r))
	}
	return loc[:end]
}
