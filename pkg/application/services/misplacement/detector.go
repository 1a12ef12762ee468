// Package misplacement flags SKUs stored outside the zone their velocity class calls for.
package misplacement

import (
	"sort"
	"strings"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// ZoneResolver maps a location code to its zone, "" when unknown
type ZoneResolver interface {
	ZoneOf(location string) string
}

// Detector compares current zones with class-implied zones
type Detector struct {
	dZone string
}

// NewDetector creates a detector. dZone is the target zone of D-class SKUs;
// empty means "C", so D items share the slow zone with C items.
func NewDetector(dZone string) *Detector {
	dZone = strings.ToUpper(strings.TrimSpace(dZone))
	if dZone == "" {
		dZone = string(entities.ClassC)
	}
	return &Detector{dZone: dZone}
}

// ExpectedZone returns the zone a class belongs in
func (d *Detector) ExpectedZone(class entities.VelocityClass) string {
	if class == entities.ClassD {
		return d.dZone
	}
	return string(class)
}

// Detect returns one Misplacement per SKU whose current zone differs from its
// expected zone, highest monthly volume first. SKUs without a resolvable zone
// are skipped and reported as warnings.
func (d *Detector) Detect(velocities []entities.SKUVelocity, locations map[entities.SKUCode]string, zones ZoneResolver) ([]entities.Misplacement, []entities.Warning) {
	misplaced := make([]entities.Misplacement, 0)
	var warnings []entities.Warning

	for _, v := range velocities {
		location := locations[v.SKU]
		zone := ""
		if location != "" {
			zone = zones.ZoneOf(location)
		}
		if zone == "" {
			warnings = append(warnings, entities.Warning{
				Code:    entities.WarnUnknownLocation,
				Subject: string(v.SKU),
				Message: "current zone unknown; skipped for misplacement",
			})
			continue
		}

		expected := d.ExpectedZone(v.Class)
		if zone == expected {
			continue
		}
		misplaced = append(misplaced, entities.Misplacement{
			SKU:                  v.SKU,
			Class:                v.Class,
			CurrentLocation:      location,
			CurrentZone:          zone,
			ExpectedZone:         expected,
			PickFrequencyMonthly: v.PicksPerMonth,
		})
	}

	sort.SliceStable(misplaced, func(i, j int) bool {
		if misplaced[i].PickFrequencyMonthly != misplaced[j].PickFrequencyMonthly {
			return misplaced[i].PickFrequencyMonthly > misplaced[j].PickFrequencyMonthly
		}
		return misplaced[i].SKU < misplaced[j].SKU
	})

	return misplaced, warnings
}
