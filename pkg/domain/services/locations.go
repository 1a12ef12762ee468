package services

import "github.com/vsinha/slotwise/pkg/domain/entities"

// PrimaryLocations returns the location each SKU is picked from most often.
// Ties go to the lexically smallest location code. Lines without a location are ignored.
func PrimaryLocations(lines []entities.OrderLine) map[entities.SKUCode]string {
	counts := make(map[entities.SKUCode]map[string]int)
	for _, line := range lines {
		if line.Location == "" {
			continue
		}
		perSKU, ok := counts[line.SKU]
		if !ok {
			perSKU = make(map[string]int)
			counts[line.SKU] = perSKU
		}
		perSKU[line.Location]++
	}

	primary := make(map[entities.SKUCode]string, len(counts))
	for sku, perSKU := range counts {
		best, bestCount := "", 0
		for loc, n := range perSKU {
			if n > bestCount || (n == bestCount && loc < best) {
				best, bestCount = loc, n
			}
		}
		primary[sku] = best
	}
	return primary
}

// OccupiedLocations returns the set of every location present in lines
func OccupiedLocations(lines []entities.OrderLine) map[string]bool {
	occupied := make(map[string]bool)
	for _, line := range lines {
		if line.Location != "" {
			occupied[line.Location] = true
		}
	}
	return occupied
}
