package recommendation

import "fmt"

const maxGeneratedIndex = 99

// slotAllocator hands out free slot codes per zone in a fixed order so
// identical inputs always get identical targets.
type slotAllocator struct {
	distances Distances
	taken     map[string]bool
}

func newSlotAllocator(distances Distances, occupied map[string]bool) *slotAllocator {
	taken := make(map[string]bool, len(occupied))
	for loc := range occupied {
		taken[loc] = true
	}
	return &slotAllocator{distances: distances, taken: taken}
}

// next returns the nearest free layout slot of zone, or the first free
// generated <ZONE>-<AA>-<SS> code. Returns "" once the zone is exhausted.
func (a *slotAllocator) next(zone string) string {
	for _, slot := range a.distances.CandidateSlots(zone) {
		if !a.taken[slot] {
			a.taken[slot] = true
			return slot
		}
	}
	for aisle := 1; aisle <= maxGeneratedIndex; aisle++ {
		for pos := 1; pos <= maxGeneratedIndex; pos++ {
			code := fmt.Sprintf("%s-%02d-%02d", zone, aisle, pos)
			if !a.taken[code] {
				a.taken[code] = true
				return code
			}
		}
	}
	return ""
}
