package recommendation

import (
	"fmt"
	"strings"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// enrich attaches the strong affinity partners of rec. Pairs arrive sorted by
// lift so related SKUs keep that order.
func (e *Engine) enrich(rec *entities.Recommendation, pairs []entities.AffinityPair) {
	var notes []string
	for _, p := range pairs {
		if p.Lift < e.config.AffinityLiftThreshold || !p.Involves(rec.SKU) {
			continue
		}
		partner := p.Partner(rec.SKU)
		rec.RelatedSKUs = append(rec.RelatedSKUs, partner)

		note := fmt.Sprintf("ordered with %s in %d orders (lift %.2f)", partner, p.CoOccurrenceCount, p.Lift)
		if p.CurrentDistanceM > e.config.ClosenessThresholdM {
			note += fmt.Sprintf(", currently %.1f m apart; slotting them together would shorten multi-line picks", p.CurrentDistanceM)
		}
		notes = append(notes, note)
	}
	if len(notes) > 0 {
		rec.AffinityNote = "Frequently " + strings.Join(notes, "; ")
	}
}

// affinityOpportunities counts strong pairs stored farther apart than the closeness threshold
func (e *Engine) affinityOpportunities(pairs []entities.AffinityPair) int {
	n := 0
	for _, p := range pairs {
		if p.Lift >= e.config.AffinityLiftThreshold && p.CurrentDistanceM > e.config.ClosenessThresholdM {
			n++
		}
	}
	return n
}
