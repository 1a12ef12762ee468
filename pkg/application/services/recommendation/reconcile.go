package recommendation

import (
	"errors"
	"fmt"

	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/domain/services"
)

// ErrAdviceMismatch is returned when advice does not describe the candidate set
var ErrAdviceMismatch = errors.New("advice does not match candidates")

// Reconcile applies advice to recs: advice order becomes the ranking and a
// non-empty advice reason replaces the computed one. Candidates the advisor
// left out keep their relative order after the advised ones. Unknown or
// repeated SKUs, or empty advice for a non-empty set, are rejected.
func Reconcile(recs []entities.Recommendation, advice []services.Advice) ([]entities.Recommendation, error) {
	if len(recs) > 0 && len(advice) == 0 {
		return nil, fmt.Errorf("%w: no advice returned", ErrAdviceMismatch)
	}

	index := make(map[entities.SKUCode]int, len(recs))
	for i, rec := range recs {
		index[rec.SKU] = i
	}

	used := make(map[entities.SKUCode]bool, len(advice))
	ranked := make([]entities.Recommendation, 0, len(recs))
	for _, a := range advice {
		i, ok := index[a.SKU]
		if !ok {
			return nil, fmt.Errorf("%w: unknown sku %s", ErrAdviceMismatch, a.SKU)
		}
		if used[a.SKU] {
			return nil, fmt.Errorf("%w: duplicate sku %s", ErrAdviceMismatch, a.SKU)
		}
		used[a.SKU] = true

		rec := recs[i]
		if a.Reason != "" {
			rec.Reason = a.Reason
		}
		ranked = append(ranked, rec)
	}

	for _, rec := range recs {
		if !used[rec.SKU] {
			ranked = append(ranked, rec)
		}
	}
	return ranked, nil
}
