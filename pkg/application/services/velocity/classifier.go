// Package velocity ranks SKUs by pick volume and assigns ABC(D) classes.
package velocity

import (
	"math/big"
	"sort"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// Thresholds are the cumulative volume percentages closing the A, B and C classes.
// Everything beyond C is D.
type Thresholds struct {
	A float64
	B float64
	C float64
}

// DefaultThresholds returns the 80/95/99 Pareto cut-offs
func DefaultThresholds() Thresholds {
	return Thresholds{A: 80, B: 95, C: 99}
}

// Classifier assigns velocity classes
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier creates a classifier with the given thresholds
func NewClassifier(thresholds Thresholds) *Classifier {
	return &Classifier{thresholds: thresholds}
}

type skuTotal struct {
	sku   entities.SKUCode
	name  string
	picks int64
}

// Classify aggregates picks per SKU and walks them in descending volume order,
// classing each by the cumulative share reached after adding it. The
// highest-volume SKU is always A even when its own share passes the A cut-off.
// Returns a zero_volume ValidationError when nothing was picked.
func (c *Classifier) Classify(lines []entities.OrderLine) ([]entities.SKUVelocity, error) {
	totals := make(map[entities.SKUCode]*skuTotal)
	order := make([]*skuTotal, 0)
	for _, line := range lines {
		t, ok := totals[line.SKU]
		if !ok {
			t = &skuTotal{sku: line.SKU, name: line.SKUName}
			totals[line.SKU] = t
			order = append(order, t)
		}
		t.picks += int64(line.Quantity)
	}

	var grandTotal int64
	for _, t := range order {
		grandTotal += t.picks
	}
	if grandTotal == 0 {
		return nil, entities.NewValidationError(entities.CodeZeroVolume)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].picks != order[j].picks {
			return order[i].picks > order[j].picks
		}
		return order[i].sku < order[j].sku
	})

	monthFactor := 30.0 / float64(entities.PeriodDays(lines))
	grand := float64(grandTotal)

	velocities := make([]entities.SKUVelocity, len(order))
	var cumulative int64
	for i, t := range order {
		cumulative += t.picks
		class := c.classFor(cumulative, grandTotal)
		if i == 0 {
			class = entities.ClassA
		}
		velocities[i] = entities.SKUVelocity{
			SKU:              t.sku,
			SKUName:          t.name,
			Class:            class,
			TotalPicks:       entities.Quantity(t.picks),
			PicksPerMonth:    float64(t.picks) * monthFactor,
			PctOfTotalVolume: float64(t.picks) / grand * 100,
			CumulativePct:    float64(cumulative) / grand * 100,
			Rank:             i + 1,
		}
	}

	return velocities, nil
}

// classFor compares cumulative/grand*100 against the thresholds exactly, using
// rational arithmetic so boundary shares like 95.000% land in the lower class.
func (c *Classifier) classFor(cumulative, grand int64) entities.VelocityClass {
	numerator := new(big.Int).Mul(big.NewInt(cumulative), big.NewInt(100))
	share := new(big.Rat).SetFrac(numerator, big.NewInt(grand))
	switch {
	case share.Cmp(ratOf(c.thresholds.A)) <= 0:
		return entities.ClassA
	case share.Cmp(ratOf(c.thresholds.B)) <= 0:
		return entities.ClassB
	case share.Cmp(ratOf(c.thresholds.C)) <= 0:
		return entities.ClassC
	default:
		return entities.ClassD
	}
}

func ratOf(f float64) *big.Rat {
	r := new(big.Rat)
	r.SetFloat64(f)
	return r
}

// ClassCounts tallies SKUs per class
func ClassCounts(velocities []entities.SKUVelocity) map[entities.VelocityClass]int {
	counts := map[entities.VelocityClass]int{
		entities.ClassA: 0,
		entities.ClassB: 0,
		entities.ClassC: 0,
		entities.ClassD: 0,
	}
	for _, v := range velocities {
		counts[v.Class]++
	}
	return counts
}
