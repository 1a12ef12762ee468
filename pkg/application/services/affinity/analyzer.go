// Package affinity finds SKUs that are ordered together more often than chance.
package affinity

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// Config holds the pair filters. MaxPairs <= 0 keeps every qualifying pair.
type Config struct {
	MinSupport    float64
	MinConfidence float64
	MinLift       float64
	MaxPairs      int
	ComputePhi    bool
}

// DefaultConfig returns the standard market-basket filters
func DefaultConfig() Config {
	return Config{
		MinSupport:    0.01,
		MinConfidence: 0.20,
		MinLift:       1.2,
		MaxPairs:      30,
		ComputePhi:    true,
	}
}

// Distancer measures travel between two storage locations
type Distancer interface {
	Between(a, b string) float64
}

// Analyzer computes pairwise affinity statistics over orders
type Analyzer struct {
	config Config
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer; a nil logger discards output
func NewAnalyzer(config Config, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{config: config, logger: logger}
}

type pairKey struct {
	a, b entities.SKUCode
}

// Basket is the distinct SKU content of every order
type Basket struct {
	// orders maps order id to its distinct SKUs
	orders map[string][]entities.SKUCode
	// counts is the number of orders containing each SKU
	counts map[entities.SKUCode]int
}

// NewBasket groups lines by order. A SKU repeated within an order counts once.
func NewBasket(lines []entities.OrderLine) *Basket {
	seen := make(map[string]map[entities.SKUCode]bool)
	for _, line := range lines {
		set, ok := seen[line.OrderID]
		if !ok {
			set = make(map[entities.SKUCode]bool)
			seen[line.OrderID] = set
		}
		set[line.SKU] = true
	}

	b := &Basket{
		orders: make(map[string][]entities.SKUCode, len(seen)),
		counts: make(map[entities.SKUCode]int),
	}
	for orderID, set := range seen {
		skus := make([]entities.SKUCode, 0, len(set))
		for sku := range set {
			skus = append(skus, sku)
			b.counts[sku]++
		}
		b.orders[orderID] = skus
	}
	return b
}

// TotalOrders returns the number of distinct orders
func (b *Basket) TotalOrders() int {
	return len(b.orders)
}

// Support returns the fraction of orders containing sku
func (b *Basket) Support(sku entities.SKUCode) float64 {
	if len(b.orders) == 0 {
		return 0
	}
	return float64(b.counts[sku]) / float64(len(b.orders))
}

func (b *Basket) coOccurrences() map[pairKey]int {
	co := make(map[pairKey]int)
	for _, skus := range b.orders {
		for i := 0; i < len(skus); i++ {
			for j := i + 1; j < len(skus); j++ {
				first, second := entities.CanonicalPair(skus[i], skus[j])
				co[pairKey{first, second}]++
			}
		}
	}
	return co
}

// Analyze returns the qualifying pairs, strongest first. When distancer is
// non-nil each pair carries the travel distance between the two SKUs'
// current locations.
func (a *Analyzer) Analyze(lines []entities.OrderLine, locations map[entities.SKUCode]string, distancer Distancer) []entities.AffinityPair {
	basket := NewBasket(lines)
	total := basket.TotalOrders()
	if total == 0 {
		return []entities.AffinityPair{}
	}

	co := basket.coOccurrences()
	pairs := make([]entities.AffinityPair, 0)
	for key, count := range co {
		pair, ok := a.score(basket, key, count)
		if !ok || !a.keep(pair) {
			continue
		}
		pairs = append(pairs, pair)
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Lift != pairs[j].Lift {
			return pairs[i].Lift > pairs[j].Lift
		}
		if pairs[i].CoOccurrenceCount != pairs[j].CoOccurrenceCount {
			return pairs[i].CoOccurrenceCount > pairs[j].CoOccurrenceCount
		}
		return pairs[i].Key() < pairs[j].Key()
	})
	if a.config.MaxPairs > 0 && len(pairs) > a.config.MaxPairs {
		pairs = pairs[:a.config.MaxPairs]
	}

	if distancer != nil {
		for i := range pairs {
			pairs[i].CurrentDistanceM = distancer.Between(locations[pairs[i].SKUA], locations[pairs[i].SKUB])
		}
	}

	a.logger.Debug("affinity computed",
		zap.Int("orders", total),
		zap.Int("candidate_pairs", len(co)),
		zap.Int("kept_pairs", len(pairs)),
	)

	return pairs
}

// score computes the pair statistics. ok is false when a denominator is zero.
func (a *Analyzer) score(basket *Basket, key pairKey, count int) (entities.AffinityPair, bool) {
	n := float64(basket.TotalOrders())
	nA := float64(basket.counts[key.a])
	nB := float64(basket.counts[key.b])
	if n == 0 || nA == 0 || nB == 0 {
		return entities.AffinityPair{}, false
	}
	c := float64(count)

	pair := entities.AffinityPair{
		SKUA:              key.a,
		SKUB:              key.b,
		CoOccurrenceCount: count,
		Support:           c / n,
		ConfidenceAToB:    c / nA,
		ConfidenceBToA:    c / nB,
		// c*n/(nA*nB) is confidence(a->b)/support(b) with both factors commuted
		Lift: c * n / (nA * nB),
	}
	if a.config.ComputePhi {
		pair.Phi = phi(c, nA, nB, n)
	}
	return pair, true
}

func (a *Analyzer) keep(p entities.AffinityPair) bool {
	return p.Support >= a.config.MinSupport &&
		p.ConfidenceAToB >= a.config.MinConfidence &&
		p.Lift > a.config.MinLift
}

// phi is the Matthews correlation of the 2x2 presence table. Returns nil when
// either SKU is in every order or in none.
func phi(both, nA, nB, n float64) *float64 {
	onlyA := nA - both
	onlyB := nB - both
	neither := n - nA - nB + both
	denom := nA * (n - nA) * nB * (n - nB)
	if denom <= 0 {
		return nil
	}
	v := (both*neither - onlyA*onlyB) / math.Sqrt(denom)
	return &v
}
