package entities

// AffinityPair represents the co-occurrence statistics of two SKUs across orders.
// SKUA is always lexically smaller than SKUB.
type AffinityPair struct {
	SKUA              SKUCode  `json:"sku_a"`
	SKUB              SKUCode  `json:"sku_b"`
	CoOccurrenceCount int      `json:"co_occurrence_count"`
	Support           float64  `json:"support"`
	ConfidenceAToB    float64  `json:"confidence_a_to_b"`
	ConfidenceBToA    float64  `json:"confidence_b_to_a"`
	Lift              float64  `json:"lift"`
	Phi               *float64 `json:"phi,omitempty"`
	CurrentDistanceM  float64  `json:"current_distance_m"`
}

// Key returns the canonical "A|B" key of the pair
func (p AffinityPair) Key() string {
	return string(p.SKUA) + "|" + string(p.SKUB)
}

// Involves reports whether sku is one of the two members
func (p AffinityPair) Involves(sku SKUCode) bool {
	return p.SKUA == sku || p.SKUB == sku
}

// Partner returns the other member of the pair, or "" if sku is not a member
func (p AffinityPair) Partner(sku SKUCode) SKUCode {
	switch sku {
	case p.SKUA:
		return p.SKUB
	case p.SKUB:
		return p.SKUA
	default:
		return ""
	}
}

// CanonicalPair orders two SKU codes so that the first is lexically smaller
func CanonicalPair(a, b SKUCode) (SKUCode, SKUCode) {
	if b < a {
		return b, a
	}
	return a, b
}
