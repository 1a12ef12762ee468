package entities

// VelocityClass represents an ABC(D) velocity tier
type VelocityClass string

const (
	ClassA VelocityClass = "A"
	ClassB VelocityClass = "B"
	ClassC VelocityClass = "C"
	ClassD VelocityClass = "D"
)

// Rank returns the ordinal position of the class, A being 0
func (c VelocityClass) Rank() int {
	switch c {
	case ClassA:
		return 0
	case ClassB:
		return 1
	case ClassC:
		return 2
	case ClassD:
		return 3
	default:
		return 4
	}
}

// Valid reports whether c is one of A, B, C or D
func (c VelocityClass) Valid() bool {
	return c.Rank() < 4
}

// Priority maps a velocity class to a recommendation priority
func (c VelocityClass) Priority() Priority {
	switch c {
	case ClassA:
		return PriorityHigh
	case ClassB:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// SKUVelocity represents the pick velocity and class of one SKU over the analysis period
type SKUVelocity struct {
	SKU              SKUCode       `json:"sku_code"`
	SKUName          string        `json:"sku_name"`
	Class            VelocityClass `json:"class"`
	TotalPicks       Quantity      `json:"total_picks"`
	PicksPerMonth    float64       `json:"picks_per_month"`
	PctOfTotalVolume float64       `json:"pct_of_total_volume"`
	CumulativePct    float64       `json:"cumulative_pct"`
	Rank             int           `json:"rank"`
}
