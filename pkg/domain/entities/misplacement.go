package entities

// Misplacement represents a SKU stored in a zone other than the one implied by its velocity class
type Misplacement struct {
	SKU                  SKUCode       `json:"sku_code"`
	Class                VelocityClass `json:"class"`
	CurrentLocation      string        `json:"current_location"`
	CurrentZone          string        `json:"current_zone"`
	ExpectedZone         string        `json:"expected_zone"`
	PickFrequencyMonthly float64       `json:"pick_frequency_monthly"`
}

// IsDemotion reports whether the SKU is moving from a faster zone to a slower one,
// judged by the class ordering of the zone letters.
func (m Misplacement) IsDemotion() bool {
	return VelocityClass(m.ExpectedZone).Rank() > VelocityClass(m.CurrentZone).Rank() &&
		VelocityClass(m.CurrentZone).Valid()
}
