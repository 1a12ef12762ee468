package entities

import "github.com/shopspring/decimal"

// Priority represents the urgency of a relocation recommendation
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// String method for Priority enum
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// Recommendation represents one ranked slot relocation
type Recommendation struct {
	SKU                     SKUCode       `json:"sku_code"`
	Class                   VelocityClass `json:"class"`
	CurrentLocation         string        `json:"current_location"`
	CurrentZone             string        `json:"current_zone"`
	RecommendedLocation     string        `json:"recommended_location"`
	RecommendedZone         string        `json:"recommended_zone"`
	Reason                  string        `json:"reason"`
	Priority                Priority      `json:"priority"`
	EstimatedImprovementPct float64       `json:"estimated_improvement_pct"`
	DistanceSavedPerPickM   float64       `json:"distance_saved_per_pick_m"`
	PicksPerMonth           float64       `json:"picks_per_month"`
	RelatedSKUs             []SKUCode     `json:"related_skus"`
	AffinityNote            string        `json:"affinity_note,omitempty"`
}

// AnalysisSummary represents aggregate figures over the recommendations of one run
type AnalysisSummary struct {
	TotalRecommendations           int                   `json:"total_recommendations"`
	HighPriority                   int                   `json:"high_priority"`
	MediumPriority                 int                   `json:"medium_priority"`
	LowPriority                    int                   `json:"low_priority"`
	EstimatedOverallImprovementPct float64               `json:"estimated_overall_improvement_percent"`
	MonthlyDistanceSavedM          float64               `json:"monthly_distance_saved_m"`
	MonthlyHoursSaved              float64               `json:"monthly_hours_saved"`
	MonthlyCostSavings             decimal.Decimal       `json:"monthly_cost_savings"`
	AnnualCostSavings              decimal.Decimal       `json:"annual_cost_savings"`
	AffinityOpportunities          int                   `json:"affinity_opportunities"`
	SKUsAnalyzed                   int                   `json:"skus_analyzed"`
	OrdersAnalyzed                 int                   `json:"orders_analyzed"`
	PeriodDays                     int                   `json:"period_days"`
	ClassCounts                    map[VelocityClass]int `json:"class_counts"`
}

// BucketsConsistent reports whether the priority buckets add up to the total
func (s AnalysisSummary) BucketsConsistent() bool {
	return s.HighPriority+s.MediumPriority+s.LowPriority == s.TotalRecommendations
}
