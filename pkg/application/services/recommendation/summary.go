package recommendation

import (
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

const (
	secondsPerHour = 3600
	monthsPerYear  = 12
)

// summarize projects savings linearly: meters saved per pick times monthly
// picks, converted to labor hours and then to cost. Without recommendations
// every figure is zero, affinity opportunities included.
func (e *Engine) summarize(recs []entities.Recommendation, pairs []entities.AffinityPair) entities.AnalysisSummary {
	summary := entities.AnalysisSummary{
		TotalRecommendations: len(recs),
		MonthlyCostSavings:   decimal.Zero,
		AnnualCostSavings:    decimal.Zero,
	}
	if len(recs) == 0 {
		return summary
	}
	summary.AffinityOpportunities = e.affinityOpportunities(pairs)

	improvements := make([]float64, len(recs))
	weights := make([]float64, len(recs))
	var totalWeight float64
	for i, rec := range recs {
		switch rec.Priority {
		case entities.PriorityHigh:
			summary.HighPriority++
		case entities.PriorityMedium:
			summary.MediumPriority++
		default:
			summary.LowPriority++
		}
		improvements[i] = rec.EstimatedImprovementPct
		weights[i] = rec.PicksPerMonth
		totalWeight += rec.PicksPerMonth
		summary.MonthlyDistanceSavedM += rec.DistanceSavedPerPickM * rec.PicksPerMonth
	}

	if totalWeight > 0 {
		summary.EstimatedOverallImprovementPct = stat.Mean(improvements, weights)
	} else {
		summary.EstimatedOverallImprovementPct = stat.Mean(improvements, nil)
	}

	summary.MonthlyHoursSaved = summary.MonthlyDistanceSavedM * e.config.UnitTimeFactor / secondsPerHour
	summary.MonthlyCostSavings = decimal.NewFromFloat(summary.MonthlyHoursSaved).
		Mul(decimal.NewFromFloat(e.config.UnitCostFactor)).
		Round(2)
	summary.AnnualCostSavings = summary.MonthlyCostSavings.Mul(decimal.NewFromInt(monthsPerYear))

	return summary
}
