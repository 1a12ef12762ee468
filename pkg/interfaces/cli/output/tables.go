package output

import (
	"strconv"
	"strings"

	"github.com/vsinha/slotwise/pkg/application/dto"
	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// table is one tabular section of a result, shared by the CSV and XLSX writers
type table struct {
	name   string
	header []string
	rows   [][]any
}

func resultTables(result *dto.AnalysisResult) []table {
	recs := table{
		name: "recommendations",
		header: []string{
			"rank", "sku_code", "class", "current_location", "current_zone",
			"recommended_location", "recommended_zone", "priority", "picks_per_month",
			"distance_saved_per_pick_m", "estimated_improvement_pct", "related_skus",
			"reason", "affinity_note",
		},
	}
	for i, r := range result.Recommendations {
		recs.rows = append(recs.rows, []any{
			i + 1, string(r.SKU), string(r.Class), r.CurrentLocation, r.CurrentZone,
			r.RecommendedLocation, r.RecommendedZone, r.Priority.String(), r.PicksPerMonth,
			r.DistanceSavedPerPickM, r.EstimatedImprovementPct, joinSKUs(r.RelatedSKUs),
			r.Reason, r.AffinityNote,
		})
	}

	velocities := table{
		name: "sku_velocities",
		header: []string{
			"rank", "sku_code", "sku_name", "class", "total_picks", "picks_per_month",
			"pct_of_total_volume", "cumulative_pct",
		},
	}
	for _, v := range result.SKUVelocities {
		velocities.rows = append(velocities.rows, []any{
			v.Rank, string(v.SKU), v.SKUName, string(v.Class), int64(v.TotalPicks),
			v.PicksPerMonth, v.PctOfTotalVolume, v.CumulativePct,
		})
	}

	pairs := table{
		name: "affinity_pairs",
		header: []string{
			"sku_a", "sku_b", "co_occurrence_count", "support", "confidence_a_to_b",
			"confidence_b_to_a", "lift", "phi", "current_distance_m",
		},
	}
	for _, p := range result.AffinityPairs {
		var phi any = ""
		if p.Phi != nil {
			phi = *p.Phi
		}
		pairs.rows = append(pairs.rows, []any{
			string(p.SKUA), string(p.SKUB), p.CoOccurrenceCount, p.Support,
			p.ConfidenceAToB, p.ConfidenceBToA, p.Lift, phi, p.CurrentDistanceM,
		})
	}

	misplaced := table{
		name: "misplacements",
		header: []string{
			"sku_code", "class", "current_location", "current_zone", "expected_zone",
			"pick_frequency_monthly",
		},
	}
	for _, m := range result.Misplacements {
		misplaced.rows = append(misplaced.rows, []any{
			string(m.SKU), string(m.Class), m.CurrentLocation, m.CurrentZone,
			m.ExpectedZone, m.PickFrequencyMonthly,
		})
	}

	warnings := table{
		name:   "warnings",
		header: []string{"code", "subject", "message"},
	}
	for _, w := range result.Warnings {
		warnings.rows = append(warnings.rows, []any{w.Code, w.Subject, w.Message})
	}

	return []table{recs, velocities, pairs, misplaced, warnings}
}

// summaryRows lists the headline figures as label/value pairs
func summaryRows(result *dto.AnalysisResult) [][]any {
	s := result.Summary
	return [][]any{
		{"dataset_id", result.DatasetID},
		{"warehouse_id", result.WarehouseID},
		{"distance_mode", result.DistanceMode},
		{"advisor", result.Advisor},
		{"period_days", s.PeriodDays},
		{"orders_analyzed", s.OrdersAnalyzed},
		{"skus_analyzed", s.SKUsAnalyzed},
		{"class_a", s.ClassCounts[entities.ClassA]},
		{"class_b", s.ClassCounts[entities.ClassB]},
		{"class_c", s.ClassCounts[entities.ClassC]},
		{"class_d", s.ClassCounts[entities.ClassD]},
		{"total_recommendations", s.TotalRecommendations},
		{"high_priority", s.HighPriority},
		{"medium_priority", s.MediumPriority},
		{"low_priority", s.LowPriority},
		{"estimated_overall_improvement_pct", s.EstimatedOverallImprovementPct},
		{"monthly_distance_saved_m", s.MonthlyDistanceSavedM},
		{"monthly_hours_saved", s.MonthlyHoursSaved},
		{"monthly_cost_savings", s.MonthlyCostSavings.InexactFloat64()},
		{"annual_cost_savings", s.AnnualCostSavings.InexactFloat64()},
		{"affinity_opportunities", s.AffinityOpportunities},
	}
}

// cellString formats a value for text formats. Floats use the shortest exact form.
func cellString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

func joinSKUs(skus []entities.SKUCode) string {
	parts := make([]string, len(skus))
	for i, s := range skus {
		parts[i] = string(s)
	}
	return strings.Join(parts, ";")
}
