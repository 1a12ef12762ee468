package services

import (
	"context"
	"sort"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// Advice is one advisor verdict: the SKU it concerns and an optional rephrased reason.
// The order of a returned []Advice is the advisor's ranking.
type Advice struct {
	SKU    entities.SKUCode `json:"sku_code"`
	Reason string           `json:"reason,omitempty"`
}

// AdvisoryRequest carries the deterministic candidates an advisor may rephrase or re-rank
type AdvisoryRequest struct {
	WarehouseID     string                    `json:"warehouse_id,omitempty"`
	Recommendations []entities.Recommendation `json:"recommendations"`
	Pairs           []entities.AffinityPair   `json:"affinity_pairs"`
}

// Advisor ranks and phrases relocation candidates. Advisors never change zones,
// locations, priorities or numeric estimates; they only reorder and reword.
type Advisor interface {
	Name() string
	Advise(ctx context.Context, req AdvisoryRequest) ([]Advice, error)
}

// RuleBasedAdvisor is the deterministic advisor: priority first, then pick volume, then SKU
type RuleBasedAdvisor struct{}

var _ Advisor = RuleBasedAdvisor{}

// Name returns the advisor name
func (RuleBasedAdvisor) Name() string { return "rule_based" }

// Advise ranks the candidates and keeps their reasons
func (RuleBasedAdvisor) Advise(_ context.Context, req AdvisoryRequest) ([]Advice, error) {
	ranked := make([]entities.Recommendation, len(req.Recommendations))
	copy(ranked, req.Recommendations)
	SortRecommendations(ranked)

	advice := make([]Advice, len(ranked))
	for i, rec := range ranked {
		advice[i] = Advice{SKU: rec.SKU, Reason: rec.Reason}
	}
	return advice, nil
}

// SortRecommendations orders recommendations by priority, then picks per month
// descending, then SKU code.
func SortRecommendations(recs []entities.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority < recs[j].Priority
		}
		if recs[i].PicksPerMonth != recs[j].PicksPerMonth {
			return recs[i].PicksPerMonth > recs[j].PicksPerMonth
		}
		return recs[i].SKU < recs[j].SKU
	})
}
