package services

import (
	"context"
	"testing"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

func TestRuleBasedAdvisor_Ranking(t *testing.T) {
	req := AdvisoryRequest{Recommendations: []entities.Recommendation{
		{SKU: "LOW", Priority: entities.PriorityLow, PicksPerMonth: 500, Reason: "low"},
		{SKU: "B2", Priority: entities.PriorityMedium, PicksPerMonth: 10},
		{SKU: "B1", Priority: entities.PriorityMedium, PicksPerMonth: 10},
		{SKU: "TOP", Priority: entities.PriorityHigh, PicksPerMonth: 1},
		{SKU: "B0", Priority: entities.PriorityMedium, PicksPerMonth: 90},
	}}

	advice, err := RuleBasedAdvisor{}.Advise(context.Background(), req)
	if err != nil {
		t.Fatalf("Advise failed: %v", err)
	}

	expected := []entities.SKUCode{"TOP", "B0", "B1", "B2", "LOW"}
	for i, sku := range expected {
		if advice[i].SKU != sku {
			t.Errorf("Position %d: expected %s, got %s", i, sku, advice[i].SKU)
		}
	}
	if advice[4].Reason != "low" {
		t.Errorf("Expected reason to be kept, got %q", advice[4].Reason)
	}
	if req.Recommendations[0].SKU != "LOW" {
		t.Error("Expected request slice to be left in place")
	}
}
