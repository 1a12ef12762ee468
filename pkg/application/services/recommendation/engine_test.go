package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/domain/services"
	"github.com/vsinha/slotwise/pkg/domain/services/distance"
	testhelpers "github.com/vsinha/slotwise/pkg/infrastructure/testing"
)

type stubAdvisor struct {
	name   string
	advice func(req services.AdvisoryRequest) ([]services.Advice, error)
}

func (s stubAdvisor) Name() string { return s.name }

func (s stubAdvisor) Advise(_ context.Context, req services.AdvisoryRequest) ([]services.Advice, error) {
	return s.advice(req)
}

type blockingAdvisor struct{}

func (blockingAdvisor) Name() string { return "slow" }

func (blockingAdvisor) Advise(ctx context.Context, _ services.AdvisoryRequest) ([]services.Advice, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func scenario() Input {
	return Input{
		Misplacements: []entities.Misplacement{
			{SKU: "FAST", Class: entities.ClassA, CurrentLocation: "C-01-01", CurrentZone: "C", ExpectedZone: "A", PickFrequencyMonthly: 300},
			{SKU: "MID", Class: entities.ClassB, CurrentLocation: "A-02-01", CurrentZone: "A", ExpectedZone: "B", PickFrequencyMonthly: 40},
			{SKU: "SLOW", Class: entities.ClassC, CurrentLocation: "A-03-01", CurrentZone: "A", ExpectedZone: "C", PickFrequencyMonthly: 10},
		},
		Occupied: map[string]bool{
			"A-01-01": true,
			"A-02-01": true,
			"A-03-01": true,
			"C-01-01": true,
		},
	}
}

func newOrdinalEngine(advisor services.Advisor) *Engine {
	return NewEngine(DefaultConfig(), distance.NewEstimator(nil, distance.DefaultConfig()), advisor, nil)
}

func TestGenerate_Deterministic(t *testing.T) {
	out := newOrdinalEngine(nil).Generate(context.Background(), scenario())

	require.Len(t, out.Recommendations, 3)
	assert.Equal(t, "rule_based", out.Advisor)
	assert.Empty(t, out.Warnings)

	fast := out.Recommendations[0]
	assert.Equal(t, entities.SKUCode("FAST"), fast.SKU)
	assert.Equal(t, entities.PriorityHigh, fast.Priority)
	assert.Equal(t, "A", fast.RecommendedZone)
	assert.Equal(t, "A-01-02", fast.RecommendedLocation)
	assert.Equal(t, 60.0, fast.DistanceSavedPerPickM)
	assert.InDelta(t, 80.0, fast.EstimatedImprovementPct, 1e-9)
	assert.Equal(t, []entities.SKUCode{}, fast.RelatedSKUs)

	mid := out.Recommendations[1]
	assert.Equal(t, entities.PriorityMedium, mid.Priority)
	assert.Equal(t, "B-01-01", mid.RecommendedLocation)
	assert.Zero(t, mid.DistanceSavedPerPickM)
	assert.Contains(t, mid.Reason, "frees a fast slot")

	slow := out.Recommendations[2]
	assert.Equal(t, entities.PriorityLow, slow.Priority)
	assert.Equal(t, "C-01-02", slow.RecommendedLocation)

	s := out.Summary
	assert.Equal(t, 3, s.TotalRecommendations)
	assert.Equal(t, 1, s.HighPriority)
	assert.Equal(t, 1, s.MediumPriority)
	assert.Equal(t, 1, s.LowPriority)
	assert.True(t, s.BucketsConsistent())
	assert.InDelta(t, 80.0*300/350, s.EstimatedOverallImprovementPct, 1e-9)
	assert.InDelta(t, 18000.0, s.MonthlyDistanceSavedM, 1e-9)
	assert.InDelta(t, 4.0, s.MonthlyHoursSaved, 1e-9)
	assert.True(t, decimal.NewFromInt(100).Equal(s.MonthlyCostSavings), "got %s", s.MonthlyCostSavings)
	assert.True(t, decimal.NewFromInt(1200).Equal(s.AnnualCostSavings), "got %s", s.AnnualCostSavings)
}

func TestGenerate_RepeatableSlots(t *testing.T) {
	engine := newOrdinalEngine(nil)
	first := engine.Generate(context.Background(), scenario())
	second := engine.Generate(context.Background(), scenario())
	assert.Equal(t, first, second)
}

func TestGenerate_MaxRecommendations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRecommendations = 1
	engine := NewEngine(cfg, distance.NewEstimator(nil, distance.DefaultConfig()), nil, nil)

	out := engine.Generate(context.Background(), scenario())
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, entities.SKUCode("FAST"), out.Recommendations[0].SKU)
}

func TestGenerate_NoMisplacements(t *testing.T) {
	out := newOrdinalEngine(blockingAdvisor{}).Generate(context.Background(), Input{})

	assert.NotNil(t, out.Recommendations)
	assert.Empty(t, out.Recommendations)
	assert.Empty(t, out.Warnings)
	assert.Zero(t, out.Summary.TotalRecommendations)
	assert.True(t, out.Summary.MonthlyCostSavings.IsZero())
	assert.True(t, out.Summary.AnnualCostSavings.IsZero())
}

func TestGenerate_NoMisplacementsIgnoresPairs(t *testing.T) {
	in := Input{
		Pairs: []entities.AffinityPair{
			{SKUA: "X", SKUB: "Y", CoOccurrenceCount: 5, Lift: 3, CurrentDistanceM: 40},
		},
	}

	out := newOrdinalEngine(nil).Generate(context.Background(), in)
	assert.Empty(t, out.Recommendations)
	assert.Zero(t, out.Summary.AffinityOpportunities)
	assert.Zero(t, out.Summary.TotalRecommendations)
}

func TestGenerate_AffinityEnrichment(t *testing.T) {
	in := scenario()
	in.Pairs = []entities.AffinityPair{
		{SKUA: "FAST", SKUB: "PARTNER", CoOccurrenceCount: 12, Lift: 3, CurrentDistanceM: 40},
		{SKUA: "CLOSE", SKUB: "FAST", CoOccurrenceCount: 8, Lift: 2, CurrentDistanceM: 5},
		{SKUA: "FAST", SKUB: "WEAK", CoOccurrenceCount: 30, Lift: 1.3, CurrentDistanceM: 70},
	}

	out := newOrdinalEngine(nil).Generate(context.Background(), in)
	fast := out.Recommendations[0]
	assert.Equal(t, []entities.SKUCode{"PARTNER", "CLOSE"}, fast.RelatedSKUs)
	assert.Contains(t, fast.AffinityNote, "PARTNER in 12 orders (lift 3.00), currently 40.0 m apart")
	assert.Contains(t, fast.AffinityNote, "CLOSE in 8 orders (lift 2.00)")
	assert.NotContains(t, fast.AffinityNote, "WEAK")
	assert.Equal(t, 1, out.Summary.AffinityOpportunities)

	assert.Empty(t, out.Recommendations[1].AffinityNote)
}

func TestGenerate_LayoutSlots(t *testing.T) {
	estimator := distance.NewEstimator(testhelpers.BuildLayoutProfile(), distance.DefaultConfig())
	engine := NewEngine(DefaultConfig(), estimator, nil, nil)

	out := engine.Generate(context.Background(), Input{
		Misplacements: []entities.Misplacement{
			{SKU: "FAST", Class: entities.ClassA, CurrentLocation: "C-01-01", CurrentZone: "C", ExpectedZone: "A", PickFrequencyMonthly: 100},
		},
		Occupied: map[string]bool{"A-01-01": true, "C-01-01": true},
	})

	require.Len(t, out.Recommendations, 1)
	rec := out.Recommendations[0]
	assert.Equal(t, "A-01-02", rec.RecommendedLocation)
	// C-01-01 is 4+62 from the dock, zone A averages 8+5
	assert.Equal(t, 53.0, rec.DistanceSavedPerPickM)
}

func TestGenerate_AdvisorReorders(t *testing.T) {
	advisor := stubAdvisor{name: "stub", advice: func(req services.AdvisoryRequest) ([]services.Advice, error) {
		return []services.Advice{
			{SKU: "SLOW", Reason: "free the golden zone first"},
			{SKU: "FAST"},
		}, nil
	}}

	out := newOrdinalEngine(advisor).Generate(context.Background(), scenario())
	assert.Equal(t, "stub", out.Advisor)
	require.Len(t, out.Recommendations, 3)
	assert.Equal(t, entities.SKUCode("SLOW"), out.Recommendations[0].SKU)
	assert.Equal(t, "free the golden zone first", out.Recommendations[0].Reason)
	assert.Equal(t, entities.SKUCode("FAST"), out.Recommendations[1].SKU)
	assert.Contains(t, out.Recommendations[1].Reason, "saves about 60.0 m")
	assert.Equal(t, entities.SKUCode("MID"), out.Recommendations[2].SKU)

	// rewording never touches the numbers
	assert.Equal(t, 60.0, out.Recommendations[1].DistanceSavedPerPickM)
}

func TestGenerate_AdvisorFailuresFallBack(t *testing.T) {
	testCases := []struct {
		name    string
		advisor services.Advisor
	}{
		{"error", stubAdvisor{name: "stub", advice: func(services.AdvisoryRequest) ([]services.Advice, error) {
			return nil, errors.New("rate limited")
		}}},
		{"unknown sku", stubAdvisor{name: "stub", advice: func(services.AdvisoryRequest) ([]services.Advice, error) {
			return []services.Advice{{SKU: "GHOST"}}, nil
		}}},
		{"duplicate sku", stubAdvisor{name: "stub", advice: func(services.AdvisoryRequest) ([]services.Advice, error) {
			return []services.Advice{{SKU: "FAST"}, {SKU: "FAST"}}, nil
		}}},
		{"empty", stubAdvisor{name: "stub", advice: func(services.AdvisoryRequest) ([]services.Advice, error) {
			return nil, nil
		}}},
	}

	expected := newOrdinalEngine(nil).Generate(context.Background(), scenario())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := newOrdinalEngine(tc.advisor).Generate(context.Background(), scenario())
			assert.Equal(t, "rule_based", out.Advisor)
			assert.Equal(t, expected.Recommendations, out.Recommendations)
			assert.Equal(t, expected.Summary, out.Summary)
			require.Len(t, out.Warnings, 1)
			assert.Equal(t, entities.WarnAdvisoryFallback, out.Warnings[0].Code)
			assert.Equal(t, "stub", out.Warnings[0].Subject)
		})
	}
}

func TestGenerate_AdvisorTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AdvisoryTimeout = 20 * time.Millisecond
	engine := NewEngine(cfg, distance.NewEstimator(nil, distance.DefaultConfig()), blockingAdvisor{}, nil)

	start := time.Now()
	out := engine.Generate(context.Background(), scenario())
	assert.Less(t, time.Since(start), 5*time.Second)

	require.Len(t, out.Recommendations, 3)
	assert.Equal(t, "rule_based", out.Advisor)
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, entities.WarnAdvisoryFallback, out.Warnings[0].Code)
	assert.Contains(t, out.Warnings[0].Message, context.DeadlineExceeded.Error())
}

func TestReconcile(t *testing.T) {
	recs := []entities.Recommendation{{SKU: "A", Reason: "a"}, {SKU: "B", Reason: "b"}, {SKU: "C", Reason: "c"}}

	ranked, err := Reconcile(recs, []services.Advice{{SKU: "C", Reason: "cc"}})
	require.NoError(t, err)
	assert.Equal(t, []entities.Recommendation{{SKU: "C", Reason: "cc"}, {SKU: "A", Reason: "a"}, {SKU: "B", Reason: "b"}}, ranked)
	assert.Equal(t, "c", recs[2].Reason, "input is not modified")

	_, err = Reconcile(recs, []services.Advice{{SKU: "Z"}})
	assert.ErrorIs(t, err, ErrAdviceMismatch)

	ranked, err = Reconcile(nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, ranked)
}
