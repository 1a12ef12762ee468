// Package recommendation turns misplaced SKUs into ranked relocation proposals.
//
// The numeric core is deterministic. An optional Advisor may reorder and reword
// the proposals; when it fails the deterministic ranking is used and the run
// still completes.
package recommendation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/domain/services"
)

// Config holds the engine tunables
type Config struct {
	// MaxRecommendations caps the proposals (0 = unlimited)
	MaxRecommendations    int
	AffinityLiftThreshold float64
	ClosenessThresholdM   float64
	// UnitTimeFactor is seconds of travel per meter
	UnitTimeFactor float64
	// UnitCostFactor is labor cost per hour
	UnitCostFactor  float64
	AdvisoryTimeout time.Duration
}

// DefaultConfig returns the engine defaults
func DefaultConfig() Config {
	return Config{
		MaxRecommendations:    20,
		AffinityLiftThreshold: 1.5,
		ClosenessThresholdM:   10,
		UnitTimeFactor:        0.8,
		UnitCostFactor:        25,
		AdvisoryTimeout:       60 * time.Second,
	}
}

// Distances is the part of the distance model the engine needs
type Distances interface {
	DistanceTo(location string) float64
	ZoneDistance(zone string) float64
	CandidateSlots(zone string) []string
}

// Input is everything the engine consumes for one run
type Input struct {
	WarehouseID   string
	Misplacements []entities.Misplacement
	Pairs         []entities.AffinityPair
	// Occupied holds every location currently in use
	Occupied map[string]bool
}

// Output is the ranked proposals and their aggregate figures
type Output struct {
	Recommendations []entities.Recommendation
	Summary         entities.AnalysisSummary
	Advisor         string
	Warnings        []entities.Warning
}

// Engine builds recommendations
type Engine struct {
	config    Config
	distances Distances
	advisor   services.Advisor
	logger    *zap.Logger
}

// NewEngine creates an engine. A nil advisor selects the rule-based ranking;
// a nil logger discards output.
func NewEngine(config Config, distances Distances, advisor services.Advisor, logger *zap.Logger) *Engine {
	if advisor == nil {
		advisor = services.RuleBasedAdvisor{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		config:    config,
		distances: distances,
		advisor:   advisor,
		logger:    logger,
	}
}

// Generate builds, enriches and ranks proposals for the given misplacements.
// It never fails: advisor errors fall back to the rule-based ranking and are
// reported as advisory_fallback warnings. No misplacements yields an empty
// list and a zero summary.
func (e *Engine) Generate(ctx context.Context, in Input) *Output {
	out := &Output{
		Recommendations: []entities.Recommendation{},
		Summary:         e.summarize(nil, in.Pairs),
		Advisor:         e.advisor.Name(),
	}

	candidates := in.Misplacements
	if e.config.MaxRecommendations > 0 && len(candidates) > e.config.MaxRecommendations {
		candidates = candidates[:e.config.MaxRecommendations]
	}
	if len(candidates) == 0 {
		return out
	}

	slots := newSlotAllocator(e.distances, in.Occupied)
	recs := make([]entities.Recommendation, 0, len(candidates))
	for _, m := range candidates {
		rec := e.build(m, slots.next(m.ExpectedZone))
		e.enrich(&rec, in.Pairs)
		recs = append(recs, rec)
	}

	ranked, advisorName, warning := e.rank(ctx, in.WarehouseID, recs, in.Pairs)
	if warning != nil {
		out.Warnings = append(out.Warnings, *warning)
	}

	out.Recommendations = ranked
	out.Advisor = advisorName
	out.Summary = e.summarize(ranked, in.Pairs)

	e.logger.Debug("recommendations generated",
		zap.Int("candidates", len(candidates)),
		zap.String("advisor", advisorName),
	)
	return out
}

func (e *Engine) build(m entities.Misplacement, slot string) entities.Recommendation {
	current := e.distances.DistanceTo(m.CurrentLocation)
	target := e.distances.ZoneDistance(m.ExpectedZone)

	saved := 0.0
	if !m.IsDemotion() && current > target {
		saved = current - target
	}
	improvement := 0.0
	if current > 0 {
		improvement = saved / current * 100
	}

	return entities.Recommendation{
		SKU:                     m.SKU,
		Class:                   m.Class,
		CurrentLocation:         m.CurrentLocation,
		CurrentZone:             m.CurrentZone,
		RecommendedLocation:     slot,
		RecommendedZone:         m.ExpectedZone,
		Reason:                  reason(m, saved),
		Priority:                m.Class.Priority(),
		EstimatedImprovementPct: improvement,
		DistanceSavedPerPickM:   saved,
		PicksPerMonth:           m.PickFrequencyMonthly,
		RelatedSKUs:             []entities.SKUCode{},
	}
}

func reason(m entities.Misplacement, saved float64) string {
	switch {
	case m.IsDemotion():
		return fmt.Sprintf("Class %s SKU occupies zone %s; moving it to zone %s frees a fast slot for higher-velocity items",
			m.Class, m.CurrentZone, m.ExpectedZone)
	case saved > 0:
		return fmt.Sprintf("Class %s SKU picked %.0f times a month is stored in zone %s; zone %s saves about %.1f m per pick",
			m.Class, m.PickFrequencyMonthly, m.CurrentZone, m.ExpectedZone, saved)
	default:
		return fmt.Sprintf("Class %s SKU is stored in zone %s; its velocity class belongs in zone %s",
			m.Class, m.CurrentZone, m.ExpectedZone)
	}
}

// rank asks the advisor for an order. On any advisor failure the rule-based
// order is returned together with a warning.
func (e *Engine) rank(ctx context.Context, warehouseID string, recs []entities.Recommendation, pairs []entities.AffinityPair) ([]entities.Recommendation, string, *entities.Warning) {
	req := services.AdvisoryRequest{
		WarehouseID:     warehouseID,
		Recommendations: recs,
		Pairs:           pairs,
	}

	callCtx, cancel := context.WithTimeout(ctx, e.config.AdvisoryTimeout)
	defer cancel()

	advice, err := e.advisor.Advise(callCtx, req)
	if err == nil {
		var ranked []entities.Recommendation
		if ranked, err = Reconcile(recs, advice); err == nil {
			return ranked, e.advisor.Name(), nil
		}
	}

	e.logger.Warn("advisor failed, using rule-based ranking",
		zap.String("advisor", e.advisor.Name()),
		zap.Error(err),
	)

	fallback := services.RuleBasedAdvisor{}
	advice, _ = fallback.Advise(ctx, req)
	ranked, _ := Reconcile(recs, advice)
	return ranked, fallback.Name(), &entities.Warning{
		Code:    entities.WarnAdvisoryFallback,
		Subject: e.advisor.Name(),
		Message: err.Error(),
	}
}
