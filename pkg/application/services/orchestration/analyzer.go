// Package orchestration runs the full slotting analysis pipeline.
package orchestration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/slotwise/pkg/application/dto"
	"github.com/vsinha/slotwise/pkg/application/services/affinity"
	"github.com/vsinha/slotwise/pkg/application/services/misplacement"
	"github.com/vsinha/slotwise/pkg/application/services/normalize"
	"github.com/vsinha/slotwise/pkg/application/services/recommendation"
	"github.com/vsinha/slotwise/pkg/application/services/velocity"
	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/domain/services"
	"github.com/vsinha/slotwise/pkg/domain/services/distance"
	"github.com/vsinha/slotwise/pkg/infrastructure/events"
)

// datasetNamespace scopes the name-based dataset ids
var datasetNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/vsinha/slotwise/dataset"))

// Analyzer coordinates normalization, classification, affinity, distance,
// misplacement and recommendation for one dataset at a time. It is safe for
// concurrent use when its advisor and event store are.
type Analyzer struct {
	config  dto.AnalysisConfig
	advisor services.Advisor
	events  events.EventStore
	logger  *zap.Logger
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithAdvisor sets the advisor consulted for ranking and wording
func WithAdvisor(advisor services.Advisor) Option {
	return func(a *Analyzer) { a.advisor = advisor }
}

// WithEventStore records every pipeline stage in store
func WithEventStore(store events.EventStore) Option {
	return func(a *Analyzer) { a.events = store }
}

// NewAnalyzer validates config and creates an analyzer
func NewAnalyzer(config dto.AnalysisConfig, opts ...Option) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}
	if err := distanceConfig(config).Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}

	a := &Analyzer{
		config:  config,
		advisor: services.RuleBasedAdvisor{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.advisor == nil {
		a.advisor = services.RuleBasedAdvisor{}
	}
	return a, nil
}

// Analyze runs the default pipeline with the rule-based advisor
func Analyze(ctx context.Context, rows []entities.RawRow, profile *entities.WarehouseProfile) (*dto.AnalysisResult, error) {
	a, err := NewAnalyzer(dto.DefaultAnalysisConfig())
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, rows, profile)
}

// Analyze runs the pipeline over rows. profile may be nil. The result is
// either a *entities.ValidationError with no result, or a complete result;
// identical inputs give identical results.
func (a *Analyzer) Analyze(ctx context.Context, rows []entities.RawRow, profile *entities.WarehouseProfile) (*dto.AnalysisResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	warehouseID := ""
	if profile != nil {
		warehouseID = profile.WarehouseID
	}
	logger := a.logger.With(zap.String("run_id", runID), zap.String("warehouse", warehouseID))

	a.publish(runID, events.AnalysisStartedEvent, events.AnalysisStarted{WarehouseID: warehouseID, Rows: len(rows)})

	normalized, err := normalize.NewNormalizer(normalize.Config{
		MinRows:      a.config.MinRows,
		MaxNullRatio: a.config.MaxNullRatio,
	}, logger).Normalize(rows)
	if err != nil {
		return nil, a.reject(runID, logger, err)
	}
	lines := normalized.Lines
	a.publish(runID, events.RowsNormalizedEvent, events.RowsNormalized{Lines: len(lines), Dropped: len(normalized.Warnings)})

	periodDays := entities.PeriodDays(lines)
	velocities, err := velocity.NewClassifier(velocity.Thresholds(a.config.ClassThresholds)).Classify(lines)
	if err != nil {
		return nil, a.reject(runID, logger, err)
	}
	classCounts := velocity.ClassCounts(velocities)
	a.publish(runID, events.VelocityClassifiedEvent, events.VelocityClassified{
		SKUs:        len(velocities),
		PeriodDays:  periodDays,
		ClassCounts: classCounts,
	})

	datasetID, err := DatasetID(lines, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to derive dataset id: %w", err)
	}
	logger = logger.With(zap.String("dataset_id", datasetID))

	estimator := distance.NewEstimator(profile, distanceConfig(a.config))
	locations := services.PrimaryLocations(lines)

	pairs := affinity.NewAnalyzer(affinity.Config{
		MinSupport:    a.config.MinSupport,
		MinConfidence: a.config.MinConfidence,
		MinLift:       a.config.MinLift,
		MaxPairs:      a.config.MaxPairs,
		ComputePhi:    a.config.ComputePhi,
	}, logger).Analyze(lines, locations, estimator)
	orders := countOrders(lines)
	a.publish(runID, events.AffinityComputedEvent, events.AffinityComputed{Orders: orders, Pairs: len(pairs)})

	misplaced, detectWarnings := misplacement.NewDetector(a.config.DZone).Detect(velocities, locations, estimator)
	a.publish(runID, events.MisplacementsDetectedEvent, events.MisplacementsDetected{
		Count:        len(misplaced),
		DistanceMode: string(estimator.Mode()),
	})

	engine := recommendation.NewEngine(recommendation.Config{
		MaxRecommendations:    a.config.MaxRecommendations,
		AffinityLiftThreshold: a.config.AffinityLiftThreshold,
		ClosenessThresholdM:   a.config.ClosenessThresholdM,
		UnitTimeFactor:        a.config.UnitTimeFactor,
		UnitCostFactor:        a.config.UnitCostFactor,
		AdvisoryTimeout:       a.config.AdvisoryTimeout,
	}, estimator, a.advisor, logger)

	out := engine.Generate(ctx, recommendation.Input{
		WarehouseID:   warehouseID,
		Misplacements: misplaced,
		Pairs:         pairs,
		Occupied:      services.OccupiedLocations(lines),
	})
	for _, w := range out.Warnings {
		if w.Code == entities.WarnAdvisoryFallback {
			a.publish(runID, events.AdvisoryFellBackEvent, events.AdvisoryFellBack{Advisor: w.Subject, Reason: w.Message})
		}
	}
	a.publish(runID, events.RecommendationsGeneratedEvent, events.RecommendationsGenerated{
		Count:   len(out.Recommendations),
		Advisor: out.Advisor,
	})

	summary := out.Summary
	summary.SKUsAnalyzed = len(velocities)
	summary.OrdersAnalyzed = orders
	summary.PeriodDays = periodDays
	summary.ClassCounts = classCounts

	warnings := make([]entities.Warning, 0, len(normalized.Warnings)+len(detectWarnings)+len(out.Warnings))
	warnings = append(warnings, normalized.Warnings...)
	warnings = append(warnings, detectWarnings...)
	warnings = append(warnings, estimator.Warnings()...)
	warnings = append(warnings, out.Warnings...)
	entities.SortWarnings(warnings)

	result := &dto.AnalysisResult{
		DatasetID:       datasetID,
		WarehouseID:     warehouseID,
		DistanceMode:    string(estimator.Mode()),
		Advisor:         out.Advisor,
		Recommendations: out.Recommendations,
		Summary:         summary,
		SKUVelocities:   velocities,
		AffinityPairs:   pairs,
		Misplacements:   misplaced,
		Warnings:        warnings,
	}

	a.publish(runID, events.AnalysisCompletedEvent, events.AnalysisCompleted{
		Recommendations: len(result.Recommendations),
		Warnings:        len(result.Warnings),
	})
	logger.Info("analysis completed",
		zap.String("mode", result.DistanceMode),
		zap.Int("skus", summary.SKUsAnalyzed),
		zap.Int("recommendations", summary.TotalRecommendations),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (a *Analyzer) reject(runID string, logger *zap.Logger, err error) error {
	var verr *entities.ValidationError
	if errors.As(err, &verr) {
		a.publish(runID, events.AnalysisRejectedEvent, events.AnalysisRejected{Code: verr.Code, Fields: verr.Fields})
		logger.Info("analysis rejected", zap.String("code", verr.Code), zap.Strings("fields", verr.Fields))
	}
	return err
}

func (a *Analyzer) publish(runID, eventType string, data any) {
	if a.events == nil {
		return
	}
	if err := a.events.AppendEvent(runID, events.NewEvent(eventType, runID, data)); err != nil {
		a.logger.Warn("failed to record event", zap.String("event_type", eventType), zap.Error(err))
	}
}

// DatasetID derives a stable name-based UUID from the normalized lines and
// the warehouse id, so repeated runs over the same data share an id.
func DatasetID(lines []entities.OrderLine, profile *entities.WarehouseProfile) (string, error) {
	payload, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	if profile != nil {
		payload = append(payload, profile.WarehouseID...)
	}
	return uuid.NewSHA1(datasetNamespace, payload).String(), nil
}

func countOrders(lines []entities.OrderLine) int {
	seen := make(map[string]struct{})
	for _, line := range lines {
		seen[line.OrderID] = struct{}{}
	}
	return len(seen)
}

func distanceConfig(c dto.AnalysisConfig) distance.Config {
	return distance.Config{
		ZoneBaseDistances:    c.ZoneBaseDistances,
		DefaultZoneDistanceM: c.DefaultZoneDistanceM,
		WithinZoneOffsetM:    c.WithinZoneOffsetM,
	}
}
