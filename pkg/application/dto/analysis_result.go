package dto

import (
	"fmt"
	"time"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// ClassThresholds are the cumulative volume percentages closing the A, B and C classes
type ClassThresholds struct {
	A float64 `json:"a" mapstructure:"a"`
	B float64 `json:"b" mapstructure:"b"`
	C float64 `json:"c" mapstructure:"c"`
}

// AnalysisConfig holds every tunable of an analysis run
type AnalysisConfig struct {
	MinSupport            float64            `json:"min_support" mapstructure:"min_support"`
	MinConfidence         float64            `json:"min_confidence" mapstructure:"min_confidence"`
	MinLift               float64            `json:"min_lift" mapstructure:"min_lift"`
	MaxPairs              int                `json:"max_pairs" mapstructure:"max_pairs"`
	ComputePhi            bool               `json:"compute_phi" mapstructure:"compute_phi"`
	MaxRecommendations    int                `json:"max_recommendations" mapstructure:"max_recommendations"`
	ZoneBaseDistances     map[string]float64 `json:"zone_base_distances" mapstructure:"zone_base_distances"`
	DefaultZoneDistanceM  float64            `json:"default_zone_distance_m" mapstructure:"default_zone_distance_m"`
	WithinZoneOffsetM     float64            `json:"within_zone_offset_m" mapstructure:"within_zone_offset_m"`
	UnitTimeFactor        float64            `json:"unit_time_factor" mapstructure:"unit_time_factor"`
	UnitCostFactor        float64            `json:"unit_cost_factor" mapstructure:"unit_cost_factor"`
	AdvisoryTimeout       time.Duration      `json:"advisory_timeout" mapstructure:"advisory_timeout"`
	DZone                 string             `json:"d_zone" mapstructure:"d_zone"`
	AffinityLiftThreshold float64            `json:"affinity_lift_threshold" mapstructure:"affinity_lift_threshold"`
	ClosenessThresholdM   float64            `json:"closeness_threshold_m" mapstructure:"closeness_threshold_m"`
	MinRows               int                `json:"min_rows" mapstructure:"min_rows"`
	MaxNullRatio          float64            `json:"max_null_ratio" mapstructure:"max_null_ratio"`
	ClassThresholds       ClassThresholds    `json:"class_thresholds" mapstructure:"class_thresholds"`
}

// DefaultAnalysisConfig returns the configuration used when the caller supplies none.
// UnitTimeFactor is seconds of walking per meter; UnitCostFactor is cost per labor hour.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		MinSupport:         0.01,
		MinConfidence:      0.20,
		MinLift:            1.2,
		MaxPairs:           30,
		ComputePhi:         true,
		MaxRecommendations: 20,
		ZoneBaseDistances: map[string]float64{
			"A": 15,
			"B": 45,
			"C": 75,
			"D": 105,
		},
		DefaultZoneDistanceM:  50,
		WithinZoneOffsetM:     5,
		UnitTimeFactor:        0.8,
		UnitCostFactor:        25,
		AdvisoryTimeout:       60 * time.Second,
		DZone:                 "C",
		AffinityLiftThreshold: 1.5,
		ClosenessThresholdM:   10,
		MinRows:               100,
		MaxNullRatio:          0.5,
		ClassThresholds:       ClassThresholds{A: 80, B: 95, C: 99},
	}
}

// Validate checks the configuration for values the pipeline cannot work with
func (c AnalysisConfig) Validate() error {
	if c.MinSupport < 0 || c.MinSupport > 1 {
		return fmt.Errorf("min_support must be within [0,1], got %g", c.MinSupport)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min_confidence must be within [0,1], got %g", c.MinConfidence)
	}
	if c.MinLift < 0 {
		return fmt.Errorf("min_lift cannot be negative, got %g", c.MinLift)
	}
	if c.MaxPairs < 0 {
		return fmt.Errorf("max_pairs cannot be negative, got %d", c.MaxPairs)
	}
	if c.MaxRecommendations < 0 {
		return fmt.Errorf("max_recommendations cannot be negative, got %d", c.MaxRecommendations)
	}
	if c.UnitTimeFactor < 0 || c.UnitCostFactor < 0 {
		return fmt.Errorf("unit factors cannot be negative")
	}
	if c.AdvisoryTimeout <= 0 {
		return fmt.Errorf("advisory_timeout must be positive, got %s", c.AdvisoryTimeout)
	}
	if c.MaxNullRatio < 0 || c.MaxNullRatio > 1 {
		return fmt.Errorf("max_null_ratio must be within [0,1], got %g", c.MaxNullRatio)
	}
	t := c.ClassThresholds
	if !(0 < t.A && t.A < t.B && t.B < t.C && t.C <= 100) {
		return fmt.Errorf("class thresholds must satisfy 0 < A < B < C <= 100, got %g/%g/%g", t.A, t.B, t.C)
	}
	if c.DZone == "" {
		return fmt.Errorf("d_zone is required")
	}
	return nil
}

// AnalysisResult is the complete output of one analysis run
type AnalysisResult struct {
	DatasetID       string                    `json:"dataset_id"`
	WarehouseID     string                    `json:"warehouse_id,omitempty"`
	DistanceMode    string                    `json:"distance_mode"`
	Advisor         string                    `json:"advisor"`
	Recommendations []entities.Recommendation `json:"recommendations"`
	Summary         entities.AnalysisSummary  `json:"summary"`
	SKUVelocities   []entities.SKUVelocity    `json:"sku_velocities"`
	AffinityPairs   []entities.AffinityPair   `json:"affinity_pairs"`
	Misplacements   []entities.Misplacement   `json:"misplacements"`
	Warnings        []entities.Warning        `json:"warnings"`
}
