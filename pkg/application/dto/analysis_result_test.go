package dto

import (
	"testing"
	"time"
)

func TestDefaultAnalysisConfig_Valid(t *testing.T) {
	if err := DefaultAnalysisConfig().Validate(); err != nil {
		t.Fatalf("Expected default config to validate: %v", err)
	}
}

func TestAnalysisConfig_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*AnalysisConfig)
	}{
		{"support above one", func(c *AnalysisConfig) { c.MinSupport = 1.5 }},
		{"negative confidence", func(c *AnalysisConfig) { c.MinConfidence = -0.1 }},
		{"negative lift", func(c *AnalysisConfig) { c.MinLift = -1 }},
		{"negative max pairs", func(c *AnalysisConfig) { c.MaxPairs = -1 }},
		{"zero timeout", func(c *AnalysisConfig) { c.AdvisoryTimeout = 0 }},
		{"thresholds out of order", func(c *AnalysisConfig) { c.ClassThresholds = ClassThresholds{A: 90, B: 85, C: 99} }},
		{"threshold above 100", func(c *AnalysisConfig) { c.ClassThresholds.C = 101 }},
		{"empty d zone", func(c *AnalysisConfig) { c.DZone = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultAnalysisConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}

	cfg := DefaultAnalysisConfig()
	cfg.AdvisoryTimeout = 5 * time.Second
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected shorter timeout to be valid: %v", err)
	}
}
