// Package config loads slotwise settings from YAML and SLOTWISE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/vsinha/slotwise/pkg/application/dto"
	"github.com/vsinha/slotwise/pkg/infrastructure/advisory"
)

// EnvPrefix prefixes every environment override, e.g. SLOTWISE_ANALYSIS_MIN_LIFT
const EnvPrefix = "SLOTWISE"

// Config is the complete application configuration
type Config struct {
	App      AppConfig          `mapstructure:"app"`
	Analysis dto.AnalysisConfig `mapstructure:"analysis"`
	Advisory advisory.Config    `mapstructure:"advisory"`
	Batch    BatchConfig        `mapstructure:"batch"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	LogLevel    string `mapstructure:"log_level"`
	LogEncoding string `mapstructure:"log_encoding"`
}

type BatchConfig struct {
	Concurrency int  `mapstructure:"concurrency"`
	FailFast    bool `mapstructure:"fail_fast"`
}

// Load reads configPath when non-empty, then applies environment overrides on
// top of the built-in defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	cfg.normalize()

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := dto.DefaultAnalysisConfig()

	v.SetDefault("app.name", "slotwise")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_encoding", "console")

	v.SetDefault("analysis.min_support", d.MinSupport)
	v.SetDefault("analysis.min_confidence", d.MinConfidence)
	v.SetDefault("analysis.min_lift", d.MinLift)
	v.SetDefault("analysis.max_pairs", d.MaxPairs)
	v.SetDefault("analysis.compute_phi", d.ComputePhi)
	v.SetDefault("analysis.max_recommendations", d.MaxRecommendations)
	for zone, dist := range d.ZoneBaseDistances {
		v.SetDefault("analysis.zone_base_distances."+strings.ToLower(zone), dist)
	}
	v.SetDefault("analysis.default_zone_distance_m", d.DefaultZoneDistanceM)
	v.SetDefault("analysis.within_zone_offset_m", d.WithinZoneOffsetM)
	v.SetDefault("analysis.unit_time_factor", d.UnitTimeFactor)
	v.SetDefault("analysis.unit_cost_factor", d.UnitCostFactor)
	v.SetDefault("analysis.advisory_timeout", d.AdvisoryTimeout)
	v.SetDefault("analysis.d_zone", d.DZone)
	v.SetDefault("analysis.affinity_lift_threshold", d.AffinityLiftThreshold)
	v.SetDefault("analysis.closeness_threshold_m", d.ClosenessThresholdM)
	v.SetDefault("analysis.min_rows", d.MinRows)
	v.SetDefault("analysis.max_null_ratio", d.MaxNullRatio)
	v.SetDefault("analysis.class_thresholds.a", d.ClassThresholds.A)
	v.SetDefault("analysis.class_thresholds.b", d.ClassThresholds.B)
	v.SetDefault("analysis.class_thresholds.c", d.ClassThresholds.C)

	v.SetDefault("advisory.base_url", "")
	v.SetDefault("advisory.api_key", "")
	v.SetDefault("advisory.model", "")
	v.SetDefault("advisory.chat_completions_path", "/v1/chat/completions")
	v.SetDefault("advisory.timeout", d.AdvisoryTimeout)

	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.fail_fast", false)
}

// normalize restores the upper-case zone names viper lowercases on read
func (c *Config) normalize() {
	zones := make(map[string]float64, len(c.Analysis.ZoneBaseDistances))
	for zone, dist := range c.Analysis.ZoneBaseDistances {
		zones[strings.ToUpper(zone)] = dist
	}
	c.Analysis.ZoneBaseDistances = zones
	c.Analysis.DZone = strings.ToUpper(strings.TrimSpace(c.Analysis.DZone))
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if err := c.Analysis.Validate(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if c.Advisory.Enabled() && strings.TrimSpace(c.Advisory.Model) == "" {
		return fmt.Errorf("advisory.model is required when advisory.base_url is set")
	}
	if c.Batch.Concurrency < 0 {
		return fmt.Errorf("batch.concurrency cannot be negative, got %d", c.Batch.Concurrency)
	}
	return nil
}

// ToAnalysisConfig returns the analysis settings, with the advisory call
// bounded by the tighter of the two timeouts.
func (c *Config) ToAnalysisConfig() dto.AnalysisConfig {
	cfg := c.Analysis
	if c.Advisory.Enabled() && c.Advisory.Timeout > 0 && c.Advisory.Timeout < cfg.AdvisoryTimeout {
		cfg.AdvisoryTimeout = c.Advisory.Timeout
	}
	return cfg
}
