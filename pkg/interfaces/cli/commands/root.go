// Package commands implements the slotwise command line.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/slotwise/pkg/application/services/orchestration"
	"github.com/vsinha/slotwise/pkg/infrastructure/advisory"
	"github.com/vsinha/slotwise/pkg/infrastructure/config"
	"github.com/vsinha/slotwise/pkg/infrastructure/events"
	"github.com/vsinha/slotwise/pkg/infrastructure/logging"
)

// maxRetainedRuns bounds the pipeline event trail kept during long batches
const maxRetainedRuns = 64

// app carries what every subcommand needs once the root has loaded it
type app struct {
	configPath  string
	logLevel    string
	logEncoding string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand builds the slotwise command tree
func NewRootCommand(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "slotwise",
		Short:         "Warehouse slotting analysis from order history",
		Long:          "slotwise classifies SKUs by pick velocity, finds items ordered together,\nand recommends slot relocations that shorten picker travel.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flags.StringVar(&a.logEncoding, "log-encoding", "", "Log encoding: console or json (overrides config)")

	root.AddCommand(
		newAnalyzeCommand(a),
		newBatchCommand(a),
		newProfileCommand(a),
		newVersionCommand(version),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if a.logLevel != "" {
		cfg.App.LogLevel = a.logLevel
	}
	if a.logEncoding != "" {
		cfg.App.LogEncoding = a.logEncoding
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.LogEncoding)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.With(zap.String("app", cfg.App.Name))
	return nil
}

// newAnalyzer wires the analysis pipeline: the advisory client when an
// endpoint is configured, and an event store whose events are logged at debug.
func (a *app) newAnalyzer() (*orchestration.Analyzer, error) {
	store := events.NewInMemoryEventStore(a.logger, events.WithMaxRuns(maxRetainedRuns))
	err := store.Subscribe(events.AllAnalysisEvents, &events.HandlerFunc{
		Types: events.AllAnalysisEvents,
		Fn: func(e events.Event) error {
			a.logger.Debug("pipeline stage",
				zap.String("event_type", e.Type()),
				zap.String("run_id", e.StreamID()),
				zap.Int("version", e.Version()),
				zap.Any("data", e.Data()),
			)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to pipeline events: %w", err)
	}

	opts := []orchestration.Option{
		orchestration.WithLogger(a.logger),
		orchestration.WithEventStore(store),
	}
	if a.cfg.Advisory.Enabled() {
		client, err := advisory.New(a.cfg.Advisory, a.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create advisory client: %w", err)
		}
		opts = append(opts, orchestration.WithAdvisor(client))
		a.logger.Info("advisory endpoint enabled", zap.String("advisor", client.Name()))
	}

	return orchestration.NewAnalyzer(a.cfg.ToAnalysisConfig(), opts...)
}
