package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/slotwise/pkg/application/services/orchestration"
	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/domain/repositories"
	"github.com/vsinha/slotwise/pkg/infrastructure/repositories/manifest"
	"github.com/vsinha/slotwise/pkg/infrastructure/repositories/profile"
	"github.com/vsinha/slotwise/pkg/infrastructure/repositories/source"
	"github.com/vsinha/slotwise/pkg/interfaces/cli/output"
)

type batchOptions struct {
	concurrency int
	failFast    bool
	format      string
	outputDir   string
	verbose     bool
}

func newBatchCommand(a *app) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Analyze several warehouses in parallel from a manifest",
		Example: `  slotwise batch warehouses.yaml
  slotwise batch warehouses.yaml --concurrency 2 --fail-fast --format csv --output out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("concurrency") {
				opts.concurrency = a.cfg.Batch.Concurrency
			}
			if !cmd.Flags().Changed("fail-fast") {
				opts.failFast = a.cfg.Batch.FailFast
			}
			return a.runBatch(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.concurrency, "concurrency", 0, "Warehouses analyzed at once (default from config; 0 means all)")
	flags.BoolVar(&opts.failFast, "fail-fast", false, "Stop starting new warehouses after the first failure")
	flags.StringVar(&opts.format, "format", output.FormatText, "Output format: text, json, csv, xlsx")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "Output directory (required for csv and xlsx)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "List every file written")

	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, manifestPath string, opts *batchOptions) error {
	ctx := cmd.Context()

	outConfig := output.Config{
		Format:    opts.format,
		OutputDir: opts.outputDir,
		Verbose:   opts.verbose,
	}
	if err := outConfig.Validate(); err != nil {
		return err
	}
	if opts.concurrency < 0 {
		return fmt.Errorf("concurrency cannot be negative, got %d", opts.concurrency)
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}
	jobs, err := buildJobs(ctx, m)
	if err != nil {
		return err
	}

	analyzer, err := a.newAnalyzer()
	if err != nil {
		return err
	}

	start := time.Now()
	results, runErr := orchestration.NewBatchRunner(analyzer, opts.concurrency, opts.failFast, a.logger).Run(ctx, jobs)
	outConfig.Elapsed = time.Since(start)

	if err := output.GenerateBatch(cmd.OutOrStdout(), results, outConfig); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d warehouses failed", failed, len(results))
	}
	return nil
}

// buildJobs opens every dataset of the manifest and resolves its profile up front
func buildJobs(ctx context.Context, m *manifest.Manifest) ([]orchestration.Job, error) {
	var repo repositories.ProfileRepository
	if m.ProfilesDir != "" {
		repo = profile.NewFileRepository(m.ProfilesDir)
	}

	jobs := make([]orchestration.Job, 0, len(m.Warehouses))
	for _, w := range m.Warehouses {
		src, err := source.Open(w.Orders, w.Sheet)
		if err != nil {
			return nil, fmt.Errorf("warehouse %s: %w", w.Name, err)
		}

		var p *entities.WarehouseProfile
		switch {
		case w.Profile != "":
			p, err = profile.LoadFile(w.Profile)
		case w.WarehouseID != "":
			p, err = repo.GetProfile(ctx, w.WarehouseID)
		}
		if err != nil {
			return nil, fmt.Errorf("warehouse %s: %w", w.Name, err)
		}

		jobs = append(jobs, orchestration.Job{Name: w.Name, Source: src, Profile: p})
	}
	return jobs, nil
}
