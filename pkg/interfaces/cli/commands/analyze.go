package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/infrastructure/repositories/profile"
	"github.com/vsinha/slotwise/pkg/infrastructure/repositories/source"
	"github.com/vsinha/slotwise/pkg/interfaces/cli/output"
)

type analyzeOptions struct {
	sheet       string
	profilePath string
	profilesDir string
	warehouseID string
	format      string
	outputDir   string
	verbose     bool
}

func newAnalyzeCommand(a *app) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <orders-file>",
		Short: "Analyze one order history export (CSV, TSV or XLSX)",
		Example: `  slotwise analyze orders.csv
  slotwise analyze orders.xlsx --sheet Q1 --profile north.yaml --format json
  slotwise analyze orders.csv --profiles-dir profiles --warehouse WH-N --format xlsx --output out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.sheet, "sheet", "", "Worksheet to read from an XLSX file (default: first sheet)")
	flags.StringVar(&opts.profilePath, "profile", "", "Warehouse profile YAML file")
	flags.StringVar(&opts.profilesDir, "profiles-dir", "", "Directory of stored warehouse profiles")
	flags.StringVar(&opts.warehouseID, "warehouse", "", "Warehouse id to look up in --profiles-dir")
	flags.StringVar(&opts.format, "format", output.FormatText, "Output format: text, json, csv, xlsx")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "Output directory (required for csv and xlsx)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Show reasons, all affinity pairs and every warning")
	cmd.MarkFlagsMutuallyExclusive("profile", "warehouse")
	cmd.MarkFlagsRequiredTogether("warehouse", "profiles-dir")

	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, ordersPath string, opts *analyzeOptions) error {
	ctx := cmd.Context()

	outConfig := output.Config{
		Format:    opts.format,
		OutputDir: opts.outputDir,
		Verbose:   opts.verbose,
		Source:    ordersPath,
	}
	if err := outConfig.Validate(); err != nil {
		return err
	}

	src, err := source.Open(ordersPath, opts.sheet)
	if err != nil {
		return err
	}

	var p *entities.WarehouseProfile
	switch {
	case opts.profilePath != "":
		if p, err = profile.LoadFile(opts.profilePath); err != nil {
			return err
		}
	case opts.warehouseID != "":
		if p, err = profile.NewFileRepository(opts.profilesDir).GetProfile(ctx, opts.warehouseID); err != nil {
			return err
		}
	}

	analyzer, err := a.newAnalyzer()
	if err != nil {
		return err
	}

	start := time.Now()
	rows, err := src.LoadRows(ctx)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	a.logger.Debug("orders loaded", zap.String("source", src.Name()), zap.Int("rows", len(rows)))

	result, err := analyzer.Analyze(ctx, rows, p)
	if err != nil {
		return fmt.Errorf("analysis of %s failed: %w", src.Name(), err)
	}
	outConfig.Elapsed = time.Since(start)

	return output.Generate(cmd.OutOrStdout(), result, outConfig)
}
