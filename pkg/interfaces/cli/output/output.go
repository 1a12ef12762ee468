package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vsinha/slotwise/pkg/application/dto"
	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Elapsed   time.Duration
	Source    string
}

// Validate checks that the format is known and has the destination it needs
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON:
		return nil
	case FormatCSV, FormatXLSX:
		if c.OutputDir == "" {
			return fmt.Errorf("output directory required for %s format", c.Format)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}
}

// Generate writes result in the configured format. Text goes to w; JSON goes
// to w unless an output directory is set; CSV and XLSX are always files.
func Generate(w io.Writer, result *dto.AnalysisResult, config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	switch config.Format {
	case FormatText:
		return generateTextOutput(w, result, config)
	case FormatJSON:
		return generateJSONOutput(w, result, config)
	case FormatCSV:
		return generateCSVOutput(w, result, config)
	default:
		return generateXLSXOutput(w, result, config)
	}
}

func generateTextOutput(w io.Writer, result *dto.AnalysisResult, config Config) error {
	s := result.Summary

	fmt.Fprintf(w, "Slotting Analysis Summary\n")
	fmt.Fprintf(w, "=========================\n\n")
	if config.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", config.Source)
	}
	if result.WarehouseID != "" {
		fmt.Fprintf(w, "Warehouse: %s\n", result.WarehouseID)
	}
	fmt.Fprintf(w, "Dataset: %s\n", result.DatasetID)
	fmt.Fprintf(w, "Distance Model: %s\n", result.DistanceMode)
	fmt.Fprintf(w, "Advisor: %s\n", result.Advisor)
	fmt.Fprintf(w, "Period: %d days, %d orders, %d SKUs\n", s.PeriodDays, s.OrdersAnalyzed, s.SKUsAnalyzed)
	fmt.Fprintf(w, "Classes: A=%d B=%d C=%d D=%d\n",
		s.ClassCounts[entities.ClassA], s.ClassCounts[entities.ClassB],
		s.ClassCounts[entities.ClassC], s.ClassCounts[entities.ClassD])
	if config.Elapsed > 0 {
		fmt.Fprintf(w, "Analysis Time: %v\n", config.Elapsed)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Recommendations: %d (high %d, medium %d, low %d)\n",
		s.TotalRecommendations, s.HighPriority, s.MediumPriority, s.LowPriority)
	fmt.Fprintf(w, "Estimated Improvement: %.1f%%\n", s.EstimatedOverallImprovementPct)
	fmt.Fprintf(w, "Monthly Distance Saved: %.0f m (%.1f h)\n", s.MonthlyDistanceSavedM, s.MonthlyHoursSaved)
	fmt.Fprintf(w, "Cost Savings: %s / month, %s / year\n", s.MonthlyCostSavings.StringFixed(2), s.AnnualCostSavings.StringFixed(2))
	fmt.Fprintf(w, "Affinity Opportunities: %d\n\n", s.AffinityOpportunities)

	if len(result.Recommendations) > 0 {
		fmt.Fprintf(w, "Relocations:\n")
		fmt.Fprintf(w, "%-4s %-14s %-5s %-12s %-12s %-8s %-10s %-10s\n",
			"#", "SKU", "Class", "From", "To", "Priority", "Picks/Mo", "Saved/Pick")
		fmt.Fprintf(w, "%-4s %-14s %-5s %-12s %-12s %-8s %-10s %-10s\n",
			"----", "--------------", "-----", "------------", "------------", "--------", "----------", "----------")

		for i, rec := range result.Recommendations {
			fmt.Fprintf(w, "%-4d %-14s %-5s %-12s %-12s %-8s %-10.1f %-10s\n",
				i+1,
				rec.SKU,
				rec.Class,
				rec.CurrentLocation,
				rec.RecommendedLocation,
				rec.Priority.String(),
				rec.PicksPerMonth,
				fmt.Sprintf("%.1f m", rec.DistanceSavedPerPickM))
		}
		fmt.Fprintln(w)

		if config.Verbose {
			fmt.Fprintf(w, "Reasons:\n")
			for _, rec := range result.Recommendations {
				fmt.Fprintf(w, "  %s: %s\n", rec.SKU, rec.Reason)
				if rec.AffinityNote != "" {
					fmt.Fprintf(w, "  %s  %s\n", strings.Repeat(" ", len(rec.SKU)), rec.AffinityNote)
				}
			}
			fmt.Fprintln(w)
		}
	}

	if len(result.AffinityPairs) > 0 {
		pairs := result.AffinityPairs
		if !config.Verbose && len(pairs) > 10 {
			pairs = pairs[:10]
		}
		fmt.Fprintf(w, "Affinity Pairs:\n")
		fmt.Fprintf(w, "%-14s %-14s %-8s %-8s %-8s %-10s\n",
			"SKU A", "SKU B", "Orders", "Support", "Lift", "Distance")
		fmt.Fprintf(w, "%-14s %-14s %-8s %-8s %-8s %-10s\n",
			"--------------", "--------------", "--------", "--------", "--------", "----------")

		for _, p := range pairs {
			fmt.Fprintf(w, "%-14s %-14s %-8d %-8.3f %-8.2f %-10s\n",
				p.SKUA, p.SKUB, p.CoOccurrenceCount, p.Support, p.Lift,
				fmt.Sprintf("%.1f m", p.CurrentDistanceM))
		}
		if len(pairs) < len(result.AffinityPairs) {
			fmt.Fprintf(w, "... %d more\n", len(result.AffinityPairs)-len(pairs))
		}
		fmt.Fprintln(w)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "Warnings: %d\n", len(result.Warnings))
		if config.Verbose {
			for _, warning := range result.Warnings {
				if warning.Subject != "" {
					fmt.Fprintf(w, "  [%s] %s: %s\n", warning.Code, warning.Subject, warning.Message)
				} else {
					fmt.Fprintf(w, "  [%s] %s\n", warning.Code, warning.Message)
				}
			}
		}
	}

	return nil
}

func generateJSONOutput(w io.Writer, result *dto.AnalysisResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		_, err = fmt.Fprintln(w, string(jsonData))
		return err
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "slotting_results.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(w, "JSON results saved to: %s\n", filename)
	}
	return nil
}
