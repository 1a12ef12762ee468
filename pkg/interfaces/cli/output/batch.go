package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vsinha/slotwise/pkg/application/dto"
	"github.com/vsinha/slotwise/pkg/application/services/orchestration"
)

type batchEntry struct {
	Name   string              `json:"name"`
	Result *dto.AnalysisResult `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// GenerateBatch writes the outcome of every job. Text prints one line per
// warehouse; the file formats write each successful result to a directory
// named after its job.
func GenerateBatch(w io.Writer, results []orchestration.JobResult, config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	switch config.Format {
	case FormatText:
		return generateBatchText(w, results, config)
	case FormatJSON:
		return generateBatchJSON(w, results, config)
	default:
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			jobConfig := config
			jobConfig.OutputDir = filepath.Join(config.OutputDir, r.Name)
			if err := Generate(w, r.Result, jobConfig); err != nil {
				return fmt.Errorf("job %s: %w", r.Name, err)
			}
		}
		return generateBatchText(w, results, config)
	}
}

func generateBatchText(w io.Writer, results []orchestration.JobResult, config Config) error {
	fmt.Fprintf(w, "Batch Results\n")
	fmt.Fprintf(w, "=============\n\n")
	fmt.Fprintf(w, "%-20s %-8s %-8s %-12s %-14s %s\n",
		"Warehouse", "Status", "Recs", "Improvement", "Annual Saving", "Detail")
	fmt.Fprintf(w, "%-20s %-8s %-8s %-12s %-14s %s\n",
		"--------------------", "--------", "--------", "------------", "--------------", "------")

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "%-20s %-8s %-8s %-12s %-14s %v\n", r.Name, "FAILED", "-", "-", "-", r.Err)
			continue
		}
		s := r.Result.Summary
		fmt.Fprintf(w, "%-20s %-8s %-8d %-12s %-14s %s\n",
			r.Name, "OK", s.TotalRecommendations,
			fmt.Sprintf("%.1f%%", s.EstimatedOverallImprovementPct),
			s.AnnualCostSavings.StringFixed(2),
			r.Result.DistanceMode)
	}
	fmt.Fprintf(w, "\n%d of %d warehouses analyzed", len(results)-failed, len(results))
	if config.Elapsed > 0 {
		fmt.Fprintf(w, " in %v", config.Elapsed)
	}
	fmt.Fprintln(w)
	return nil
}

func generateBatchJSON(w io.Writer, results []orchestration.JobResult, config Config) error {
	entries := make([]batchEntry, len(results))
	for i, r := range results {
		entries[i] = batchEntry{Name: r.Name, Result: r.Result}
		if r.Err != nil {
			entries[i].Error = r.Err.Error()
		}
	}

	jsonData, err := json.MarshalIndent(entries, "", "  ")
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
	filename := filepath.Join(config.OutputDir, "batch_results.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(w, "JSON results saved to: %s\n", filename)
	}
	return nil
}
