package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vsinha/slotwise/pkg/application/dto"
)

func generateCSVOutput(w io.Writer, result *dto.AnalysisResult, config Config) error {
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summaryFile := filepath.Join(config.OutputDir, "summary.csv")
	if err := writeCSV(summaryFile, []string{"metric", "value"}, summaryRows(result)); err != nil {
		return fmt.Errorf("failed to write summary CSV: %w", err)
	}

	written := []string{summaryFile}
	for _, t := range resultTables(result) {
		filename := filepath.Join(config.OutputDir, t.name+".csv")
		if err := writeCSV(filename, t.header, t.rows); err != nil {
			return fmt.Errorf("failed to write %s CSV: %w", t.name, err)
		}
		written = append(written, filename)
	}

	if config.Verbose {
		fmt.Fprintf(w, "CSV results saved to:\n")
		for _, filename := range written {
			fmt.Fprintf(w, "  %s\n", filename)
		}
	}
	return nil
}

func writeCSV(filename string, header []string, rows [][]any) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, v := range row {
			record[i] = cellString(v)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}
