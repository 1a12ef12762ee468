package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/slotwise/pkg/application/dto"
)

const summarySheet = "Summary"

func generateXLSXOutput(w io.Writer, result *dto.AnalysisResult, config Config) error {
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if err := writeSheet(f, summarySheet, []string{"metric", "value"}, summaryRows(result)); err != nil {
		return err
	}

	for _, t := range resultTables(result) {
		if _, err := f.NewSheet(t.name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", t.name, err)
		}
		if err := writeSheet(f, t.name, t.header, t.rows); err != nil {
			return err
		}
	}

	filename := filepath.Join(config.OutputDir, "slotting_report.xlsx")
	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to write XLSX report: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(w, "XLSX report saved to: %s\n", filename)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
