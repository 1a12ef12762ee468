// Package xlsx reads order-line uploads from Excel workbooks.
package xlsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/domain/repositories"
)

// Source loads raw rows from one sheet of a workbook. The first row is the header.
type Source struct {
	path  string
	sheet string
}

// Verify interface compliance
var _ repositories.RowSource = (*Source)(nil)

// NewSource creates a source for sheet; an empty sheet selects the first one
func NewSource(path, sheet string) *Source {
	return &Source{path: path, sheet: sheet}
}

// Name returns the file path and sheet
func (s *Source) Name() string {
	if s.sheet == "" {
		return s.path
	}
	return s.path + "#" + s.sheet
}

// LoadRows reads the sheet. Cell values are raw, so dates arrive as Excel
// serial numbers and are resolved during normalization.
func (s *Source) LoadRows(ctx context.Context) ([]entities.RawRow, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", s.path)
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s of %s: %w", sheet, s.path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %s of %s is empty", sheet, s.path)
	}

	header := records[0]
	rows := make([]entities.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if isEmptyRecord(record) {
			continue
		}
		row := make(entities.RawRow, len(header))
		for i, column := range header {
			if column == "" {
				continue
			}
			if i < len(record) {
				row[column] = record[i]
			} else {
				row[column] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
