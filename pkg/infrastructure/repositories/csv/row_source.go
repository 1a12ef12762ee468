// Package csv reads order-line uploads from comma separated files.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vsinha/slotwise/pkg/domain/entities"
	"github.com/vsinha/slotwise/pkg/domain/repositories"
)

// Source loads raw rows from a CSV file whose first record is the header
type Source struct {
	path  string
	comma rune
}

// Verify interface compliance
var _ repositories.RowSource = (*Source)(nil)

// NewSource creates a comma separated source
func NewSource(path string) *Source {
	return &Source{path: path, comma: ','}
}

// NewSourceWithComma creates a source with a custom field delimiter, e.g. ';'
func NewSourceWithComma(path string, comma rune) *Source {
	return &Source{path: path, comma: comma}
}

// Name returns the file path
func (s *Source) Name() string {
	return s.path
}

// LoadRows reads every record of the file
func (s *Source) LoadRows(ctx context.Context) ([]entities.RawRow, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open orders file %s: %w", s.path, err)
	}
	defer file.Close()

	rows, err := ReadRows(ctx, file, s.comma)
	if err != nil {
		return nil, fmt.Errorf("orders file %s: %w", s.path, err)
	}
	return rows, nil
}

// ReadRows parses CSV content into raw rows keyed by header. Short records
// leave their missing cells empty; cells beyond the header are ignored.
func ReadRows(ctx context.Context, r io.Reader, comma rune) ([]entities.RawRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []entities.RawRow
	for line := 2; ; line++ {
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isEmptyRecord(record) {
			continue
		}

		row := make(entities.RawRow, len(header))
		for i, column := range header {
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
