// Package source picks a row source implementation from a file name.
package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vsinha/slotwise/pkg/domain/repositories"
	"github.com/vsinha/slotwise/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/slotwise/pkg/infrastructure/repositories/xlsx"
)

// Open returns a CSV, TSV or XLSX source for path. sheet applies to workbooks only.
func Open(path, sheet string) (repositories.RowSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return csv.NewSource(path), nil
	case ".tsv":
		return csv.NewSourceWithComma(path, '\t'), nil
	case ".xlsx", ".xlsm":
		return xlsx.NewSource(path, sheet), nil
	default:
		return nil, fmt.Errorf("unsupported orders file %s: expected .csv, .tsv or .xlsx", path)
	}
}
