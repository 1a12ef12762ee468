// Package normalize turns loosely typed upload rows into validated order lines.
package normalize

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// Config holds the input reliability floors
type Config struct {
	MinRows      int
	MaxNullRatio float64
}

// DefaultConfig returns the floors below which analysis results are not trustworthy
func DefaultConfig() Config {
	return Config{MinRows: 100, MaxNullRatio: 0.5}
}

// Result is the output of a normalization pass
type Result struct {
	Lines    []entities.OrderLine
	Columns  ColumnMap
	Warnings []entities.Warning
}

// Normalizer validates and coerces raw rows
type Normalizer struct {
	config Config
	logger *zap.Logger
}

// NewNormalizer creates a normalizer; a nil logger discards output
func NewNormalizer(config Config, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{config: config, logger: logger}
}

// Normalize validates rows and converts them to order lines. Checks run in a
// fixed order: row count, columns, null saturation, then per-row coercion.
// Rows without an order id, SKU or date are dropped with a warning. The input
// is not modified.
func (n *Normalizer) Normalize(rows []entities.RawRow) (*Result, error) {
	if len(rows) < n.config.MinRows {
		return nil, entities.NewValidationError(entities.CodeTooFewRows).
			WithDetail("got %d rows, need at least %d", len(rows), n.config.MinRows)
	}

	columns, missing := ResolveColumns(rows)
	if len(missing) > 0 {
		return nil, entities.NewValidationError(entities.CodeMissingColumns, missing...)
	}

	nulls, cells := 0, len(rows)*len(RequiredFields)
	for _, row := range rows {
		for _, field := range RequiredFields {
			if isBlank(row[columns[field]]) {
				nulls++
			}
		}
	}
	if ratio := float64(nulls) / float64(cells); ratio > n.config.MaxNullRatio {
		return nil, entities.NewValidationError(entities.CodeTooManyNulls).
			WithDetail("%.1f%% of required cells are empty", ratio*100)
	}

	result := &Result{
		Lines:   make([]entities.OrderLine, 0, len(rows)),
		Columns: columns,
	}

	for i, row := range rows {
		rowNum := i + 1

		line, reason, err := n.coerceRow(row, columns, rowNum)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			result.Warnings = append(result.Warnings, entities.Warning{
				Code:    entities.WarnDroppedRow,
				Subject: fmt.Sprintf("row %d", rowNum),
				Message: reason,
			})
			continue
		}
		result.Lines = append(result.Lines, line)
	}

	n.logger.Debug("rows normalized",
		zap.Int("rows", len(rows)),
		zap.Int("lines", len(result.Lines)),
		zap.Int("dropped", len(result.Warnings)),
	)

	return result, nil
}

// coerceRow converts one row. A non-empty reason means the row is dropped;
// an error aborts the whole run.
func (n *Normalizer) coerceRow(row entities.RawRow, columns ColumnMap, rowNum int) (entities.OrderLine, string, error) {
	quantity, err := asFloat(row[columns[FieldQuantity]])
	if err != nil || quantity < 0 || math.Round(quantity) > float64(entities.MaxQuantity) {
		return entities.OrderLine{}, "", badNumeric(FieldQuantity, rowNum, row[columns[FieldQuantity]])
	}
	weight, err := asFloat(row[columns[FieldWeightKg]])
	if err != nil || weight < 0 {
		return entities.OrderLine{}, "", badNumeric(FieldWeightKg, rowNum, row[columns[FieldWeightKg]])
	}
	date, err := asDate(row[columns[FieldOrderDate]])
	if err != nil {
		return entities.OrderLine{}, "", entities.NewValidationError(entities.CodeBadDateField, FieldOrderDate).
			WithDetail("row %d: %v", rowNum, err)
	}

	orderID := asString(row[columns[FieldOrderID]])
	sku := strings.ToUpper(asString(row[columns[FieldSKUCode]]))

	switch {
	case orderID == "":
		return entities.OrderLine{}, "missing order_id", nil
	case sku == "":
		return entities.OrderLine{}, "missing sku_code", nil
	case date.IsZero():
		return entities.OrderLine{}, "missing order_date", nil
	}

	line, err := entities.NewOrderLine(
		orderID,
		date,
		entities.SKUCode(sku),
		asString(row[columns[FieldSKUName]]),
		asString(row[columns[FieldCategory]]),
		entities.Quantity(math.Round(quantity)),
		strings.ToUpper(asString(row[columns[FieldLocation]])),
		weight,
	)
	if err != nil {
		return entities.OrderLine{}, "", fmt.Errorf("row %d: %w", rowNum, err)
	}
	return *line, "", nil
}

func badNumeric(field string, rowNum int, value any) error {
	return entities.NewValidationError(entities.CodeBadNumericField, field).
		WithDetail("row %d: %v", rowNum, value)
}
