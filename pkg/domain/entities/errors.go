package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Validation error codes. A ValidationError aborts a run before any analysis starts.
const (
	CodeTooFewRows      = "too_few_rows"
	CodeMissingColumns  = "missing_columns"
	CodeTooManyNulls    = "too_many_nulls"
	CodeBadNumericField = "bad_numeric_field"
	CodeBadDateField    = "bad_date_field"
	CodeZeroVolume      = "zero_volume"
)

// ValidationError represents bad or insufficient input
type ValidationError struct {
	Code   string   `json:"code"`
	Fields []string `json:"fields,omitempty"`
	Detail string   `json:"detail,omitempty"`
}

// NewValidationError creates a ValidationError for code with optional field names
func NewValidationError(code string, fields ...string) *ValidationError {
	return &ValidationError{Code: code, Fields: fields}
}

// WithDetail returns a copy of e carrying a human readable detail
func (e *ValidationError) WithDetail(format string, args ...any) *ValidationError {
	clone := *e
	clone.Detail = fmt.Sprintf(format, args...)
	return &clone
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation error: ")
	b.WriteString(e.Code)
	if len(e.Fields) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Fields, ", "))
		b.WriteString("]")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// IsValidationCode reports whether err wraps a ValidationError with the given code
func IsValidationCode(err error, code string) bool {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	return verr.Code == code
}
