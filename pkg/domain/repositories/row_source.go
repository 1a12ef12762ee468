package repositories

import (
	"context"

	"github.com/vsinha/slotwise/pkg/domain/entities"
)

// RowSource provides the raw order-line rows of one upload
type RowSource interface {
	// Name identifies the source in logs and errors, usually a file path
	Name() string
	LoadRows(ctx context.Context) ([]entities.RawRow, error)
}
