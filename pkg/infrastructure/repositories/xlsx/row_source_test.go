package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestSource_LoadRows(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"Order ID", "Date", "SKU", "Qty"},
		{"SO-1", "2024-03-05", "abc", 4},
		{nil, nil, nil, nil},
		{"SO-2", 45356, "def"},
	})

	rows, err := NewSource(path, "").LoadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "SO-1", rows[0]["Order ID"])
	assert.Equal(t, "4", rows[0]["Qty"])
	assert.Equal(t, "45356", rows[1]["Date"])
	assert.Equal(t, "", rows[1]["Qty"])
}

func TestSource_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Orders", [][]any{
		{"order_id", "sku_code"},
		{"O1", "X"},
	})

	src := NewSource(path, "Orders")
	assert.Equal(t, path+"#Orders", src.Name())

	rows, err := src.LoadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = NewSource(path, "Missing").LoadRows(context.Background())
	assert.Error(t, err)
}
