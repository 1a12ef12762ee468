package commands

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/slotwise/pkg/application/dto"
	"github.com/vsinha/slotwise/pkg/domain/entities"
	testhelpers "github.com/vsinha/slotwise/pkg/infrastructure/testing"
)

var header = []string{"order_id", "order_date", "sku_code", "sku_name", "category", "quantity", "current_location", "weight_kg"}

func writeOrders(t *testing.T, dir, name string, rows []entities.RawRow) string {
	t.Helper()
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	w := csv.NewWriter(file)
	require.NoError(t, w.Write(header))
	for _, row := range rows {
		record := make([]string, len(header))
		for i, h := range header {
			record[i] = fmt.Sprint(row[h])
		}
		require.NoError(t, w.Write(record))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand("test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "slotwise test\n", out)
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	path := writeOrders(t, t.TempDir(), "orders.csv", testhelpers.BuildDominantSKURows())

	out, err := execute(t, "analyze", path, "--format", "json")
	require.NoError(t, err)

	var result dto.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "ordinal_fallback", result.DistanceMode)
	assert.Equal(t, "rule_based", result.Advisor)
	require.NotEmpty(t, result.Recommendations)
	assert.Equal(t, entities.SKUCode("DOM-01"), result.Recommendations[0].SKU)
	assert.Equal(t, 30, result.Summary.PeriodDays)
}

func TestAnalyzeCommand_WithProfile(t *testing.T) {
	dir := t.TempDir()
	path := writeOrders(t, dir, "orders.csv", testhelpers.BuildDominantSKURows())
	profilePath := filepath.Join(dir, "wh.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte("warehouse_id: WH-1\narea_sqm: 6000\naisle_width_m: 3\naisle_count: 10\n"), 0o644))

	out, err := execute(t, "analyze", path, "--profile", profilePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Warehouse: WH-1")
	assert.Contains(t, out, "Distance Model: profile_informed_no_layout")
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	small := writeOrders(t, dir, "small.csv", testhelpers.BuildDominantSKURows()[:10])

	_, err := execute(t, "analyze", small)
	require.Error(t, err)
	assert.True(t, entities.IsValidationCode(err, entities.CodeTooFewRows))

	_, err = execute(t, "analyze", filepath.Join(dir, "orders.json"))
	assert.Error(t, err)

	_, err = execute(t, "analyze", small, "--format", "csv")
	assert.ErrorContains(t, err, "output directory required")

	_, err = execute(t, "analyze")
	assert.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	writeOrders(t, dir, "north.csv", testhelpers.BuildDominantSKURows())
	writeOrders(t, dir, "south.csv", testhelpers.BuildDominantSKURows()[:10])
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "profiles"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profiles", "WH-N.yaml"), []byte("zones: [A, B, C]\n"), 0o644))

	manifestPath := filepath.Join(dir, "batch.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`
profiles_dir: profiles
warehouses:
  - name: north
    orders: north.csv
    warehouse_id: WH-N
  - name: south
    orders: south.csv
`), 0o644))

	out, err := execute(t, "batch", manifestPath, "--concurrency", "2")
	require.Error(t, err)
	assert.ErrorContains(t, err, "1 of 2 warehouses failed")
	assert.Contains(t, out, "north")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "1 of 2 warehouses analyzed")
}

func TestProfileCommands(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "store")
	src := filepath.Join(dir, "wh.yaml")
	require.NoError(t, os.WriteFile(src, []byte("warehouse_id: WH-9\nzones: [A, B, C]\n"), 0o644))

	out, err := execute(t, "profile", "import", src, "--profiles-dir", store)
	require.NoError(t, err)
	assert.Equal(t, "Stored profile WH-9\n", out)

	out, err = execute(t, "profile", "list", "--profiles-dir", store)
	require.NoError(t, err)
	assert.Equal(t, "WH-9\n", out)

	noID := filepath.Join(dir, "anon.yaml")
	require.NoError(t, os.WriteFile(noID, []byte("zones: [A]\n"), 0o644))
	_, err = execute(t, "profile", "import", noID, "--profiles-dir", store)
	assert.Error(t, err)
}
