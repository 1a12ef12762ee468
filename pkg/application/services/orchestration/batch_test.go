package orchestration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/slotwise/pkg/application/dto"
	"github.com/vsinha/slotwise/pkg/domain/entities"
	testhelpers "github.com/vsinha/slotwise/pkg/infrastructure/testing"
)

type staticSource struct {
	name string
	rows []entities.RawRow
	err  error
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) LoadRows(context.Context) ([]entities.RawRow, error) {
	return s.rows, s.err
}

func TestBatchRunner_CollectsPerJobOutcomes(t *testing.T) {
	analyzer, err := NewAnalyzer(dto.DefaultAnalysisConfig())
	require.NoError(t, err)

	jobs := []Job{
		{Name: "north", Source: staticSource{name: "north.csv", rows: testhelpers.BuildDominantSKURows()}},
		{Name: "south", Source: staticSource{name: "south.csv", rows: testhelpers.BuildWarehouseRows()}, Profile: testhelpers.BuildLayoutProfile()},
		{Name: "tiny", Source: staticSource{name: "tiny.csv", rows: testhelpers.BuildDominantSKURows()[:10]}},
		{Name: "broken", Source: staticSource{name: "broken.csv", err: errors.New("disk on fire")}},
	}

	results, err := NewBatchRunner(analyzer, 2, false, nil).Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "north", results[0].Name)
	require.NoError(t, results[0].Err)
	assert.Equal(t, entities.SKUCode("DOM-01"), results[0].Result.Recommendations[0].SKU)

	require.NoError(t, results[1].Err)
	assert.Equal(t, "layout_based", results[1].Result.DistanceMode)
	assert.Equal(t, "WH-LAYOUT", results[1].Result.WarehouseID)

	assert.Nil(t, results[2].Result)
	assert.True(t, entities.IsValidationCode(results[2].Err, entities.CodeTooFewRows))

	assert.Nil(t, results[3].Result)
	assert.ErrorContains(t, results[3].Err, "broken.csv")

	// a batch run matches a standalone run
	single, err := analyzer.Analyze(context.Background(), testhelpers.BuildDominantSKURows(), nil)
	require.NoError(t, err)
	assert.Equal(t, single, results[0].Result)
}

func TestBatchRunner_FailFast(t *testing.T) {
	analyzer, err := NewAnalyzer(dto.DefaultAnalysisConfig())
	require.NoError(t, err)

	jobs := []Job{
		{Name: "tiny", Source: staticSource{name: "tiny.csv", rows: testhelpers.BuildDominantSKURows()[:10]}},
		{Name: "north", Source: staticSource{name: "north.csv", rows: testhelpers.BuildDominantSKURows()}},
	}

	results, err := NewBatchRunner(analyzer, 1, true, nil).Run(context.Background(), jobs)
	require.Error(t, err)
	assert.ErrorContains(t, err, "job tiny")
	assert.True(t, entities.IsValidationCode(err, entities.CodeTooFewRows))
	require.Len(t, results, 2)
	assert.Error(t, results[1].Err, "second job never starts once the first has failed")
}
