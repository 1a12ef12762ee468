package velocity

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/slotwise/pkg/domain/entities"
	testhelpers "github.com/vsinha/slotwise/pkg/infrastructure/testing"
)

func TestClassify_ParetoBoundaries(t *testing.T) {
	// 10 SKUs with picks 50,20,10,8,5,3,2,1,1,0 over a 30 day window
	picks := []int{50, 20, 10, 8, 5, 3, 2, 1, 1, 0}
	var lines []entities.OrderLine
	for i, p := range picks {
		lines = append(lines, testhelpers.Line(fmt.Sprintf("O%d", i), i*3, fmt.Sprintf("S%02d", i), p, "A-01-01"))
	}
	lines = append(lines, testhelpers.Line("END", 29, "S00", 0, "A-01-01"))

	velocities, err := NewClassifier(DefaultThresholds()).Classify(lines)
	require.NoError(t, err)
	require.Len(t, velocities, 10)

	// cumulative: 50, 70, 80, 88, 93, 96, 98, 99, 100, 100
	expected := []entities.VelocityClass{"A", "A", "A", "B", "B", "C", "C", "C", "D", "D"}
	for i, v := range velocities {
		assert.Equal(t, fmt.Sprintf("S%02d", i), string(v.SKU))
		assert.Equal(t, expected[i], v.Class, "sku %s cumulative %.1f", v.SKU, v.CumulativePct)
		assert.Equal(t, i+1, v.Rank)
	}
	assert.Equal(t, 50.0, velocities[0].PicksPerMonth)
	assert.Equal(t, 50.0, velocities[0].PctOfTotalVolume)
}

func TestClassify_DominantSKUStillA(t *testing.T) {
	lines := []entities.OrderLine{
		testhelpers.Line("O1", 0, "BIG", 90, "C-01-01"),
		testhelpers.Line("O2", 0, "SMALL", 10, "C-02-01"),
	}

	velocities, err := NewClassifier(DefaultThresholds()).Classify(lines)
	require.NoError(t, err)
	assert.Equal(t, entities.ClassA, velocities[0].Class)
	assert.Equal(t, entities.ClassD, velocities[1].Class)
	// single day period scales picks by 30
	assert.Equal(t, 2700.0, velocities[0].PicksPerMonth)
}

func TestClassify_TiesBrokenBySKU(t *testing.T) {
	lines := []entities.OrderLine{
		testhelpers.Line("O1", 0, "ZED", 5, ""),
		testhelpers.Line("O2", 0, "ALPHA", 5, ""),
		testhelpers.Line("O3", 0, "MID", 5, ""),
	}

	velocities, err := NewClassifier(DefaultThresholds()).Classify(lines)
	require.NoError(t, err)
	assert.Equal(t, entities.SKUCode("ALPHA"), velocities[0].SKU)
	assert.Equal(t, entities.SKUCode("MID"), velocities[1].SKU)
	assert.Equal(t, entities.SKUCode("ZED"), velocities[2].SKU)
}

func TestClassify_ZeroVolume(t *testing.T) {
	lines := []entities.OrderLine{
		testhelpers.Line("O1", 0, "A", 0, ""),
		testhelpers.Line("O2", 1, "B", 0, ""),
	}

	velocities, err := NewClassifier(DefaultThresholds()).Classify(lines)
	assert.Nil(t, velocities)
	assert.True(t, entities.IsValidationCode(err, entities.CodeZeroVolume))
}

func TestClassify_MonotonicClasses(t *testing.T) {
	rows := testhelpers.BuildWarehouseRows()
	var lines []entities.OrderLine
	for i, row := range rows {
		var qty int
		fmt.Sscan(row["quantity"].(string), &qty)
		lines = append(lines, testhelpers.Line(row["order_id"].(string), i%60, row["sku_code"].(string), qty, ""))
	}

	velocities, err := NewClassifier(DefaultThresholds()).Classify(lines)
	require.NoError(t, err)

	seen := map[entities.SKUCode]bool{}
	for _, x := range velocities {
		assert.False(t, seen[x.SKU], "sku %s classified twice", x.SKU)
		seen[x.SKU] = true
		for _, y := range velocities {
			if x.TotalPicks > y.TotalPicks {
				assert.LessOrEqual(t, x.Class.Rank(), y.Class.Rank(), "%s vs %s", x.SKU, y.SKU)
			}
		}
	}

	counts := ClassCounts(velocities)
	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(velocities), total)
}

func TestClassify_LargeTotalsKeepExactShares(t *testing.T) {
	line := func(sku string, qty int64) entities.OrderLine {
		l := testhelpers.Line("O-"+sku, 0, sku, 0, "A-01-01")
		l.Quantity = entities.Quantity(qty)
		return l
	}
	// grand total 1e17, so cumulative*100 runs past int64
	lines := []entities.OrderLine{
		line("HEAVY", 70_000_000_000_000_000),
		line("MEDIUM", 20_000_000_000_000_000),
		line("LIGHT", 10_000_000_000_000_000),
	}

	velocities, err := NewClassifier(DefaultThresholds()).Classify(lines)
	require.NoError(t, err)
	require.Len(t, velocities, 3)

	assert.Equal(t, entities.ClassA, velocities[0].Class)
	assert.Equal(t, entities.ClassB, velocities[1].Class)
	assert.Equal(t, entities.ClassD, velocities[2].Class)
	assert.InDelta(t, 90.0, velocities[1].CumulativePct, 1e-9)
}

func TestClassFor_NearInt64Limit(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	grand := int64(math.MaxInt64)

	assert.Equal(t, entities.ClassA, c.classFor(grand/2, grand))
	assert.Equal(t, entities.ClassB, c.classFor(grand/10*9, grand))
	assert.Equal(t, entities.ClassC, c.classFor(grand/100*97, grand))
	assert.Equal(t, entities.ClassD, c.classFor(grand, grand))
}
