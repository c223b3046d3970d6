package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/distance"
	"github.com/gabuzi/cottontaildb/value"
)

func testEntity() *catalogue.EntityDef {
	return &catalogue.EntityDef{
		Schema: "shop",
		Name:   "products",
		Columns: []catalogue.ColumnDef{
			{Name: "id", Kind: value.Long},
			{Name: "embedding", Kind: value.Float, Vector: true, LogicalSize: 128},
		},
	}
}

func TestScanCostGrowsWithRowCount(t *testing.T) {
	small := NewFullEntityScan(testEntity(), 100)
	big := NewFullEntityScan(testEntity(), 10000)

	assert.Less(t, small.Cost().Disk, big.Cost().Disk)
	assert.Less(t, small.Cost().CPU, big.Cost().CPU)
}

func TestRangedScanCostMatchesSpan(t *testing.T) {
	n := NewRangedEntityScan(testEntity(), 100, 200)
	assert.Equal(t, float64(100)*diskPageCostPerRow, n.Cost().Disk)
}

func TestSampledScanHasFixedOverhead(t *testing.T) {
	n := NewSampledEntityScan(testEntity(), 50, 7)
	full := NewFullEntityScan(testEntity(), 50)
	assert.Greater(t, n.Cost().Disk, full.Cost().Disk)
}

func TestFetchColumnsAddsBytesCost(t *testing.T) {
	entity := testEntity()
	scan := NewFullEntityScan(entity, 1000)
	fetch := NewFetchColumns(scan, entity.Columns)

	assert.Greater(t, fetch.Cost().Bytes, 0.0)
	assert.Greater(t, fetch.Cost().Disk, scan.Cost().Disk)
}

func TestKnnPredicateCostScalesWithDimensionsAndK(t *testing.T) {
	entity := testEntity()
	scan := NewFullEntityScan(entity, 1000)
	reg := distance.NewRegistry()
	kernel, err := reg.Lookup("L2")
	require.NoError(t, err)

	knn := NewKnnPredicate(scan, entity.Columns[1], []value.Value{value.NewFloatVector(make([]float32, 128))}, 10, kernel, []value.Value{value.Null()})
	assert.Greater(t, knn.Cost().CPU, scan.Cost().CPU)
	assert.Equal(t, float64(10)*128*8, knn.Cost().Bytes)
}

func TestFilterSelectivityClampedToDefault(t *testing.T) {
	scan := NewFullEntityScan(testEntity(), 100)
	f := NewFilterPredicate(scan, nil, -1)
	assert.Equal(t, 1.0, f.Selectivity)
}

func TestLimitPassesThroughInputCost(t *testing.T) {
	scan := NewFullEntityScan(testEntity(), 1000)
	lim := NewLimit(scan, 10, 0)
	assert.Equal(t, scan.Cost(), lim.Cost())
}

func TestRowsAtReflectsLimit(t *testing.T) {
	scan := NewFullEntityScan(testEntity(), 1000)
	lim := NewLimit(scan, 10, 0)
	assert.Equal(t, 10.0, rowsAt(lim))
}

func TestSplitPartitionsRangedScan(t *testing.T) {
	entity := testEntity()
	scan := NewRangedEntityScan(entity, 0, 100)
	parts := Split(scan, 4)
	require.Len(t, parts, 4)

	var total int64
	for _, p := range parts {
		rs := p.(*RangedEntityScan)
		total += rs.End - rs.Start
	}
	assert.Equal(t, int64(100), total)
}

func TestSplitPreservesOperatorChain(t *testing.T) {
	entity := testEntity()
	scan := NewFullEntityScan(entity, 100)
	lim := NewLimit(scan, 5, 0)
	parts := Split(lim, 2)
	require.Len(t, parts, 2)
	for _, p := range parts {
		l, ok := p.(*Limit)
		require.True(t, ok)
		_, ok = l.Input().(*RangedEntityScan)
		assert.True(t, ok)
	}
}

func TestSplitNoopForSingleDegree(t *testing.T) {
	scan := NewFullEntityScan(testEntity(), 100)
	parts := Split(scan, 1)
	require.Len(t, parts, 1)
	assert.Same(t, Node(scan), parts[0])
}

func TestCombineKnnFilterHonorsSelectivityThreshold(t *testing.T) {
	entity := testEntity()
	scan := NewFullEntityScan(entity, 1000)
	reg := distance.NewRegistry()
	kernel, _ := reg.Lookup("L2")
	knn := NewKnnPredicate(scan, entity.Columns[1], []value.Value{value.NewFloatVector(make([]float32, 128))}, 10, kernel, []value.Value{value.Null()})

	selective := NewFilterPredicate(knn, nil, 0.1)
	assert.True(t, CombineKnnFilter(selective, knn))

	unselective := NewFilterPredicate(knn, nil, 0.9)
	assert.False(t, CombineKnnFilter(unselective, knn))
}
