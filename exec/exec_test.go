package exec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/distance"
	"github.com/gabuzi/cottontaildb/plan"
	"github.com/gabuzi/cottontaildb/record"
	"github.com/gabuzi/cottontaildb/txn"
	"github.com/gabuzi/cottontaildb/value"
)

func newExecTestEntity(t *testing.T, n int) (*txn.Entity, *catalogue.EntityDef) {
	dir := t.TempDir()
	def := &catalogue.EntityDef{
		Schema: "shop",
		Name:   "products",
		Columns: []catalogue.ColumnDef{
			{Name: "id", Kind: value.Long},
			{Name: "price", Kind: value.Double},
			{Name: "embedding", Kind: value.Float, Vector: true, LogicalSize: 3},
		},
	}
	e, err := txn.Open(dir, def, 4096)
	require.NoError(t, err)

	scope := txn.Enter(e, true)
	defer scope.Release()
	for i := 0; i < n; i++ {
		_, err := e.Append(context.Background(), map[string]value.Value{
			"id":        value.NewLong(int64(i)),
			"price":     value.NewDouble(float64(i)),
			"embedding": value.NewFloatVector([]float32{float32(i), float32(i), float32(i)}),
		})
		require.NoError(t, err)
	}
	return e, def
}

func TestExecuteFullScanNoParallelism(t *testing.T) {
	e, def := newExecTestEntity(t, 20)
	defer e.Close()

	scan := plan.NewFullEntityScan(def, e.RowCount())
	fetch := plan.NewFetchColumns(scan, def.Columns[:2])
	proj := plan.NewProjection(fetch, plan.ProjectColumns, []string{"id", "price"})
	lim := plan.NewLimit(proj, -1, 0)

	rs, err := Execute(context.Background(), lim, e, 1)
	require.NoError(t, err)
	assert.Equal(t, 20, rs.Len())
	assert.Equal(t, int64(0), rs.Records[0].TupleID)
	assert.Equal(t, int64(19), rs.Records[19].TupleID)
}

func TestExecuteFullScanWithParallelismPreservesOrder(t *testing.T) {
	e, def := newExecTestEntity(t, 37)
	defer e.Close()

	scan := plan.NewFullEntityScan(def, e.RowCount())
	fetch := plan.NewFetchColumns(scan, def.Columns[:1])
	proj := plan.NewProjection(fetch, plan.ProjectColumns, []string{"id"})

	rs, err := Execute(context.Background(), proj, e, 4)
	require.NoError(t, err)
	require.Equal(t, 37, rs.Len())
	for i, r := range rs.Records {
		assert.Equal(t, int64(i), r.TupleID)
	}
}

func TestExecuteCountProjection(t *testing.T) {
	e, def := newExecTestEntity(t, 15)
	defer e.Close()

	scan := plan.NewFullEntityScan(def, e.RowCount())
	fetch := plan.NewFetchColumns(scan, nil)
	proj := plan.NewProjection(fetch, plan.ProjectCount, nil)

	rs, err := Execute(context.Background(), proj, e, 3)
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	assert.Equal(t, int64(15), rs.Records[0].Values[0].Long())
}

func TestExecuteFilterPredicate(t *testing.T) {
	e, def := newExecTestEntity(t, 10)
	defer e.Close()

	scan := plan.NewFullEntityScan(def, e.RowCount())
	fetch := plan.NewFetchColumns(scan, def.Columns[:2])
	filter := plan.NewFilterPredicate(fetch, &testPredicate{threshold: 5}, 0.5)
	proj := plan.NewProjection(filter, plan.ProjectColumns, []string{"id", "price"})

	rs, err := Execute(context.Background(), proj, e, 2)
	require.NoError(t, err)
	for _, r := range rs.Records {
		assert.Greater(t, r.Values[1].Double(), 5.0)
	}
}

func TestExecuteKnnPredicateFindsNearest(t *testing.T) {
	e, def := newExecTestEntity(t, 20)
	defer e.Close()

	reg := distance.NewRegistry()
	kernel, err := reg.Lookup("L2")
	require.NoError(t, err)

	scan := plan.NewFullEntityScan(def, e.RowCount())
	fetch := plan.NewFetchColumns(scan, def.Columns)
	knn := plan.NewKnnPredicate(fetch, def.Columns[2], []value.Value{value.NewFloatVector([]float32{5, 5, 5})}, 3, kernel, []value.Value{value.Null()})
	proj := plan.NewProjection(knn, plan.ProjectColumns, nil)

	rs, err := Execute(context.Background(), proj, e, 4)
	require.NoError(t, err)
	require.Equal(t, 3, rs.Len())
	assert.Equal(t, int64(5), rs.Records[0].TupleID)
	assert.Equal(t, 0.0, rs.Records[0].Values[0].Double())
}

func TestExecuteKnnPredicateWithMultipleQueriesProducesIndependentHeaps(t *testing.T) {
	e, def := newExecTestEntity(t, 20)
	defer e.Close()

	reg := distance.NewRegistry()
	kernel, err := reg.Lookup("L2")
	require.NoError(t, err)

	queries := []value.Value{
		value.NewFloatVector([]float32{5, 5, 5}),
		value.NewFloatVector([]float32{15, 15, 15}),
	}
	weights := []value.Value{value.Null(), value.Null()}

	scan := plan.NewFullEntityScan(def, e.RowCount())
	fetch := plan.NewFetchColumns(scan, def.Columns)
	knn := plan.NewKnnPredicate(fetch, def.Columns[2], queries, 3, kernel, weights)
	proj := plan.NewProjection(knn, plan.ProjectColumns, nil)

	rs, err := Execute(context.Background(), proj, e, 4)
	require.NoError(t, err)
	require.Equal(t, 6, rs.Len())
	assert.Equal(t, int64(5), rs.Records[0].TupleID)
	assert.Equal(t, 0.0, rs.Records[0].Values[0].Double())
	assert.Equal(t, int64(15), rs.Records[3].TupleID)
	assert.Equal(t, 0.0, rs.Records[3].Values[0].Double())
}

// testPredicate is a minimal plan.Predicate used only by this package's
// tests, standing in for a package bind comparison atom.
type testPredicate struct {
	threshold float64
}

func (p *testPredicate) Name() string { return "price > threshold" }

func (p *testPredicate) Eval(r record.Record) (bool, error) {
	return r.Values[1].Double() > p.threshold, nil
}
