package bind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/cterr"
	"github.com/gabuzi/cottontaildb/distance"
	"github.com/gabuzi/cottontaildb/plan"
	"github.com/gabuzi/cottontaildb/value"
	"github.com/gabuzi/cottontaildb/wire"
)

func testCatalogue(t *testing.T) *catalogue.Catalogue {
	cat := catalogue.New()
	cat.CreateSchema("shop")
	require.NoError(t, cat.CreateEntity("shop", "products", []catalogue.ColumnDef{
		{Name: "id", Kind: value.Long},
		{Name: "price", Kind: value.Double},
		{Name: "embedding", Kind: value.Float, Vector: true, LogicalSize: 4},
	}))
	return cat
}

func TestBindRejectsUnknownEntity(t *testing.T) {
	cat := testCatalogue(t)
	_, err := Bind(cat, distance.NewRegistry(), &wire.Query{Schema: "shop", Entity: "orders"}, 0)
	require.Error(t, err)
	assert.True(t, cterr.IsBindError(err))
}

func TestBindRejectsUnknownColumn(t *testing.T) {
	cat := testCatalogue(t)
	q := &wire.Query{
		Schema:     "shop",
		Entity:     "products",
		Projection: wire.Projection{Kind: wire.ProjectColumns, Fields: []string{"nonexistent"}},
		Limit:      -1,
	}
	_, err := Bind(cat, distance.NewRegistry(), q, 10)
	require.Error(t, err)
	assert.True(t, cterr.IsBindError(err))
}

func TestBindSimpleScanAndFilter(t *testing.T) {
	cat := testCatalogue(t)
	q := &wire.Query{
		Schema:     "shop",
		Entity:     "products",
		Projection: wire.Projection{Kind: wire.ProjectColumns, Fields: []string{"id", "price"}},
		Filter: &wire.FilterNode{
			Column:  "price",
			Op:      wire.OpGt,
			Literal: value.NewDouble(10),
		},
		Limit: -1,
	}

	node, err := Bind(cat, distance.NewRegistry(), q, 100)
	require.NoError(t, err)

	proj, ok := node.(*plan.Projection)
	require.True(t, ok)
	filter, ok := proj.Input().(*plan.FilterPredicate)
	require.True(t, ok)
	assert.Equal(t, "price >", filter.Predicate.Name())
}

func TestBindKnnRejectsNonVectorColumn(t *testing.T) {
	cat := testCatalogue(t)
	q := &wire.Query{
		Schema: "shop",
		Entity: "products",
		Knn: &wire.KnnSpec{
			Column:   "price",
			K:        5,
			Distance: "L2",
			Queries:  []value.Value{value.NewDouble(1)},
		},
		Limit: -1,
	}
	_, err := Bind(cat, distance.NewRegistry(), q, 100)
	require.Error(t, err)
	assert.True(t, cterr.IsTypeError(err))
}

func TestBindKnnRejectsSizeMismatch(t *testing.T) {
	cat := testCatalogue(t)
	q := &wire.Query{
		Schema: "shop",
		Entity: "products",
		Knn: &wire.KnnSpec{
			Column:   "embedding",
			K:        5,
			Distance: "L2",
			Queries:  []value.Value{value.NewFloatVector([]float32{1, 2})},
		},
		Limit: -1,
	}
	_, err := Bind(cat, distance.NewRegistry(), q, 100)
	require.Error(t, err)
	assert.True(t, cterr.IsSizeError(err))
}

func TestBindKnnProducesKnnPredicateNode(t *testing.T) {
	cat := testCatalogue(t)
	q := &wire.Query{
		Schema: "shop",
		Entity: "products",
		Knn: &wire.KnnSpec{
			Column:   "embedding",
			K:        5,
			Distance: "L2",
			Queries:  []value.Value{value.NewFloatVector([]float32{1, 2, 3, 4})},
		},
		Limit: -1,
	}
	node, err := Bind(cat, distance.NewRegistry(), q, 100)
	require.NoError(t, err)

	proj := node.(*plan.Projection)
	_, ok := proj.Input().(*plan.KnnPredicate)
	assert.True(t, ok)
}
