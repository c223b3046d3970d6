package txn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/record"
	"github.com/gabuzi/cottontaildb/value"
)

func newTestEntity(t *testing.T) *Entity {
	dir := t.TempDir()
	def := &catalogue.EntityDef{
		Schema: "shop",
		Name:   "products",
		Columns: []catalogue.ColumnDef{
			{Name: "id", Kind: value.Long},
			{Name: "price", Kind: value.Double},
		},
	}

	e, err := Open(dir, def, 4096)
	require.NoError(t, err)

	ctx := context.Background()
	wscope := Enter(e, true)
	defer wscope.Release()

	for i := int64(0); i < 10; i++ {
		_, err := e.Append(ctx, map[string]value.Value{
			"id":    value.NewLong(i),
			"price": value.NewDouble(float64(i) * 1.5),
		})
		require.NoError(t, err)
	}

	return e
}

func TestForEachVisitsAscending(t *testing.T) {
	e := newTestEntity(t)
	defer e.Close()

	scan := NewScan(e, []string{"id"})
	defer scan.Release()

	var ids []int64
	err := scan.ForEach(context.Background(), func(r record.Record) error {
		ids = append(ids, r.Values[0].Long())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, ids)
}

func TestForEachRange(t *testing.T) {
	e := newTestEntity(t)
	defer e.Close()

	scan := NewScan(e, []string{"id"})
	defer scan.Release()

	var ids []int64
	err := scan.ForEachRange(context.Background(), 3, 6, func(r record.Record) error {
		ids = append(ids, r.Values[0].Long())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, 5}, ids)
}

func TestForEachPredicate(t *testing.T) {
	e := newTestEntity(t)
	defer e.Close()

	scan := NewScan(e, []string{"id", "price"})
	defer scan.Release()

	var matched int
	err := scan.ForEachPredicate(context.Background(), func(r record.Record) bool {
		return r.Values[1].Double() > 6.0
	}, func(r record.Record) error {
		matched++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, matched) // price = i*1.5 > 6.0 for i in {5..9}
}

func TestSampledScanReproducible(t *testing.T) {
	e := newTestEntity(t)
	defer e.Close()

	run := func() []int64 {
		scan := NewScan(e, []string{"id"})
		defer scan.Release()

		var ids []int64
		err := scan.ForEachSampled(context.Background(), 42, 4, func(r record.Record) error {
			ids = append(ids, r.Values[0].Long())
			return nil
		})
		require.NoError(t, err)
		return ids
	}

	assert.Equal(t, run(), run())
}

func TestDeletedRowsSkippedDuringScan(t *testing.T) {
	e := newTestEntity(t)
	defer e.Close()

	e.Delete(4)

	scan := NewScan(e, []string{"id"})
	defer scan.Release()

	var ids []int64
	err := scan.ForEach(context.Background(), func(r record.Record) error {
		ids = append(ids, r.Values[0].Long())
		return nil
	})
	require.NoError(t, err)
	assert.NotContains(t, ids, int64(4))
}
