package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/value"
)

func sampleSet() *RecordSet {
	cols := []catalogue.ColumnDef{{Name: "id", Kind: value.Long}, {Name: "price", Kind: value.Double}}
	rs := New(cols)
	rs.Append(Record{TupleID: 0, Values: []value.Value{value.NewLong(1), value.NewDouble(9.5)}})
	rs.Append(Record{TupleID: 1, Values: []value.Value{value.NewLong(2), value.NewDouble(3.0)}})
	rs.Append(Record{TupleID: 2, Values: []value.Value{value.NewLong(3), value.NewDouble(3.0)}})
	return rs
}

func TestFilterAndProject(t *testing.T) {
	rs := sampleSet()

	idx := rs.ColumnIndex("price")
	filtered := rs.Filter(func(r Record) bool {
		f, _ := r.Values[idx].AsDouble()
		return f >= 5
	})
	assert.Equal(t, 1, filtered.Len())

	projected := rs.Project("id")
	assert.Equal(t, 1, len(projected.Columns))
	assert.Equal(t, int32(0), int32(projected.Records[0].TupleID))
}

func TestLimitAndSkip(t *testing.T) {
	rs := sampleSet()
	limited := rs.Limit(1, 1)
	assert.Equal(t, 1, limited.Len())
	assert.Equal(t, int64(1), limited.Records[0].TupleID)
}

func TestCountExists(t *testing.T) {
	rs := sampleSet()
	assert.Equal(t, int64(3), rs.Count())
	assert.True(t, rs.Exists())
	assert.False(t, New(rs.Columns).Exists())
}

func TestMinMaxSumMean(t *testing.T) {
	rs := sampleSet()

	min, err := rs.Min("price")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, min.Double(), 1e-9)

	max, err := rs.Max("price")
	require.NoError(t, err)
	assert.InDelta(t, 9.5, max.Double(), 1e-9)

	sum, err := rs.Sum("price")
	require.NoError(t, err)
	assert.InDelta(t, 15.5, sum, 1e-9)

	mean, err := rs.Mean("price")
	require.NoError(t, err)
	assert.InDelta(t, 15.5/3, mean, 1e-9)
}

func TestDistinctKeepsFirstOccurrence(t *testing.T) {
	rs := sampleSet()
	d := rs.Distinct() // no exact duplicate rows here, so length is unchanged
	assert.Equal(t, rs.Len(), d.Len())

	cols := []catalogue.ColumnDef{{Name: "x", Kind: value.Int}}
	dup := New(cols)
	dup.Append(Record{TupleID: 0, Values: []value.Value{value.NewInt(1)}})
	dup.Append(Record{TupleID: 1, Values: []value.Value{value.NewInt(1)}})
	dup.Append(Record{TupleID: 2, Values: []value.Value{value.NewInt(2)}})

	distinct := dup.Distinct()
	assert.Equal(t, 2, distinct.Len())
	assert.Equal(t, int64(0), distinct.Records[0].TupleID)
}
