package column

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/value"
)

func TestFixedWidthScalarRoundTrip(t *testing.T) {
	dir := t.TempDir()
	def := catalogue.ColumnDef{Name: "price", Kind: value.Double}

	c, err := Create(filepath.Join(dir, "price.ctl"), def, 4096)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	id0, err := c.Append(ctx, value.NewDouble(9.99))
	require.NoError(t, err)
	id1, err := c.Append(ctx, value.NewDouble(19.5))
	require.NoError(t, err)

	assert.Equal(t, int64(0), id0)
	assert.Equal(t, int64(1), id1)

	v0, err := c.Get(ctx, id0)
	require.NoError(t, err)
	assert.InDelta(t, 9.99, v0.Double(), 1e-9)

	v1, err := c.Get(ctx, id1)
	require.NoError(t, err)
	assert.InDelta(t, 19.5, v1.Double(), 1e-9)
}

func TestFixedWidthVectorRoundTrip(t *testing.T) {
	dir := t.TempDir()
	def := catalogue.ColumnDef{Name: "embedding", Kind: value.Float, Vector: true, LogicalSize: 4}

	c, err := Create(filepath.Join(dir, "embedding.ctl"), def, 4096)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	want := []float32{1, 2, 3, 4}
	id, err := c.Append(ctx, value.NewFloatVector(want))
	require.NoError(t, err)

	got, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, want, got.FloatVector())
}

func TestNullableRoundTrip(t *testing.T) {
	dir := t.TempDir()
	def := catalogue.ColumnDef{Name: "maybe", Kind: value.Int, Nullable: true}

	c, err := Create(filepath.Join(dir, "maybe.ctl"), def, 4096)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	idNull, err := c.Append(ctx, value.Null())
	require.NoError(t, err)
	idVal, err := c.Append(ctx, value.NewInt(7))
	require.NoError(t, err)

	got, err := c.Get(ctx, idNull)
	require.NoError(t, err)
	assert.True(t, got.IsNull())

	got, err = c.Get(ctx, idVal)
	require.NoError(t, err)
	assert.Equal(t, int32(7), got.Int())
}

func TestVariableWidthStringRoundTripAndReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "name.ctl")
	def := catalogue.ColumnDef{Name: "name", Kind: value.String}

	c, err := Create(path, def, 4096)
	require.NoError(t, err)

	ctx := context.Background()
	ids := make([]int64, 0, 3)
	for _, s := range []string{"alpha", "beta", "gamma"} {
		id, err := c.Append(ctx, value.NewString(s))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, c.Close())

	c2, err := Open(path, def, 4096)
	require.NoError(t, err)
	defer c2.Close()

	want := []string{"alpha", "beta", "gamma"}
	for i, id := range ids {
		got, err := c2.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want[i], got.String())
	}
}

func TestDeletedRowReadsAsNull(t *testing.T) {
	dir := t.TempDir()
	def := catalogue.ColumnDef{Name: "x", Kind: value.Int}

	c, err := Create(filepath.Join(dir, "x.ctl"), def, 4096)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	id, err := c.Append(ctx, value.NewInt(5))
	require.NoError(t, err)

	c.Delete(id)
	got, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.IsNull())
}
