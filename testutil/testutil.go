// Package testutil provides deterministic, seeded fixtures for tests:
// random vectors, rows, and small entities, adapted from the teacher's
// testutil.go (a mutex-guarded math/rand wrapper) so a sampled scan
// reseeded identically reproduces the same rows.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/internal/rng"
	"github.com/gabuzi/cottontaildb/txn"
	"github.com/gabuzi/cottontaildb/value"
)

// RNG is the same seeded, mutex-guarded generator the sampled entity scan
// uses (internal/rng.RNG), reused here rather than duplicated so a
// fixture built with a given seed draws from the identical sequence a
// SampledEntityScan reseeded with that seed would.
type RNG = rng.RNG

// NewRNG returns an RNG seeded deterministically from seed.
func NewRNG(seed int64) *RNG { return rng.New(seed) }

// vectorOf draws a float32 vector of the given dimension from g.
func vectorOf(g *RNG, dim int) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = float32(g.Float64())
	}
	return v
}

// Entity describes a small entity fixture: a long "id" column plus a
// single float vector column named by VectorColumn.
type Entity struct {
	Schema       string
	Name         string
	VectorColumn string
	Dim          int
}

// OpenEntity opens def as a txn.Entity under t's temp directory. The
// entity is closed automatically when t completes.
func (e Entity) OpenEntity(t *testing.T, pageSize int) (*txn.Entity, *catalogue.EntityDef) {
	t.Helper()
	def := &catalogue.EntityDef{
		Schema: e.Schema,
		Name:   e.Name,
		Columns: []catalogue.ColumnDef{
			{Name: "id", Kind: value.Long},
			{Name: e.VectorColumn, Kind: value.Float, Vector: true, LogicalSize: e.Dim},
		},
	}
	ent, err := txn.Open(t.TempDir(), def, pageSize)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ent.Close() })
	return ent, def
}

// Seed inserts n rows with sequential ids and vectors drawn from g into
// ent, returning the inserted vectors in tuple-id order.
func Seed(t *testing.T, ent *txn.Entity, vectorColumn string, g *RNG, n, dim int) [][]float32 {
	t.Helper()
	scope := txn.Enter(ent, true)
	defer scope.Release()

	vectors := make([][]float32, n)
	for i := 0; i < n; i++ {
		v := vectorOf(g, dim)
		vectors[i] = v
		_, err := ent.Append(context.Background(), map[string]value.Value{
			"id":         value.NewLong(int64(i)),
			vectorColumn: value.NewFloatVector(v),
		})
		require.NoError(t, err)
	}
	return vectors
}
