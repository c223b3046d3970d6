package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReproducible(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestResetReplays(t *testing.T) {
	r := New(7)

	first := make([]int, 10)
	for i := range first {
		first[i] = r.Intn(1_000_000)
	}

	r.Reset()

	second := make([]int, 10)
	for i := range second {
		second[i] = r.Intn(1_000_000)
	}

	assert.Equal(t, first, second)
}

func TestSampleIndicesDistinctAndSorted(t *testing.T) {
	r := New(1)
	idx := r.SampleIndices(1000, 50)
	assert.Len(t, idx, 50)

	seen := make(map[int64]bool, len(idx))
	for i, v := range idx {
		assert.False(t, seen[v], "duplicate index %d", v)
		seen[v] = true
		if i > 0 {
			assert.Less(t, idx[i-1], v)
		}
	}
}

func TestSampleIndicesSaturates(t *testing.T) {
	r := New(1)
	idx := r.SampleIndices(10, 50)
	assert.Len(t, idx, 10)
}
