package topk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfferFillsUpToCapacity(t *testing.T) {
	h := New(3)
	assert.True(t, h.Offer(1, 5.0))
	assert.True(t, h.Offer(2, 1.0))
	assert.True(t, h.Offer(3, 3.0))
	assert.True(t, h.Full())
	assert.Equal(t, 3, h.Len())
}

func TestOfferRejectsWorseThanWorst(t *testing.T) {
	h := New(2)
	h.Offer(1, 1.0)
	h.Offer(2, 2.0)

	assert.False(t, h.Offer(3, 5.0)) // worse than current worst (2.0)

	worst, ok := h.Worst()
	assert.True(t, ok)
	assert.Equal(t, 2.0, worst.Distance)
}

func TestOfferEvictsWorstWhenBetterArrives(t *testing.T) {
	h := New(2)
	h.Offer(1, 1.0)
	h.Offer(2, 2.0)

	assert.True(t, h.Offer(3, 0.5))

	sorted := h.Sorted()
	assert.Equal(t, []int64{3, 1}, []int64{sorted[0].TupleID, sorted[1].TupleID})
}

func TestTieBreaksFavorEarlierAdmission(t *testing.T) {
	h := New(1)
	h.Offer(1, 5.0)
	assert.False(t, h.Offer(2, 5.0)) // same distance, later arrival loses

	worst, _ := h.Worst()
	assert.Equal(t, int64(1), worst.TupleID)
}

func TestSortedAscending(t *testing.T) {
	h := New(5)
	for _, d := range []float64{5, 1, 4, 2, 3} {
		h.Offer(int64(d), d)
	}
	sorted := h.Sorted()
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, sorted[i-1].Distance, sorted[i].Distance)
	}
}
