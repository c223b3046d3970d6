// Package bitmap wraps a Roaring bitmap as a compact set of tuple ids. Its
// one user is a column store's tombstone set of deleted rows; scans iterate
// tuple ids directly and do not build candidate sets with it.
//
// Grounded on the teacher's internal/metadata/bitmap.go, which wraps the
// same library (github.com/RoaringBitmap/roaring) as a LocalBitmap with a
// sync.Pool of reusable bitmaps to avoid an allocation on every per-query
// filter evaluation; the pooling idiom carries over unchanged because the
// access pattern (borrow, fill, read, discard) is identical.
package bitmap

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

var pool = sync.Pool{
	New: func() any { return roaring.New() },
}

// Bitmap is a mutable set of non-negative tuple ids.
type Bitmap struct {
	rb *roaring.Bitmap
}

// Borrow returns a Bitmap backed by a pooled roaring.Bitmap. Callers must
// call Release when done to return it to the pool.
func Borrow() *Bitmap {
	rb := pool.Get().(*roaring.Bitmap)
	rb.Clear()
	return &Bitmap{rb: rb}
}

// New returns a fresh, non-pooled Bitmap, for long-lived sets such as a
// column store's tombstone set.
func New() *Bitmap { return &Bitmap{rb: roaring.New()} }

// Release returns the bitmap's backing roaring.Bitmap to the pool. The
// Bitmap must not be used afterwards.
func (b *Bitmap) Release() {
	if b.rb == nil {
		return
	}
	pool.Put(b.rb)
	b.rb = nil
}

// Add adds id to the set.
func (b *Bitmap) Add(id uint32) { b.rb.Add(id) }

// AddRange adds every id in [lo, hi) to the set.
func (b *Bitmap) AddRange(lo, hi uint64) { b.rb.AddRange(lo, hi) }

// Remove removes id from the set.
func (b *Bitmap) Remove(id uint32) { b.rb.Remove(id) }

// Contains reports whether id is in the set.
func (b *Bitmap) Contains(id uint32) bool { return b.rb.Contains(id) }

// Cardinality returns the number of ids in the set.
func (b *Bitmap) Cardinality() uint64 { return b.rb.GetCardinality() }

// And intersects the set with other, in place.
func (b *Bitmap) And(other *Bitmap) { b.rb.And(other.rb) }

// Or unions the set with other, in place.
func (b *Bitmap) Or(other *Bitmap) { b.rb.Or(other.rb) }

// AndNot removes every id also present in other, in place.
func (b *Bitmap) AndNot(other *Bitmap) { b.rb.AndNot(other.rb) }

// Iterator returns an ascending iterator over the set's ids, matching the
// ascending tuple-id order the spec's entity scan requires.
func (b *Bitmap) Iterator() roaring.IntPeekable {
	return b.rb.Iterator()
}

// ToArray materializes the set as a sorted slice of ids.
func (b *Bitmap) ToArray() []uint32 { return b.rb.ToArray() }
