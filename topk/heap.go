// Package topk implements a bounded top-k candidate heap: a fixed-capacity
// max-heap over distance that admits a candidate in O(log k) and always
// holds the k closest candidates seen so far.
//
// The heap is 4-ary rather than binary, and ties are broken in favor of the
// earliest-admitted candidate, following the teacher's candidate_queue.go
// (its Worse/Better comparator pair driving a 4-ary heap for the same
// "k nearest so far" admission problem, there over ANN graph neighbors
// rather than tuple ids).
package topk

// Candidate is one admitted row: a tuple id and its evaluated distance.
type Candidate struct {
	TupleID  int64
	Distance float64

	// seq records admission order; it is the tie-break key when two
	// candidates compare equal on Distance.
	seq uint64
}

// Heap is a fixed-capacity bounded top-k max-heap: Distance at the root is
// always the worst (largest) among the held candidates, so Offer can reject
// a new candidate in O(1) without touching the heap when it is no better
// than the current worst.
type Heap struct {
	capacity int
	items    []Candidate
	nextSeq  uint64
}

// New returns an empty Heap bounded to capacity k. k must be positive.
func New(k int) *Heap {
	if k <= 0 {
		panic("topk: capacity must be positive")
	}
	return &Heap{capacity: k, items: make([]Candidate, 0, k)}
}

// Len returns the number of candidates currently held (<= capacity).
func (h *Heap) Len() int { return len(h.items) }

// Cap returns the heap's bound k.
func (h *Heap) Cap() int { return h.capacity }

// Full reports whether the heap already holds k candidates.
func (h *Heap) Full() bool { return len(h.items) >= h.capacity }

// Worst returns the current worst (largest-distance) held candidate and
// whether the heap is non-empty.
func (h *Heap) Worst() (Candidate, bool) {
	if len(h.items) == 0 {
		return Candidate{}, false
	}
	return h.items[0], true
}

// Offer admits (tupleID, distance) if the heap is not yet full, or if it is
// strictly better than the current worst candidate. It returns true if the
// candidate was admitted.
//
// A candidate with a distance equal to the current worst is rejected: ties
// favor whichever candidate was admitted first, and the existing entry was
// necessarily admitted first.
func (h *Heap) Offer(tupleID int64, distance float64) bool {
	c := Candidate{TupleID: tupleID, Distance: distance, seq: h.nextSeq}
	h.nextSeq++

	if !h.Full() {
		h.items = append(h.items, c)
		h.siftUp(len(h.items) - 1)
		return true
	}

	if !better(c, h.items[0]) {
		return false
	}

	h.items[0] = c
	h.siftDown(0)
	return true
}

// Sorted returns the held candidates in ascending distance order (closest
// first), without mutating the heap.
func (h *Heap) Sorted() []Candidate {
	out := make([]Candidate, len(h.items))
	copy(out, h.items)
	insertionSortByDistance(out)
	return out
}

func insertionSortByDistance(s []Candidate) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && worse(s[j-1], s[j]); j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// better reports whether a should be preferred over b when only one can be
// kept: strictly smaller distance wins; on a tie, the earlier-admitted
// candidate (smaller seq) wins, so a later arrival never displaces an
// equal-distance incumbent.
func better(a, b Candidate) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.seq < b.seq
}

// worse is better's complement, used when ordering the root of the max-heap
// (the worst candidate belongs at the root).
func worse(a, b Candidate) bool { return better(b, a) }

const arity = 4

func parent(i int) int { return (i - 1) / arity }

func firstChild(i int) int { return arity*i + 1 }

func (h *Heap) siftUp(i int) {
	for i > 0 {
		p := parent(i)
		if !worse(h.items[i], h.items[p]) {
			return
		}
		h.items[i], h.items[p] = h.items[p], h.items[i]
		i = p
	}
}

func (h *Heap) siftDown(i int) {
	n := len(h.items)
	for {
		worstChild := -1
		for c := firstChild(i); c < firstChild(i)+arity && c < n; c++ {
			if worstChild == -1 || worse(h.items[c], h.items[worstChild]) {
				worstChild = c
			}
		}
		if worstChild == -1 || !worse(h.items[worstChild], h.items[i]) {
			return
		}
		h.items[i], h.items[worstChild] = h.items[worstChild], h.items[i]
		i = worstChild
	}
}
