// Package loader streams corpus dumps into the catalog graph.
//
// Dumps are far larger than the slice of them worth keeping, so each genre
// is loaded in two passes: a selection pass that finds the most-rated books
// in bounded memory, then a load pass that materializes only those.
package loader

import (
	"container/heap"
)

// Selector picks the k most-rated books from a stream of candidates using
// a min-heap, so memory stays O(k) no matter how large the dump is.
type Selector struct {
	k int
	h candidateHeap
}

type candidate struct {
	bookID       string
	ratingsCount int64
}

// NewSelector creates a selector keeping the top k candidates.
func NewSelector(k int) *Selector {
	return &Selector{k: k, h: make(candidateHeap, 0, k+1)}
}

// Offer considers a candidate. Entries with no ID or a non-positive
// ratings count are ignored.
func (s *Selector) Offer(bookID string, ratingsCount int64) {
	if bookID == "" || ratingsCount <= 0 {
		return
	}
	heap.Push(&s.h, candidate{bookID: bookID, ratingsCount: ratingsCount})
	if s.h.Len() > s.k {
		heap.Pop(&s.h)
	}
}

// Len returns the number of candidates currently held.
func (s *Selector) Len() int {
	return s.h.Len()
}

// Selected returns the surviving book IDs as a membership set.
func (s *Selector) Selected() map[string]struct{} {
	out := make(map[string]struct{}, s.h.Len())
	for _, c := range s.h {
		out[c.bookID] = struct{}{}
	}
	return out
}

// candidateHeap is a min-heap on ratings count, so the weakest candidate
// is always the one evicted.
type candidateHeap []candidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].ratingsCount < h[j].ratingsCount }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)         { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
