package ranker

import (
	"container/heap"

	"docsearch/internal/domain"
)

// topK is a bounded min-heap of capacity k. Offering every candidate gives
// O(n log k) selection of the k highest-scoring results instead of an
// O(n log n) full sort. The root is the weakest held result: lowest score,
// with ties resolved so the larger (doc ID, chunk) key is evicted first,
// keeping results reproducible across runs.
type topK struct {
	items []domain.Result
	k     int
}

func newTopK(k int) *topK {
	return &topK{items: make([]domain.Result, 0, k), k: k}
}

func (h *topK) Len() int { return len(h.items) }

func (h *topK) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	if a.DocumentID != b.DocumentID {
		return a.DocumentID > b.DocumentID
	}
	return a.ChunkIndex > b.ChunkIndex
}

func (h *topK) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *topK) Push(x any) { h.items = append(h.items, x.(domain.Result)) }

func (h *topK) Pop() any {
	last := len(h.items) - 1
	item := h.items[last]
	h.items = h.items[:last]
	return item
}

// offer inserts the candidate if the heap has room, or replaces the current
// minimum if the candidate beats it.
func (h *topK) offer(r domain.Result) {
	if h.k <= 0 {
		return
	}
	if len(h.items) < h.k {
		heap.Push(h, r)
		return
	}
	if beats(r, h.items[0]) {
		h.items[0] = r
		heap.Fix(h, 0)
	}
}

// beats reports whether a outranks b in the final ordering: higher score
// first, then ascending doc ID, then ascending chunk index.
func beats(a, b domain.Result) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.DocumentID != b.DocumentID {
		return a.DocumentID < b.DocumentID
	}
	return a.ChunkIndex < b.ChunkIndex
}

// drain empties the heap into a slice ordered best-first.
func (h *topK) drain() []domain.Result {
	out := make([]domain.Result, len(h.items))
	for i := len(h.items) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(domain.Result)
	}
	return out
}
