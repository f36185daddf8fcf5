package fuzzybbox

import "math"

// rankCandidate is a column of ambiguity group together with its tie-break keys
type rankCandidate struct {
	column    int
	reference float64
	score     float64
}

// Same trick as container/heap but without interface{} conversions.
// Min-heap: the most preferred candidate is on top.

type rankHeap []*rankCandidate

func (h rankHeap) Len() int { return len(h) }

// Less orders by reference ascending, then by score descending, then by column ascending
func (h rankHeap) Less(i, j int) bool {
	if h[i].reference != h[j].reference {
		return h[i].reference < h[j].reference
	}
	si, sj := scoreKey(h[i].score), scoreKey(h[j].score)
	if si != sj {
		return si > sj
	}
	return h[i].column < h[j].column
}

func (h rankHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// scoreKey makes NaN confidence the least preferred one
func scoreKey(score float64) float64 {
	if math.IsNaN(score) {
		return math.Inf(-1)
	}
	return score
}

// Push pushes the element x onto the heap.
// The complexity is O(log n) where n = h.Len().
func (h *rankHeap) Push(x *rankCandidate) {
	*h = append(*h, x)
	h.up(h.Len() - 1)
}

// Pop removes and returns the minimum element (according to Less) from the heap.
// The complexity is O(log n) where n = h.Len().
func (h *rankHeap) Pop() *rankCandidate {
	n := h.Len() - 1
	h.Swap(0, n)
	h.down(0, n)
	heapSize := len(*h)
	lastNode := (*h)[heapSize-1]
	*h = (*h)[0 : heapSize-1]
	return lastNode
}

func (h rankHeap) up(j int) {
	for {
		i := (j - 1) / 2
		if i == j || !h.Less(j, i) {
			break
		}
		h.Swap(i, j)
		j = i
	}
}

func (h rankHeap) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 {
			break
		}
		j := j1
		if j2 := j1 + 1; j2 < n && h.Less(j2, j1) {
			j = j2
		}
		if !h.Less(j, i) {
			break
		}
		h.Swap(i, j)
		i = j
	}
	return i > i0
}
