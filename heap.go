// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package egraph

// costheap is a min-heap of (class root, candidate cost) pairs ordered by
// cost. The code is identical to https://pkg.go.dev/container/heap but
// replaces interfaces with a concrete type to avoid memory overhead. Stale
// entries are tolerated: the extractor compares the popped cost against the
// current best for the root and discards outdated pairs.
type costheap[K comparable, D Data[K, D]] []costentry[K, D]

type costentry[K comparable, D Data[K, D]] struct {
	root *Node[K, D]
	cost Cost
}

func (h costheap[K, D]) less(i, j int) bool { return h[i].cost < h[j].cost }
func (h costheap[K, D]) swap(i, j int)      { h[i], h[j] = h[j], h[i] }

// push the entry x onto the heap.
// The complexity is O(log n) where n = len(*h).
func (h *costheap[K, D]) push(x costentry[K, D]) {
	*h = append(*h, x)
	h.up(len(*h) - 1)
}

// pop removes and returns the minimum entry (according to less) from the
// heap. The complexity is O(log n) where n = len(*h).
func (h *costheap[K, D]) pop() costentry[K, D] {
	n := len(*h) - 1
	h.swap(0, n)
	h.down(0, n)
	res := (*h)[n]
	*h = (*h)[0:n]
	return res
}

func (h *costheap[K, D]) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

func (h *costheap[K, D]) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}
	return i > i0
}
