package tree

import "container/heap"

// Neighbor describes a point returned by a search.
type Neighbor struct {
	Slot     int
	Distance float64
}

// Neighbors implements heap.Interface sorted by descending distance (max-heap).
type Neighbors []Neighbor

func (h Neighbors) Len() int           { return len(h) }
func (h Neighbors) Less(i, j int) bool { return h[i].Distance > h[j].Distance }
func (h Neighbors) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *Neighbors) Push(x interface{}) {
	*h = append(*h, x.(Neighbor))
}

func (h *Neighbors) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// offer keeps nb if fewer than k neighbors are held or nb beats the worst.
func (h *Neighbors) offer(nb Neighbor, k int) {
	if h.Len() < k {
		heap.Push(h, nb)
	} else if nb.Distance < (*h)[0].Distance {
		(*h)[0] = nb
		heap.Fix(h, 0)
	}
}
