package vptree

import (
	"container/heap"
	"math"
	"sort"
	"sync/atomic"

	"github.com/viant/segknn/geom"
	"github.com/viant/segknn/index"
)

// Index implements index.Index on a VP-tree with Euclidean distance.
type Index struct {
	points []geom.Point3
	root   *node
	closed atomic.Bool
}

type node struct {
	slot  int     // index into points
	thr   float64 // left subtree holds distances <= thr, right >= thr
	left  *node
	right *node
}

// Build constructs the VP-tree.
func (i *Index) Build(points []geom.Point3) error {
	index.CheckOpen(i.closed.Load())
	if err := index.CheckFinite(points); err != nil {
		return err
	}
	i.points = append([]geom.Point3(nil), points...)
	slots := make([]int, len(points))
	for k := range slots {
		slots[k] = k
	}
	i.root = i.buildVP(slots)
	return nil
}

func (i *Index) buildVP(slots []int) *node {
	if len(slots) == 0 {
		return nil
	}
	// pick last as vantage point to avoid extra randomness
	vp := slots[len(slots)-1]
	slots = slots[:len(slots)-1]
	if len(slots) == 0 {
		return &node{slot: vp}
	}
	dists := make([]float64, len(slots))
	for k, j := range slots {
		dists[k] = i.points[vp].Distance(i.points[j])
	}
	mid := len(dists) / 2
	order := make([]int, len(slots))
	for k := range order {
		order[k] = k
	}
	sort.Slice(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })
	thr := dists[order[mid]]
	leftSlots := make([]int, 0, mid+1)
	rightSlots := make([]int, 0, len(slots)-(mid+1))
	for rank, k := range order {
		if rank <= mid {
			leftSlots = append(leftSlots, slots[k])
		} else {
			rightSlots = append(rightSlots, slots[k])
		}
	}
	return &node{
		slot:  vp,
		thr:   thr,
		left:  i.buildVP(leftSlots),
		right: i.buildVP(rightSlots),
	}
}

type cand struct {
	slot int
	dist float64
}

// candidates is a max-heap on dist.
type candidates []cand

func (h candidates) Len() int            { return len(h) }
func (h candidates) Less(a, b int) bool  { return h[a].dist > h[b].dist }
func (h candidates) Swap(a, b int)       { h[a], h[b] = h[b], h[a] }
func (h *candidates) Push(x interface{}) { *h = append(*h, x.(cand)) }
func (h *candidates) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// KNN returns up to k slots ordered by ascending distance.
func (i *Index) KNN(query geom.Point3, k int) ([]int, error) {
	index.CheckOpen(i.closed.Load())
	if k <= 0 || i.root == nil {
		return nil, nil
	}
	h := make(candidates, 0, min(k, len(i.points)))
	bestR := math.Inf(1)
	var search func(n *node)
	search = func(n *node) {
		if n == nil {
			return
		}
		d := query.Distance(i.points[n.slot])
		if h.Len() < k {
			heap.Push(&h, cand{slot: n.slot, dist: d})
			if h.Len() == k {
				bestR = h[0].dist
			}
		} else if d < bestR {
			h[0] = cand{slot: n.slot, dist: d}
			heap.Fix(&h, 0)
			bestR = h[0].dist
		}
		// prune using triangle inequality
		if d < n.thr {
			if d-bestR <= n.thr {
				search(n.left)
			}
			if d+bestR >= n.thr {
				search(n.right)
			}
		} else {
			if d+bestR >= n.thr {
				search(n.right)
			}
			if d-bestR <= n.thr {
				search(n.left)
			}
		}
	}
	search(i.root)
	out := make([]int, h.Len())
	for n := len(out) - 1; n >= 0; n-- {
		out[n] = heap.Pop(&h).(cand).slot
	}
	return out, nil
}

// WithinRadius visits every slot within radius of query.
func (i *Index) WithinRadius(query geom.Point3, radius float64, visit func(slot int)) error {
	index.CheckOpen(i.closed.Load())
	if radius < 0 {
		return nil
	}
	var search func(n *node)
	search = func(n *node) {
		if n == nil {
			return
		}
		d := query.Distance(i.points[n.slot])
		if d <= radius {
			visit(n.slot)
		}
		if d-radius <= n.thr {
			search(n.left)
		}
		if d+radius >= n.thr {
			search(n.right)
		}
	}
	search(i.root)
	return nil
}

// Close releases the tree. Closing twice panics.
func (i *Index) Close() error {
	index.CheckOpen(i.closed.Swap(true))
	i.points, i.root = nil, nil
	return nil
}

var _ index.Index = (*Index)(nil)
