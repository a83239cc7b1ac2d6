package bruteforce

import (
	"cmp"
	"slices"
	"sync/atomic"

	"github.com/viant/segknn/geom"
	"github.com/viant/segknn/index"
)

// Index is a brute-force point index over Euclidean distance.
type Index struct {
	points []geom.Point3
	closed atomic.Bool
}

// Build copies the points.
func (i *Index) Build(points []geom.Point3) error {
	index.CheckOpen(i.closed.Load())
	if err := index.CheckFinite(points); err != nil {
		return err
	}
	i.points = slices.Clone(points)
	return nil
}

// KNN returns the k nearest slots ordered by ascending distance, ties by slot.
func (i *Index) KNN(query geom.Point3, k int) ([]int, error) {
	index.CheckOpen(i.closed.Load())
	if k <= 0 || len(i.points) == 0 {
		return nil, nil
	}
	type scored struct {
		slot int
		dist float64
	}
	scoreds := make([]scored, len(i.points))
	for slot, p := range i.points {
		scoreds[slot] = scored{slot: slot, dist: query.Sub(p).Norm2()}
	}
	slices.SortFunc(scoreds, func(a, b scored) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.slot, b.slot)
	})
	k = min(k, len(scoreds))
	out := make([]int, k)
	for n := 0; n < k; n++ {
		out[n] = scoreds[n].slot
	}
	return out, nil
}

// WithinRadius visits every slot within radius of query.
func (i *Index) WithinRadius(query geom.Point3, radius float64, visit func(slot int)) error {
	index.CheckOpen(i.closed.Load())
	if radius < 0 {
		return nil
	}
	for slot, p := range i.points {
		if query.Distance(p) <= radius {
			visit(slot)
		}
	}
	return nil
}

// Close releases the points. Closing twice panics.
func (i *Index) Close() error {
	index.CheckOpen(i.closed.Swap(true))
	i.points = nil
	return nil
}

var _ index.Index = (*Index)(nil)
