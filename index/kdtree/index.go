package kdtree

import (
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/viant/segknn/geom"
	"github.com/viant/segknn/index"
)

// Index implements index.Index on a gonum k-d tree.
type Index struct {
	tree   *kdtree.Tree
	closed atomic.Bool
}

// Build constructs a balanced k-d tree over points.
func (i *Index) Build(points []geom.Point3) error {
	index.CheckOpen(i.closed.Load())
	if err := index.CheckFinite(points); err != nil {
		return err
	}
	list := make(slotPoints, len(points))
	for slot, p := range points {
		list[slot] = slotPoint{Point3: p, slot: slot}
	}
	i.tree = kdtree.New(list, false)
	return nil
}

// KNN returns up to k slots ordered by ascending distance.
func (i *Index) KNN(query geom.Point3, k int) ([]int, error) {
	index.CheckOpen(i.closed.Load())
	if k <= 0 || i.tree == nil || i.tree.Len() == 0 {
		return nil, nil
	}
	keep := kdtree.NewNKeeper(min(k, i.tree.Len()))
	i.tree.NearestSet(keep, slotPoint{Point3: query})
	out := make([]int, 0, keep.Len())
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		out = append(out, c.Comparable.(slotPoint).slot)
	}
	return out, nil
}

// WithinRadius visits every slot within radius of query.
func (i *Index) WithinRadius(query geom.Point3, radius float64, visit func(slot int)) error {
	index.CheckOpen(i.closed.Load())
	if radius < 0 || i.tree == nil || i.tree.Len() == 0 {
		return nil
	}
	// Distances are squared.
	keep := kdtree.NewDistKeeper(radius * radius)
	i.tree.NearestSet(keep, slotPoint{Point3: query})
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		visit(c.Comparable.(slotPoint).slot)
	}
	return nil
}

// Close drops the tree. Closing twice panics.
func (i *Index) Close() error {
	index.CheckOpen(i.closed.Swap(true))
	i.tree = nil
	return nil
}

var _ index.Index = (*Index)(nil)
