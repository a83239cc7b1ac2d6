package cover

import (
	"sync/atomic"

	"github.com/viant/segknn/geom"
	"github.com/viant/segknn/index"
	"github.com/viant/segknn/internal/cover/tree"
)

// Index implements index.Index on a cover tree.
type Index struct {
	// Base is the cover-tree level expansion base; values <= 1 use tree.DefaultBase.
	Base   float64
	tree   *tree.Tree
	closed atomic.Bool
}

// Build inserts every point and seals the tree.
func (i *Index) Build(points []geom.Point3) error {
	index.CheckOpen(i.closed.Load())
	if err := index.CheckFinite(points); err != nil {
		return err
	}
	t := tree.NewTree(i.Base)
	for slot, p := range points {
		t.Insert(slot, p)
	}
	t.Seal()
	i.tree = t
	return nil
}

// KNN returns up to k slots ordered by ascending distance.
func (i *Index) KNN(query geom.Point3, k int) ([]int, error) {
	index.CheckOpen(i.closed.Load())
	if i.tree == nil {
		return nil, nil
	}
	neighbors := i.tree.KNearestNeighbors(query, k)
	out := make([]int, len(neighbors))
	for n, nb := range neighbors {
		out[n] = nb.Slot
	}
	return out, nil
}

// WithinRadius visits every slot within radius of query.
func (i *Index) WithinRadius(query geom.Point3, radius float64, visit func(slot int)) error {
	index.CheckOpen(i.closed.Load())
	if i.tree == nil {
		return nil
	}
	i.tree.WithinRadius(query, radius, func(nb tree.Neighbor) { visit(nb.Slot) })
	return nil
}

// Close drops the tree. Closing twice panics.
func (i *Index) Close() error {
	index.CheckOpen(i.closed.Swap(true))
	i.tree = nil
	return nil
}

var _ index.Index = (*Index)(nil)
