package kdtree

import (
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/viant/segknn/geom"
)

// slotPoint is a kdtree.Comparable carrying the slot of the point it wraps.
type slotPoint struct {
	geom.Point3
	slot int
}

// Compare returns the signed distance of p from the plane through c
// perpendicular to dimension d.
func (p slotPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(slotPoint)
	switch d {
	case 0:
		return p.X - q.X
	case 1:
		return p.Y - q.Y
	case 2:
		return p.Z - q.Z
	default:
		panic("kdtree: illegal dimension")
	}
}

// Dims returns 3.
func (p slotPoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance to c.
func (p slotPoint) Distance(c kdtree.Comparable) float64 {
	return p.Sub(c.(slotPoint).Point3).Norm2()
}

// slotPoints satisfies kdtree.Interface.
type slotPoints []slotPoint

func (p slotPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p slotPoints) Len() int                              { return len(p) }
func (p slotPoints) Pivot(d kdtree.Dim) int                { return plane{slotPoints: p, Dim: d}.Pivot() }
func (p slotPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts slotPoints along one dimension for median selection.
type plane struct {
	kdtree.Dim
	slotPoints
}

func (p plane) Less(i, j int) bool {
	return p.slotPoints[i].Compare(p.slotPoints[j], p.Dim) < 0
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfRandoms(p, 100)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.slotPoints = p.slotPoints[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.slotPoints[i], p.slotPoints[j] = p.slotPoints[j], p.slotPoints[i]
}
