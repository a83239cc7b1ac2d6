package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min Point3
	Max Point3
}

// Bounds returns the box enclosing every endpoint of c. An empty collection
// yields an inverted box (Min = +Inf, Max = -Inf).
func Bounds(c Collection) Box {
	box := Box{
		Min: Point3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Point3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, s := range c {
		box = box.extend(s.Start).extend(s.End)
	}
	return box
}

func (b Box) extend(p Point3) Box {
	b.Min = r3.Vector{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
	b.Max = r3.Vector{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	return b
}

// Empty reports whether the box encloses nothing.
func (b Box) Empty() bool { return b.Min.X > b.Max.X }

// Diagonal returns the length of the box diagonal, or 0 for an empty box.
func (b Box) Diagonal() float64 {
	if b.Empty() {
		return 0
	}
	return b.Min.Distance(b.Max)
}
