package index

import "github.com/viant/segknn/geom"

// Index is a spatial index over 3D points addressed by slot, the position of
// the point in the slice passed to Build.
//
// A built index is immutable: KNN and WithinRadius may be called concurrently.
// Calling any method after Close is a programming error and panics with
// ErrClosed.
type Index interface {
	// Build constructs the index over points. Points must be finite.
	Build(points []geom.Point3) error

	// KNN returns up to k slots ordered by ascending distance to query.
	KNN(query geom.Point3, k int) ([]int, error)

	// WithinRadius calls visit once for every slot whose point lies within
	// radius of query (inclusive), in unspecified order.
	WithinRadius(query geom.Point3, radius float64, visit func(slot int)) error

	// Close releases the index.
	Close() error
}
