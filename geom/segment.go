package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ErrInvalidSegment is returned for segments with a non-finite coordinate.
var ErrInvalidSegment = errors.New("geom: invalid segment")

// Point3 is a point in 3D space.
type Point3 = r3.Vector

// Segment is an ordered pair of points. Start == End is a valid zero-length segment.
type Segment struct {
	Start Point3
	End   Point3
}

// NewSegment builds a segment from six coordinates.
func NewSegment(x1, y1, z1, x2, y2, z2 float64) Segment {
	return Segment{Start: Point3{X: x1, Y: y1, Z: z1}, End: Point3{X: x2, Y: y2, Z: z2}}
}

// Direction returns End - Start.
func (s Segment) Direction() r3.Vector { return s.End.Sub(s.Start) }

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 { return s.Start.Distance(s.End) }

// Midpoint returns the arithmetic mean of both endpoints.
func (s Segment) Midpoint() Point3 { return s.Start.Add(s.End).Mul(0.5) }

// At returns Start + t*(End-Start).
func (s Segment) At(t float64) Point3 { return s.Start.Add(s.Direction().Mul(t)) }

// IsDegenerate reports whether both endpoints coincide.
func (s Segment) IsDegenerate() bool { return s.Start == s.End }

// Reverse returns the segment with swapped endpoints.
func (s Segment) Reverse() Segment { return Segment{Start: s.End, End: s.Start} }

func (s Segment) String() string {
	return fmt.Sprintf("[(%g, %g, %g) (%g, %g, %g)]", s.Start.X, s.Start.Y, s.Start.Z, s.End.X, s.End.Y, s.End.Z)
}

// Validate returns ErrInvalidSegment when any coordinate is NaN or infinite.
func (s Segment) Validate() error {
	if !finite(s.Start) || !finite(s.End) {
		return errors.Wrapf(ErrInvalidSegment, "non-finite coordinate in %v", s)
	}
	return nil
}

func finite(p Point3) bool {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Collection is an index-addressable sequence of segments. A segment's
// identity is its position.
type Collection []Segment

// Validate checks every segment and reports all offenders.
func (c Collection) Validate() error {
	var err error
	for i, s := range c {
		if vErr := s.Validate(); vErr != nil {
			err = multierr.Append(err, errors.Wrapf(vErr, "segment %d", i))
		}
	}
	return err
}
