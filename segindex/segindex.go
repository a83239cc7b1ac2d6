package segindex

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/viant/segknn/geom"
	"github.com/viant/segknn/index"
	"github.com/viant/segknn/index/bruteforce"
	"github.com/viant/segknn/index/cover"
	"github.com/viant/segknn/index/kdtree"
	"github.com/viant/segknn/index/vptree"
)

// Index is a built segment index. It is immutable and safe for concurrent
// queries until Close.
type Index struct {
	segments geom.Collection
	points   []geom.Point3
	pointIdx index.Index
	kind     index.Kind
	closed   atomic.Bool
}

// New returns an unbuilt point index of the given kind.
func New(kind index.Kind) (index.Index, error) {
	switch kind {
	case index.KDTree:
		return &kdtree.Index{}, nil
	case index.Cover:
		return &cover.Index{}, nil
	case index.VPTree:
		return &vptree.Index{}, nil
	case index.BruteForce:
		return &bruteforce.Index{}, nil
	}
	return nil, errors.Wrapf(index.ErrUnknownKind, "%q", string(kind))
}

// Build validates segments, lays out their endpoints and builds the point
// index over them. The collection must not be mutated while the index is
// alive.
func Build(segments geom.Collection, opts ...Option) (*Index, error) {
	o := newOptions(opts)
	if err := segments.Validate(); err != nil {
		return nil, err
	}
	pointIdx, kind := o.points, o.kind
	if pointIdx == nil {
		var err error
		if pointIdx, err = New(kind); err != nil {
			return nil, err
		}
	} else {
		kind = "custom"
	}

	started := time.Now()
	points := make([]geom.Point3, 2*len(segments))
	for i, s := range segments {
		points[Slot(i, false)] = s.Start
		points[Slot(i, true)] = s.End
	}
	if err := pointIdx.Build(points); err != nil {
		return nil, err
	}
	o.logger.Info("segment index built",
		zap.Int("segments", len(segments)),
		zap.Int("points", len(points)),
		zap.String("kind", string(kind)),
		zap.Duration("elapsed", time.Since(started)))
	return &Index{segments: segments, points: points, pointIdx: pointIdx, kind: kind}, nil
}

// SegmentOf returns the segment owning endpoint slot.
func SegmentOf(slot int) int { return slot / 2 }

// Slot returns the endpoint slot of segment; end selects the end point.
func Slot(segment int, end bool) int {
	if end {
		return 2*segment + 1
	}
	return 2 * segment
}

// PointIndex returns the underlying point index.
func (i *Index) PointIndex() index.Index {
	index.CheckOpen(i.closed.Load())
	return i.pointIdx
}

// Segments returns the indexed collection.
func (i *Index) Segments() geom.Collection {
	index.CheckOpen(i.closed.Load())
	return i.segments
}

// Len returns the number of indexed segments.
func (i *Index) Len() int { return len(i.segments) }

// Kind returns the point index kind, or "custom" for a caller-supplied one.
func (i *Index) Kind() index.Kind { return i.kind }

// Endpoint returns the point stored at slot.
func (i *Index) Endpoint(slot int) geom.Point3 {
	index.CheckOpen(i.closed.Load())
	return i.points[slot]
}

// SegmentOf returns the segment owning slot.
func (i *Index) SegmentOf(slot int) int { return SegmentOf(slot) }

// Close releases the point index. Closing twice panics with index.ErrClosed.
func (i *Index) Close() error {
	index.CheckOpen(i.closed.Swap(true))
	err := i.pointIdx.Close()
	i.points = nil
	return err
}
