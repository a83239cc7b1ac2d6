package neighbor

import (
	"cmp"
	"math"
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/viant/segknn/distance"
	"github.com/viant/segknn/geom"
	"github.com/viant/segknn/index"
	"github.com/viant/segknn/segindex"
)

var (
	// ErrInvalidK is returned for a negative neighbor count.
	ErrInvalidK = errors.New("neighbor: k must be non-negative")
	// ErrInvalidRadius is returned for a negative or NaN radius.
	ErrInvalidRadius = errors.New("neighbor: radius must be a non-negative number")
)

// radiusSlack widens point-index range queries so endpoints lying exactly on
// the boundary survive rounding.
const radiusSlack = 1e-12

// Source is a built segment index.
type Source interface {
	Segments() geom.Collection
	PointIndex() index.Index
}

var _ Source = (*segindex.Index)(nil)

// Neighbor pairs a segment index with its exact distance to the query.
type Neighbor struct {
	Index    int
	Distance float64
}

// Searcher runs KNN and range queries. A Searcher is immutable and safe for
// concurrent use.
type Searcher struct {
	samples int
	workers int
	logger  *zap.Logger
}

// New creates a Searcher.
func New(opts ...Option) *Searcher {
	s := defaults()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// KNearestNeighbors returns the indices of the k segments nearest to query,
// ordered by ascending distance then index.
func (s *Searcher) KNearestNeighbors(src Source, query geom.Segment, k int, metric distance.Metric) ([]int, error) {
	ranked, err := s.KNearest(src, query, k, metric)
	return indices(ranked), err
}

// WithinRadius returns, ascending, the indices of every segment within radius
// of query.
func (s *Searcher) WithinRadius(src Source, query geom.Segment, radius float64, metric distance.Metric) ([]int, error) {
	found, err := s.Within(src, query, radius, metric)
	return indices(found), err
}

// KNearest is KNearestNeighbors with distances.
func (s *Searcher) KNearest(src Source, query geom.Segment, k int, metric distance.Metric) ([]Neighbor, error) {
	if k < 0 {
		return nil, errors.Wrapf(ErrInvalidK, "k=%d", k)
	}
	if k == 0 {
		return nil, nil
	}
	fn, err := s.prepare(query, metric)
	if err != nil {
		return nil, err
	}
	segments := src.Segments()
	if len(segments) == 0 {
		return nil, nil
	}
	k = min(k, len(segments))
	points := src.PointIndex()

	mid := query.Midpoint()
	slots, err := points.KNN(mid, 2*k)
	if err != nil {
		return nil, err
	}
	maxRadius := 0.0
	candidates := make(map[int]struct{}, 2*len(slots))
	for _, slot := range slots {
		maxRadius = max(maxRadius, mid.Distance(endpoint(segments, slot)))
		candidates[segindex.SegmentOf(slot)] = struct{}{}
	}
	searchRadius := maxRadius + 2*query.Length()
	if err = points.WithinRadius(mid, searchRadius*(1+radiusSlack), func(slot int) {
		candidates[segindex.SegmentOf(slot)] = struct{}{}
	}); err != nil {
		return nil, err
	}

	ranked := make([]Neighbor, 0, len(candidates))
	for i := range candidates {
		ranked = append(ranked, Neighbor{Index: i, Distance: fn(query, segments[i])})
	}
	slices.SortFunc(ranked, byDistance)
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	s.logger.Debug("knn query",
		zap.Int("k", k),
		zap.Stringer("metric", metric),
		zap.Float64("searchRadius", searchRadius),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(ranked)))
	return ranked, nil
}

// Within is WithinRadius with distances.
func (s *Searcher) Within(src Source, query geom.Segment, radius float64, metric distance.Metric) ([]Neighbor, error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, errors.Wrapf(ErrInvalidRadius, "radius=%v", radius)
	}
	fn, err := s.prepare(query, metric)
	if err != nil {
		return nil, err
	}
	segments := src.Segments()
	if len(segments) == 0 {
		return nil, nil
	}

	mid := query.Midpoint()
	searchRadius := radius + 2*query.Length()
	candidates := make(map[int]struct{})
	if err = src.PointIndex().WithinRadius(mid, searchRadius*(1+radiusSlack), func(slot int) {
		candidates[segindex.SegmentOf(slot)] = struct{}{}
	}); err != nil {
		return nil, err
	}

	var found []Neighbor
	for i := range candidates {
		if d := fn(query, segments[i]); d <= radius {
			found = append(found, Neighbor{Index: i, Distance: d})
		}
	}
	slices.SortFunc(found, func(a, b Neighbor) int { return cmp.Compare(a.Index, b.Index) })
	s.logger.Debug("range query",
		zap.Float64("radius", radius),
		zap.Stringer("metric", metric),
		zap.Float64("searchRadius", searchRadius),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(found)))
	return found, nil
}

func (s *Searcher) prepare(query geom.Segment, metric distance.Metric) (distance.Func, error) {
	fn := metric.Function(s.samples)
	if fn == nil {
		return nil, errors.Wrapf(distance.ErrUnknownMetric, "%v", metric)
	}
	if err := query.Validate(); err != nil {
		return nil, errors.Wrap(err, "query")
	}
	return fn, nil
}

func endpoint(segments geom.Collection, slot int) geom.Point3 {
	s := segments[segindex.SegmentOf(slot)]
	if slot == segindex.Slot(segindex.SegmentOf(slot), true) {
		return s.End
	}
	return s.Start
}

func byDistance(a, b Neighbor) int {
	if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

func indices(neighbors []Neighbor) []int {
	if len(neighbors) == 0 {
		return nil
	}
	out := make([]int, len(neighbors))
	for i, n := range neighbors {
		out[i] = n.Index
	}
	return out
}
