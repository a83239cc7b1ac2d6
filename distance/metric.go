package distance

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/viant/segknn/geom"
)

// ErrUnknownMetric is returned for a Metric outside the supported set.
var ErrUnknownMetric = errors.New("distance: unknown metric")

// Metric selects the segment distance used for exact refinement.
type Metric int

const (
	// MetricShortest is the minimum distance between any two points of the segments.
	MetricShortest Metric = iota
	// MetricLongest is the maximum of the four endpoint-to-endpoint distances.
	MetricLongest
	// MetricHausdorff is the sampled symmetric Hausdorff distance.
	MetricHausdorff
)

func (m Metric) String() string {
	switch m {
	case MetricShortest:
		return "shortest"
	case MetricLongest:
		return "longest"
	case MetricHausdorff:
		return "hausdorff"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Valid reports whether m is a supported metric.
func (m Metric) Valid() bool { return m >= MetricShortest && m <= MetricHausdorff }

// ParseMetric resolves a metric by name, case-insensitively.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "shortest":
		return MetricShortest, nil
	case "longest":
		return MetricLongest, nil
	case "hausdorff":
		return MetricHausdorff, nil
	}
	return 0, errors.Wrapf(ErrUnknownMetric, "%q", name)
}

// Func computes the distance between two segments.
type Func func(a, b geom.Segment) float64

// Function resolves the callable implementation of m. samples only applies
// to Hausdorff. It returns nil for an unknown metric.
func (m Metric) Function(samples int) Func {
	switch m {
	case MetricShortest:
		return Shortest
	case MetricLongest:
		return Longest
	case MetricHausdorff:
		return func(a, b geom.Segment) float64 { return Hausdorff(a, b, samples) }
	default:
		return nil
	}
}

// Between returns the distance between a and b under metric m.
func Between(a, b geom.Segment, m Metric, samples int) (float64, error) {
	fn := m.Function(samples)
	if fn == nil {
		return 0, errors.Wrapf(ErrUnknownMetric, "%v", m)
	}
	return fn(a, b), nil
}
