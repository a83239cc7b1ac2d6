package distance_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/segknn/distance"
	"github.com/viant/segknn/geom"
	"github.com/viant/segknn/internal/segtest"
)

const tolerance = 1e-9

func TestShortest(t *testing.T) {
	testCases := []struct {
		name string
		a, b geom.Segment
		want float64
	}{
		{
			name: "parallel offset",
			a:    geom.NewSegment(0, 1, 0, 1, 1, 0),
			b:    geom.NewSegment(0, 0, 0, 1, 0, 0),
			want: 1,
		},
		{
			name: "parallel disjoint",
			a:    geom.NewSegment(2, 1, 0, 3, 1, 0),
			b:    geom.NewSegment(0, 0, 0, 1, 0, 0),
			want: math.Sqrt2,
		},
		{
			name: "collinear overlapping",
			a:    geom.NewSegment(0, 0, 0, 2, 0, 0),
			b:    geom.NewSegment(1, 0, 0, 3, 0, 0),
			want: 0,
		},
		{
			name: "skew crossing",
			a:    geom.NewSegment(-1, 0, 1, 1, 0, 1),
			b:    geom.NewSegment(0, -1, 0, 0, 1, 0),
			want: 1,
		},
		{
			name: "skew clamped at both ends",
			a:    geom.NewSegment(2, 0, 1, 3, 0, 1),
			b:    geom.NewSegment(0, 2, 0, 0, 3, 0),
			want: math.Sqrt(4 + 4 + 1),
		},
		{
			name: "intersecting",
			a:    geom.NewSegment(0, 0, 0, 2, 2, 0),
			b:    geom.NewSegment(0, 2, 0, 2, 0, 0),
			want: 0,
		},
		{
			name: "touching at endpoints",
			a:    geom.NewSegment(0, 0, 0, 1, 0, 0),
			b:    geom.NewSegment(1, 0, 0, 1, 5, 0),
			want: 0,
		},
		{
			name: "point to segment interior",
			a:    geom.NewSegment(0.5, 3, 0, 0.5, 3, 0),
			b:    geom.NewSegment(0, 0, 0, 1, 0, 0),
			want: 3,
		},
		{
			name: "segment to point interior",
			a:    geom.NewSegment(0, 0, 0, 1, 0, 0),
			b:    geom.NewSegment(0.5, 3, 0, 0.5, 3, 0),
			want: 3,
		},
		{
			name: "point to point",
			a:    geom.NewSegment(1, 2, 3, 1, 2, 3),
			b:    geom.NewSegment(4, 6, 3, 4, 6, 3),
			want: 5,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := distance.Shortest(tc.a, tc.b)
			assert.InDelta(t, tc.want, got, tolerance)
			assert.InDelta(t, tc.want, distance.Shortest(tc.b, tc.a), tolerance)
			assert.InDelta(t, tc.want, distance.Shortest(tc.a.Reverse(), tc.b), tolerance)
		})
	}
}

func TestShortest_MatchesSampledMinimum(t *testing.T) {
	rng := segtest.NewRand(7)
	for i := 0; i < 200; i++ {
		a := segtest.RandomSegment(rng, 1+rng.Float64()*5, 10)
		b := segtest.RandomSegment(rng, 1+rng.Float64()*5, 10)
		got := distance.Shortest(a, b)

		// The exact minimum can never exceed any sampled pair distance.
		sampled := math.Inf(1)
		const n = 200
		for x := 0; x <= n; x++ {
			p := a.At(float64(x) / n)
			sampled = math.Min(sampled, distance.PointToSegment(p, b))
		}
		require.LessOrEqual(t, got, sampled+tolerance)
		// With 200 samples the sampled minimum is within half a step of the truth.
		require.InDelta(t, sampled, got, a.Length()/n)
	}
}

func TestLongest(t *testing.T) {
	a := geom.NewSegment(0, 0, 0, 1, 0, 0)
	b := geom.NewSegment(0, 3, 0, 0, 3, 4)
	assert.InDelta(t, math.Sqrt(1+9+16), distance.Longest(a, b), tolerance)

	rng := segtest.NewRand(11)
	for i := 0; i < 100; i++ {
		a := segtest.RandomSegment(rng, 3, 10)
		b := segtest.RandomSegment(rng, 3, 10)
		want := math.Max(
			math.Max(a.Start.Distance(b.Start), a.Start.Distance(b.End)),
			math.Max(a.End.Distance(b.Start), a.End.Distance(b.End)),
		)
		assert.Equal(t, want, distance.Longest(a, b))
	}
}

func TestHausdorff(t *testing.T) {
	a := geom.NewSegment(0, 0, 0, 10, 0, 0)
	b := geom.NewSegment(0, 1, 0, 10, 1, 0)
	assert.InDelta(t, 1, distance.Hausdorff(a, b, 10), tolerance)

	// b covers only the first half of a: the far end of a is 5 away from b.end.
	c := geom.NewSegment(0, 0, 0, 5, 0, 0)
	assert.InDelta(t, 5, distance.Hausdorff(a, c, 10), tolerance)

	// samples <= 0 falls back to the default resolution.
	assert.Equal(t, distance.Hausdorff(a, c, distance.DefaultSamples), distance.Hausdorff(a, c, 0))
	assert.Equal(t, distance.Hausdorff(a, c, distance.DefaultSamples), distance.Hausdorff(a, c, -3))

	// Degenerate versus degenerate is the point distance.
	p := geom.NewSegment(1, 1, 1, 1, 1, 1)
	q := geom.NewSegment(1, 1, 4, 1, 1, 4)
	assert.InDelta(t, 3, distance.Hausdorff(p, q, 4), tolerance)
}

func TestPointToSegment(t *testing.T) {
	s := geom.NewSegment(0, 0, 0, 4, 0, 0)
	assert.InDelta(t, 2, distance.PointToSegment(geom.Point3{X: 2, Y: 2}, s), tolerance)
	assert.InDelta(t, 5, distance.PointToSegment(geom.Point3{X: -3, Y: 4}, s), tolerance)
	assert.InDelta(t, 5, distance.PointToSegment(geom.Point3{X: 7, Z: 4}, s), tolerance)

	degenerate := geom.NewSegment(1, 1, 1, 1, 1, 1)
	assert.InDelta(t, math.Sqrt(3), distance.PointToSegment(geom.Point3{}, degenerate), tolerance)
}

func TestMetricProperties(t *testing.T) {
	rng := segtest.NewRand(42)
	var segments geom.Collection
	segments = append(segments, segtest.RandomSegments(rng, 60, 2, 10)...)
	for i := 0; i < 10; i++ {
		p := segtest.RandomSegment(rng, 0, 10)
		segments = append(segments, p)
	}
	metrics := []distance.Metric{distance.MetricShortest, distance.MetricLongest, distance.MetricHausdorff}

	for i := 0; i+1 < len(segments); i++ {
		a, b := segments[i], segments[i+1]
		for _, m := range metrics {
			ab, err := distance.Between(a, b, m, 0)
			require.NoError(t, err)
			ba, err := distance.Between(b, a, m, 0)
			require.NoError(t, err)

			require.True(t, segtest.Finite(ab), "%v(%v, %v) not finite", m, a, b)
			require.GreaterOrEqual(t, ab, 0.0)
			require.InDelta(t, ab, ba, tolerance, "%v not symmetric for %v, %v", m, a, b)
		}
		if !a.IsDegenerate() && !b.IsDegenerate() {
			require.LessOrEqual(t, distance.Shortest(a, b), distance.Longest(a, b)+tolerance)
		}
	}
}

func TestSelfDistance(t *testing.T) {
	rng := segtest.NewRand(5)
	segments := segtest.RandomSegments(rng, 20, 3, 10)
	segments = append(segments, geom.NewSegment(2, 2, 2, 2, 2, 2), geom.Segment{})

	for _, s := range segments {
		assert.Equal(t, 0.0, distance.Shortest(s, s), "shortest %v", s)
		assert.Equal(t, 0.0, distance.Hausdorff(s, s, distance.DefaultSamples), "hausdorff %v", s)
		// Longest(s, s) is the segment length by definition; zero only when degenerate.
		assert.InDelta(t, s.Length(), distance.Longest(s, s), tolerance)
	}
}

func TestMetric_ParseAndDispatch(t *testing.T) {
	for _, name := range []string{"shortest", "Longest", " HAUSDORFF "} {
		m, err := distance.ParseMetric(name)
		require.NoError(t, err)
		assert.True(t, m.Valid())
		assert.NotNil(t, m.Function(0))
	}

	_, err := distance.ParseMetric("manhattan")
	assert.ErrorIs(t, err, distance.ErrUnknownMetric)

	bogus := distance.Metric(9)
	assert.False(t, bogus.Valid())
	assert.Nil(t, bogus.Function(0))
	assert.Equal(t, "unknown(9)", bogus.String())
	_, err = distance.Between(geom.Segment{}, geom.Segment{}, bogus, 0)
	assert.ErrorIs(t, err, distance.ErrUnknownMetric)

	assert.Equal(t, "shortest", distance.MetricShortest.String())
	assert.Equal(t, "longest", distance.MetricLongest.String())
	assert.Equal(t, "hausdorff", distance.MetricHausdorff.String())
}
