// Package segtest provides deterministic segment generators and brute-force
// reference searches shared by tests and benchmarks.
package segtest

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/viant/segknn/distance"
	"github.com/viant/segknn/geom"
)

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSegments generates n segments of fixed length whose start points are
// uniform in [0, box)³ and whose directions are uniform on the unit sphere.
func RandomSegments(rng *rand.Rand, n int, length, box float64) geom.Collection {
	out := make(geom.Collection, n)
	for i := range out {
		out[i] = RandomSegment(rng, length, box)
	}
	return out
}

// RandomSegment generates a single segment as described by RandomSegments.
func RandomSegment(rng *rand.Rand, length, box float64) geom.Segment {
	start := geom.Point3{X: rng.Float64() * box, Y: rng.Float64() * box, Z: rng.Float64() * box}
	return geom.Segment{Start: start, End: start.Add(RandomDirection(rng).Mul(length))}
}

// RandomDirection returns a unit vector.
func RandomDirection(rng *rand.Rand) geom.Point3 {
	for {
		d := geom.Point3{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1, Z: rng.Float64()*2 - 1}
		if n := d.Norm(); n > 1e-3 && n <= 1 {
			return d.Mul(1 / n)
		}
	}
}

// Ranked pairs a segment index with its exact distance to a query.
type Ranked struct {
	Index    int
	Distance float64
}

// Rank computes the exact distance from query to every segment, sorted by
// distance then index.
func Rank(segments geom.Collection, query geom.Segment, metric distance.Metric) []Ranked {
	fn := metric.Function(distance.DefaultSamples)
	out := make([]Ranked, len(segments))
	for i, s := range segments {
		out[i] = Ranked{Index: i, Distance: fn(query, s)}
	}
	slices.SortFunc(out, func(a, b Ranked) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return out
}

// BruteKNN returns the indices of the k segments nearest to query.
func BruteKNN(segments geom.Collection, query geom.Segment, k int, metric distance.Metric) []int {
	ranked := Rank(segments, query, metric)
	k = min(k, len(ranked))
	out := make([]int, k)
	for i := range out {
		out[i] = ranked[i].Index
	}
	return out
}

// BruteWithin returns, ascending, the indices of every segment within r of query.
func BruteWithin(segments geom.Collection, query geom.Segment, r float64, metric distance.Metric) []int {
	fn := metric.Function(distance.DefaultSamples)
	var out []int
	for i, s := range segments {
		if fn(query, s) <= r {
			out = append(out, i)
		}
	}
	return out
}

// RadialSegments generates segments that point straight away from center, so
// the closest point of each one to center is its start endpoint. Starts lie at
// distinct distances in [minDist, minDist+spread).
func RadialSegments(rng *rand.Rand, center geom.Point3, n int, minDist, spread, length float64) geom.Collection {
	out := make(geom.Collection, n)
	for i := range out {
		dir := RandomDirection(rng)
		dist := minDist + spread*float64(i)/float64(n) + rng.Float64()*spread/float64(4*n)
		start := center.Add(dir.Mul(dist))
		out[i] = geom.Segment{Start: start, End: start.Add(dir.Mul(length))}
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
