package distance

import (
	"math"

	"github.com/viant/segknn/geom"
)

// DefaultSamples is the Hausdorff sampling resolution used when none is given.
const DefaultSamples = 10

// epsilon guards the parallel/degenerate branch and snaps near-zero parameters.
const epsilon = 1e-8

// Shortest returns the minimum Euclidean distance between any point of a and
// any point of b. Zero-length and parallel segments are handled by the
// epsilon guards and always yield a finite result.
func Shortest(a, b geom.Segment) float64 {
	u := a.Direction()
	v := b.Direction()
	w := a.Start.Sub(b.Start)

	uu := u.Dot(u)
	uv := u.Dot(v)
	vv := v.Dot(v)
	uw := u.Dot(w)
	vw := v.Dot(w)
	det := uu*vv - uv*uv

	sN, sD := 0.0, det
	tN, tD := 0.0, det
	switch {
	case det < epsilon && vv < epsilon && uu >= epsilon:
		// b is a point: the reduced problem lives on u.
		sN, sD = clamp(-uw, 0, uu), uu
		tN, tD = 0, 1
	case det < epsilon:
		sN, sD = 0, 1
		tN, tD = vw, vv
	default:
		sN = uv*vw - vv*uw
		tN = uu*vw - uv*uw
		if sN < 0 {
			sN = 0
			tN, tD = vw, vv
		} else if sN > sD {
			sN = sD
			tN, tD = vw+uv, vv
		}
	}

	if tN < 0 {
		tN = 0
		switch {
		case -uw < 0:
			sN = 0
		case -uw > uu:
			sN = sD
		default:
			sN, sD = -uw, uu
		}
	} else if tN > tD {
		tN = tD
		switch {
		case -uw+uv < 0:
			sN = 0
		case -uw+uv > uu:
			sN = sD
		default:
			sN, sD = -uw+uv, uu
		}
	}

	sc := 0.0
	if math.Abs(sN) >= epsilon {
		sc = sN / sD
	}
	tc := 0.0
	if math.Abs(tN) >= epsilon {
		tc = tN / tD
	}
	return w.Add(u.Mul(sc)).Sub(v.Mul(tc)).Norm()
}

// Longest returns the largest of the four endpoint-to-endpoint distances.
func Longest(a, b geom.Segment) float64 {
	return max(
		a.Start.Distance(b.Start),
		a.Start.Distance(b.End),
		a.End.Distance(b.Start),
		a.End.Distance(b.End),
	)
}

// Hausdorff approximates the symmetric Hausdorff distance by sampling each
// segment at samples+1 evenly spaced points, endpoints included. samples <= 0
// falls back to DefaultSamples. Cost is O(samples²).
func Hausdorff(a, b geom.Segment, samples int) float64 {
	if samples <= 0 {
		samples = DefaultSamples
	}
	pa := sample(a, samples)
	pb := sample(b, samples)
	return max(directed(pa, pb), directed(pb, pa))
}

// PointToSegment returns the distance from p to the closest point of s.
func PointToSegment(p geom.Point3, s geom.Segment) float64 {
	dir := s.Direction()
	length2 := dir.Norm2()
	if length2 == 0 {
		return p.Distance(s.Start)
	}
	t := clamp(p.Sub(s.Start).Dot(dir)/length2, 0, 1)
	return p.Distance(s.At(t))
}

func sample(s geom.Segment, samples int) []geom.Point3 {
	points := make([]geom.Point3, samples+1)
	for i := range points {
		points[i] = s.At(float64(i) / float64(samples))
	}
	return points
}

// directed returns max over p in from of min over q in to of |p-q|.
func directed(from, to []geom.Point3) float64 {
	var result float64
	for _, p := range from {
		nearest := math.Inf(1)
		for _, q := range to {
			if d := p.Distance(q); d < nearest {
				nearest = d
			}
		}
		if nearest > result {
			result = nearest
		}
	}
	return result
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
