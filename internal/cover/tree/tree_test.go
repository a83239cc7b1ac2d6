package tree

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/segknn/geom"
)

func grid(n int) []geom.Point3 {
	var points []geom.Point3
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				points = append(points, geom.Point3{X: float64(x), Y: float64(y), Z: float64(z)})
			}
		}
	}
	return points
}

func build(points []geom.Point3) *Tree {
	tr := NewTree(0)
	for slot, p := range points {
		tr.Insert(slot, p)
	}
	tr.Seal()
	return tr
}

func TestTree_RadiusBoundsDescendants(t *testing.T) {
	points := grid(5)
	tr := build(points)
	require.Equal(t, len(points), tr.Len())
	require.True(t, tr.Sealed())

	var check func(n *Node) []geom.Point3
	check = func(n *Node) []geom.Point3 {
		subtree := []geom.Point3{n.point}
		for i := range n.children {
			subtree = append(subtree, check(&n.children[i])...)
		}
		for _, p := range subtree {
			require.LessOrEqual(t, n.point.Distance(p), n.radius+1e-12)
		}
		return subtree
	}
	all := check(tr.root)
	assert.Len(t, all, len(points))
}

func TestTree_KNearestNeighbors(t *testing.T) {
	points := grid(6)
	tr := build(points)
	q := geom.Point3{X: 2.2, Y: 2.9, Z: 0.4}

	got := tr.KNearestNeighbors(q, 7)
	require.Len(t, got, 7)
	assert.InDelta(t, math.Sqrt(0.04+0.01+0.16), got[0].Distance, 1e-12)
	assert.Equal(t, points[got[0].Slot], geom.Point3{X: 2, Y: 3, Z: 0})

	dists := make([]float64, len(points))
	for i, p := range points {
		dists[i] = q.Distance(p)
	}
	slices.Sort(dists)
	for i, nb := range got {
		assert.InDelta(t, dists[i], nb.Distance, 1e-12)
	}
}

func TestTree_WithinRadius(t *testing.T) {
	points := grid(4)
	tr := build(points)

	var got []int
	tr.WithinRadius(geom.Point3{X: 1, Y: 1, Z: 1}, 1, func(nb Neighbor) { got = append(got, nb.Slot) })
	// The centre and its six axis neighbours.
	assert.Len(t, got, 7)

	got = got[:0]
	tr.WithinRadius(geom.Point3{X: 1, Y: 1, Z: 1}, -1, func(nb Neighbor) { got = append(got, nb.Slot) })
	assert.Empty(t, got)
}

func TestTree_Duplicates(t *testing.T) {
	p := geom.Point3{X: 3, Y: 3, Z: 3}
	points := []geom.Point3{p, p, p, {X: 10}, p}
	tr := build(points)

	var got []int
	tr.WithinRadius(p, 0, func(nb Neighbor) { got = append(got, nb.Slot) })
	slices.Sort(got)
	assert.Equal(t, []int{0, 1, 2, 4}, got)

	nn := tr.KNearestNeighbors(geom.Point3{X: 10}, 1)
	require.Len(t, nn, 1)
	assert.Equal(t, 3, nn[0].Slot)
}

func TestTree_Empty(t *testing.T) {
	tr := NewTree(2)
	assert.True(t, tr.Sealed())
	assert.Nil(t, tr.KNearestNeighbors(geom.Point3{}, 3))
	tr.WithinRadius(geom.Point3{}, 5, func(Neighbor) { t.Fatal("unexpected visit") })
}

func depth(n *Node) int {
	d := 0
	for i := range n.children {
		d = max(d, depth(&n.children[i]))
	}
	return d + 1
}

func TestTree_ManyDuplicatesStayShallow(t *testing.T) {
	positions := make([]geom.Point3, 10)
	for i := range positions {
		positions[i] = geom.Point3{X: float64(i * 3), Y: float64(i % 4), Z: -float64(i)}
	}
	const n = 40_000
	points := make([]geom.Point3, n)
	for slot := range points {
		points[slot] = positions[slot%len(positions)]
	}
	tr := build(points)
	require.Equal(t, n, tr.Len())
	assert.LessOrEqual(t, depth(tr.root), len(positions))

	var got []int
	tr.WithinRadius(positions[3], 0, func(nb Neighbor) { got = append(got, nb.Slot) })
	require.Len(t, got, n/len(positions))
	for _, slot := range got {
		assert.Equal(t, 3, slot%len(positions))
	}

	nn := tr.KNearestNeighbors(positions[7], n/len(positions)+1)
	require.Len(t, nn, n/len(positions)+1)
	for _, nb := range nn[:n/len(positions)] {
		assert.Zero(t, nb.Distance)
		assert.Equal(t, 7, nb.Slot%len(positions))
	}
	assert.Positive(t, nn[len(nn)-1].Distance)
}
