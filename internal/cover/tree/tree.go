package tree

import (
	"container/heap"
	"sort"

	"github.com/viant/segknn/geom"
)

// DefaultBase is the level expansion base used when NewTree gets base <= 1.
const DefaultBase = 1.3

// Tree is a cover tree for Euclidean kNN and radius queries. Points are
// inserted one at a time; Seal must be called once all points are in and
// before the first query. A sealed tree is read-only and safe for concurrent
// queries.
type Tree struct {
	root   *Node
	base   float64
	count  int
	sealed bool
}

// NewTree constructs an empty cover tree with the provided base.
func NewTree(base float64) *Tree {
	if base <= 1 {
		base = DefaultBase
	}
	return &Tree{base: base}
}

// Len returns the number of inserted points.
func (t *Tree) Len() int { return t.count }

// Insert adds the point stored at slot.
func (t *Tree) Insert(slot int, point geom.Point3) {
	t.count++
	t.sealed = false
	if t.root == nil {
		node := NewNode(slot, point, 0)
		t.root = &node
		return
	}
	// Promote the root until it covers the new point.
	for point.Distance(t.root.point) > coverDistance(t.base, t.root.level) {
		t.root.level++
	}
	node := t.root
	for {
		if point == node.point {
			node.dups = append(node.dups, slot)
			return
		}
		var next *Node
		for i := range node.children {
			child := &node.children[i]
			if point.Distance(child.point) <= coverDistance(t.base, child.level) {
				next = child
				break
			}
		}
		if next == nil {
			node.children = append(node.children, NewNode(slot, point, node.level-1))
			return
		}
		node = next
	}
}

// Seal computes per-node subtree radii used to prune searches.
func (t *Tree) Seal() {
	if t.root != nil {
		t.computeRadius(t.root)
	}
	t.sealed = true
}

// Sealed reports whether the tree is ready for queries.
func (t *Tree) Sealed() bool { return t.sealed || t.root == nil }

func (t *Tree) computeRadius(n *Node) float64 {
	maxR := 0.0
	for i := range n.children {
		child := &n.children[i]
		if d := n.point.Distance(child.point) + t.computeRadius(child); d > maxR {
			maxR = d
		}
	}
	n.radius = maxR
	return maxR
}

// KNearestNeighbors runs a depth-first kNN search and returns up to k
// neighbors ordered by ascending distance.
func (t *Tree) KNearestNeighbors(point geom.Point3, k int) []Neighbor {
	if t.root == nil || k <= 0 {
		return nil
	}
	h := &Neighbors{}
	heap.Init(h)
	t.kNearestNeighbors(t.root, point.Distance(t.root.point), point, k, h)
	result := make([]Neighbor, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(h).(Neighbor)
	}
	return result
}

func (t *Tree) kNearestNeighbors(node *Node, dc float64, point geom.Point3, k int, h *Neighbors) {
	h.offer(Neighbor{Slot: node.slot, Distance: dc}, k)
	for _, slot := range node.dups {
		h.offer(Neighbor{Slot: slot, Distance: dc}, k)
	}
	if len(node.children) == 0 {
		return
	}
	type childDist struct {
		child *Node
		dist  float64
	}
	cds := make([]childDist, 0, len(node.children))
	for i := range node.children {
		child := &node.children[i]
		cds = append(cds, childDist{child: child, dist: point.Distance(child.point)})
	}
	sort.Slice(cds, func(i, j int) bool { return cds[i].dist < cds[j].dist })
	for _, cd := range cds {
		if h.Len() == k && cd.dist-cd.child.radius >= (*h)[0].Distance {
			continue
		}
		t.kNearestNeighbors(cd.child, cd.dist, point, k, h)
	}
}

// WithinRadius calls visit for every point within radius of point (inclusive).
func (t *Tree) WithinRadius(point geom.Point3, radius float64, visit func(Neighbor)) {
	if t.root == nil || radius < 0 {
		return
	}
	t.withinRadius(t.root, point.Distance(t.root.point), point, radius, visit)
}

func (t *Tree) withinRadius(node *Node, dc float64, point geom.Point3, radius float64, visit func(Neighbor)) {
	if dc <= radius {
		visit(Neighbor{Slot: node.slot, Distance: dc})
		for _, slot := range node.dups {
			visit(Neighbor{Slot: slot, Distance: dc})
		}
	}
	for i := range node.children {
		child := &node.children[i]
		d := point.Distance(child.point)
		if d-child.radius > radius {
			continue
		}
		t.withinRadius(child, d, point, radius, visit)
	}
}
