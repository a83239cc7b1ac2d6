package tree

import (
	"math"

	"github.com/viant/segknn/geom"
)

// Node represents a cover-tree node.
type Node struct {
	level    int32
	point    geom.Point3
	slot     int
	// dups holds the slots of further points identical to point.
	dups     []int
	children []Node
	// radius bounds the distance from point to any descendant; set by Seal.
	radius float64
}

// NewNode constructs a node for the provided point and level.
func NewNode(slot int, point geom.Point3, level int32) Node {
	return Node{level: level, point: point, slot: slot}
}

// coverDistance returns base^level.
func coverDistance(base float64, level int32) float64 {
	return math.Pow(base, float64(level))
}
