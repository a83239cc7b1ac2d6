// Package kdtree provides the default point index, a k-d tree built with
// gonum.org/v1/gonum/spatial/kdtree over slot-tagged 3D points.
package kdtree
