// Package vptree provides a vantage-point tree point index. Each node splits
// its remaining points at the median distance to the vantage point, and the
// triangle inequality prunes both kNN and radius searches.
package vptree
