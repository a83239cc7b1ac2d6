// Package neighbor answers segment proximity queries against a segindex.
//
// Both searches use the query midpoint as a proxy point. KNearestNeighbors
// asks the point index for the 2K endpoints nearest the midpoint, widens the
// farthest of them by twice the query length and collects every segment with
// an endpoint inside that sphere. WithinRadius widens R the same way. The
// candidates are then ranked or filtered by the exact segment metric.
//
// The 2C widening covers candidates up to roughly three times the query
// length. Much longer segments whose interior passes close to the query while
// both endpoints stay far away can be missed.
package neighbor
