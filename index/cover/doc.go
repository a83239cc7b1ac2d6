// Package cover provides a point index backed by the cover tree in
// internal/cover/tree. Subtree radii are computed once at build so queries
// are read-only.
package cover
