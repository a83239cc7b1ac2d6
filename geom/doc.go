// Package geom defines the 3D primitives used across segknn: points (backed by
// github.com/golang/geo/r3 vectors), line segments, segment collections, and
// their BLOB encoding for SQLite storage.
package geom
