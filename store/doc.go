// Package store persists segment collections in SQLite. A segment's id is its
// position in the collection, so Load returns exactly the collection that
// segindex.Build expects.
package store
