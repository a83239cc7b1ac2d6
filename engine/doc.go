// Package engine opens modernc.org/sqlite databases and registers the
// segment distance SQL functions (seg_shortest, seg_longest, seg_hausdorff,
// seg_distance) over 48-byte segment BLOBs.
package engine
