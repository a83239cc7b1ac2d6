// Package index defines the point-index contract the segment search is built
// against: build over 3D points, k-nearest point slots, all slots within a
// radius, and release. Implementations live in the subpackages (kdtree,
// cover, vptree, bruteforce) and can be swapped freely.
package index
