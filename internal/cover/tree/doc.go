// Package tree implements a cover tree over 3D points with Euclidean distance.
//
// This implementation is adapted from github.com/viant/gds/tree/cover.
package tree
