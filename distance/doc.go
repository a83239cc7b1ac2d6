// Package distance implements segment-to-segment distance metrics: the
// closest-point (Shortest) distance, the farthest-endpoint (Longest) distance,
// and a sampled symmetric Hausdorff distance. Metric selection is a pure
// dispatch on the Metric tag.
package distance
