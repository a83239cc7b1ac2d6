// Package bruteforce provides a point index that answers kNN and radius
// queries by scanning every point. It is the reference implementation the
// tree-based indexes are checked against and is adequate for small sets.
package bruteforce
