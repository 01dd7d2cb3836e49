// Package cluster holds the normalized representation of duplicate sets.
//
// A Cluster is an ordered, immutable group of at least two distinct paths
// whose files share one byte size. Parse turns the block output of the
// upstream duplicate detector into a deterministic, sorted []Cluster so that
// the same input always yields the same traversal order.
package cluster
