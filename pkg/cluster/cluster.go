package cluster

import (
	"path/filepath"
	"slices"
)

// Cluster is one set of duplicate files. Paths are unique and sorted.
type Cluster struct {
	Size  int64
	Paths []string
}

// New builds a cluster from raw member paths, deduplicating and sorting them.
// The second result is false when fewer than two distinct paths remain.
func New(size int64, paths []string) (Cluster, bool) {
	members := slices.Clone(paths)
	slices.Sort(members)
	members = slices.Compact(members)
	if len(members) < 2 {
		return Cluster{}, false
	}
	return Cluster{Size: size, Paths: members}, true
}

// Len returns the number of members
func (c Cluster) Len() int {
	return len(c.Paths)
}

// Dirs returns the directory of every member, in member order.
func (c Cluster) Dirs() []string {
	dirs := make([]string, len(c.Paths))
	for i, p := range c.Paths {
		dirs[i] = filepath.Dir(p)
	}
	return dirs
}

// Basenames returns the file name of every member, in member order.
func (c Cluster) Basenames() []string {
	names := make([]string, len(c.Paths))
	for i, p := range c.Paths {
		names[i] = filepath.Base(p)
	}
	return names
}

// IndexOf returns the position of path within the cluster, or -1.
func (c Cluster) IndexOf(path string) int {
	return slices.Index(c.Paths, path)
}

// Without returns the members other than keep, preserving order.
func (c Cluster) Without(keep string) []string {
	rest := make([]string, 0, len(c.Paths))
	for _, p := range c.Paths {
		if p != keep {
			rest = append(rest, p)
		}
	}
	return rest
}

// Compare orders clusters lexicographically by member paths, then by size.
func Compare(a, b Cluster) int {
	if c := slices.Compare(a.Paths, b.Paths); c != 0 {
		return c
	}
	switch {
	case a.Size < b.Size:
		return -1
	case a.Size > b.Size:
		return 1
	}
	return 0
}

// Sort orders clusters in place for deterministic traversal.
func Sort(clusters []Cluster) {
	slices.SortStableFunc(clusters, Compare)
}
