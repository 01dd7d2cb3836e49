// Package precedent infers the keeper of a duplicate cluster from earlier
// decisions, so that a user keeping "the copy under X" in one cluster is not
// asked again for every parallel cluster of a mirrored tree.
package precedent

import (
	"path/filepath"

	"github.com/arthur-debert/dupekeep/pkg/cluster"
)

// Choices exposes the keeper recorded for a cluster index, if any.
type Choices interface {
	Keeper(index int) (string, bool)
}

// Match describes a successful inference.
type Match struct {
	// Member is the index of the inferred keeper within the current cluster
	Member int
	// Precedent is the cluster index whose decision was reused
	Precedent int
}

// InferKeeper returns the member of clusters[current] that the user would keep
// according to the earliest compatible precedent, or false when the cluster
// has to be resolved by asking.
func InferKeeper(clusters []cluster.Cluster, choices Choices, current int, ignoreBasenames bool) (int, bool) {
	m, ok := Infer(clusters, choices, current, ignoreBasenames)
	return m.Member, ok
}

// Infer is InferKeeper reporting which precedent fired.
//
// A resolved cluster j != current is a precedent for current when every
// directory of current also appears among j's directories and, unless
// ignoreBasenames is set, all members of current share one file name. The
// keeper directory of the first such precedent (lowest index) selects the
// first member of current located in that directory. Precedents whose keeper
// directory is not among current's directories are skipped.
func Infer(clusters []cluster.Cluster, choices Choices, current int, ignoreBasenames bool) (Match, bool) {
	if current < 0 || current >= len(clusters) {
		return Match{}, false
	}
	cur := clusters[current]
	dirs := cur.Dirs()

	if !ignoreBasenames && !uniformBasenames(cur.Basenames()) {
		return Match{}, false
	}

	curDirs := toSet(dirs)
	for j := range clusters {
		if j == current {
			continue
		}
		keeper, ok := choices.Keeper(j)
		if !ok {
			continue
		}
		if !isSubset(curDirs, toSet(clusters[j].Dirs())) {
			continue
		}
		keepDir := filepath.Dir(keeper)
		for member, d := range dirs {
			if d == keepDir {
				return Match{Member: member, Precedent: j}, true
			}
		}
	}
	return Match{}, false
}

// uniformBasenames reports whether the most frequent name accounts for every
// member. The representative is the first name reaching the top count.
func uniformBasenames(names []string) bool {
	if len(names) == 0 {
		return false
	}
	counts := make(map[string]int, len(names))
	best := 0
	for _, n := range names {
		counts[n]++
		if counts[n] > best {
			best = counts[n]
		}
	}
	return best == len(names)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func isSubset(sub, super map[string]struct{}) bool {
	for k := range sub {
		if _, ok := super[k]; !ok {
			return false
		}
	}
	return true
}
