package plan

import (
	"slices"
	"strings"

	"github.com/arthur-debert/dupekeep/pkg/cluster"
	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/precedent"
)

// Entry pairs a discarded file with the keeper that replaces it.
type Entry struct {
	Discarded string `yaml:"discarded"`
	Keeper    string `yaml:"keeper"`
	Size      int64  `yaml:"size"`
}

// Plan is the complete set of discarded files, sorted by discarded path.
type Plan struct {
	Entries []Entry
}

// Len returns the number of entries
func (p *Plan) Len() int {
	return len(p.Entries)
}

// Keepers returns the distinct keepers referenced by the plan, sorted.
func (p *Plan) Keepers() []string {
	out := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		out = append(out, e.Keeper)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// ReclaimedBytes is the size of all discarded files together.
func (p *Plan) ReclaimedBytes() int64 {
	var total int64
	for _, e := range p.Entries {
		total += e.Size
	}
	return total
}

// Build creates the plan from a fully resolved choice table.
//
// Every member of a cluster other than its keeper becomes an entry. An
// unresolved index, a keeper outside its cluster, or a path that would be
// discarded twice (or discarded while kept elsewhere) fails the build; a plan
// is never returned partially.
func Build(clusters []cluster.Cluster, choices precedent.Choices) (*Plan, error) {
	keepers := make([]string, len(clusters))
	kept := make(map[string]bool, len(clusters))
	for i, c := range clusters {
		keeper, ok := choices.Keeper(i)
		if !ok {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"duplicate set %d has no keeper", i+1).WithDetail("cluster", i)
		}
		if c.IndexOf(keeper) < 0 {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"keeper %q is not a member of duplicate set %d", keeper, i+1).WithDetail("cluster", i)
		}
		keepers[i] = keeper
		kept[keeper] = true
	}

	seen := make(map[string]bool)
	var entries []Entry
	for i, c := range clusters {
		for _, p := range c.Without(keepers[i]) {
			if seen[p] || kept[p] {
				return nil, errors.Newf(errors.ErrPlanConflict,
					"%q appears in more than one duplicate set", p).WithDetail("path", p)
			}
			seen[p] = true
			entries = append(entries, Entry{Discarded: p, Keeper: keepers[i], Size: c.Size})
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Discarded, b.Discarded)
	})
	return &Plan{Entries: entries}, nil
}
