package resolve

import (
	"context"

	"github.com/arthur-debert/dupekeep/pkg/cluster"
	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/logging"
	"github.com/arthur-debert/dupekeep/pkg/precedent"
	"github.com/rs/zerolog"
)

// Options tune precedent inference during a traversal.
type Options struct {
	IgnoreBasenames bool
}

// Traversal resolves a keeper for every cluster.
type Traversal struct {
	clusters []cluster.Cluster
	source   ChoiceSource
	opts     Options
	state    *State
	logger   zerolog.Logger

	// Prompted counts answers taken from the source, Inferred counts
	// positions resolved by precedent. Both include revisited positions.
	Prompted int
	Inferred int
}

// NewTraversal creates a traversal over clusters, which must already be in
// their deterministic order.
func NewTraversal(clusters []cluster.Cluster, source ChoiceSource, opts Options) *Traversal {
	return &Traversal{
		clusters: clusters,
		source:   source,
		opts:     opts,
		state:    NewState(len(clusters)),
		logger:   logging.GetLogger("resolve"),
	}
}

// State exposes the traversal state
func (t *Traversal) State() *State {
	return t.state
}

// Step performs one transition and reports whether the traversal is done.
func (t *Traversal) Step() (bool, error) {
	s := t.state
	if s.Done() {
		return true, nil
	}
	i := s.Pos
	c := t.clusters[i]

	if m, ok := precedent.Infer(t.clusters, s.Choices, i, t.opts.IgnoreBasenames); ok {
		keeper := c.Paths[m.Member]
		t.logger.Debug().
			Int("cluster", i).
			Int("precedent", m.Precedent).
			Str("keeper", keeper).
			Msg("Keeper inferred from precedent")
		s.Commit(keeper, true)
		t.Inferred++
		return s.Done(), nil
	}

	choice, err := t.source.Choose(Request{Index: i, Total: len(t.clusters), Cluster: c})
	if err != nil {
		return false, err
	}
	t.Prompted++

	if choice.StepBack {
		to := s.StepBack()
		t.logger.Debug().Int("from", i).Int("to", to).Msg("Stepped back")
		return false, nil
	}

	if choice.Member < 0 || choice.Member >= c.Len() {
		return false, errors.Newf(errors.ErrInvalidUserInput,
			"member %d out of range for cluster %d", choice.Member, i).
			WithDetail("cluster", i)
	}
	keeper := c.Paths[choice.Member]
	t.logger.Debug().Int("cluster", i).Str("keeper", keeper).Msg("Keeper chosen")
	s.Commit(keeper, false)
	return s.Done(), nil
}

// Run steps until every cluster is resolved and returns the choice table.
func (t *Traversal) Run(ctx context.Context) (ChoiceTable, error) {
	done := logging.LogOperationStart(t.logger, "resolve")
	defer done()

	for !t.state.Done() {
		if err := ctx.Err(); err != nil {
			return ChoiceTable{}, errors.Wrap(err, errors.ErrAborted, "resolution cancelled")
		}
		if _, err := t.Step(); err != nil {
			return ChoiceTable{}, err
		}
	}

	t.logger.Info().
		Int("clusters", len(t.clusters)).
		Int("prompted", t.Prompted).
		Int("inferred", t.Inferred).
		Msg("All duplicate sets resolved")
	return t.state.Choices, nil
}
