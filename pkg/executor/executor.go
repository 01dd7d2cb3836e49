package executor

import (
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/filesystem"
	"github.com/arthur-debert/dupekeep/pkg/logging"
	"github.com/arthur-debert/dupekeep/pkg/plan"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Invalidator drops cached detector output once files have changed.
type Invalidator interface {
	Invalidate() error
}

// Options contains configuration for the executor
type Options struct {
	// Logger defaults to the "executor" component logger
	Logger *zerolog.Logger
	// Filesystem operations interface for testing
	FS filesystem.FS
	// Cache is invalidated after an apply pass; may be nil
	Cache Invalidator
}

// Executor applies plan entries to the filesystem
type Executor struct {
	logger zerolog.Logger
	fs     filesystem.FS
	cache  Invalidator
}

// EntryResult is the outcome of one plan entry
type EntryResult struct {
	Entry    plan.Entry
	Error    error
	Duration time.Duration
}

// Result collects the outcome of one apply pass
type Result struct {
	Mode    plan.Mode
	Entries []EntryResult
}

// Succeeded returns the number of entries applied without error
func (r *Result) Succeeded() int {
	n := 0
	for _, e := range r.Entries {
		if e.Error == nil {
			n++
		}
	}
	return n
}

// Failures returns the entries that could not be applied
func (r *Result) Failures() []EntryResult {
	var out []EntryResult
	for _, e := range r.Entries {
		if e.Error != nil {
			out = append(out, e)
		}
	}
	return out
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	return &Executor{
		logger: logger,
		fs:     fs,
		cache:  opts.Cache,
	}
}

// Execute applies every entry of p in the given mode. It returns the per-entry
// results and, when any entry failed, an ErrExecution error aggregating them.
// The cache is invalidated afterwards even if some entries failed, since the
// tree no longer matches the cached detector output.
func (e *Executor) Execute(p *plan.Plan, mode plan.Mode) (*Result, error) {
	done := logging.LogOperationStart(e.logger, "execute")
	defer done()

	result := &Result{Mode: mode, Entries: make([]EntryResult, 0, p.Len())}
	var failures errors.ExecutionErrors

	for _, entry := range p.Entries {
		start := time.Now()
		err := e.apply(entry, mode)
		result.Entries = append(result.Entries, EntryResult{
			Entry:    entry,
			Error:    err,
			Duration: time.Since(start),
		})
		if err != nil {
			e.logger.Error().Err(err).Str("path", entry.Discarded).Msg("Failed to replace duplicate")
			failures.Add(err)
			continue
		}
		e.logger.Debug().
			Str("mode", string(mode)).
			Str("path", entry.Discarded).
			Str("keeper", entry.Keeper).
			Msg("Duplicate replaced")
	}

	if e.cache != nil {
		if err := e.cache.Invalidate(); err != nil {
			e.logger.Warn().Err(err).Msg("Failed to invalidate duplicate cache")
		}
	}

	e.logger.Info().
		Str("mode", string(mode)).
		Int("applied", result.Succeeded()).
		Int("failed", failures.Len()).
		Msg("Apply pass finished")
	return result, failures.ErrOrNil()
}

func (e *Executor) apply(entry plan.Entry, mode plan.Mode) error {
	fail := func(err error, msg string) error {
		return errors.Wrap(err, errors.ErrExecution, msg).
			WithDetail("path", entry.Discarded).
			WithDetail("keeper", entry.Keeper).
			WithDetail("mode", string(mode))
	}

	// Never drop a copy unless the one we keep is still there.
	keeperInfo, err := e.fs.Lstat(entry.Keeper)
	if err != nil {
		return fail(err, "keeper "+entry.Keeper+" is not accessible")
	}

	switch mode {
	case plan.ModeDelete:
		if err := e.fs.Remove(entry.Discarded); err != nil {
			return fail(err, "cannot remove "+entry.Discarded)
		}
		return nil
	case plan.ModeHardlink, plan.ModeSymlink:
		discardedInfo, err := e.fs.Lstat(entry.Discarded)
		if err != nil {
			return fail(err, "cannot replace "+entry.Discarded)
		}
		// rename(2) is a no-op when both names already point at one inode,
		// which would strand the temporary link next to the duplicate.
		if mode == plan.ModeHardlink && os.SameFile(keeperInfo, discardedInfo) {
			e.logger.Debug().
				Str("path", entry.Discarded).
				Str("keeper", entry.Keeper).
				Msg("Already hard linked to keeper")
			return nil
		}
		tmp := tempSibling(entry.Discarded)
		if mode == plan.ModeHardlink {
			err = e.fs.Link(entry.Keeper, tmp)
		} else {
			err = e.fs.Symlink(plan.LinkTarget(mode, entry.Keeper), tmp)
		}
		if err != nil {
			return fail(err, "cannot link "+entry.Discarded)
		}
		if err := e.fs.Rename(tmp, entry.Discarded); err != nil {
			_ = e.fs.Remove(tmp)
			return fail(err, "cannot replace "+entry.Discarded)
		}
		if _, err := e.fs.Lstat(tmp); err == nil {
			_ = e.fs.Remove(tmp)
		}
		return nil
	default:
		return fail(os.ErrInvalid, "unknown mode "+string(mode))
	}
}

// tempSibling returns an unused-looking name next to path, on the same
// device so that rename stays atomic.
func tempSibling(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+".dupekeep-"+uuid.NewString()[:8])
}
