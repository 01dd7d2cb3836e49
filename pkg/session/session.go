// Package session runs one complete dupekeep pass: obtain clusters, resolve a
// keeper for each, preview the action plan and apply it after confirmation.
package session

import (
	"context"
	"fmt"
	"io"

	"github.com/arthur-debert/dupekeep/pkg/audit"
	"github.com/arthur-debert/dupekeep/pkg/cluster"
	"github.com/arthur-debert/dupekeep/pkg/detector"
	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/executor"
	"github.com/arthur-debert/dupekeep/pkg/filesystem"
	"github.com/arthur-debert/dupekeep/pkg/logging"
	"github.com/arthur-debert/dupekeep/pkg/plan"
	"github.com/arthur-debert/dupekeep/pkg/prompt"
	"github.com/arthur-debert/dupekeep/pkg/resolve"
	"github.com/arthur-debert/dupekeep/pkg/style"
)

// Status is how a session ended
type Status string

const (
	StatusNoDuplicates Status = "no-duplicates"
	StatusDryRun       Status = "dry-run"
	StatusAborted      Status = "aborted"
	StatusApplied      Status = "applied"
)

// Options configures a session run
type Options struct {
	Root            string
	MinSize         int64
	IgnoreBasenames bool
	// NoPrompt keeps the first member of every cluster not settled by
	// precedent. Mode selection and confirmation are still asked for.
	NoPrompt bool
	DryRun   bool

	Reader prompt.LineReader
	Out    io.Writer
	Format style.Format

	// Source yields detector output, usually wrapped in detector.Cached.
	Source detector.Source
	// Cache is invalidated after a confirmed apply pass; may be nil.
	Cache executor.Invalidator
	FS    filesystem.FS
	// Journal records applied plans; nil disables auditing.
	Journal *audit.Journal
}

// Outcome summarises a finished session
type Outcome struct {
	Status      Status
	Clusters    int
	Prompted    int
	Inferred    int
	Plan        *plan.Plan
	Mode        plan.Mode
	Result      *executor.Result
	JournalPath string
}

// Run executes a session. A non-nil Outcome is returned alongside apply
// failures so callers can report what did succeed.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	logger := logging.GetLogger("session")
	done := logging.LogOperationStart(logger, "session")
	defer done()

	if opts.Reader == nil || opts.Out == nil || opts.Source == nil {
		return nil, errors.New(errors.ErrInternal, "session requires a reader, an output and a source")
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}

	raw, err := opts.Source.Output(ctx, opts.Root)
	if err != nil {
		return nil, err
	}
	clusters, err := cluster.Parse(raw, opts.MinSize)
	if err != nil {
		// A cached copy that no longer parses would fail every later run too.
		if opts.Cache != nil {
			if ierr := opts.Cache.Invalidate(); ierr != nil {
				logger.Warn().Err(ierr).Msg("Failed to invalidate duplicate cache")
			}
		}
		return nil, err
	}
	outcome := &Outcome{Clusters: len(clusters)}
	logger.Info().Int("clusters", len(clusters)).Str("root", opts.Root).Msg("clusters loaded")

	if len(clusters) == 0 {
		outcome.Status = StatusNoDuplicates
		fmt.Fprintln(opts.Out, style.Ok(MsgNoDuplicates))
		return outcome, nil
	}

	var source resolve.ChoiceSource = resolve.NewInteractive(opts.Reader, opts.Out)
	if opts.NoPrompt {
		source = resolve.FirstMember{}
	}
	traversal := resolve.NewTraversal(clusters, source, resolve.Options{IgnoreBasenames: opts.IgnoreBasenames})
	choices, err := traversal.Run(ctx)
	outcome.Prompted, outcome.Inferred = traversal.Prompted, traversal.Inferred
	if err != nil {
		return outcome, err
	}

	p, err := plan.Build(clusters, choices)
	if err != nil {
		return outcome, err
	}
	outcome.Plan = p

	mode, err := plan.SelectMode(opts.Reader, opts.Out)
	if err != nil {
		return outcome, err
	}
	outcome.Mode = mode

	fmt.Fprintf(opts.Out, "\n%s\n\n", style.Heading(MsgPreviewHeading))
	if err := plan.Write(opts.Out, p, mode, opts.Format); err != nil {
		return outcome, errors.Wrap(err, errors.ErrInternal, "cannot write preview")
	}
	fmt.Fprintln(opts.Out)

	if opts.DryRun {
		outcome.Status = StatusDryRun
		fmt.Fprintln(opts.Out, style.Muted(MsgDryRun))
		return outcome, nil
	}

	confirmed, err := executor.Confirm(opts.Reader, opts.Out)
	if err != nil {
		return outcome, err
	}
	if !confirmed {
		outcome.Status = StatusAborted
		logger.Info().Msg("plan not confirmed")
		return outcome, nil
	}

	exec := executor.New(executor.Options{FS: opts.FS, Cache: opts.Cache})
	result, execErr := exec.Execute(p, mode)
	outcome.Status = StatusApplied
	outcome.Result = result

	if opts.Journal != nil && result != nil {
		path, err := opts.Journal.Write(audit.NewRecord(opts.Root, result))
		if err != nil {
			logger.Warn().Err(err).Msg("cannot write audit journal")
		} else {
			outcome.JournalPath = path
		}
	}

	report(opts.Out, result)
	return outcome, execErr
}

func report(out io.Writer, result *executor.Result) {
	if result == nil {
		return
	}
	for _, f := range result.Failures() {
		fmt.Fprintf(out, "%s %s: %v\n", style.Fail(MsgFailed), f.Entry.Discarded, f.Error)
	}
	fmt.Fprintln(out, style.Ok(fmt.Sprintf(MsgApplied, result.Succeeded(), len(result.Entries))))
}
