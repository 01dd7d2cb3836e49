// Package detector obtains duplicate clusters in text form from an external
// duplicate finder (fdupes by default) and reuses cached output when present.
package detector

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultCommand finds duplicates recursively and prints block sizes.
var DefaultCommand = []string{"fdupes", "--recurse", "--size"}

// Source yields detector output for a directory tree.
type Source interface {
	Output(ctx context.Context, root string) (string, error)
}

// Command runs an external detector with the root appended to its arguments.
type Command struct {
	argv   []string
	logger zerolog.Logger
}

// NewCommand creates a Command. An empty argv uses DefaultCommand.
func NewCommand(argv []string) *Command {
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	return &Command{argv: argv, logger: logging.GetLogger("detector")}
}

// Output implements Source
func (c *Command) Output(ctx context.Context, root string) (string, error) {
	args := append(append([]string{}, c.argv[1:]...), root)
	logging.LogCommand(c.logger, c.argv[0], args)

	cmd := exec.CommandContext(ctx, c.argv[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrDetector, "%s failed", c.argv[0]).
			WithDetail("command", strings.Join(append([]string{c.argv[0]}, args...), " ")).
			WithDetail("stderr", strings.TrimSpace(stderr.String()))
	}
	return string(out), nil
}

// Cache is the scratch storage used by Cached.
type Cache interface {
	Load() (string, bool, error)
	Store(raw string)
}

// Cached serves output from the cache when present and fills it otherwise.
type Cached struct {
	Source Source
	Cache  Cache
}

// Output implements Source
func (c *Cached) Output(ctx context.Context, root string) (string, error) {
	raw, ok, err := c.Cache.Load()
	if err != nil {
		return "", err
	}
	if ok {
		return raw, nil
	}
	raw, err = c.Source.Output(ctx, root)
	if err != nil {
		return "", err
	}
	c.Cache.Store(raw)
	return raw, nil
}
