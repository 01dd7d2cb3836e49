package plan

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/prompt"
	"github.com/arthur-debert/dupekeep/pkg/style"
)

// Mode is the operation applied uniformly to every discarded file.
type Mode string

const (
	// ModeDelete removes discarded files
	ModeDelete Mode = "Delete"
	// ModeHardlink replaces discarded files with hardlinks to the keeper
	ModeHardlink Mode = "Hardlink"
	// ModeSymlink replaces discarded files with symbolic links to the keeper
	ModeSymlink Mode = "Symlink"
)

// Modes lists the accepted modes in prompt order.
var Modes = []Mode{ModeDelete, ModeHardlink, ModeSymlink}

// ParseMode accepts exactly one of the literal mode tokens.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if s == string(m) {
			return m, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidUserInput, "%q is not one of %s", s, modeList())
}

// Links reports whether the mode recreates the discarded path as a link.
func (m Mode) Links() bool {
	return m == ModeHardlink || m == ModeSymlink
}

func modeList() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// SelectMode asks until the user types one of the mode tokens.
func SelectMode(reader prompt.LineReader, out io.Writer) (Mode, error) {
	question := style.Prompt(fmt.Sprintf("How should duplicates be replaced? [%s]: ", modeList()))
	for {
		line, err := reader.ReadLine(question)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrAborted, "no mode selected")
		}
		m, perr := ParseMode(strings.TrimSpace(line))
		if perr != nil {
			fmt.Fprintf(out, "%s %v\n", style.Warn("Invalid mode:"), perr)
			continue
		}
		return m, nil
	}
}
