package plan

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dupekeep/pkg/style"
	"github.com/dustin/go-humanize"
)

const (
	opRemove  = "rm"
	opLink    = "ln"
	opSymlink = "ln -s"
)

// Line is one previewed filesystem operation.
type Line struct {
	Op     string
	Target string // link target, empty for removals
	Path   string
}

// LinkTarget returns what the link replacing a discarded file points to.
// Symlinks get the absolute keeper path so they resolve from any directory.
func LinkTarget(mode Mode, keeper string) string {
	if mode != ModeSymlink {
		return keeper
	}
	abs, err := filepath.Abs(keeper)
	if err != nil {
		return keeper
	}
	return abs
}

// Lines expands the plan into its operations, in discarded-path order:
// a removal per entry, followed by the link creation for link modes.
func Lines(p *Plan, mode Mode) []Line {
	lines := make([]Line, 0, 2*len(p.Entries))
	for _, e := range p.Entries {
		lines = append(lines, Line{Op: opRemove, Path: e.Discarded})
		switch mode {
		case ModeHardlink:
			lines = append(lines, Line{Op: opLink, Target: LinkTarget(mode, e.Keeper), Path: e.Discarded})
		case ModeSymlink:
			lines = append(lines, Line{Op: opSymlink, Target: LinkTarget(mode, e.Keeper), Path: e.Discarded})
		}
	}
	return lines
}

// Render returns the plain, column-aligned preview of the plan.
func Render(p *Plan, mode Mode) []string {
	lines := Lines(p, mode)
	out := make([]string, len(lines))
	opWidth, targetWidth := widths(lines)
	for i, l := range lines {
		out[i] = format(l, opWidth, targetWidth, func(op string) string { return op })
	}
	return out
}

// Write prints the preview and a summary. Operations are coloured when format
// is FormatTerminal.
func Write(w io.Writer, p *Plan, mode Mode, f style.Format) error {
	lines := Lines(p, mode)
	opWidth, targetWidth := widths(lines)
	paint := func(op string) string { return op }
	if f == style.FormatTerminal {
		paint = func(op string) string {
			if strings.HasPrefix(op, opRemove) {
				return style.RemoveStyle.Render(op)
			}
			return style.LinkStyle.Render(op)
		}
	}

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, format(l, opWidth, targetWidth, paint)); err != nil {
			return err
		}
	}

	summary := Summary(p, mode)
	if f == style.FormatTerminal {
		summary = style.SummaryStyle.Render(summary)
	}
	_, err := fmt.Fprintf(w, "\n%s\n", summary)
	return err
}

// Summary describes the plan in one sentence.
func Summary(p *Plan, mode Mode) string {
	verb := "deleted"
	switch mode {
	case ModeHardlink:
		verb = "replaced by hardlinks"
	case ModeSymlink:
		verb = "replaced by symlinks"
	}
	return fmt.Sprintf("%d file(s) to be %s, keeping %d, reclaiming %s",
		p.Len(), verb, len(p.Keepers()), humanize.IBytes(uint64(p.ReclaimedBytes())))
}

func widths(lines []Line) (int, int) {
	opWidth, targetWidth := 0, 0
	for _, l := range lines {
		opWidth = max(opWidth, len(l.Op))
		targetWidth = max(targetWidth, len(l.Target))
	}
	return opWidth, targetWidth
}

func format(l Line, opWidth, targetWidth int, paint func(string) string) string {
	op := paint(l.Op) + strings.Repeat(" ", opWidth-len(l.Op))
	if targetWidth == 0 {
		return op + "  " + l.Path
	}
	return op + "  " + l.Target + strings.Repeat(" ", targetWidth-len(l.Target)) + "  " + l.Path
}
