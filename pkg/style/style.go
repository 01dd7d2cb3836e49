// Package style holds terminal colours and the output format detection used
// by prompts and the action preview.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatText renders plain text output without any styling
	FormatText Format = iota
	// FormatTerminal renders terminal output with colours
	FormatTerminal
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTerminal:
		return "term"
	default:
		return "text"
	}
}

// DetectFormat determines whether output can take colours
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// Prompt and status colours. fatih/color disables itself when stdout is not a
// terminal or NO_COLOR is set.
var (
	Prompt  = color.New(color.FgCyan).SprintFunc()
	Heading = color.New(color.FgCyan, color.Bold).SprintFunc()
	Warn    = color.New(color.FgYellow).SprintFunc()
	Fail    = color.New(color.FgRed, color.Bold).SprintFunc()
	Ok      = color.New(color.FgGreen).SprintFunc()
	Muted   = color.New(color.FgHiBlack).SprintFunc()
)

// Colour definitions for the preview, adapting to light and dark terminals
var (
	RemoveColor = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	LinkColor   = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	MutedColor  = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
)

// Preview line styles
var (
	RemoveStyle  = lipgloss.NewStyle().Foreground(RemoveColor).Bold(true)
	LinkStyle    = lipgloss.NewStyle().Foreground(LinkColor).Bold(true)
	SummaryStyle = lipgloss.NewStyle().Foreground(MutedColor).Italic(true)
)
