package resolve

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/dupekeep/pkg/cluster"
	"github.com/arthur-debert/dupekeep/pkg/errors"
	"github.com/arthur-debert/dupekeep/pkg/prompt"
	"github.com/arthur-debert/dupekeep/pkg/style"
)

// StepBackToken is the literal the user types to revise the previous answer.
const StepBackToken = "!"

// Request describes the cluster a ChoiceSource is asked about.
type Request struct {
	Index   int
	Total   int
	Cluster cluster.Cluster
}

// Choice is the answer of a ChoiceSource: a member index or a step back.
type Choice struct {
	Member   int
	StepBack bool
}

// Keep returns a choice for the member at index i.
func Keep(i int) Choice {
	return Choice{Member: i}
}

// Back returns the step-back choice.
func Back() Choice {
	return Choice{StepBack: true}
}

// ChoiceSource supplies a keeper when precedent inference has no answer.
type ChoiceSource interface {
	Choose(req Request) (Choice, error)
}

// FirstMember always keeps the first member. It is the no-prompt mode.
type FirstMember struct{}

// Choose implements ChoiceSource
func (FirstMember) Choose(Request) (Choice, error) {
	return Keep(0), nil
}

// Interactive lists the members of a cluster and reads the user's answer.
// Invalid answers are reported and asked again; they never reach the caller.
type Interactive struct {
	reader prompt.LineReader
	out    io.Writer
}

// NewInteractive creates a prompting ChoiceSource.
func NewInteractive(reader prompt.LineReader, out io.Writer) *Interactive {
	return &Interactive{reader: reader, out: out}
}

// Choose implements ChoiceSource
func (s *Interactive) Choose(req Request) (Choice, error) {
	k := req.Cluster.Len()
	fmt.Fprintf(s.out, "\n%s %d bytes each:\n",
		style.Heading(fmt.Sprintf("[%d/%d]", req.Index+1, req.Total)), req.Cluster.Size)
	for i, p := range req.Cluster.Paths {
		fmt.Fprintf(s.out, "  %d) %s\n", i+1, p)
	}

	question := style.Prompt(fmt.Sprintf("Keep which file? [1-%d, %s to step back]: ", k, StepBackToken))
	for {
		line, err := s.reader.ReadLine(question)
		if err != nil {
			return Choice{}, errors.Wrap(err, errors.ErrAborted, "no answer for duplicate set")
		}
		choice, perr := ParseChoice(line, k)
		if perr != nil {
			fmt.Fprintf(s.out, "%s %s\n", style.Warn("Invalid choice:"), perr.Message)
			continue
		}
		return choice, nil
	}
}

// ParseChoice interprets an answer for a cluster of k members. Accepted are
// the step-back token and integers in [1, k]; the result is zero based.
func ParseChoice(line string, k int) (Choice, *errors.DupekeepError) {
	line = strings.TrimSpace(line)
	if line == StepBackToken {
		return Back(), nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return Choice{}, errors.Newf(errors.ErrInvalidUserInput,
			"%q is not a number between 1 and %d or %s", line, k, StepBackToken)
	}
	if n < 1 || n > k {
		return Choice{}, errors.Newf(errors.ErrInvalidUserInput,
			"%d is out of range 1-%d", n, k)
	}
	return Keep(n - 1), nil
}

// Scripted replays a fixed list of choices. It fails once the script runs out.
type Scripted struct {
	Choices  []Choice
	Requests []Request
}

// Choose implements ChoiceSource
func (s *Scripted) Choose(req Request) (Choice, error) {
	s.Requests = append(s.Requests, req)
	if len(s.Choices) == 0 {
		return Choice{}, errors.Newf(errors.ErrAborted, "script exhausted at cluster %d", req.Index)
	}
	c := s.Choices[0]
	s.Choices = s.Choices[1:]
	return c, nil
}
