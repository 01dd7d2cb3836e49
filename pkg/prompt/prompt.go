// Package prompt reads single lines of user input.
//
// On an interactive terminal input goes through readline so that line
// editing works; otherwise (pipes, tests) a buffered scanner is used.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
)

// ErrInterrupted is returned when the user presses Ctrl+C at a prompt.
var ErrInterrupted = errors.New("interrupted")

// LineReader reads one line of input after showing a prompt.
// The returned line has surrounding whitespace removed.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewLineReader returns a readline-backed reader when in is a terminal and a
// plain buffered reader otherwise.
func NewLineReader(in io.Reader, out io.Writer) (LineReader, error) {
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		rl, err := readline.NewEx(&readline.Config{
			Stdin:                  f,
			Stdout:                 out,
			InterruptPrompt:        "^C",
			EOFPrompt:              "",
			DisableAutoSaveHistory: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create readline: %w", err)
		}
		return &terminalReader{rl: rl}, nil
	}
	return NewScanner(in, out), nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type terminalReader struct {
	rl *readline.Instance
}

func (r *terminalReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", ErrInterrupted
		}
		return "", err
	}
	return strings.TrimSuffix(line, "\r"), nil
}

func (r *terminalReader) Close() error {
	return r.rl.Close()
}

// Scanner is a LineReader over any io.Reader. It echoes nothing but the prompt.
type Scanner struct {
	sc  *bufio.Scanner
	out io.Writer
}

// NewScanner creates a Scanner reading from in and writing prompts to out.
func NewScanner(in io.Reader, out io.Writer) *Scanner {
	return &Scanner{sc: bufio.NewScanner(in), out: out}
}

// ReadLine writes prompt and returns the next line as typed, or io.EOF when
// input ends.
func (s *Scanner) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(s.out, prompt)
	}
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(s.sc.Text(), "\r"), nil
}

// Close is a no-op; the underlying reader is owned by the caller.
func (s *Scanner) Close() error {
	return nil
}
