package executor

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dupekeep/pkg/prompt"
	"github.com/arthur-debert/dupekeep/pkg/style"
)

// ConfirmationPhrase must be typed verbatim before any file is changed.
const ConfirmationPhrase = "yes, I am sure"

// Confirm asks for the confirmation phrase once. The answer must match it
// exactly, surrounding blanks included. Any other answer, including
// end of input, prints an abort notice and returns false.
func Confirm(reader prompt.LineReader, out io.Writer) (bool, error) {
	question := style.Prompt(fmt.Sprintf("Type %q to apply these changes: ", ConfirmationPhrase))
	line, err := reader.ReadLine(question)
	if err != nil && err != io.EOF && err != prompt.ErrInterrupted {
		return false, err
	}
	if err == nil && line == ConfirmationPhrase {
		return true, nil
	}
	fmt.Fprintln(out, style.Warn("Aborted, no files were changed."))
	return false, nil
}
