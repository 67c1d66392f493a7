// Package confirmations provides console implementations of yes/no prompts.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/srcmake/srcmake/pkg/errors"
)

// ConsoleDialog asks questions on a terminal. Answers other than "y" or
// "yes" (case-insensitive) count as no, so a bare Enter declines.
type ConsoleDialog struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleDialog creates a dialog reading from in and writing prompts to
// out. Nil arguments select os.Stdin and os.Stderr.
func NewConsoleDialog(in io.Reader, out io.Writer) *ConsoleDialog {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleDialog{in: bufio.NewReader(in), out: out}
}

// Confirm prints question followed by a [y/N] marker and reads one line.
// End of input before any answer is treated as no.
func (d *ConsoleDialog) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(d.out, "%s [y/N]: ", question); err != nil {
		return false, errors.Wrap(err, errors.ErrInternal, "failed to write prompt")
	}

	line, err := d.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, errors.ErrCancelled, "failed to read user input")
	}
	if err == io.EOF && line == "" {
		_, _ = fmt.Fprintln(d.out)
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Static answers every question the same way without asking. It backs
// --yes style flags and non-interactive runs.
type Static bool

// Confirm returns the fixed answer.
func (s Static) Confirm(string) (bool, error) {
	return bool(s), nil
}
