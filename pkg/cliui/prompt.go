package cliui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPrompter asks yes/no questions on the terminal. It satisfies
// materialize.Prompter. Empty input defaults to no.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminalPrompter prompts on stdin/stderr. Prompts go to stderr so
// stdout stays clean for command output.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// Confirm prints the message and reads one line. Only "y"/"yes"
// (case-insensitive) confirm; anything else, including empty input, declines.
func (p *TerminalPrompter) Confirm(message string) (bool, error) {
	fmt.Fprintf(p.Out, "  %s %s [y/N] ", WarnMark, message)

	reader := bufio.NewReader(p.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		// EOF with nothing typed declines.
		if err == io.EOF {
			fmt.Fprintln(p.Out)
			return false, nil
		}
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// StdinIsTerminal reports whether stdin is attached to a terminal. Callers
// use it to pick a non-interactive default conflict policy under pipes and CI.
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
