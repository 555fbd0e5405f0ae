package cli

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/ZacharyZcR/LAAPatch/internal/pe"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Prompter reads operator answers one line at a time.
type Prompter struct {
	in       *bufio.Reader
	reporter *Reporter
}

// NewPrompter creates a prompter reading from in.
func NewPrompter(in io.Reader, reporter *Reporter) *Prompter {
	return &Prompter{in: bufio.NewReader(in), reporter: reporter}
}

// Decide prompts until a line starts with y or n, case-insensitively.
// Any other line re-prompts. At end of input it returns Discard with the read error.
func (p *Prompter) Decide() (pe.Decision, error) {
	for {
		p.reporter.PrintPrompt()

		line, err := p.in.ReadString('\n')
		if d, ok := parseDecision(line); ok {
			return d, nil
		}
		if err != nil {
			return pe.Discard, err
		}
	}
}

// WaitForAck blocks until the operator enters a line or input ends.
func (p *Prompter) WaitForAck() {
	p.reporter.PrintAck()
	_, _ = p.in.ReadString('\n')
}

func parseDecision(line string) (pe.Decision, bool) {
	first, _ := utf8.DecodeRuneInString(cases.Lower(language.Und).String(line))
	switch first {
	case 'y':
		return pe.Apply, true
	case 'n':
		return pe.Discard, true
	default:
		return pe.Discard, false
	}
}
