package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads command lines and answers to prompts from one input.
// Passwords are read without echo when the input is a terminal.
type Prompter struct {
	scanner  *bufio.Scanner
	out      io.Writer
	fd       int
	terminal bool
}

// NewPrompter creates a prompter reading in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{scanner: bufio.NewScanner(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.terminal = true
	}
	return p
}

// Line prints label and reads one line. It reports false at end of input.
func (p *Prompter) Line(label string) (string, bool) {
	fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		return "", false
	}
	return strings.TrimRight(p.scanner.Text(), "\r"), true
}

// Password prints label and reads a secret.
func (p *Prompter) Password(label string) (string, bool) {
	if !p.terminal {
		return p.Line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Err returns the first non-EOF input error.
func (p *Prompter) Err() error {
	return p.scanner.Err()
}
