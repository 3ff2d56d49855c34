package prompt

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/ducminhle1904/freqtrade-launcher/internal/console"
	lerrors "github.com/ducminhle1904/freqtrade-launcher/internal/errors"
)

// ErrInputClosed is returned when operator input ends before a valid answer
var ErrInputClosed = lerrors.NewFatalError("prompt", "read", "operator input closed")

// Prompter reads line-oriented operator input and writes prompts to a console
type Prompter struct {
	in  *bufio.Reader
	con *console.Console

	// OnReject is called with the question field each time an answer is rejected
	OnReject func(field string)
}

// New creates a prompter reading from in
func New(in io.Reader, con *console.Console) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		con: con,
	}
}

// Console returns the console the prompter writes to
func (p *Prompter) Console() *console.Console {
	return p.con
}

// ReadLine reads one line and trims surrounding whitespace.
// A final unterminated line is returned before ErrInputClosed.
func (p *Prompter) ReadLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", lerrors.Fatal(err, "prompt", "read", "failed to read operator input")
	}
	return strings.TrimSpace(line), nil
}

// Rejected reports a rejected answer for field to the OnReject hook
func (p *Prompter) Rejected(field string) {
	if p.OnReject != nil {
		p.OnReject(field)
	}
}

// Question describes one validated prompt
type Question[T any] struct {
	// Field names the parameter being asked for
	Field string
	// Instruction is printed as an action line before each attempt
	Instruction string
	// Hints are printed as warning lines after the instruction
	Hints []string
	// Inline is printed without a newline right before reading input
	Inline string
	// Lower lowercases input before validation
	Lower bool
	// Valid is the acceptance predicate; empty input never reaches it
	Valid func(string) bool
	// Convert maps accepted input to the typed value
	Convert func(string) T
	// Invalid is printed as an error line when input is rejected
	Invalid string
}

// Ask repeats q until the operator enters an accepted answer.
// There is no retry limit.
func Ask[T any](p *Prompter, q Question[T]) (T, error) {
	var zero T
	for {
		if q.Instruction != "" {
			p.con.Action("%s", q.Instruction)
		}
		for _, h := range q.Hints {
			p.con.Warning("%s", h)
		}
		if q.Inline != "" {
			p.con.Inline("%s", q.Inline)
		}

		answer, err := p.ReadLine()
		if err != nil {
			return zero, err
		}
		if q.Lower {
			answer = strings.ToLower(answer)
		}

		if answer != "" && q.Valid(answer) {
			return q.Convert(answer), nil
		}

		p.Rejected(q.Field)
		p.con.Error("%s", q.Invalid)
	}
}

// Identity returns input unchanged
func Identity(s string) string { return s }
