/*
File    : jlox/report/report.go
Package : report
*/

// Package report is jlox's diagnostic sink: it colorizes and writes
// lex, parse, and runtime errors to an io.Writer, the way the teacher's
// repl.Repl and main package color error output red and results yellow
// via github.com/fatih/color (spec.md §10.1).
package report

import (
	"io"

	"github.com/fatih/color"

	"github.com/lox-lang/jlox/lexer"
)

// Sink writes colorized diagnostics to an underlying writer.
type Sink struct {
	out io.Writer
	red *color.Color
}

// New creates a Sink that writes to out.
func New(out io.Writer) *Sink {
	return &Sink{out: out, red: color.New(color.FgRed)}
}

// LexErrors prints every collected lexer.Error, one per line, in the
// `[line N] Error: <message>` form (spec.md §6).
func (s *Sink) LexErrors(errs []lexer.Error) {
	for _, e := range errs {
		s.red.Fprintln(s.out, e.Error())
	}
}

// ParseError prints a fatal syntax error in its
// `[line N] Error<where>: <message>` form (spec.md §6).
func (s *Sink) ParseError(err error) {
	s.red.Fprintln(s.out, err.Error())
}

// RuntimeError prints a runtime fault in its
// `Error at: <lexeme> on line N: <message>` form (spec.md §6).
func (s *Sink) RuntimeError(err error) {
	s.red.Fprintln(s.out, err.Error())
}
