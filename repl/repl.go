/*
File    : jlox/repl/repl.go
Package : repl
*/

// Package repl implements jlox's interactive Read-Eval-Print Loop,
// adapted from the teacher's repl.Repl: readline-backed line editing
// and history, a colorized banner, and per-line parse/runtime error
// recovery that leaves the loop running (spec.md §6, §10.1).
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/lox-lang/jlox/interpreter"
	"github.com/lox-lang/jlox/lexer"
	"github.com/lox-lang/jlox/parser"
	"github.com/lox-lang/jlox/report"
)

var (
	blueColor  = color.New(color.FgBlue)
	greenColor = color.New(color.FgGreen)
	cyanColor  = color.New(color.FgCyan)
)

const banner = `     _ _
    (_) |
     _| | _____  __
    | | |/ _ \ \/ /
    | | | (_) >  <
    |_|_|\___/_/\_\
`

const separator = "----------------------------------------------------------------"

// Repl is a configured interactive session.
type Repl struct {
	Version string
	Prompt  string
}

// New creates a Repl with the given version string and prompt.
func New(version, prompt string) *Repl {
	return &Repl{Version: version, Prompt: prompt}
}

func (r *Repl) printBanner(out io.Writer) {
	blueColor.Fprintf(out, "%s\n", separator)
	greenColor.Fprintf(out, "%s\n", banner)
	blueColor.Fprintf(out, "%s\n", separator)
	cyanColor.Fprintf(out, "jlox %s — a tree-walking Lox interpreter\n", r.Version)
	cyanColor.Fprintln(out, "Type Lox statements and press enter. Type .exit to quit.")
	blueColor.Fprintf(out, "%s\n", separator)
}

// Start runs the REPL loop against reader/writer until the user quits
// (`.exit` or EOF). One Interpreter and its global Environment persist
// across every line, so a `var`/`fun` declared on one line is visible
// on the next.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.printBanner(writer)

	rl, err := readline.NewEx(&readline.Config{
		Prompt: r.Prompt,
		Stdin:  io.NopCloser(reader),
		Stdout: writer,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	interp := interpreter.New(writer)
	sink := report.New(writer)

	for {
		input, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Goodbye.\n"))
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == ".exit" {
			writer.Write([]byte("Goodbye.\n"))
			return
		}
		rl.SaveHistory(input)

		r.evalLine(input, interp, sink)
	}
}

// evalLine lexes, parses, and interprets one REPL-submitted line,
// reporting (but not aborting on) any error so the loop keeps running —
// unlike file mode, a bad line never ends the session.
func (r *Repl) evalLine(input string, interp *interpreter.Interpreter, sink *report.Sink) {
	lex := lexer.New(input, nil)
	tokens := lex.ScanTokens()
	if lex.HasErrors() {
		sink.LexErrors(lex.Errors())
		return
	}

	stmts, err := parser.New(tokens, nil).Parse()
	if err != nil {
		sink.ParseError(err)
		return
	}

	if err := interp.InterpretREPL(stmts); err != nil {
		sink.RuntimeError(err)
	}
}
