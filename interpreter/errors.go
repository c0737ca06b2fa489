/*
File    : jlox/interpreter/errors.go
Package : interpreter
*/
package interpreter

import (
	"fmt"

	"github.com/lox-lang/jlox/lexer"
)

// RuntimeError is a Lox error discovered during evaluation rather than
// parsing: a type mismatch, an undefined variable, a wrong-arity call.
// It is a plain Go error (spec.md §9) carrying the offending token so
// the CLI can report the source line.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Error at: %s on line %d: %s", e.Token.Lexeme, e.Token.Line, e.Message)
}

// DivisionByZeroError is the distinguished division-by-zero kind of
// runtime error. It is its own type rather than a *RuntimeError (it
// neither embeds nor wraps one), so callers that care can single it out
// via errors.As, without the evaluator needing a bespoke error code
// scheme.
type DivisionByZeroError struct {
	Token lexer.Token
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("Error at: %s on line %d: Cannot divide by zero", e.Token.Lexeme, e.Token.Line)
}
