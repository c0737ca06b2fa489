/*
File    : jlox/parser/errors.go
Package : parser
*/
package parser

import (
	"fmt"

	"github.com/lox-lang/jlox/lexer"
)

// ParseError is a fatal syntax error: the token it occurred at, plus a
// message. Unlike a lex error, a parse error aborts parsing entirely —
// spec.md §7 specifies no recovery or synchronization.
type ParseError struct {
	Token   lexer.Token
	Message string
}

func (e *ParseError) Error() string {
	where := " at '" + e.Token.Lexeme + "'"
	if e.Token.Type == lexer.EOF {
		where = " at end"
	}
	return fmt.Sprintf("[line %d] Error%s: %s", e.Token.Line, where, e.Message)
}
