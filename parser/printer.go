/*
File    : jlox/parser/printer.go
Package : parser
*/
package parser

import "strings"

// Print renders expr as a fully-parenthesized string, e.g. `1 + 2 * 3`
// becomes `(+ 1 (* 2 3))`. It is used by tests and for debugging; the
// interpreter never calls it. The output is prefix notation, not Lox
// syntax, so it cannot be fed back to the parser.
func Print(expr Expr) string {
	switch e := expr.(type) {
	case *Binary:
		return parenthesize(e.Op.Lexeme, e.Left, e.Right)
	case *Grouping:
		return parenthesize("group", e.Inner)
	case *Literal:
		if e.Value == nil {
			return "nil"
		}
		return e.Value.String()
	case *Unary:
		return parenthesize(e.Op.Lexeme, e.Operand)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Logical:
		return parenthesize(e.Op.Lexeme, e.Left, e.Right)
	case *Call:
		return parenthesize("call "+Print(e.Callee), e.Args...)
	default:
		return "<?expr?>"
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		b.WriteString(Print(e))
	}
	b.WriteByte(')')
	return b.String()
}
