/*
File    : jlox/interpreter/function.go
Package : interpreter
*/
package interpreter

import (
	"fmt"

	"github.com/lox-lang/jlox/environment"
	"github.com/lox-lang/jlox/parser"
	"github.com/lox-lang/jlox/value"
)

// Function is a user-declared Lox function. It closes over Closure, the
// Environment that was active at the `fun` declaration — this is what
// gives Lox lexical closures rather than dynamic scope (spec.md §9,
// Open Question 1). Function lives in package interpreter rather than
// package value because calling it requires running statements, which
// only the interpreter knows how to do; value.Callable only exposes the
// parts (Arity, Name) every caller needs before dispatch, mirroring the
// teacher's type-assertion-based call dispatch in eval.evalCallExpression.
type Function struct {
	Decl    *parser.Function
	Closure *environment.Environment
}

func (f *Function) Type() value.Type { return value.CallableType }

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Decl.Name.Lexeme)
}

func (f *Function) Arity() int { return len(f.Decl.Params) }

func (f *Function) Name() string { return f.Decl.Name.Lexeme }

// call runs the function body in a fresh scope parented to the closure,
// binds args to the declared parameters, and unwraps any propagated
// return signal into the actual returned value.
func (f *Function) call(interp *Interpreter, args []value.Value) (value.Value, error) {
	callEnv := environment.NewChild(f.Closure)
	for i, param := range f.Decl.Params {
		callEnv.Define(param.Lexeme, args[i])
	}

	result, err := interp.executeBlock(f.Decl.Body, callEnv)
	if err != nil {
		return nil, err
	}
	if result.isReturn {
		return result.value, nil
	}
	return value.Null, nil
}
