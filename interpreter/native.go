/*
File    : jlox/interpreter/native.go
Package : interpreter
*/
package interpreter

import (
	"time"

	"github.com/lox-lang/jlox/environment"
	"github.com/lox-lang/jlox/value"
)

// Native is a built-in callable implemented in Go rather than declared
// in Lox source — today just clock, per spec.md §5.
type Native struct {
	NameStr  string
	ArityVal int
	Fn       func(args []value.Value) (value.Value, error)
}

func (n *Native) Type() value.Type { return value.CallableType }

func (n *Native) String() string {
	return "<native fn>"
}

func (n *Native) Arity() int { return n.ArityVal }

func (n *Native) Name() string { return n.NameStr }

func (n *Native) call(args []value.Value) (value.Value, error) {
	return n.Fn(args)
}

// defineGlobals installs every native callable into the interpreter's
// global scope.
func defineGlobals(globals *environment.Environment) {
	globals.Define("clock", &Native{
		NameStr:  "clock",
		ArityVal: 0,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.Number{Value: float64(time.Now().UnixNano()) / 1e6}, nil
		},
	})
}
