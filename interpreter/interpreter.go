/*
File    : jlox/interpreter/interpreter.go
Package : interpreter
*/

// Package interpreter walks the AST produced by package parser and
// evaluates it directly — no bytecode, no separate resolution pass.
// Dispatch is a Go type switch over the sealed Expr/Stmt interfaces
// (spec.md §4.3, §9), not a Visitor: the node knows nothing about how
// it is evaluated.
package interpreter

import (
	"fmt"
	"io"

	"github.com/lox-lang/jlox/environment"
	"github.com/lox-lang/jlox/lexer"
	"github.com/lox-lang/jlox/parser"
	"github.com/lox-lang/jlox/value"
)

// Interpreter holds the global scope and the sink that `print` writes
// to. Each Interpreter is independent; the REPL reuses one across
// lines so that top-level `var` and `fun` declarations persist.
type Interpreter struct {
	globals *environment.Environment
	out     io.Writer
}

// New creates an Interpreter that writes `print` output to out. out
// defaults to io.Discard if nil, which is useful in tests that only
// care about errors or return values.
func New(out io.Writer) *Interpreter {
	if out == nil {
		out = io.Discard
	}
	globals := environment.New()
	defineGlobals(globals)
	return &Interpreter{globals: globals, out: out}
}

// ctrlSignal threads a non-local `return` up through nested statement
// execution without using panic/recover or a Go error: it is returned
// alongside a nil error from execute/executeBlock, and every caller
// that sees isReturn true stops running further statements and passes
// the signal further up, exactly the way the teacher's eval package
// threads a *std.ReturnValue through nested block execution.
type ctrlSignal struct {
	isReturn bool
	value    value.Value
}

// Interpret runs a full program (e.g. a loaded script). It stops at the
// first runtime error.
func (i *Interpreter) Interpret(stmts []parser.Stmt) error {
	for _, stmt := range stmts {
		if _, err := i.execute(stmt, i.globals); err != nil {
			return err
		}
	}
	return nil
}

// InterpretREPL runs one REPL-submitted chunk of statements. Unlike
// Interpret, a bare expression statement at the top level has its value
// auto-printed unless that value is nil, the way the teacher's REPL
// echoes the last evaluated expression (spec.md's supplemented REPL
// behavior) — file-mode execution via Interpret never does this.
func (i *Interpreter) InterpretREPL(stmts []parser.Stmt) error {
	for _, stmt := range stmts {
		exprStmt, ok := stmt.(*parser.Expression)
		if !ok {
			if _, err := i.execute(stmt, i.globals); err != nil {
				return err
			}
			continue
		}
		v, err := i.evaluate(exprStmt.Expr, i.globals)
		if err != nil {
			return err
		}
		if _, isNil := v.(value.Nil); isNil {
			continue
		}
		fmt.Fprintln(i.out, v.String())
	}
	return nil
}

func (i *Interpreter) execute(stmt parser.Stmt, env *environment.Environment) (ctrlSignal, error) {
	switch s := stmt.(type) {
	case *parser.Expression:
		_, err := i.evaluate(s.Expr, env)
		return ctrlSignal{}, err

	case *parser.Print:
		v, err := i.evaluate(s.Expr, env)
		if err != nil {
			return ctrlSignal{}, err
		}
		fmt.Fprintln(i.out, v.String())
		return ctrlSignal{}, nil

	case *parser.Var:
		v, err := i.evaluate(s.Initializer, env)
		if err != nil {
			return ctrlSignal{}, err
		}
		env.Define(s.Name.Lexeme, v)
		return ctrlSignal{}, nil

	case *parser.Block:
		return i.executeBlock(s.Body, environment.NewChild(env))

	case *parser.If:
		cond, err := i.evaluate(s.Cond, env)
		if err != nil {
			return ctrlSignal{}, err
		}
		if value.Truthy(cond) {
			return i.execute(s.Then, env)
		}
		if s.Else != nil {
			return i.execute(s.Else, env)
		}
		return ctrlSignal{}, nil

	case *parser.While:
		for {
			cond, err := i.evaluate(s.Cond, env)
			if err != nil {
				return ctrlSignal{}, err
			}
			if !value.Truthy(cond) {
				return ctrlSignal{}, nil
			}
			signal, err := i.execute(s.Body, env)
			if err != nil || signal.isReturn {
				return signal, err
			}
		}

	case *parser.Function:
		fn := &Function{Decl: s, Closure: env}
		env.Define(s.Name.Lexeme, fn)
		return ctrlSignal{}, nil

	case *parser.Return:
		v, err := i.evaluate(s.Value, env)
		if err != nil {
			return ctrlSignal{}, err
		}
		return ctrlSignal{isReturn: true, value: v}, nil

	default:
		return ctrlSignal{}, fmt.Errorf("interpreter: unhandled statement type %T", stmt)
	}
}

// executeBlock runs stmts in env (already the child scope for this
// block) and stops early if one of them signals a return.
func (i *Interpreter) executeBlock(stmts []parser.Stmt, env *environment.Environment) (ctrlSignal, error) {
	for _, stmt := range stmts {
		signal, err := i.execute(stmt, env)
		if err != nil || signal.isReturn {
			return signal, err
		}
	}
	return ctrlSignal{}, nil
}

// evaluate computes expr's value in env, returning a *RuntimeError for
// any type mismatch or undefined reference and a *DivisionByZeroError
// for division by zero.
func (i *Interpreter) evaluate(expr parser.Expr, env *environment.Environment) (value.Value, error) {
	// A nil Expr stands for an omitted Return value, which evaluates to
	// Lox nil. (An omitted Var initializer never reaches here as nil: the
	// parser substitutes a Literal nil for it.)
	if expr == nil {
		return value.Null, nil
	}

	switch e := expr.(type) {
	case *parser.Literal:
		return e.Value, nil

	case *parser.Grouping:
		return i.evaluate(e.Inner, env)

	case *parser.Unary:
		return i.evalUnary(e, env)

	case *parser.Binary:
		return i.evalBinary(e, env)

	case *parser.Logical:
		return i.evalLogical(e, env)

	case *parser.Variable:
		v, err := env.Get(e.Name.Lexeme)
		if err != nil {
			return nil, &RuntimeError{Token: e.Name, Message: err.Error()}
		}
		return v, nil

	case *parser.Assign:
		v, err := i.evaluate(e.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(e.Name.Lexeme, v); err != nil {
			return nil, &RuntimeError{Token: e.Name, Message: err.Error()}
		}
		return v, nil

	case *parser.Call:
		return i.evalCall(e, env)

	default:
		return nil, fmt.Errorf("interpreter: unhandled expression type %T", expr)
	}
}

func (i *Interpreter) evalUnary(e *parser.Unary, env *environment.Environment) (value.Value, error) {
	right, err := i.evaluate(e.Operand, env)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case lexer.MINUS:
		num, ok := right.(value.Number)
		if !ok {
			return nil, &RuntimeError{Token: e.Op, Message: "Operand must be a number."}
		}
		return value.Number{Value: -num.Value}, nil

	case lexer.BANG:
		// spec.md §9, Open Question 2: `!` requires a boolean operand
		// rather than applying Lox's general truthiness rule.
		b, ok := right.(value.Boolean)
		if !ok {
			return nil, &RuntimeError{Token: e.Op, Message: "Operand must be a boolean."}
		}
		return value.Boolean{Value: !b.Value}, nil

	default:
		return nil, fmt.Errorf("interpreter: unhandled unary operator %s", e.Op.Lexeme)
	}
}

func (i *Interpreter) evalBinary(e *parser.Binary, env *environment.Environment) (value.Value, error) {
	left, err := i.evaluate(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case lexer.PLUS:
		if ln, lok := left.(value.Number); lok {
			if rn, rok := right.(value.Number); rok {
				return value.Number{Value: ln.Value + rn.Value}, nil
			}
		}
		if ls, lok := left.(value.String); lok {
			if rs, rok := right.(value.String); rok {
				return value.String{Value: ls.Value + rs.Value}, nil
			}
		}
		return nil, &RuntimeError{Token: e.Op, Message: "Operation '+' exists only on numbers and strings."}

	case lexer.MINUS:
		ln, rn, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Number{Value: ln - rn}, nil

	case lexer.STAR:
		ln, rn, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Number{Value: ln * rn}, nil

	case lexer.SLASH:
		ln, rn, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		if rn == 0 {
			return nil, &DivisionByZeroError{Token: e.Op}
		}
		return value.Number{Value: ln / rn}, nil

	case lexer.GREATER:
		ln, rn, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Boolean{Value: ln > rn}, nil

	case lexer.GREATER_EQUAL:
		ln, rn, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Boolean{Value: ln >= rn}, nil

	case lexer.LESS:
		ln, rn, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Boolean{Value: ln < rn}, nil

	case lexer.LESS_EQUAL:
		ln, rn, err := bothNumbers(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Boolean{Value: ln <= rn}, nil

	case lexer.EQUAL_EQUAL:
		return value.Boolean{Value: value.Equal(left, right)}, nil

	case lexer.BANG_EQUAL:
		return value.Boolean{Value: !value.Equal(left, right)}, nil

	default:
		return nil, fmt.Errorf("interpreter: unhandled binary operator %s", e.Op.Lexeme)
	}
}

func bothNumbers(op lexer.Token, left, right value.Value) (float64, float64, error) {
	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if !lok || !rok {
		return 0, 0, &RuntimeError{Token: op, Message: "Operand must be a number."}
	}
	return ln.Value, rn.Value, nil
}

func (i *Interpreter) evalLogical(e *parser.Logical, env *environment.Environment) (value.Value, error) {
	left, err := i.evaluate(e.Left, env)
	if err != nil {
		return nil, err
	}

	if e.Op.Type == lexer.OR {
		if value.Truthy(left) {
			return left, nil
		}
	} else {
		if !value.Truthy(left) {
			return left, nil
		}
	}
	return i.evaluate(e.Right, env)
}

func (i *Interpreter) evalCall(e *parser.Call, env *environment.Environment) (value.Value, error) {
	callee, err := i.evaluate(e.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, len(e.Args))
	for idx, argExpr := range e.Args {
		v, err := i.evaluate(argExpr, env)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	callable, ok := callee.(value.Callable)
	if !ok {
		return nil, &RuntimeError{Token: e.ClosingParen, Message: "Can only call functions and classes."}
	}
	if len(args) != callable.Arity() {
		return nil, &RuntimeError{
			Token:   e.ClosingParen,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)),
		}
	}

	switch fn := callee.(type) {
	case *Function:
		return fn.call(i, args)
	case *Native:
		return fn.call(args)
	default:
		return nil, &RuntimeError{Token: e.ClosingParen, Message: "Can only call functions and classes."}
	}
}
