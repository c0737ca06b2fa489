/*
File    : jlox/environment/environment.go
Package : environment
*/

// Package environment implements Lox's lexically-scoped variable
// bindings (spec.md §3): a chain of frames, each a name-to-value map
// with a pointer to its enclosing frame. A function closes over the
// Environment active at its declaration site, which is what gives Lox
// real lexical closures (spec.md §9, Open Question 1) rather than
// dynamic scope.
package environment

import (
	"fmt"

	"github.com/lox-lang/jlox/value"
)

// Environment is one lexical scope frame.
type Environment struct {
	parent *Environment
	values map[string]value.Value
}

// New creates a top-level environment with no parent — used once, for
// the interpreter's global scope.
func New() *Environment {
	return &Environment{values: make(map[string]value.Value)}
}

// NewChild creates a new scope nested inside parent, such as a block's
// or a function call's frame.
func NewChild(parent *Environment) *Environment {
	return &Environment{parent: parent, values: make(map[string]value.Value)}
}

// Define binds name to v in this frame. Redeclaring a name in the same
// frame silently overwrites the previous binding — Lox permits
// `var a = 1; var a = 2;` at the same scope (spec.md §3).
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// Get looks up name, walking outward through enclosing frames. It
// returns an error if name is bound nowhere in the chain.
func (e *Environment) Get(name string) (value.Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name)
}

// Assign rebinds an already-declared name to v, walking outward through
// enclosing frames to find the frame that declared it. Unlike Define, it
// never creates a new binding: assigning to an undeclared name is an
// error (spec.md §3).
func (e *Environment) Assign(name string, v value.Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = v
			return nil
		}
	}
	return fmt.Errorf("Undefined variable '%s'.", name)
}
