/*
File    : jlox/parser/parser.go
Package : parser
*/

// Package parser implements a recursive-descent parser for Lox's layered
// precedence grammar (spec.md §4.2), producing a []Stmt program. A
// syntax error is fatal: Parse returns immediately with a *ParseError and
// no synchronization is attempted, per spec.md §7.
package parser

import (
	"github.com/lox-lang/jlox/lexer"
	"github.com/lox-lang/jlox/value"
)

const maxArgs = 255

// Parser holds parsing state: the token vector and a cursor into it.
type Parser struct {
	tokens  []lexer.Token
	current int

	// funcDepth counts how many function bodies are currently being
	// parsed; it rejects `return` outside of any function (spec.md §9,
	// Open Question 3) at parse time.
	funcDepth int

	// report receives non-fatal parse diagnostics — today just the
	// "more than 255 arguments/parameters" warning (spec.md §4.2), which
	// does not abort parsing the way a *ParseError does.
	report func(line int, message string)
}

// New creates a Parser over tokens. report may be nil to discard
// non-fatal diagnostics.
func New(tokens []lexer.Token, report func(line int, message string)) *Parser {
	if report == nil {
		report = func(int, string) {}
	}
	return &Parser{tokens: tokens, report: report}
}

// Parse parses the full token stream into a program. The first syntax
// error it encounters is returned immediately; everything parsed before
// it is discarded, matching spec.md §7's "fatal, no recovery" rule.
func (p *Parser) Parse() ([]Stmt, error) {
	var stmts []Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// --- declarations ---

func (p *Parser) declaration() (Stmt, error) {
	if p.match(lexer.FUN) {
		return p.funDecl("function")
	}
	if p.match(lexer.VAR) {
		return p.varDecl()
	}
	return p.statement()
}

func (p *Parser) funDecl(kind string) (Stmt, error) {
	name, err := p.consume(lexer.IDENTIFIER, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LEFT_PAREN, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}

	var params []lexer.Token
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.report(p.peek().Line, "Can't have more than 255 parameters.")
			}
			param, err := p.consume(lexer.IDENTIFIER, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.LEFT_BRACE, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	p.funcDepth++
	body, err := p.block()
	p.funcDepth--
	if err != nil {
		return nil, err
	}
	return &Function{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) varDecl() (Stmt, error) {
	name, err := p.consume(lexer.IDENTIFIER, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer Expr = &Literal{Value: value.Null}
	if p.match(lexer.EQUAL) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &Var{Name: name, Initializer: initializer}, nil
}

// --- statements ---

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(lexer.FOR):
		return p.forStmt()
	case p.match(lexer.IF):
		return p.ifStmt()
	case p.match(lexer.PRINT):
		return p.printStmt()
	case p.match(lexer.RETURN):
		return p.returnStmt()
	case p.match(lexer.WHILE):
		return p.whileStmt()
	case p.match(lexer.LEFT_BRACE):
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		return &Block{Body: body}, nil
	default:
		return p.exprStmt()
	}
}

func (p *Parser) block() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(lexer.RIGHT_BRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) ifStmt() (Stmt, error) {
	if _, err := p.consume(lexer.LEFT_PAREN, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch Stmt
	if p.match(lexer.ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &If{Cond: cond, Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) whileStmt() (Stmt, error) {
	if _, err := p.consume(lexer.LEFT_PAREN, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &While{Cond: cond, Body: body}, nil
}

// forStmt desugars `for (init; cond; incr) body` into nested
// Block/While/Expression statements (spec.md §4.2) — the interpreter has
// no notion of a for-loop at all.
func (p *Parser) forStmt() (Stmt, error) {
	if _, err := p.consume(lexer.LEFT_PAREN, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case p.match(lexer.SEMICOLON):
		init = nil
	case p.match(lexer.VAR):
		init, err = p.varDecl()
	default:
		init, err = p.exprStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(lexer.SEMICOLON) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var incr Expr
	if !p.check(lexer.RIGHT_PAREN) {
		incr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = &Block{Body: []Stmt{body, &Expression{Expr: incr}}}
	}
	if cond == nil {
		cond = &Literal{Value: value.Boolean{Value: true}}
	}
	body = &While{Cond: cond, Body: body}
	if init != nil {
		body = &Block{Body: []Stmt{init, body}}
	}
	return body, nil
}

func (p *Parser) printStmt() (Stmt, error) {
	val, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &Print{Expr: val}, nil
}

func (p *Parser) returnStmt() (Stmt, error) {
	keyword := p.previous()
	if p.funcDepth == 0 {
		return nil, &ParseError{Token: keyword, Message: "Cannot return from top-level code."}
	}

	var val Expr
	var err error
	if !p.check(lexer.SEMICOLON) {
		val, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &Return{Keyword: keyword, Value: val}, nil
}

func (p *Parser) exprStmt() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &Expression{Expr: expr}, nil
}

// --- expressions, by descending precedence ---

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.EQUAL) {
		equals := p.previous()
		val, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if v, ok := expr.(*Variable); ok {
			return &Assign{Name: v.Name, Value: val}, nil
		}
		return nil, &ParseError{Token: equals, Message: "Invalid assignment target."}
	}
	return expr, nil
}

func (p *Parser) or() (Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.OR) {
		op := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) and() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.AND) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (Expr, error) {
	return p.leftAssocBinary(p.comparison, lexer.BANG_EQUAL, lexer.EQUAL_EQUAL)
}

func (p *Parser) comparison() (Expr, error) {
	return p.leftAssocBinary(p.term, lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL)
}

func (p *Parser) term() (Expr, error) {
	return p.leftAssocBinary(p.factor, lexer.MINUS, lexer.PLUS)
}

func (p *Parser) factor() (Expr, error) {
	return p.leftAssocBinary(p.unary, lexer.SLASH, lexer.STAR)
}

// leftAssocBinary implements the shared shape of equality, comparison,
// term, and factor: parse one operand at the next-higher precedence,
// then fold in `(op operand)*` left-associatively.
func (p *Parser) leftAssocBinary(operand func() (Expr, error), ops ...lexer.TokenType) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(lexer.BANG, lexer.MINUS) {
		op := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Operand: operand}, nil
	}
	return p.call()
}

func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.LEFT_PAREN) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.report(p.peek().Line, "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &Call{Callee: callee, ClosingParen: paren, Args: args}, nil
}

func (p *Parser) primary() (Expr, error) {
	if p.match(lexer.FALSE, lexer.TRUE, lexer.NIL, lexer.NUMBER, lexer.STRING) {
		return &Literal{Value: p.previous().Literal}, nil
	}
	if p.match(lexer.IDENTIFIER) {
		return &Variable{Name: p.previous()}, nil
	}
	if p.match(lexer.LEFT_PAREN) {
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &Grouping{Inner: inner}, nil
	}
	return nil, &ParseError{Token: p.peek(), Message: "Expect expression"}
}

// --- token-stream cursor helpers ---

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(t lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return lexer.Token{}, &ParseError{Token: p.peek(), Message: message}
}
