/*
File    : jlox/parser/parser_test.go
Package : parser
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox-lang/jlox/lexer"
)

func parseExpr(t *testing.T, src string) Expr {
	t.Helper()
	toks := lexer.New(src+";", nil).ScanTokens()
	stmts, err := New(toks, nil).Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	exprStmt, ok := stmts[0].(*Expression)
	require.True(t, ok, "expected a bare expression statement")
	return exprStmt.Expr
}

func TestParser_TermAndFactorAreLeftAssociative(t *testing.T) {
	assert.Equal(t, "(- (- 1 2) 3)", Print(parseExpr(t, "1 - 2 - 3")))
	assert.Equal(t, "(/ (* 1 2) 3)", Print(parseExpr(t, "1 * 2 / 3")))
}

func TestParser_FactorBindsTighterThanTerm(t *testing.T) {
	assert.Equal(t, "(+ 1 (* 2 3))", Print(parseExpr(t, "1 + 2 * 3")))
}

func TestParser_UnaryBindsTighterThanFactor(t *testing.T) {
	assert.Equal(t, "(* (- 1) 2)", Print(parseExpr(t, "-1 * 2")))
}

func TestParser_GroupingOverridesPrecedence(t *testing.T) {
	assert.Equal(t, "(* (group (+ 1 2)) 3)", Print(parseExpr(t, "(1 + 2) * 3")))
}

func TestParser_AssignmentIsRightAssociative(t *testing.T) {
	toks := lexer.New("a = b = 3;", nil).ScanTokens()
	stmts, err := New(toks, nil).Parse()
	require.NoError(t, err)
	exprStmt := stmts[0].(*Expression)
	outer, ok := exprStmt.Expr.(*Assign)
	require.True(t, ok)
	assert.Equal(t, "a", outer.Name.Lexeme)
	inner, ok := outer.Value.(*Assign)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Name.Lexeme)
}

func TestParser_InvalidAssignmentTargetIsFatal(t *testing.T) {
	toks := lexer.New("1 + 2 = 3;", nil).ScanTokens()
	_, err := New(toks, nil).Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid assignment target")
}

func TestParser_LogicalOperatorsAreDistinctFromBinary(t *testing.T) {
	expr := parseExpr(t, "a and b or c")
	logical, ok := expr.(*Logical)
	require.True(t, ok)
	assert.Equal(t, "or", logical.Op.Lexeme)
	left, ok := logical.Left.(*Logical)
	require.True(t, ok)
	assert.Equal(t, "and", left.Op.Lexeme)
}

func TestParser_ForLoopDesugarsToBlockAndWhileOnly(t *testing.T) {
	toks := lexer.New(`for (var i = 0; i < 3; i = i + 1) print i;`, nil).ScanTokens()
	stmts, err := New(toks, nil).Parse()
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	outer, ok := stmts[0].(*Block)
	require.True(t, ok, "for loop must desugar to a Block")
	require.Len(t, outer.Body, 2)

	_, isVar := outer.Body[0].(*Var)
	assert.True(t, isVar, "first statement in desugared block must be the initializer")

	whileStmt, ok := outer.Body[1].(*While)
	require.True(t, ok, "second statement in desugared block must be the While")

	innerBlock, ok := whileStmt.Body.(*Block)
	require.True(t, ok, "while body must be a block wrapping body+increment")
	require.Len(t, innerBlock.Body, 2)
	_, isIncrExpr := innerBlock.Body[1].(*Expression)
	assert.True(t, isIncrExpr, "increment must be appended as an expression statement")
}

func TestParser_ForLoopWithOmittedClausesDefaultsConditionTrue(t *testing.T) {
	toks := lexer.New(`for (;;) print 1;`, nil).ScanTokens()
	stmts, err := New(toks, nil).Parse()
	require.NoError(t, err)

	whileStmt, ok := stmts[0].(*While)
	require.True(t, ok, "with no initializer, for desugars directly to a While")
	lit, ok := whileStmt.Cond.(*Literal)
	require.True(t, ok)
	assert.Equal(t, "true", lit.Value.String())
}

func TestParser_ReturnOutsideFunctionIsFatal(t *testing.T) {
	toks := lexer.New(`return 1;`, nil).ScanTokens()
	_, err := New(toks, nil).Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top-level")
}

func TestParser_ReturnInsideFunctionIsAllowed(t *testing.T) {
	toks := lexer.New(`fun f() { return 1; }`, nil).ScanTokens()
	stmts, err := New(toks, nil).Parse()
	require.NoError(t, err)
	fn := stmts[0].(*Function)
	_, ok := fn.Body[0].(*Return)
	assert.True(t, ok)
}

func TestParser_ReturnWithNoValueHasNilExpr(t *testing.T) {
	toks := lexer.New(`fun f() { return; }`, nil).ScanTokens()
	stmts, err := New(toks, nil).Parse()
	require.NoError(t, err)
	fn := stmts[0].(*Function)
	ret := fn.Body[0].(*Return)
	assert.Nil(t, ret.Value)
}

func TestParser_CallArgumentsOverLimitReportsNonFatalWarning(t *testing.T) {
	src := "f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ","
		}
		src += "1"
	}
	src += ");"

	toks := lexer.New(src, nil).ScanTokens()
	var warnings []string
	_, err := New(toks, func(line int, msg string) { warnings = append(warnings, msg) }).Parse()
	require.NoError(t, err, "exceeding the argument cap is a warning, not a parse failure")
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "255 arguments")
}

func TestParser_MissingClosingParenIsFatal(t *testing.T) {
	toks := lexer.New(`(1 + 2;`, nil).ScanTokens()
	_, err := New(toks, nil).Parse()
	require.Error(t, err)
}

func TestParser_FirstSyntaxErrorAbortsWithoutSynchronizing(t *testing.T) {
	// Two syntax errors on two separate statements: only the first is
	// ever reported, since parsing stops dead instead of resyncing at
	// the next statement boundary (spec.md §7).
	toks := lexer.New("1 + ; 2 + ;", nil).ScanTokens()
	stmts, err := New(toks, nil).Parse()
	require.Error(t, err)
	assert.Nil(t, stmts)
}

func TestParser_IfWithoutElseLeavesElseNil(t *testing.T) {
	toks := lexer.New(`if (true) print 1;`, nil).ScanTokens()
	stmts, err := New(toks, nil).Parse()
	require.NoError(t, err)
	ifStmt := stmts[0].(*If)
	assert.Nil(t, ifStmt.Else)
}

func TestParser_RoundTripPrintingReparsesToEqualTree(t *testing.T) {
	for _, src := range []string{
		"1 + 2 * 3 - 4",
		"-1 * (2 + 3)",
		"a == b and c != d or e",
	} {
		printed := Print(parseExpr(t, src))
		reparsed := Print(parseExpr(t, printed))
		assert.Equal(t, printed, reparsed, "printing %q then reparsing should be stable", src)
	}
}
