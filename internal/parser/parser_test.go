package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunshine-lang/sunc/internal/ast"
	"github.com/sunshine-lang/sunc/internal/diag"
	"github.com/sunshine-lang/sunc/internal/itempath"
	"github.com/sunshine-lang/sunc/internal/itemtable"
	"github.com/sunshine-lang/sunc/internal/parser"
)

func parse(t *testing.T, src string) (*ast.Crate, *itemtable.Table, *diag.Reporter) {
	t.Helper()
	reporter := diag.NewReporter()
	table := itemtable.New()
	p := parser.NewParser(reporter, table, nil, "C")
	crate := p.ParseCrate(src)
	return crate, table, reporter
}

// parseExpr parses src as the sole statement of a function body and
// returns the lowered expression tree, for asserting the operator-
// expression parser's shape directly (spec.md §8's "operator-expression
// properties").
func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	crate, _, reporter := parse(t, "fn f() { "+src+"; }")
	require.False(t, reporter.CompilationFailed())
	fn := crate.Items[0].(*ast.Function)
	require.Len(t, fn.Body.Stmts, 1)
	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	return stmt.Expr
}

// exprShape renders an expression tree's structural shape (operator and
// literal values only, no positions) so tests can assert it with a
// single string comparison.
func exprShape(e ast.Expr) string {
	switch expr := e.(type) {
	case *ast.Literal:
		return expr.Num.String()
	case *ast.Unary:
		return "Unary(" + expr.Op + ", " + exprShape(expr.Value) + ")"
	case *ast.Binary:
		return "Binary(" + expr.Op + ", " + exprShape(expr.Left) + ", " + exprShape(expr.Right) + ")"
	case *ast.Var:
		return expr.Name
	default:
		return "?"
	}
}

func TestTwoTopLevelFunctionsBothDeclared(t *testing.T) {
	// spec.md §8: "Given source `fn f() { } fn g() { }`, the item table
	// contains exactly two functions, C::f and C::g, in either order."
	_, table, reporter := parse(t, "fn f() { } fn g() { }")
	require.False(t, reporter.CompilationFailed())
	assert.Equal(t, 2, table.Len())

	_, fOK := table.Get(itempath.NewAbsolute("C", "f"))
	_, gOK := table.Get(itempath.NewAbsolute("C", "g"))
	assert.True(t, fOK)
	assert.True(t, gOK)
}

func TestDuplicateItemDoesNotEvictFirst(t *testing.T) {
	// spec.md §8: "Duplicate item declarations do not evict the first;
	// declared contains the first, duplicated contains the second with
	// the same path."
	_, table, reporter := parse(t, "fn f() { } fn f() { }")
	require.False(t, reporter.CompilationFailed())
	assert.Equal(t, 1, table.Len())

	dups := table.Duplicated()
	require.Len(t, dups, 1)
	assert.Equal(t, itempath.NewAbsolute("C", "f"), dups[0].Path)
}

func TestBlockExpressionOmittedSemicolonStillParsesNextStatement(t *testing.T) {
	// spec.md §8: "A block expression in statement position accepts an
	// omitted terminating ; and the test still parses the following
	// statement."
	_, table, reporter := parse(t, `
fn f() {
	if true { }
	let x: i32 = 1;
}
fn g() { }
`)
	require.False(t, reporter.CompilationFailed())
	assert.Equal(t, 2, table.Len())
}

func TestBlockExpressionAcceptsExplicitTrailingSemicolon(t *testing.T) {
	_, _, reporter := parse(t, `fn f() { while true { }; }`)
	assert.False(t, reporter.CompilationFailed())
}

func TestNonBlockExpressionStatementRequiresSemicolon(t *testing.T) {
	_, _, reporter := parse(t, `fn f() { 1 + 1 let x: i32 = 2; }`)
	assert.True(t, reporter.CompilationFailed())
}

func TestStructWithPrimitiveFields(t *testing.T) {
	// spec.md §8 scenario 3.
	crate, table, reporter := parse(t, `struct S { a: i32, b: bool }`)
	require.False(t, reporter.CompilationFailed())
	require.Len(t, crate.Items, 1)

	item, ok := table.Get(itempath.NewAbsolute("C", "S"))
	require.True(t, ok)
	st, ok := item.(*ast.Struct)
	require.True(t, ok)
	require.Len(t, st.Fields, 2)
	assert.Equal(t, "a", st.Fields[0].Name)
	assert.Equal(t, "i32", st.Fields[0].Type.(*ast.PathType).Name)
	assert.Equal(t, "b", st.Fields[1].Name)
	assert.Equal(t, "bool", st.Fields[1].Type.(*ast.PathType).Name)
}

func TestLoadableModuleEnqueuesPendingFile(t *testing.T) {
	// No source.Map is wired (nil), so the pending file is recorded by
	// the parser but never actually read; this only exercises that
	// `mod NAME;` parses and doesn't block on the missing file.
	_, table, reporter := parse(t, `mod sub;`)
	require.False(t, reporter.CompilationFailed())
	item, ok := table.Get(itempath.NewAbsolute("C", "sub"))
	require.True(t, ok)
	mod := item.(*ast.Module)
	assert.Equal(t, ast.Loadable, mod.Kind)
}

func TestElseWithoutIfIsAnError(t *testing.T) {
	_, _, reporter := parse(t, `fn f() { else { } }`)
	assert.True(t, reporter.CompilationFailed())
}

func TestUnclosedParenthesisIsAnError(t *testing.T) {
	_, _, reporter := parse(t, `fn f() { let x: i32 = (1 + 2; }`)
	assert.True(t, reporter.CompilationFailed())
}

func TestChainedAssignmentIsAnError(t *testing.T) {
	_, _, reporter := parse(t, `fn f() { let x: i32 = 0; let y: i32 = 0; x = y = 1; }`)
	assert.True(t, reporter.CompilationFailed())
}

func TestFunctionCallWithTrailingCommaArgs(t *testing.T) {
	_, _, reporter := parse(t, `fn g(a: i32, b: i32) { } fn f() { g(1, 2,); }`)
	assert.False(t, reporter.CompilationFailed())
}

func TestUnaryBindsTighterThanFollowingBinary(t *testing.T) {
	// "unary wraps only its immediate operand" (spec.md §9/§8): unary
	// must not swallow the rest of the expression past the next binary
	// operator.
	expr := parseExpr(t, "1 + -2 - 3")
	assert.Equal(t, "Binary(-, Binary(+, 1, Unary(-, 2)), 3)", exprShape(expr))
}

func TestScenario2OperatorPrecedenceTree(t *testing.T) {
	// spec.md §8 scenario 2: "1 + -2 - (3 * 4) / -5" parses to
	// Binary(-, Binary(+, 1, Unary(-,2)), Binary(/, (Binary(*, 3, 4)),
	// Unary(-,5))).
	expr := parseExpr(t, "1 + -2 - (3 * 4) / -5")
	assert.Equal(t, "Binary(-, Binary(+, 1, Unary(-, 2)), Binary(/, Binary(*, 3, 4), Unary(-, 5)))", exprShape(expr))
}

func TestMultiSegmentCallPath(t *testing.T) {
	crate, _, reporter := parse(t, `fn f() { a::b::g(); }`)
	require.False(t, reporter.CompilationFailed())
	require.Len(t, crate.Items, 1)
	fn := crate.Items[0].(*ast.Function)
	require.Len(t, fn.Body.Stmts, 1)
	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	call := stmt.Expr.(*ast.FnCall)
	assert.Equal(t, []string{"a", "b", "g"}, call.Path)
}
