package hir

import (
	"github.com/sunshine-lang/sunc/internal/ast"
	"github.com/sunshine-lang/sunc/internal/diag"
	"github.com/sunshine-lang/sunc/internal/itempath"
	"github.com/sunshine-lang/sunc/internal/itemtable"
	"github.com/sunshine-lang/sunc/internal/token"
)

// declaredFunction pairs a Function item with the absolute path it was
// declared at, so Phase B can re-derive both its FunctionId and its
// enclosing module path (needed to resolve relative call paths).
type declaredFunction struct {
	path itempath.Absolute
	fn   *ast.Function
}

// Builder implements spec.md §4.7's two-phase lowering: Populate runs
// Phase A (declare every struct and function so forward references
// resolve), Build runs Phase B (translate bodies). Grounded on the
// teacher's internal/ir.Transformer shape, generalized from a flat
// AST-to-codegen-IR pass into the declare-then-translate structure this
// language's forward-reference semantics require.
type Builder struct {
	reporter *diag.Reporter
	crate    string

	types *TypeTable

	functionIDs map[string]FunctionId // absolute path string -> id
	functions   []declaredFunction    // in declaration order, for Build
	nextFuncID  int

	structDecls []struct {
		path itempath.Absolute
		st   *ast.Struct
	}
}

// NewBuilder returns an empty Builder reporting diagnostics through
// reporter.
func NewBuilder(reporter *diag.Reporter, crate string) *Builder {
	return &Builder{
		reporter:    reporter,
		crate:       crate,
		types:       NewTypeTable(),
		functionIDs: make(map[string]FunctionId),
	}
}

// Populate runs Phase A over table: allocate a TypeId for every struct
// and a FunctionId for every function (spec.md §4.7, steps 1-2), then
// resolve every struct's field types now that every name is known
// (step 3).
func (b *Builder) Populate(table *itemtable.Table) {
	table.Each(func(path itempath.Absolute, item ast.Item) {
		switch it := item.(type) {
		case *ast.Struct:
			if _, ok := b.types.DeclareStruct(it.Name); !ok {
				b.reportAt(diag.TypeAlreadyDefined{Name: it.Name}, it.Pos())
				return
			}
			b.structDecls = append(b.structDecls, struct {
				path itempath.Absolute
				st   *ast.Struct
			}{path, it})
		case *ast.Function:
			id := FunctionId(b.nextFuncID)
			b.nextFuncID++
			b.functionIDs[path.String()] = id
			b.functions = append(b.functions, declaredFunction{path: path, fn: it})
		}
	})

	for _, decl := range b.structDecls {
		id, _ := b.types.Get(decl.st.Name)
		fields := make(map[string]TypeId, len(decl.st.Fields))
		for _, field := range decl.st.Fields {
			typeName := field.Type.(*ast.PathType).Name
			typ, ok := b.types.Get(typeName)
			if !ok {
				b.reportAt(diag.TypeNotFound{Name: typeName}, field.Pos())
				continue
			}
			fields[field.Name] = typ
		}
		b.types.SetFields(id.CompoundIndex(), fields)
	}
}

// Build runs Phase B: translate every declared function's body. Per
// spec.md §5, a fatal error in one function's translation does not
// abort the builder — it still collects every other function's result.
func (b *Builder) Build() *Program {
	functions := make(map[FunctionId]*Function, len(b.functions))
	for _, decl := range b.functions {
		id := b.functionIDs[decl.path.String()]
		functions[id] = b.lowerFunction(id, decl.path, decl.fn)
	}
	return &Program{Types: b.types, Functions: functions, FunctionIDs: b.functionIDs}
}

func (b *Builder) reportAt(err diag.CompilerError, pos token.Position) {
	b.reporter.ReportErr(err, token.Span{Start: pos, End: pos}, "")
}

// resolveType looks up t's name in the TypeTable; nil t (an omitted
// return type) means unit and is not an error.
func (b *Builder) resolveType(t ast.Type) TypeId {
	if t == nil {
		return TypeId{}
	}
	name := t.(*ast.PathType).Name
	typ, ok := b.types.Get(name)
	if !ok {
		b.reportAt(diag.TypeNotFound{Name: name}, t.Pos())
		return TypeId{}
	}
	return typ
}

// lowerFunction translates one function body, per spec.md §4.7 Phase B:
// a fresh Scope, parameters bound as locals with fresh VarIds, then the
// body block.
func (b *Builder) lowerFunction(id FunctionId, path itempath.Absolute, fn *ast.Function) *Function {
	modulePath, ok := path.Pop(1)
	if !ok {
		modulePath = itempath.NewAbsolute(path.Crate)
	}

	alloc := &varAllocator{}
	root := NewScope(nil)

	params := make([]VarId, 0, len(fn.Params))
	paramTypes := make([]TypeId, 0, len(fn.Params))
	for _, param := range fn.Params {
		typ := b.resolveType(param.Type)
		vid := alloc.alloc()
		root.Declare(param.Name, vid, typ)
		params = append(params, vid)
		paramTypes = append(paramTypes, typ)
	}

	ctx := &bodyCtx{alloc: alloc, modulePath: modulePath}
	body := b.lowerBlock(fn.Body, root, ctx)

	return &Function{
		ID:         id,
		Name:       fn.Name,
		Params:     params,
		ParamTypes: paramTypes,
		ReturnType: b.resolveType(fn.ReturnType),
		Body:       body,
	}
}

// bodyCtx threads the per-function state that every lowering helper
// needs but that doesn't belong on Scope itself: the VarId allocator
// (shared across all nested blocks of one function) and the enclosing
// module path (used to resolve relative FnCall paths).
type bodyCtx struct {
	alloc      *varAllocator
	modulePath itempath.Absolute
}

// lowerBlock pushes a child scope, lowers every statement, and folds the
// block's AST tail expression into a trailing Return, per spec.md §4.7:
// "Blocks push a child scope; exiting restores the parent" and "the
// tail expression of a block is lowered to Return(expr) at the end of
// the translated block."
func (b *Builder) lowerBlock(blk *ast.Block, parent *Scope, ctx *bodyCtx) *Block {
	scope := NewScope(parent)
	stmts := make([]Stmt, 0, len(blk.Stmts)+1)
	for _, s := range blk.Stmts {
		if lowered := b.lowerStmt(s, scope, ctx); lowered != nil {
			stmts = append(stmts, lowered)
		}
	}
	if blk.Tail != nil {
		stmts = append(stmts, NewReturn(blk.Tail.Pos(), b.lowerExpr(blk.Tail, scope, ctx)))
	}
	return NewBlock(blk.Pos(), stmts)
}

// lowerStmt translates one AST statement. Returns nil for forms that
// contribute no HIR statement of their own (a nested item declaration,
// already registered in Phase A) or whose translation was rejected
// outright (an assignment to an undeclared variable).
func (b *Builder) lowerStmt(s ast.Stmt, scope *Scope, ctx *bodyCtx) Stmt {
	switch st := s.(type) {
	case *ast.ItemStmt:
		return nil
	case *ast.ExprStmt:
		return NewExprStmt(st.Pos(), b.lowerExpr(st.Expr, scope, ctx))
	case *ast.LetStmt:
		return b.lowerLetStmt(st, scope, ctx)
	case *ast.ReturnStmt:
		var value Expr
		if st.Value != nil {
			value = b.lowerExpr(st.Value, scope, ctx)
		}
		return NewReturn(st.Pos(), value)
	case *ast.Assignment:
		vid, _, ok := scope.Lookup(st.Assignee)
		if !ok {
			b.reportAt(diag.UndeclaredVariable{Name: st.Assignee}, st.Pos())
			return nil
		}
		return NewAssign(st.Pos(), vid, b.lowerExpr(st.Value, scope, ctx))
	case *ast.BreakStmt:
		return NewBreak(st.Pos())
	default:
		return nil
	}
}

// lowerLetStmt implements spec.md §4.7's type-resolution rule for
// let-bindings: the annotation is mandatory (its absence is a
// TypeInferenceRequired diagnostic, not a fatal error), and the
// initializer is translated best-effort so unrelated errors downstream
// still surface even if this one binding's value doesn't lower cleanly.
func (b *Builder) lowerLetStmt(st *ast.LetStmt, scope *Scope, ctx *bodyCtx) *LetStmt {
	var typ TypeId
	if st.Type == nil {
		b.reportAt(diag.TypeInferenceRequired{Name: st.Name}, st.Pos())
	} else {
		typ = b.resolveType(st.Type)
	}

	var value Expr
	if st.Value != nil {
		value = b.lowerExpr(st.Value, scope, ctx)
	}

	vid := ctx.alloc.alloc()
	scope.Declare(st.Name, vid, typ)
	return NewLetStmt(st.Pos(), vid, typ, value)
}

// lowerExpr translates the expression forms spec.md §4.7 lists as
// implemented in this stage (Block, Literal, FnCall) and stands in
// Unimplemented for the forms it explicitly defers to a later pass
// (control flow, unary/binary operators, variable lookup).
func (b *Builder) lowerExpr(e ast.Expr, scope *Scope, ctx *bodyCtx) Expr {
	switch expr := e.(type) {
	case *ast.Block:
		return b.lowerBlock(expr, scope, ctx)
	case *ast.Literal:
		return b.lowerLiteral(expr)
	case *ast.FnCall:
		return b.lowerFnCall(expr, scope, ctx)
	case *ast.If, *ast.While, *ast.For, *ast.Unary, *ast.Binary, *ast.Var:
		return NewUnimplemented(e.Pos(), formName(e))
	default:
		return NewUnimplemented(e.Pos(), "unknown")
	}
}

func formName(e ast.Expr) string {
	switch e.(type) {
	case *ast.If:
		return "If"
	case *ast.While:
		return "While"
	case *ast.For:
		return "For"
	case *ast.Unary:
		return "Unary"
	case *ast.Binary:
		return "Binary"
	case *ast.Var:
		return "Var"
	default:
		return "unknown"
	}
}

func (b *Builder) lowerLiteral(lit *ast.Literal) *Literal {
	switch lit.Kind {
	case ast.LitNumber:
		return NewNumberLiteral(lit.Pos(), lit.Num.String(), TypeId{})
	case ast.LitString:
		return NewStringLiteral(lit.Pos(), lit.Str, TypeId{})
	default:
		return NewBoolLiteral(lit.Pos(), lit.Bool, PrimitiveType(Bool))
	}
}

// lowerFnCall resolves a call's Path as a relative path rooted at the
// enclosing module and looks up the resulting FunctionId, per spec.md
// §4.7: "the AST carries path: [Identifier]; interpret it as relative
// starting with the enclosing module path, resolve to absolute, look up
// FunctionId. Unknown paths fail with FunctionNotFound."
func (b *Builder) lowerFnCall(call *ast.FnCall, scope *Scope, ctx *bodyCtx) Expr {
	rel := itempath.NewRelativeIdent(call.Path[0], call.Path[1:]...)
	abs, _ := rel.ToAbsolute(ctx.modulePath)

	id, ok := b.functionIDs[abs.String()]
	if !ok {
		b.reportAt(diag.FunctionNotFound{Path: abs.String()}, call.Pos())
		return nil
	}

	args := make([]Expr, 0, len(call.Args))
	for _, a := range call.Args {
		args = append(args, b.lowerExpr(a, scope, ctx))
	}
	return NewFnCall(call.Pos(), id, args)
}
