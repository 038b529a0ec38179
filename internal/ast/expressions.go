package ast

import (
	"fmt"
	"strings"

	"github.com/sunshine-lang/sunc/internal/token"
)

// Expr is the interface for the expression forms of spec.md §3: "Block,
// If{cond,body,else_body?}, While, For, Unary{op,value}, Binary{op,left,
// right}, FnCall{path,params}, Var(Identifier), Literal{Number|String|
// Boolean}."
type Expr interface {
	Node
	exprNode()
}

// BlockExpr marker interface: If/While/For/Block satisfy it. "A block
// expression ... do[es] not require a trailing semicolon in statement
// position" (spec.md §3).
type BlockExpr interface {
	Expr
	isBlockExpr()
}

// If is `if COND BLOCK (else (BLOCK | If))?`.
type If struct {
	pos      Position
	Cond     Expr
	Body     *Block
	ElseBody Expr // nil, or a *Block, or a nested *If (for `else if`)
}

func NewIf(pos Position, cond Expr, body *Block, elseBody Expr) *If {
	return &If{pos: pos, Cond: cond, Body: body, ElseBody: elseBody}
}

func (e *If) Pos() Position  { return e.pos }
func (e *If) exprNode()      {}
func (e *If) isBlockExpr()   {}
func (e *If) String() string { return "If" }

// While is `while COND BLOCK`.
type While struct {
	pos  Position
	Cond Expr
	Body *Block
}

func NewWhile(pos Position, cond Expr, body *Block) *While {
	return &While{pos: pos, Cond: cond, Body: body}
}

func (e *While) Pos() Position  { return e.pos }
func (e *While) exprNode()      {}
func (e *While) isBlockExpr()   {}
func (e *While) String() string { return "While" }

// For is `for NAME in ITER BLOCK`.
type For struct {
	pos      Position
	Var      string
	Iterable Expr
	Body     *Block
}

func NewFor(pos Position, v string, iterable Expr, body *Block) *For {
	return &For{pos: pos, Var: v, Iterable: iterable, Body: body}
}

func (e *For) Pos() Position  { return e.pos }
func (e *For) exprNode()      {}
func (e *For) isBlockExpr()   {}
func (e *For) String() string { return fmt.Sprintf("For{%s}", e.Var) }

// Unary is `OP VALUE`, for prefix `- + !`.
type Unary struct {
	pos   Position
	Op    string
	Value Expr
}

func NewUnary(pos Position, op string, value Expr) *Unary {
	return &Unary{pos: pos, Op: op, Value: value}
}

func (e *Unary) Pos() Position  { return e.pos }
func (e *Unary) exprNode()      {}
func (e *Unary) String() string { return fmt.Sprintf("Unary{%s}", e.Op) }

// Binary is `LEFT OP RIGHT`.
type Binary struct {
	pos   Position
	Op    string
	Left  Expr
	Right Expr
}

func NewBinary(pos Position, op string, left, right Expr) *Binary {
	return &Binary{pos: pos, Op: op, Left: left, Right: right}
}

func (e *Binary) Pos() Position  { return e.pos }
func (e *Binary) exprNode()      {}
func (e *Binary) String() string { return fmt.Sprintf("Binary{%s}", e.Op) }

// FnCall is `PATH :: SEGMENTS (args)`. Path is always at least one
// segment long; a bare `f(...)` call is the one-segment case, resolving
// spec.md §9's open question in favor of the multi-segment AST form.
type FnCall struct {
	pos  Position
	Path []string
	Args []Expr
}

func NewFnCall(pos Position, path []string, args []Expr) *FnCall {
	return &FnCall{pos: pos, Path: path, Args: args}
}

func (e *FnCall) Pos() Position { return e.pos }
func (e *FnCall) exprNode()     {}
func (e *FnCall) String() string {
	return fmt.Sprintf("FnCall{%s, args: %d}", strings.Join(e.Path, "::"), len(e.Args))
}

// Var is a bare identifier used as a value.
type Var struct {
	pos  Position
	Name string
}

func NewVar(pos Position, name string) *Var {
	return &Var{pos: pos, Name: name}
}

func (e *Var) Pos() Position  { return e.pos }
func (e *Var) exprNode()      {}
func (e *Var) String() string { return fmt.Sprintf("Var{%s}", e.Name) }

// LiteralKind distinguishes the payload carried by a Literal node.
type LiteralKind int

const (
	LitNumber LiteralKind = iota
	LitString
	LitBool
)

// Literal is `Number | String | Boolean`.
type Literal struct {
	pos    Position
	Kind   LiteralKind
	Num    token.Number
	Str    string
	Bool   bool
}

func NewNumberLiteral(pos Position, n token.Number) *Literal {
	return &Literal{pos: pos, Kind: LitNumber, Num: n}
}

func NewStringLiteral(pos Position, s string) *Literal {
	return &Literal{pos: pos, Kind: LitString, Str: s}
}

func NewBoolLiteral(pos Position, b bool) *Literal {
	return &Literal{pos: pos, Kind: LitBool, Bool: b}
}

func (e *Literal) Pos() Position { return e.pos }
func (e *Literal) exprNode()     {}
func (e *Literal) String() string {
	switch e.Kind {
	case LitNumber:
		return fmt.Sprintf("Literal{%s}", e.Num.String())
	case LitString:
		return fmt.Sprintf("Literal{%q}", e.Str)
	default:
		return fmt.Sprintf("Literal{%v}", e.Bool)
	}
}
