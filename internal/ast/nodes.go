// Package ast defines the abstract syntax tree produced by the parser for
// the sunshine language described in spec.md §3-4. The tagged-union-via-
// interface-plus-type-switch shape, the unexported pos field, and the
// NewX constructor convention all follow the teacher repo's
// internal/ast/nodes.go.
package ast

import (
	"fmt"

	"github.com/sunshine-lang/sunc/internal/token"
)

// Position aliases token.Position so callers don't need to import token
// just to hold a node's location.
type Position = token.Position

// Node is the base interface every AST node satisfies.
type Node interface {
	Pos() Position
	String() string
}

// Visibility is Item's public/private flag, per spec.md §3.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// Crate is the AST root: a synthetic top-level module owning every
// file-level item, per spec.md §4.4 ("Top-level parsing yields a
// synthetic module named from the crate's root").
type Crate struct {
	pos   Position
	Name  string
	Items []Item
}

func NewCrate(pos Position, name string, items []Item) *Crate {
	return &Crate{pos: pos, Name: name, Items: items}
}

func (c *Crate) Pos() Position { return c.pos }
func (c *Crate) String() string {
	return fmt.Sprintf("Crate{%s, items: %d}", c.Name, len(c.Items))
}

// Item is the interface for fn/struct/mod declarations.
type Item interface {
	Node
	ItemName() string
	ItemVisibility() Visibility
	itemNode()
}

// Function is `fn NAME(params) (-> TYPE)? block`.
type Function struct {
	pos        Position
	Visibility Visibility
	Name       string
	Params     []*Param
	ReturnType Type // nil means unit
	Body       *Block
}

func NewFunction(pos Position, vis Visibility, name string, params []*Param, ret Type, body *Block) *Function {
	return &Function{pos: pos, Visibility: vis, Name: name, Params: params, ReturnType: ret, Body: body}
}

func (f *Function) Pos() Position          { return f.pos }
func (f *Function) ItemName() string       { return f.Name }
func (f *Function) ItemVisibility() Visibility { return f.Visibility }
func (f *Function) itemNode()              {}
func (f *Function) String() string         { return fmt.Sprintf("Function{%s}", f.Name) }

// Param is `NAME : TYPE`.
type Param struct {
	pos  Position
	Name string
	Type Type
}

func NewParam(pos Position, name string, typ Type) *Param {
	return &Param{pos: pos, Name: name, Type: typ}
}

func (p *Param) Pos() Position  { return p.pos }
func (p *Param) String() string { return fmt.Sprintf("Param{%s}", p.Name) }

// Struct is `struct NAME { fields }`.
type Struct struct {
	pos        Position
	Visibility Visibility
	Name       string
	Fields     []*Field
}

func NewStruct(pos Position, vis Visibility, name string, fields []*Field) *Struct {
	return &Struct{pos: pos, Visibility: vis, Name: name, Fields: fields}
}

func (s *Struct) Pos() Position          { return s.pos }
func (s *Struct) ItemName() string       { return s.Name }
func (s *Struct) ItemVisibility() Visibility { return s.Visibility }
func (s *Struct) itemNode()              {}
func (s *Struct) String() string         { return fmt.Sprintf("Struct{%s, fields: %d}", s.Name, len(s.Fields)) }

// Field is `NAME : TYPE` inside a struct body.
type Field struct {
	pos  Position
	Name string
	Type Type
}

func NewField(pos Position, name string, typ Type) *Field {
	return &Field{pos: pos, Name: name, Type: typ}
}

func (f *Field) Pos() Position  { return f.pos }
func (f *Field) String() string { return fmt.Sprintf("Field{%s}", f.Name) }

// ModuleKind distinguishes `mod NAME { ... }` from `mod NAME;`.
type ModuleKind int

const (
	Inline ModuleKind = iota
	Loadable
)

// Module is `mod NAME { item* }` (Inline) or `mod NAME ;` (Loadable).
type Module struct {
	pos        Position
	Visibility Visibility
	Name       string
	Kind       ModuleKind
	Items      []Item // only meaningful when Kind == Inline
}

func NewModule(pos Position, vis Visibility, name string, kind ModuleKind, items []Item) *Module {
	return &Module{pos: pos, Visibility: vis, Name: name, Kind: kind, Items: items}
}

func (m *Module) Pos() Position          { return m.pos }
func (m *Module) ItemName() string       { return m.Name }
func (m *Module) ItemVisibility() Visibility { return m.Visibility }
func (m *Module) itemNode()              {}
func (m *Module) String() string {
	if m.Kind == Loadable {
		return fmt.Sprintf("Module{%s, loadable}", m.Name)
	}
	return fmt.Sprintf("Module{%s, items: %d}", m.Name, len(m.Items))
}

// Type is the interface for type expressions. In this stage, only a
// single-identifier path type is supported (spec.md §4.4's ParseType).
type Type interface {
	Node
	typeNode()
}

// PathType is a bare type name, e.g. `i32`, `bool`, or a struct name.
type PathType struct {
	pos  Position
	Name string
}

func NewPathType(pos Position, name string) *PathType {
	return &PathType{pos: pos, Name: name}
}

func (t *PathType) Pos() Position  { return t.pos }
func (t *PathType) typeNode()      {}
func (t *PathType) String() string { return fmt.Sprintf("Type{%s}", t.Name) }
