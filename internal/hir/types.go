// Package hir implements the two-phase lowering from an itemtable.Table
// to a High-Level Intermediate Representation, per spec.md §4.7: Phase A
// declares every item (so forward references resolve), Phase B translates
// function bodies through lexical scopes. Grounded on the teacher's
// internal/ir package shape (a Builder/Transformer pair turning AST into a
// typed representation) but built around this language's actual type
// model — TypeId, VarId, Scope — rather than the teacher's Go-codegen IR.
package hir

import "fmt"

// Primitive is the closed set of built-in scalar types from spec.md §3:
// "{bool, i8..i64, isize, u8..u64, usize, f32}".
type Primitive int

const (
	Bool Primitive = iota
	I8
	I16
	I32
	I64
	Isize
	U8
	U16
	U32
	U64
	Usize
	F32
)

var primitiveNames = map[string]Primitive{
	"bool": Bool, "i8": I8, "i16": I16, "i32": I32, "i64": I64, "isize": Isize,
	"u8": U8, "u16": U16, "u32": U32, "u64": U64, "usize": Usize, "f32": F32,
}

var primitiveText = func() map[Primitive]string {
	m := make(map[Primitive]string, len(primitiveNames))
	for name, p := range primitiveNames {
		m[p] = name
	}
	return m
}()

func (p Primitive) String() string { return primitiveText[p] }

// TypeId is either a primitive or a stable index into a TypeTable's
// compound (struct) registry, per spec.md §3: "either a primitive ...
// or a compound index into the type table."
type TypeId struct {
	primitive Primitive
	compound  int // meaningful only when isCompound is true
	isCompound bool
	valid      bool
}

// PrimitiveType builds a TypeId for one of the built-in scalars.
func PrimitiveType(p Primitive) TypeId { return TypeId{primitive: p, valid: true} }

// CompoundType builds a TypeId referencing struct slot idx.
func CompoundType(idx int) TypeId { return TypeId{compound: idx, isCompound: true, valid: true} }

// IsValid reports whether id was ever assigned (the zero value is not a
// legal type — it marks "resolution failed" in permissive contexts like
// an untyped LetStmt, per spec.md §4.7).
func (id TypeId) IsValid() bool { return id.valid }

// IsCompound reports whether id names a user-defined struct.
func (id TypeId) IsCompound() bool { return id.valid && id.isCompound }

// CompoundIndex returns the struct slot id refers to. Only meaningful
// when IsCompound() is true.
func (id TypeId) CompoundIndex() int { return id.compound }

// Primitive returns the scalar kind id refers to. Only meaningful when
// IsCompound() is false.
func (id TypeId) Primitive() Primitive { return id.primitive }

func (id TypeId) String() string {
	if !id.valid {
		return "<unresolved>"
	}
	if id.isCompound {
		return fmt.Sprintf("struct#%d", id.compound)
	}
	return id.primitive.String()
}

// TypeTable is the mapping from identifier to TypeId plus the
// monotone-growing vector of struct field maps described in spec.md §3.
// Compound IDs are stable indices into structFields and are never reused,
// even if the struct that owns one is later found to conflict with an
// earlier declaration (spec.md §4.7's TypeAlreadyDefined path simply
// refuses to register the second name; it does not free the slot that
// would have been allocated for it, since callers allocate only after the
// name-conflict check passes).
type TypeTable struct {
	names        map[string]TypeId
	structFields []map[string]TypeId
	structNames  []string // parallel to structFields, for diagnostics
}

// NewTypeTable returns a TypeTable pre-populated with every primitive
// name from spec.md §3.
func NewTypeTable() *TypeTable {
	t := &TypeTable{names: make(map[string]TypeId, len(primitiveNames))}
	for name, p := range primitiveNames {
		t.names[name] = PrimitiveType(p)
	}
	return t
}

// Get resolves an identifier to a TypeId, per spec.md §4.7: "resolve each
// struct's field types via TypeTable.get (looks up identifier → TypeId,
// falling back to primitive parsing)". Primitives are already seeded into
// names at construction, so a single map lookup covers both cases.
func (t *TypeTable) Get(name string) (TypeId, bool) {
	id, ok := t.names[name]
	return id, ok
}

// DeclareStruct allocates a fresh compound slot for name and registers
// name → TypeId in this table, unless name is already declared (a
// primitive or an earlier struct), in which case it reports the
// conflict via the second return value. The newly allocated slot starts
// with no fields; SetFields populates it once every name in the crate is
// known (spec.md §4.7 Phase A, steps 1 and 3 are split for this reason).
func (t *TypeTable) DeclareStruct(name string) (TypeId, bool) {
	if _, exists := t.names[name]; exists {
		return TypeId{}, false
	}
	idx := len(t.structFields)
	t.structFields = append(t.structFields, nil)
	t.structNames = append(t.structNames, name)
	id := CompoundType(idx)
	t.names[name] = id
	return id, true
}

// SetFields records the resolved field map for the struct at idx.
func (t *TypeTable) SetFields(idx int, fields map[string]TypeId) {
	t.structFields[idx] = fields
}

// Fields returns the field map for the struct at idx.
func (t *TypeTable) Fields(idx int) map[string]TypeId {
	return t.structFields[idx]
}

// StructName returns the declared name of the struct at idx, for
// diagnostics and pretty-printing.
func (t *TypeTable) StructName(idx int) string {
	return t.structNames[idx]
}
