// Package itemtable implements the path-keyed symbol table of spec.md §3
// and §4.5: a map from absolute path to declared item, plus an ordered
// list of rejected duplicate declarations.
package itemtable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sunshine-lang/sunc/internal/ast"
	"github.com/sunshine-lang/sunc/internal/itempath"
)

// Duplicate records a later declaration that collided with an existing
// entry; the original in Table.declared is left untouched.
type Duplicate struct {
	Path itempath.Absolute
	Item ast.Item
}

// Table is the ItemTable of spec.md §4.5.
type Table struct {
	declared   map[itempath.Absolute]ast.Item
	order      []itempath.Absolute // insertion order, for deterministic iteration/printing
	duplicated []Duplicate
}

// New returns an empty Table.
func New() *Table {
	return &Table{declared: make(map[itempath.Absolute]ast.Item)}
}

// TryInsert computes path = scope + item.Name and attempts to insert,
// per spec.md §4.5. On conflict, the entry is appended to Duplicated
// instead of replacing the original.
func (t *Table) TryInsert(scope itempath.Absolute, item ast.Item) itempath.Absolute {
	path := scope.Join(item.ItemName())
	if _, exists := t.declared[path]; exists {
		t.duplicated = append(t.duplicated, Duplicate{Path: path, Item: item})
		return path
	}
	t.declared[path] = item
	t.order = append(t.order, path)
	return path
}

// Get looks up a previously declared item by its absolute path.
func (t *Table) Get(path itempath.Absolute) (ast.Item, bool) {
	item, ok := t.declared[path]
	return item, ok
}

// Duplicated returns every declaration that lost a path conflict, in the
// order it was rejected.
func (t *Table) Duplicated() []Duplicate {
	return t.duplicated
}

// Extend merges other into t by re-running TryInsert for every declared
// entry of other (each re-resolved against its own recorded path's
// parent scope), per spec.md §4.5: "extend(other) merges by re-running
// try_insert for each entry."
func (t *Table) Extend(other *Table) {
	for _, path := range other.order {
		item := other.declared[path]
		scope, ok := path.Pop(1)
		if !ok {
			scope = itempath.NewAbsolute(path.Crate)
		}
		t.TryInsert(scope, item)
	}
	t.duplicated = append(t.duplicated, other.duplicated...)
}

// Each iterates declared entries in insertion order.
func (t *Table) Each(fn func(itempath.Absolute, ast.Item)) {
	for _, path := range t.order {
		fn(path, t.declared[path])
	}
}

// Len returns the number of declared (non-duplicate) entries.
func (t *Table) Len() int { return len(t.order) }

// Pretty renders the table deterministically (sorted by absolute path),
// standing in for the out-of-scope external pretty-printer spec.md §6
// names as the CLI's success output. Grounded on the teacher's
// internal/ast/printer.go indentation convention.
func (t *Table) Pretty() string {
	paths := make([]string, 0, len(t.order))
	byPath := make(map[string]itempath.Absolute, len(t.order))
	for _, p := range t.order {
		s := p.String()
		paths = append(paths, s)
		byPath[s] = p
	}
	sort.Strings(paths)

	var b strings.Builder
	for _, s := range paths {
		item := t.declared[byPath[s]]
		fmt.Fprintf(&b, "%s :: %s\n", s, item.String())
	}
	for _, d := range t.duplicated {
		fmt.Fprintf(&b, "%s :: %s (duplicate)\n", d.Path.String(), d.Item.String())
	}
	return b.String()
}
