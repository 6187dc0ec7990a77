// Package typetable holds the registry of declared and built-in types
// (table, sql, view, procedure, and user function/task/exception
// declarations) that the symbol table looks up to instantiate runtime
// elements. Grounded on original_source/src/typetable.cc and the
// Type class in original_source/include/argon/dtsengine.hh.
package typetable

import (
	"fmt"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/value"
)

// Mode selects how a type instantiates its runtime element, mirroring
// the original's Type::mode_t (DEFAULT_MODE, READ_MODE, INSERT_MODE).
type Mode int

const (
	DefaultMode Mode = iota
	ReadMode
	InsertMode
)

func (m Mode) String() string {
	switch m {
	case ReadMode:
		return "READ_MODE"
	case InsertMode:
		return "INSERT_MODE"
	default:
		return "DEFAULT_MODE"
	}
}

// Type is a declared or built-in type that can be instantiated into a
// runtime Element. Declared table/sql/view/procedure templates, user
// functions, tasks and exceptions implement it; the anonymous
// table()/sql()/genrange()/expand()/compact() operands and sequences
// are not registered as types.
type Type interface {
	ID() ast.Identifier
	Node() ast.Node // nil for built-in types
	Builtin() bool
	NewInstance(args []value.Value, mode Mode) (elements.Element, error)
}

// TypeTable is the flat registry of every declared type in a program,
// keyed by identifier. Lookup is case-insensitive (ast.Identifier).
//
// The original frees its heap of owned Type* pointers in reverse
// insertion order on destruction because later types can depend on
// earlier ones (e.g. a Sql type referencing a Conn). Go's GC makes
// that bookkeeping unnecessary; the ordered slice is kept only so
// All can report types in declaration order.
type TypeTable struct {
	types map[string]Type
	order []Type
}

// New returns an empty TypeTable.
func New() *TypeTable {
	return &TypeTable{types: make(map[string]Type)}
}

// Add registers typ under its own ID. It is an error to register the
// same identifier twice (original_source/src/typetable.cc: "duplicated
// type error").
func (tt *TypeTable) Add(typ Type) error {
	id := typ.ID()
	if id.Lower() == "" {
		return fmt.Errorf("typetable: empty type id")
	}

	key := id.Lower()
	if _, exists := tt.types[key]; exists {
		return fmt.Errorf("typetable: duplicated type error: %s", id)
	}

	tt.types[key] = typ
	tt.order = append(tt.order, typ)

	return nil
}

// Find looks up a type by identifier, reporting an error in the
// original's "type not found" phrasing when absent.
func (tt *TypeTable) Find(name ast.Identifier) (Type, error) {
	t, ok := tt.types[name.Lower()]
	if !ok {
		return nil, fmt.Errorf("type not found: %s", name)
	}

	return t, nil
}

// Has reports whether name is registered, without the lookup error.
func (tt *TypeTable) Has(name ast.Identifier) bool {
	_, ok := tt.types[name.Lower()]
	return ok
}

// All returns every registered type in declaration order.
func (tt *TypeTable) All() []Type {
	out := make([]Type, len(tt.order))
	copy(out, tt.order)

	return out
}
