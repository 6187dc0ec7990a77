// Package symboltable implements stacked lexical scopes that own the
// elements.Element values declared within them, grounded on
// original_source/src/symboltable.cc. Each SymbolTable is a single
// scope frame linked to its parent; resolution walks up the parent
// chain exactly as SymbolTable::find_element does.
//
// Ownership is arena-style rather than the original's raw-pointer heap
// with LIFO destructor teardown: a scope's elements live in a single
// backing slice, and a Ref handle carries a generation counter so
// holding a stale reference after the scope is popped fails loudly
// (ErrDeadRef) instead of dereferencing freed memory (spec §9).
package symboltable

import (
	"errors"
	"fmt"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/elements"
)

// ErrDeadRef is returned by Ref.Get when the scope that owns the
// referenced slot has already been popped.
var ErrDeadRef = errors.New("symboltable: reference to a popped scope")

// SymbolTable is one lexical scope: a name→slot map plus the backing
// slice of owned elements, linked to an optional parent scope.
type SymbolTable struct {
	parent     *SymbolTable
	names      map[string]int
	slots      []elements.Element
	generation uint64
	dead       bool
}

// New creates a scope whose unresolved lookups fall through to parent
// (nil for the outermost/global scope).
func New(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{parent: parent, names: make(map[string]int)}
}

// Push creates a new child scope of st.
func (st *SymbolTable) Push() *SymbolTable {
	return New(st)
}

// Pop invalidates every Ref issued against this scope. The scope
// itself remains usable as a plain *SymbolTable (Go's GC reclaims its
// slots once nothing references it); Pop only marks outstanding Refs
// dead, mirroring the original's point-of-destruction semantics.
func (st *SymbolTable) Pop() {
	st.dead = true
	st.generation++
}

// Add registers name in this scope, returning a live Ref to it. It is
// an error to register the same identifier twice in the same scope
// (original: "duplicated symbol error").
func (st *SymbolTable) Add(name ast.Identifier, elem elements.Element) (Ref, error) {
	key := name.Lower()
	if key == "" {
		return Ref{}, fmt.Errorf("symboltable: empty symbol name")
	}

	if _, exists := st.names[key]; exists {
		return Ref{}, fmt.Errorf("duplicated symbol error: %s", name)
	}

	slot := len(st.slots)
	st.slots = append(st.slots, elem)
	st.names[key] = slot

	return Ref{scope: st, slot: slot, generation: st.generation}, nil
}

// Find resolves name in this scope, then its ancestors, matching
// SymbolTable::find_element's parent-chain walk. It satisfies
// elements.Scope.
func (st *SymbolTable) Find(name ast.Identifier) (elements.Element, error) {
	key := name.Lower()
	for s := st; s != nil; s = s.parent {
		if slot, ok := s.names[key]; ok {
			return s.slots[slot], nil
		}
	}

	return nil, fmt.Errorf("element not found: %s", name)
}

// Has reports whether name resolves in this scope or an ancestor.
func (st *SymbolTable) Has(name ast.Identifier) bool {
	_, err := st.Find(name)
	return err == nil
}

// Set overwrites the element bound to an existing name in the nearest
// scope that declares it (used by assignment statements rebinding a
// variable's current value). It returns an error if name is undeclared.
func (st *SymbolTable) Set(name ast.Identifier, elem elements.Element) error {
	key := name.Lower()
	for s := st; s != nil; s = s.parent {
		if slot, ok := s.names[key]; ok {
			s.slots[slot] = elem
			return nil
		}
	}

	return fmt.Errorf("element not found: %s", name)
}

// Ref is a liveness-checked handle to an element owned by some scope,
// the arena+generation replacement for a raw pointer (spec §9).
type Ref struct {
	scope      *SymbolTable
	slot       int
	generation uint64
}

// Get dereferences the handle, failing with ErrDeadRef if the owning
// scope was popped since the Ref was issued.
func (r Ref) Get() (elements.Element, error) {
	if r.scope == nil {
		return nil, ErrDeadRef
	}

	if r.scope.dead || r.scope.generation != r.generation {
		return nil, ErrDeadRef
	}

	return r.scope.slots[r.slot], nil
}

// Valid reports whether the handle can still be dereferenced.
func (r Ref) Valid() bool {
	_, err := r.Get()
	return err == nil
}
