package elements

import (
	"github.com/informave/argon/ast"
	"github.com/informave/argon/value"
)

// Function is a user-declared function element, grounded on
// original_source/src/function.cc. It carries only declaration
// metadata and its lexical closure; invocation (binding arguments,
// running the body, handling ReturnStmt) is driven by
// processor.Processor.Call, keeping the element that represents a
// symbol separate from the component that drives it.
type Function struct {
	ID      ast.Identifier
	Args    []ast.Identifier
	Body    *ast.CompoundStmt
	Closure Scope // nil for top-level functions
	Info    ast.SourceInfo
}

// Value reports NULL: a function element has no scalar value of its
// own, only a call result (spec §4.8's function-call expression form).
func (f *Function) Value() value.Value { return value.Null() }

func (f *Function) String() string             { return "function " + f.ID.String() }
func (f *Function) ElemName() string           { return f.ID.String() }
func (f *Function) TypeName() string           { return "function" }
func (f *Function) SourceInfo() ast.SourceInfo { return f.Info }

