// Package elements defines the runtime value carriers produced by
// instantiating a typetable.Type: connections, sequences, tasks,
// functions, lambdas and the catch-all ValueElement wrapping a plain
// value.Value. Grounded on the Element base class in
// original_source/include/argon/dtsengine.hh and its concrete
// subclasses (connection.cc, sequence.cc, function.cc, lambda.cc,
// task.cc).
package elements

import (
	"strconv"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/value"
)

// Element is the common interface of every runtime object a symbol
// table slot can hold, mirroring the original's Element base class
// (_value/_string/_name/_type/getSourceInfo).
type Element interface {
	Value() value.Value
	String() string
	ElemName() string
	TypeName() string
	SourceInfo() ast.SourceInfo
}

// Scope is the minimal lookup surface a closure needs to resolve
// free identifiers against its defining scope. symboltable.SymbolTable
// satisfies this interface; declaring it here (rather than importing
// symboltable) keeps elements free of a dependency that would cycle
// back through symboltable's ownership of Element values.
type Scope interface {
	Find(name ast.Identifier) (Element, error)
}

// ValueElement wraps a plain value.Value so it can live in a symbol
// table slot alongside connections, tasks and functions.
type ValueElement struct {
	Name string
	Info ast.SourceInfo
	Val  value.Value
}

func NewValueElement(name string, info ast.SourceInfo, v value.Value) *ValueElement {
	return &ValueElement{Name: name, Info: info, Val: v}
}

func (e *ValueElement) Value() value.Value         { return e.Val }
func (e *ValueElement) String() string             { return e.Val.Str() }
func (e *ValueElement) ElemName() string           { return e.Name }
func (e *ValueElement) TypeName() string           { return "value" }
func (e *ValueElement) SourceInfo() ast.SourceInfo { return e.Info }

// Column is an lvalue/rvalue column selector, either by position or
// by name, tagged for whether it targets the result object (`%col`)
// or the main object (`$col`).
type Column struct {
	Result bool
	ByName bool
	Name   string
	Number int
}

func (c Column) String() string {
	prefix := "$"
	if c.Result {
		prefix = "%"
	}

	if c.ByName {
		return prefix + c.Name
	}

	return prefix + strconv.Itoa(c.Number)
}
