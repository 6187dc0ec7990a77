package processor

import (
	"fmt"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/typetable"
	"github.com/informave/argon/value"
)

// functionType is the typetable.Type backing a FunctionDecl,
// registered in Pass1 (pass1visitor.cc: CustomFunctionType). Like
// taskType it wraps a single pre-built elements.Function and hands
// back the same pointer on every lookup, since a declared function
// carries no per-call state of its own.
type functionType struct {
	decl *ast.FunctionDecl
	fn   *elements.Function
}

var _ typetable.Type = (*functionType)(nil)

func (t *functionType) ID() ast.Identifier { return t.decl.ID }
func (t *functionType) Node() ast.Node     { return t.decl }
func (t *functionType) Builtin() bool      { return false }

func (t *functionType) NewInstance(args []value.Value, mode typetable.Mode) (elements.Element, error) {
	return t.fn, nil
}

// exceptionType is the typetable.Type backing an ExceptionDecl
// (pass1visitor.cc: CustomExceptionType). It records the declared
// exception id in the type table; Compile does not check `throw
// E(...)` or handler `ON EXCEPTION E` references against it, and
// exceptions are never instantiated through
// the normal resolve/call path (execThrow builds an
// elements.ExceptionCarrier directly from the AST identifier).
type exceptionType struct {
	decl *ast.ExceptionDecl
}

var _ typetable.Type = (*exceptionType)(nil)

func (t *exceptionType) ID() ast.Identifier { return t.decl.ID }
func (t *exceptionType) Node() ast.Node     { return t.decl }
func (t *exceptionType) Builtin() bool      { return false }

func (t *exceptionType) NewInstance(args []value.Value, mode typetable.Mode) (elements.Element, error) {
	return nil, &InternalError{Message: fmt.Sprintf("exception %s cannot be instantiated as a value", t.decl.ID)}
}
