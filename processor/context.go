package processor

import (
	"github.com/informave/argon/ast"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/objects"
	"github.com/informave/argon/symboltable"
	"github.com/informave/argon/value"
)

// Context is the polymorphic base spec §4.4 gives to anything that owns
// a scope: GlobalContext, Function, Lambda, Task (and its four
// variants), and the object-backed contexts a task's phases run
// against. It is satisfied by *baseContext, embedded into every
// concrete context below.
type Context interface {
	Symbols() *symboltable.SymbolTable
	Resolve(name ast.Identifier) (elements.Element, error)
	MainObject() (objects.Object, error)
	ResultObject() (objects.Object, error)
	DestObject() (objects.Object, error)
	CurrentException() *elements.ExceptionCarrier
	SetException(*elements.ExceptionCarrier)
	ReleaseException()

	// LastInsertRowID answers `%%`, the driver-reported last-insert id
	// of the task's most recent destination insert (spec §4.8's ResId
	// rule); it is NULL before any insert, after a failed one, or when
	// the object reported no id. Contexts with neither a main nor a
	// destination object fail.
	LastInsertRowID() (value.Value, error)

	// SetColumn stages a column-assign statement's evaluated value for
	// the destination object, buffered until the task drives the
	// object's single-row Insert (spec §4.5.3's "rules performs column
	// assignments into the dest" step). Contexts with no destination
	// object fail the same way DestObject does.
	SetColumn(col elements.Column, v value.Value) error
}

// baseContext implements the common Context surface; concrete contexts
// embed it and override MainObject/ResultObject/DestObject where they
// have the concept (grounded on the original's Context base class in
// dtsengine.hh: most overrides simply throw "has no main/result/dest
// object").
type baseContext struct {
	syms *symboltable.SymbolTable
	exc  *elements.ExceptionCarrier
}

func newBaseContext(parent *symboltable.SymbolTable) baseContext {
	return baseContext{syms: symboltable.New(parent)}
}

func (c *baseContext) Symbols() *symboltable.SymbolTable { return c.syms }

func (c *baseContext) CurrentException() *elements.ExceptionCarrier { return c.exc }
func (c *baseContext) SetException(e *elements.ExceptionCarrier)    { c.exc = e }
func (c *baseContext) ReleaseException()                            { c.exc = nil }

func (c *baseContext) MainObject() (objects.Object, error) {
	return nil, &RuntimeError{Message: "context has no main object"}
}

func (c *baseContext) ResultObject() (objects.Object, error) {
	return nil, &RuntimeError{Message: "context has no result object"}
}

func (c *baseContext) DestObject() (objects.Object, error) {
	return nil, &RuntimeError{Message: "context has no destination object"}
}

func (c *baseContext) LastInsertRowID() (value.Value, error) {
	return value.Value{}, &RuntimeError{Message: "context has no main object"}
}

func (c *baseContext) SetColumn(col elements.Column, v value.Value) error {
	return &RuntimeError{Message: "context has no destination object"}
}

// Resolve looks up name in the context's scope, performing one
// indirect step when the found symbol is a ValueElement naming another
// element (spec §4.4's late-bound identifier rule) — used, for
// instance, by a CONNECTION id stored in a variable and passed as a
// task template argument.
func (c *baseContext) Resolve(name ast.Identifier) (elements.Element, error) {
	elem, err := c.syms.Find(name)
	if err != nil {
		return nil, &NotDeclaredError{ID: name.String()}
	}

	if ve, ok := elem.(*elements.ValueElement); ok && ve.Val.Kind() == value.KindString {
		if next, err := c.syms.Find(ast.Identifier(ve.Val.Str())); err == nil {
			return next, nil
		}
	}

	return elem, nil
}

// ResolveAs resolves name and type-asserts it to T, the Go stand-in for
// the original's resolve<T>() template method.
func ResolveAs[T elements.Element](ctx Context, name ast.Identifier) (T, error) {
	var zero T

	elem, err := ctx.Resolve(name)
	if err != nil {
		return zero, err
	}

	t, ok := elem.(T)
	if !ok {
		return zero, &NotDeclaredError{ID: name.String()}
	}

	return t, nil
}

// GlobalContext is the program's top-level scope, grounded on
// original_source/src/globalcontext.cc. It has no main/result/dest
// object (those calls fail with a runtime error, same as the original).
type GlobalContext struct {
	baseContext
}

// NewGlobalContext creates the root scope a compiled program runs in.
func NewGlobalContext() *GlobalContext {
	return &GlobalContext{baseContext: newBaseContext(nil)}
}

// callContext is the scope a plain FUNCTION or LAMBDA body executes
// in: like GlobalContext it has no main/result/dest object, but its
// symbol table is the caller-built child scope carrying the bound
// argument values rather than a fresh global one.
type callContext struct {
	baseContext
}

func newCallContext(syms *symboltable.SymbolTable) *callContext {
	return &callContext{baseContext: baseContext{syms: syms}}
}
