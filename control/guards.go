package control

import (
	"github.com/informave/argon/elements"
	"github.com/informave/argon/symboltable"
)

// stackFrame is the subset of processor.Processor's call stack that
// the guards below need, kept as an interface so this package does
// not import processor (which imports control).
type stackFrame interface {
	Push(elements.Element)
	Pop()
}

// StackFrame pushes elem onto stack and returns a cleanup that pops
// it, the Go defer-based realization of the original's RAII
// call-stack guards in processor.cc (ScopedStackPush).
func StackFrame(stack stackFrame, elem elements.Element) func() {
	stack.Push(elem)
	return stack.Pop
}

// SubSymbols opens a child scope of parent and returns a cleanup that
// pops it, invalidating any symboltable.Ref handles issued against it.
func SubSymbols(parent *symboltable.SymbolTable) (*symboltable.SymbolTable, func()) {
	child := parent.Push()
	return child, child.Pop
}

// ReleaseException clears the handler's "currently active exception"
// slot on return, the defer-based counterpart to the original scoping
// an exception handler's catch variable to its handler body. The
// returned cleanup calls setActive(nil) once the handler body returns.
func ReleaseException(setActive func(*Condition)) func() {
	return func() { setActive(nil) }
}
