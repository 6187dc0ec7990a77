// Package control realizes the interpreter's non-local control flow —
// return, break, continue, thrown exceptions, rethrow and
// sys.terminate — as typed Go error values rather than the C++
// throw/catch of original_source/src/exceptions.cc. The recursive
// Eval functions in package processor return (value.Value, error) and
// the Exec functions return error; callers use errors.As to recognize
// one of these signals before treating an error as an ordinary
// RuntimeError.
package control

import (
	"fmt"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/value"
)

// Signal marks an error value as interpreter control flow rather than
// a genuine failure — the Go realization of spec §9's "typed
// unwinding events".
type Signal interface {
	error
	signal()
}

// Return unwinds out of the nearest enclosing function/lambda/task
// call with a value (spec §3 ReturnStmt; NULL when Value is absent).
type Return struct {
	Value value.Value
}

func (r *Return) Error() string { return "return" }
func (*Return) signal()         {}

// Break unwinds out of the nearest enclosing loop.
type Break struct{}

func (*Break) Error() string { return "break" }
func (*Break) signal()       {}

// Continue skips to the next iteration of the nearest enclosing loop.
type Continue struct{}

func (*Continue) Error() string { return "continue" }
func (*Continue) signal()       {}

// Condition is a raised user exception (`throw E(args...)`), carrying
// the exception element handler blocks bind to, grounded on
// CustomException in original_source/src/customexception.cc.
type Condition struct {
	Carrier *elements.ExceptionCarrier
	// SQLState is set instead of Carrier when the condition originates
	// from a failed SQL statement rather than a `throw`, so handler
	// dispatch can match on SQLSTATE (spec §4.5's handler precedence).
	SQLState string
}

func (c *Condition) Error() string {
	if c.Carrier != nil {
		return c.Carrier.String()
	}

	return fmt.Sprintf("SQL error, SQLSTATE %s", c.SQLState)
}
func (*Condition) signal() {}

// Rethrow re-raises the Condition currently being handled; it is only
// meaningful inside an exception handler body (processor.RuntimeError
// if seen elsewhere — an Open Question resolved in DESIGN.md).
type Rethrow struct {
	Info ast.SourceInfo
}

func (*Rethrow) Error() string { return "rethrow outside of an active handler" }
func (*Rethrow) signal()       {}

// Terminate unwinds the entire program (sys.terminate built-in),
// carrying the process exit code.
type Terminate struct {
	Code int
}

func (t *Terminate) Error() string { return fmt.Sprintf("terminate(%d)", t.Code) }
func (*Terminate) signal()         {}

// Assert reports a failed ASSERT statement, carrying the original
// source text for the diagnostic (spec §8 scenario 4) and exiting the
// program with engine.ExitAssert.
type Assert struct {
	Text string
	Info ast.SourceInfo
}

func (a *Assert) Error() string {
	return fmt.Sprintf("%s: assertion failed: %s", a.Info, a.Text)
}
func (*Assert) signal() {}
