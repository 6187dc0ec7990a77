// Package processor is Argon's AST-walking interpreter core: the
// compiler passes that register declared types and instantiate global
// elements, the task execution engine (VOID/FETCH/STORE/TRANSFER), the
// expression evaluator, and the context hierarchy that backs $col/%col/
// resolve<T> lookups. Grounded on original_source/src/processor.cc,
// pass1visitor.cc, pass2visitor.cc, task.cc and its four subclasses,
// visitors.cc and globalcontext.cc.
package processor

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/informave/argon/ast"
)

// Sentinel errors so callers can classify failures with errors.Is,
// mirroring the original's exceptions.hh hierarchy (Exception ->
// NotDeclared/ConnectionErr/SyntaxError/RuntimeError/FieldNotFound/
// InternalError) collapsed into Go's flat error-wrapping idiom.
var (
	ErrSemantic      = errors.New("semantic error")
	ErrRuntime       = errors.New("runtime error")
	ErrFieldNotFound = errors.New("field not found")
	ErrConnection    = errors.New("connection error")
	ErrNotDeclared   = errors.New("not declared")
	ErrInternal      = errors.New("internal error")
)

// SemanticDiagnostic is one entry of a failed compile, carrying the
// severity/message/source-info triple spec §4.1 requires.
type SemanticDiagnostic struct {
	Severity string // "error" or "warning"
	Message  string
	Info     ast.SourceInfo
}

// SemanticError aggregates every diagnostic produced by a failed
// Compile; no partial state survives it (spec §4.1).
type SemanticError struct {
	Diagnostics []SemanticDiagnostic
}

func (e *SemanticError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "semantic error"
	}

	return fmt.Sprintf("semantic error: %s (and %d more)", e.Diagnostics[0].Message, len(e.Diagnostics)-1)
}

func (e *SemanticError) Unwrap() error { return ErrSemantic }

// RuntimeError wraps a failure raised while executing compiled code,
// annotated with the call stack active at the point of failure
// (grounded on RuntimeError::RuntimeError(Context&) building a
// LastError trace from Processor::getStack()).
type RuntimeError struct {
	Message string
	Stack   []string
	Info    ast.SourceInfo
}

func (e *RuntimeError) Error() string {
	if len(e.Stack) == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s\n%s", e.Message, traceString(e.Stack))
}

func (e *RuntimeError) Unwrap() error { return ErrRuntime }

func traceString(stack []string) string {
	s := ""
	for i, frame := range stack {
		if i > 0 {
			s += "\n"
		}

		s += fmt.Sprintf("  in %s", frame)
	}

	return s
}

// AddSourceInfo prepends "In file <info>" to the message, matching
// RuntimeError::addSourceInfo's use when a column-resolution error
// bubbles out of EvalExprVisitor's column-node handling.
func (e *RuntimeError) AddSourceInfo(info ast.SourceInfo) *RuntimeError {
	e.Message = fmt.Sprintf("In file %s: %s", info, e.Message)
	return e
}

// FieldNotFoundError is RuntimeError's subtype for a missing column
// name/position on the underlying driver result.
type FieldNotFoundError struct {
	Field string
	Info  ast.SourceInfo
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field not found: %s", e.Field)
}

func (e *FieldNotFoundError) Unwrap() error { return ErrFieldNotFound }

// ConnectionError reports a declared CONNECTION that the embedder
// never supplied, or that failed isConnected() (pass2visitor.cc's
// ConnNode handling).
type ConnectionError struct {
	ID string
}

func (e *ConnectionError) Error() string { return fmt.Sprintf("connection error: %s", e.ID) }
func (e *ConnectionError) Unwrap() error { return ErrConnection }

// NotDeclaredError reports a resolve<T>/createFunction lookup against
// an identifier with no matching type/symbol.
type NotDeclaredError struct {
	ID string
}

func (e *NotDeclaredError) Error() string { return fmt.Sprintf("not declared: %s", e.ID) }
func (e *NotDeclaredError) Unwrap() error { return ErrNotDeclared }

// InternalError mirrors ARGON_ICERR: a condition the interpreter
// itself asserts, never expected to surface from well-formed input.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return "internal compiler error: " + e.Message }
func (e *InternalError) Unwrap() error { return ErrInternal }

// sqlStateOf best-effort extracts a SQLSTATE code from a database/sql
// driver error, for EXEC statement failures to match against a task's
// BySQLState handlers (spec §4.5's "Failure semantics of tasks").
// Only pgx reports a real ANSI SQLSTATE through pgconn.PgError; sqlite3
// and the mysql driver surface driver-specific numeric codes that do
// not correspond to SQLSTATEs, so those fall through to "" (an
// exception-id/catch-all handler, never a SQLSTATE one, can still
// catch them).
func sqlStateOf(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
