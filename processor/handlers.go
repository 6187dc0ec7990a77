package processor

import (
	"github.com/informave/argon/ast"
)

// HandlerSet indexes a task's exception handler blocks by SQLSTATE and
// by exception id, plus one catch-all, grounded on task.cc's two
// handler maps (spec §4.5's "Failure semantics of tasks").
type HandlerSet struct {
	BySQLState  map[string]*ast.ExceptionHandler
	ByException map[string]*ast.ExceptionHandler
	CatchAll    *ast.ExceptionHandler
}

// NewHandlerSet partitions a TaskDecl's flat handler list into the
// three lookup buckets Dispatch below consults in order.
func NewHandlerSet(handlers []*ast.ExceptionHandler) *HandlerSet {
	hs := &HandlerSet{
		BySQLState:  make(map[string]*ast.ExceptionHandler),
		ByException: make(map[string]*ast.ExceptionHandler),
	}

	for _, h := range handlers {
		switch {
		case h.SQLState != "":
			hs.BySQLState[h.SQLState] = h
		case h.ExceptionID != "":
			hs.ByException[h.ExceptionID.Lower()] = h
		default:
			hs.CatchAll = h
		}
	}

	return hs
}

// Dispatch picks the handler for a raised Condition, following spec
// §4.5's precedence: a SQLSTATE match first, then an exception-id
// match, then the catch-all. Returns nil if nothing matches (the error
// propagates unhandled).
func (hs *HandlerSet) Dispatch(sqlState string, exceptionID ast.Identifier) *ast.ExceptionHandler {
	if hs == nil {
		return nil
	}

	if sqlState != "" {
		if h, ok := hs.BySQLState[sqlState]; ok {
			return h
		}
	}

	if exceptionID != "" {
		if h, ok := hs.ByException[exceptionID.Lower()]; ok {
			return h
		}
	}

	return hs.CatchAll
}
