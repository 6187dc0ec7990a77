package processor

import (
	goctx "context"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/builtins"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/value"
)

// registerProcessorBuiltins installs the seven built-ins that need a
// live Processor to close over rather than just their evaluated
// arguments — sql.exec/sql.query_value (a *dbdriver.Connection),
// trx.begin/commit/rollback (the same), seq.next (the named
// elements.Sequence) and debug.symbol_exists (the global symbol
// table) — grounded on original_source/src/builtin/sql.cc, trx.cc,
// sequence.cc, debug.cc. builtins.go documents why these seven live
// here instead of package builtins alongside the stateless groups.
func (p *Processor) registerProcessorBuiltins() {
	p.Builtins.Register(
		builtins.Entry{Name: "sql.exec", MinArg: 2, MaxArg: -1, Fn: p.builtinSQLExec},
		builtins.Entry{Name: "sql.query_value", MinArg: 2, MaxArg: -1, Fn: p.builtinSQLQueryValue},
		builtins.Entry{Name: "trx.begin", MinArg: 1, MaxArg: 1, Fn: p.builtinTrxBegin},
		builtins.Entry{Name: "trx.commit", MinArg: 1, MaxArg: 1, Fn: p.builtinTrxCommit},
		builtins.Entry{Name: "trx.rollback", MinArg: 1, MaxArg: 1, Fn: p.builtinTrxRollback},
		builtins.Entry{Name: "seq.next", MinArg: 1, MaxArg: 1, Fn: p.builtinSeqNext},
		builtins.Entry{Name: "debug.symbol_exists", MinArg: 1, MaxArg: 1, Fn: p.builtinDebugSymbolExists},
	)
}

func (p *Processor) conn(args []value.Value) (*elements.Connection, error) {
	return ResolveAs[*elements.Connection](p.Global, ast.Identifier(args[0].Str()))
}

// builtinSQLExec runs args[1] (the query) with args[2:] as bind
// parameters against the connection named by args[0], returning the
// number of rows affected.
func (p *Processor) builtinSQLExec(args []value.Value) (value.Value, error) {
	conn, err := p.conn(args)
	if err != nil {
		return value.Value{}, err
	}

	res, err := conn.DBC.Exec(goctx.Background(), args[1].Str(), args[2:]...)
	if err != nil {
		return value.Value{}, &RuntimeError{Message: err.Error()}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return value.Int(0), nil
	}

	return value.Int(n), nil
}

// builtinSQLQueryValue runs a scalar query and returns its first row's
// first column, or NULL if the query produced no rows.
func (p *Processor) builtinSQLQueryValue(args []value.Value) (value.Value, error) {
	conn, err := p.conn(args)
	if err != nil {
		return value.Value{}, err
	}

	rs, err := conn.DBC.Query(goctx.Background(), args[1].Str(), args[2:]...)
	if err != nil {
		return value.Value{}, &RuntimeError{Message: err.Error()}
	}
	defer rs.Close()

	if !rs.Next() {
		return value.Null(), nil
	}

	row, err := rs.Scan()
	if err != nil {
		return value.Value{}, &RuntimeError{Message: err.Error()}
	}

	if len(row) == 0 {
		return value.Null(), nil
	}

	return row[0], nil
}

func (p *Processor) builtinTrxBegin(args []value.Value) (value.Value, error) {
	conn, err := p.conn(args)
	if err != nil {
		return value.Value{}, err
	}

	if err := conn.DBC.BeginTx(goctx.Background()); err != nil {
		return value.Value{}, &RuntimeError{Message: err.Error()}
	}

	return value.Null(), nil
}

func (p *Processor) builtinTrxCommit(args []value.Value) (value.Value, error) {
	conn, err := p.conn(args)
	if err != nil {
		return value.Value{}, err
	}

	if err := conn.DBC.Commit(); err != nil {
		return value.Value{}, &RuntimeError{Message: err.Error()}
	}

	return value.Null(), nil
}

func (p *Processor) builtinTrxRollback(args []value.Value) (value.Value, error) {
	conn, err := p.conn(args)
	if err != nil {
		return value.Value{}, err
	}

	if err := conn.DBC.Rollback(); err != nil {
		return value.Value{}, &RuntimeError{Message: err.Error()}
	}

	return value.Null(), nil
}

// builtinSeqNext advances the named sequence and returns its new value.
func (p *Processor) builtinSeqNext(args []value.Value) (value.Value, error) {
	seq, err := ResolveAs[*elements.Sequence](p.Global, ast.Identifier(args[0].Str()))
	if err != nil {
		return value.Value{}, err
	}

	return seq.Next()
}

// builtinDebugSymbolExists reports whether the global scope has a
// binding for the named identifier. builtins.Func only ever receives
// evaluated arguments, not the caller's Context, so this can only see
// globals (connections, vars, sequences) — not a task's own arguments
// or locals; a development aid for inspecting program-wide state
// (debug.cc's symbol-table dump builtins generalized to a boolean
// probe).
func (p *Processor) builtinDebugSymbolExists(args []value.Value) (value.Value, error) {
	return value.Bool(p.Global.Symbols().Has(ast.Identifier(args[0].Str()))), nil
}
