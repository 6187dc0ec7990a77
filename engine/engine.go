// Package engine is Argon's embedder contract (spec §6): inject
// connections and a logger, load a compiled program, run it and get
// back an exit code. Grounded on shibukawa/snapsql's cli/config.go +
// query/executor.go + cmd/snapsql/main.go driver wiring, generalized
// from "run one query" to "run one DTS program".
package engine

import (
	goctx "context"
	"database/sql"
	"strings"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/dbdriver"
	"github.com/informave/argon/processor"
)

// Exit codes returned by Exec, spec §6's CLI contract: 0 success, 1
// compile-time syntax/semantic error, 2 runtime assertion failure,
// anything else is whatever sys.terminate(n) asked for.
const (
	ExitSuccess      = processor.ExitSuccess
	ExitParserError  = 1
	ExitAssert       = processor.ExitAssert
	ExitRuntimeError = processor.ExitRuntimeError
)

// Engine wires a Processor to the outside world: pre-injected
// connections, a logger callback, a loaded program and, when DumpAST
// is set, a parse-tree dump ahead of execution (spec §10.5's
// ARGON_DEV_DEBUG equivalent).
type Engine struct {
	Processor *processor.Processor
	Config    *Config
	Program   *ast.Program
	DumpAST   bool

	// dump receives one rendered line per AST node when DumpAST is set;
	// defaults to nil (CLI wires this to stdout).
	dump func(line string)
}

// New returns an Engine over a fresh Processor, ready for
// AddConnection/RegisterLogger calls before Load/Exec.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = &Config{Connections: map[string]ConnectionConfig{}}
	}

	return &Engine{Processor: processor.NewProcessor(), Config: cfg}
}

// SetDumpWriter installs the line sink DumpAST writes to; nil (the
// default) makes DumpAST a no-op regardless of the flag's value.
func (e *Engine) SetDumpWriter(fn func(line string)) { e.dump = fn }

// AddConnection injects a preconnected *sql.DB under name, so scripts
// can reference it without the engine having to open it itself (spec
// §6's `engine.addConnection(name, connection)`). The dialect is
// looked up from Config so the right objects.Dialect strategy and
// SQLSTATE/RETURNING-emulation behavior get selected later; a name
// with no matching Config entry defaults to sqlite3.
func (e *Engine) AddConnection(name string, db *sql.DB) {
	dialect := dbdriver.DialectSQLite
	if cc, ok := e.Config.Connections[name]; ok && cc.Driver != "" {
		dialect = dbdriver.Dialect(cc.Driver)
	}

	e.Processor.Connections[ast.Identifier(name).Lower()] = &dbdriver.Connection{Dialect: dialect, DB: db}
}

// RegisterLogger installs the callback every LOG statement routes
// through (spec §6's `engine.registerLogger(callback, user-arg)`); a
// nil fn leaves Processor.Logger untouched (LOG output discarded).
func (e *Engine) RegisterLogger(fn func(line string, userArg any), userArg any) {
	if fn == nil {
		return
	}

	e.Processor.Logger = func(line string) { fn(line, userArg) }
}

// Load parses src into a Program and stores it for Exec, or returns a
// *control.SyntaxError (spec §6's `engine.load` contract). filename
// only annotates diagnostics; it need not be a real path.
func (e *Engine) Load(src []byte, filename string) (*ast.Program, error) {
	if parser == nil {
		return nil, ErrNoParser
	}

	tree, err := parser(src, filename)
	if err != nil {
		return nil, err
	}

	e.Program = tree

	return tree, nil
}

// openConfiguredConnections opens a database/sql connection for every
// Config connection name the embedder did not already inject via
// AddConnection, the counterpart half of spec §6's connection story:
// CONNECTION declarations name a driver the engine can dial itself.
func (e *Engine) openConfiguredConnections(ctx goctx.Context) error {
	for name, cc := range e.Config.Connections {
		key := ast.Identifier(name).Lower()
		if _, exists := e.Processor.Connections[key]; exists {
			continue
		}

		conn, err := dbdriver.Open(dbdriver.Dialect(cc.Driver), cc.DSN)
		if err != nil {
			return err
		}

		if err := conn.Ping(ctx); err != nil {
			return err
		}

		e.Processor.Connections[key] = conn
	}

	return nil
}

// Exec compiles and runs the loaded Program, returning the process
// exit code (spec §6's `engine.exec()`). It dials any Config-declared
// connection not already supplied via AddConnection first.
func (e *Engine) Exec(ctx goctx.Context) (int, error) {
	if e.Program == nil {
		return ExitParserError, ErrNoParser
	}

	if err := e.openConfiguredConnections(ctx); err != nil {
		return ExitRuntimeError, err
	}

	if e.DumpAST && e.dump != nil {
		dumpAST(e.Program, e.dump)
	}

	if err := e.Processor.Compile(e.Program); err != nil {
		return ExitParserError, err
	}

	return e.Processor.Run(e.Program)
}

// dumpAST renders one indented line per node, the Go counterpart to
// the original's PrintTreeVisitor gated on ARGON_DEV_DEBUG — reusing
// ast.Walk rather than a dedicated visitor type (spec §10.5).
func dumpAST(tree *ast.Program, out func(string)) {
	depth := map[ast.Node]int{}

	ast.Walk(tree, func(n ast.Node) bool {
		d := depth[n]
		out(strings.Repeat("  ", d) + n.Kind().String())

		for _, c := range ast.Children(n) {
			depth[c] = d + 1
		}

		return true
	})
}
