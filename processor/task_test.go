package processor_test

import (
	"context"
	"testing"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/dbdriver"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logStmt(text string) *ast.LogStmt {
	return &ast.LogStmt{Value: &ast.LiteralExpr{Text: text}}
}

func phase(kind ast.NodeKind, stmts ...ast.Stmt) *ast.TaskPhase {
	return &ast.TaskPhase{PhaseKind: kind, Stmts: stmts}
}

func TestTask_Void_RunsPhasesInOrder(t *testing.T) {
	proc := processor.NewProcessor()

	var lines []string
	proc.Logger = func(line string) { lines = append(lines, line) }

	task := &ast.TaskDecl{
		ID:     "main",
		Type:   ast.TaskVoid,
		Args:   &ast.ArgumentsSpec{},
		Init:   phase(ast.KindTaskInit, logStmt("init")),
		Before: phase(ast.KindTaskBefore, logStmt("before")),
		Rules:  phase(ast.KindTaskRules, logStmt("rules")),
		After:  phase(ast.KindTaskAfter, logStmt("after")),
		Final:  phase(ast.KindTaskFinal, logStmt("final")),
	}

	tree := &ast.Program{Decls: []ast.Node{task}}
	require.NoError(t, proc.Compile(tree))

	code, err := proc.Run(tree)
	require.NoError(t, err)
	assert.Equal(t, processor.ExitSuccess, code)
	assert.Equal(t, []string{"init", "before", "rules", "after", "final"}, lines)
}

func TestTask_Fetch_IteratesGenRangeRows(t *testing.T) {
	proc := processor.NewProcessor()

	var lines []string
	proc.Logger = func(line string) { lines = append(lines, line) }

	task := &ast.TaskDecl{
		ID:   "main",
		Type: ast.TaskFetch,
		Args: &ast.ArgumentsSpec{},
		TmplArgs: []ast.Expr{&ast.FuncCallExpr{Name: "genrange", Args: []ast.Expr{
			&ast.NumberExpr{IsInt: true, Int: 1},
			&ast.NumberExpr{IsInt: true, Int: 4},
			&ast.NumberExpr{IsInt: true, Int: 1},
		}}},
		Rules: phase(ast.KindTaskRules, &ast.LogStmt{Value: &ast.ColumnExpr{Number: 1}}),
	}

	tree := &ast.Program{Decls: []ast.Node{task}}
	require.NoError(t, proc.Compile(tree))

	code, err := proc.Run(tree)
	require.NoError(t, err)
	assert.Equal(t, processor.ExitSuccess, code)
	assert.Equal(t, []string{"1", "2", "3", "4"}, lines)
}

func TestTask_Fetch_RejectsColumnAssign(t *testing.T) {
	proc := processor.NewProcessor()

	task := &ast.TaskDecl{
		ID:   "main",
		Type: ast.TaskFetch,
		Args: &ast.ArgumentsSpec{},
		TmplArgs: []ast.Expr{&ast.FuncCallExpr{Name: "genrange", Args: []ast.Expr{
			&ast.NumberExpr{IsInt: true, Int: 0},
			&ast.NumberExpr{IsInt: true, Int: 1},
			&ast.NumberExpr{IsInt: true, Int: 1},
		}}},
		Rules: phase(ast.KindTaskRules, &ast.ColumnAssignStmt{
			LValue: &ast.ColumnExpr{Number: 1}, Value: &ast.NumberExpr{IsInt: true, Int: 1},
		}),
	}

	tree := &ast.Program{Decls: []ast.Node{task}}
	err := proc.Compile(tree)
	require.Error(t, err)

	var semErr *processor.SemanticError
	require.ErrorAs(t, err, &semErr)
}

func openSqliteConn(t *testing.T, ddl string) *dbdriver.Connection {
	t.Helper()

	conn, err := dbdriver.Open(dbdriver.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	_, err = conn.Exec(context.Background(), ddl)
	require.NoError(t, err)

	return conn
}

func TestTask_Store_InsertsSingleRow(t *testing.T) {
	proc := processor.NewProcessor()
	dbc := openSqliteConn(t, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)")

	_, err := proc.Global.Symbols().Add("conn", &elements.Connection{ID: "conn", Driver: "sqlite3", DBC: dbc})
	require.NoError(t, err)

	task := &ast.TaskDecl{
		ID:   "main",
		Type: ast.TaskStore,
		Args: &ast.ArgumentsSpec{},
		TmplArgs: []ast.Expr{&ast.FuncCallExpr{Name: "table", Args: []ast.Expr{
			&ast.IdExpr{Name: "conn"}, &ast.LiteralExpr{Text: "users"},
		}}},
		Rules: phase(ast.KindTaskRules,
			&ast.ColumnAssignStmt{LValue: &ast.ColumnExpr{Number: 1}, Value: &ast.NumberExpr{IsInt: true, Int: 1}},
			&ast.ColumnAssignStmt{LValue: &ast.ColumnExpr{Number: 2}, Value: &ast.LiteralExpr{Text: "Alice"}},
		),
	}

	tree := &ast.Program{Decls: []ast.Node{task}}
	require.NoError(t, proc.Compile(tree))

	code, err := proc.Run(tree)
	require.NoError(t, err)
	assert.Equal(t, processor.ExitSuccess, code)

	rs, err := dbc.Query(context.Background(), "SELECT id, name FROM users")
	require.NoError(t, err)
	defer rs.Close()

	require.True(t, rs.Next())
	row, err := rs.Scan()
	require.NoError(t, err)
	assert.Equal(t, "Alice", row[1].Str())
}

func TestTask_Transfer_CopiesRowsBetweenTables(t *testing.T) {
	proc := processor.NewProcessor()
	dbc := openSqliteConn(t, "CREATE TABLE src (id INTEGER, name TEXT); CREATE TABLE dst (id INTEGER, name TEXT)")

	_, err := dbc.Exec(context.Background(), "INSERT INTO src VALUES (1, 'a')")
	require.NoError(t, err)
	_, err = dbc.Exec(context.Background(), "INSERT INTO src VALUES (2, 'b')")
	require.NoError(t, err)

	_, err = proc.Global.Symbols().Add("conn", &elements.Connection{ID: "conn", Driver: "sqlite3", DBC: dbc})
	require.NoError(t, err)

	task := &ast.TaskDecl{
		ID:   "main",
		Type: ast.TaskTransfer,
		Args: &ast.ArgumentsSpec{},
		TmplArgs: []ast.Expr{
			&ast.FuncCallExpr{Name: "table", Args: []ast.Expr{&ast.IdExpr{Name: "conn"}, &ast.LiteralExpr{Text: "dst"}}},
			&ast.FuncCallExpr{Name: "table", Args: []ast.Expr{&ast.IdExpr{Name: "conn"}, &ast.LiteralExpr{Text: "src"}}},
		},
		Rules: phase(ast.KindTaskRules,
			&ast.ColumnAssignStmt{LValue: &ast.ColumnExpr{Number: 1}, Value: &ast.ColumnExpr{Number: 1}},
			&ast.ColumnAssignStmt{LValue: &ast.ColumnExpr{Number: 2}, Value: &ast.ColumnExpr{Number: 2}},
		),
	}

	tree := &ast.Program{Decls: []ast.Node{task}}
	require.NoError(t, proc.Compile(tree))

	code, err := proc.Run(tree)
	require.NoError(t, err)
	assert.Equal(t, processor.ExitSuccess, code)

	rs, err := dbc.Query(context.Background(), "SELECT id, name FROM dst ORDER BY id")
	require.NoError(t, err)
	defer rs.Close()

	var names []string
	for rs.Next() {
		row, err := rs.Scan()
		require.NoError(t, err)
		names = append(names, row[1].Str())
	}

	assert.Equal(t, []string{"a", "b"}, names)
}

func TestTask_ExceptionHandler_CatchesThrownExceptionAndReturns(t *testing.T) {
	proc := processor.NewProcessor()

	var lines []string
	proc.Logger = func(line string) { lines = append(lines, line) }

	task := &ast.TaskDecl{
		ID:   "main",
		Type: ast.TaskVoid,
		Args: &ast.ArgumentsSpec{},
		Rules: phase(ast.KindTaskRules,
			&ast.ThrowStmt{ExceptionID: "Oops", Args: []ast.Expr{&ast.LiteralExpr{Text: "bad thing"}}},
			logStmt("unreachable"),
		),
		Handlers: []*ast.ExceptionHandler{
			{ExceptionID: "Oops", Body: &ast.CompoundStmt{Stmts: []ast.Stmt{logStmt("caught")}}},
		},
	}

	tree := &ast.Program{Decls: []ast.Node{
		&ast.ExceptionDecl{ID: "Oops"},
		task,
	}}
	require.NoError(t, proc.Compile(tree))

	code, err := proc.Run(tree)
	require.NoError(t, err)
	assert.Equal(t, processor.ExitSuccess, code)
	assert.Equal(t, []string{"caught"}, lines)
}

func TestTask_ExceptionHandler_RethrowPropagates(t *testing.T) {
	proc := processor.NewProcessor()

	task := &ast.TaskDecl{
		ID:   "main",
		Type: ast.TaskVoid,
		Args: &ast.ArgumentsSpec{},
		Rules: phase(ast.KindTaskRules,
			&ast.ThrowStmt{ExceptionID: "Oops"},
		),
		Handlers: []*ast.ExceptionHandler{
			{ExceptionID: "Oops", Body: &ast.CompoundStmt{Stmts: []ast.Stmt{&ast.ThrowStmt{}}}},
		},
	}

	tree := &ast.Program{Decls: []ast.Node{
		&ast.ExceptionDecl{ID: "Oops"},
		task,
	}}
	require.NoError(t, proc.Compile(tree))

	code, err := proc.Run(tree)
	assert.Error(t, err)
	assert.Equal(t, processor.ExitRuntimeError, code)
}

func TestTask_AssertFailure_ExitsWithAssertCode(t *testing.T) {
	proc := processor.NewProcessor()

	task := &ast.TaskDecl{
		ID:   "main",
		Type: ast.TaskVoid,
		Args: &ast.ArgumentsSpec{},
		Rules: phase(ast.KindTaskRules,
			&ast.AssertStmt{Cond: &ast.NumberExpr{IsInt: true, Int: 0}, Text: "1 == 2"},
		),
	}

	tree := &ast.Program{Decls: []ast.Node{task}}
	require.NoError(t, proc.Compile(tree))

	code, err := proc.Run(tree)
	require.Error(t, err)
	assert.Equal(t, processor.ExitAssert, code)
}
