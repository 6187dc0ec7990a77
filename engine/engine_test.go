package engine_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeParser(tree *ast.Program) engine.ParseFunc {
	return func(src []byte, filename string) (*ast.Program, error) { return tree, nil }
}

func TestEngine_Load_NoParserRegisteredFails(t *testing.T) {
	engine.RegisterParser(nil)

	e := engine.New(nil)
	_, err := e.Load([]byte("whatever"), "test.dts")
	assert.ErrorIs(t, err, engine.ErrNoParser)
}

func TestEngine_HelloWorld_RunsAndLogs(t *testing.T) {
	tree := &ast.Program{Decls: []ast.Node{
		&ast.TaskDecl{
			ID:   "main",
			Type: ast.TaskVoid,
			Args: &ast.ArgumentsSpec{},
			Rules: &ast.TaskPhase{PhaseKind: ast.KindTaskRules, Stmts: []ast.Stmt{
				&ast.LogStmt{Value: &ast.LiteralExpr{Text: "hi"}},
			}},
		},
	}}
	engine.RegisterParser(fakeParser(tree))
	defer engine.RegisterParser(nil)

	e := engine.New(nil)

	var lines []string
	e.RegisterLogger(func(line string, userArg any) { lines = append(lines, line) }, nil)

	_, err := e.Load([]byte("TASK main AS VOID BEGIN LOG \"hi\"; END;"), "hello.dts")
	require.NoError(t, err)

	code, err := e.Exec(context.Background())
	require.NoError(t, err)
	assert.Equal(t, engine.ExitSuccess, code)
	assert.Equal(t, []string{"hi"}, lines)
}

func TestEngine_AddConnection_StoresRowThroughInjectedDB(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)

	tree := &ast.Program{Decls: []ast.Node{
		&ast.ConnDecl{ID: "conn", Driver: "sqlite3"},
		&ast.TaskDecl{
			ID:   "main",
			Type: ast.TaskStore,
			Args: &ast.ArgumentsSpec{},
			TmplArgs: []ast.Expr{&ast.FuncCallExpr{Name: "table", Args: []ast.Expr{
				&ast.IdExpr{Name: "conn"}, &ast.LiteralExpr{Text: "users"},
			}}},
			Rules: &ast.TaskPhase{PhaseKind: ast.KindTaskRules, Stmts: []ast.Stmt{
				&ast.ColumnAssignStmt{LValue: &ast.ColumnExpr{Number: 1}, Value: &ast.NumberExpr{IsInt: true, Int: 1}},
				&ast.ColumnAssignStmt{LValue: &ast.ColumnExpr{Number: 2}, Value: &ast.LiteralExpr{Text: "Alice"}},
			}},
		},
	}}
	engine.RegisterParser(fakeParser(tree))
	defer engine.RegisterParser(nil)

	cfg := &engine.Config{Connections: map[string]engine.ConnectionConfig{"conn": {Driver: "sqlite3"}}}
	e := engine.New(cfg)
	e.AddConnection("conn", db)

	_, err = e.Load(nil, "store.dts")
	require.NoError(t, err)

	code, err := e.Exec(context.Background())
	require.NoError(t, err)
	assert.Equal(t, engine.ExitSuccess, code)

	var name string
	require.NoError(t, db.QueryRow("SELECT name FROM users WHERE id = 1").Scan(&name))
	assert.Equal(t, "Alice", name)
}

func TestEngine_Exec_WithoutLoadFails(t *testing.T) {
	e := engine.New(nil)
	code, err := e.Exec(context.Background())
	assert.Error(t, err)
	assert.Equal(t, engine.ExitParserError, code)
}
