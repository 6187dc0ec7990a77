package ast_test

import (
	"testing"

	"github.com/informave/argon/ast"
	"github.com/stretchr/testify/assert"
)

func TestIdentifier_Equal(t *testing.T) {
	tests := []struct {
		name string
		a    ast.Identifier
		b    ast.Identifier
		want bool
	}{
		{"same case", "Foo", "Foo", true},
		{"different case", "Foo", "foo", true},
		{"mixed case", "FOO_Bar", "foo_bar", true},
		{"different name", "Foo", "Bar", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestSourceInfo_Span(t *testing.T) {
	a := ast.SourceInfo{File: "x.dts", Offset: 10, Length: 5, Line: 3}
	b := ast.SourceInfo{File: "x.dts", Offset: 20, Length: 5, Line: 4}

	got := a.Span(b)
	assert.Equal(t, 10, got.Offset)
	assert.Equal(t, 15, got.Length)
	assert.Equal(t, 3, got.Line)
}

func TestSourceInfo_Span_EmptyBase(t *testing.T) {
	var a ast.SourceInfo
	b := ast.SourceInfo{File: "x.dts", Offset: 1, Length: 2, Line: 5}

	assert.Equal(t, b, a.Span(b))
}

func TestColumnExpr_Kind(t *testing.T) {
	main := &ast.ColumnExpr{Name: "id"}
	assert.Equal(t, ast.KindColumnExpr, main.Kind())

	res := &ast.ColumnExpr{Result: true, Name: "id"}
	assert.Equal(t, ast.KindResColumnExpr, res.Kind())
}

func TestAssignExpr_KindDistinctFromAssignStmt(t *testing.T) {
	expr := &ast.AssignExpr{Target: "x"}
	stmt := &ast.AssignStmt{Target: "x"}

	assert.Equal(t, ast.KindAssignExpr, expr.Kind())
	assert.Equal(t, ast.KindAssignStmt, stmt.Kind())
	assert.NotEqual(t, expr.Kind(), stmt.Kind())
}

func TestChildren_IfStmt(t *testing.T) {
	cond := &ast.NullExpr{}
	then := &ast.CompoundStmt{}
	els := &ast.CompoundStmt{}

	stmt := &ast.IfStmt{Cond: cond, Then: then, Else: els}
	children := ast.Children(stmt)

	assert.Len(t, children, 3)
	assert.Same(t, ast.Node(cond), children[0])
	assert.Same(t, ast.Node(then), children[1])
	assert.Same(t, ast.Node(els), children[2])
}

func TestChildren_IfStmt_NoElse(t *testing.T) {
	stmt := &ast.IfStmt{Cond: &ast.NullExpr{}, Then: &ast.CompoundStmt{}}
	assert.Len(t, ast.Children(stmt), 2)
}

func TestChildren_ForStmt_WithAndWithoutStep(t *testing.T) {
	withStep := &ast.ForStmt{
		From: &ast.NumberExpr{IsInt: true, Int: 1},
		To:   &ast.NumberExpr{IsInt: true, Int: 10},
		Step: &ast.NumberExpr{IsInt: true, Int: 2},
		Body: &ast.CompoundStmt{},
	}
	assert.Len(t, ast.Children(withStep), 4)

	withoutStep := &ast.ForStmt{
		From: &ast.NumberExpr{IsInt: true, Int: 1},
		To:   &ast.NumberExpr{IsInt: true, Int: 10},
		Body: &ast.CompoundStmt{},
	}
	assert.Len(t, ast.Children(withoutStep), 3)
}

func TestChildren_ReturnStmt_NilValue(t *testing.T) {
	assert.Nil(t, ast.Children(&ast.ReturnStmt{}))
}

func TestWalk_VisitsAllNodes(t *testing.T) {
	prog := &ast.Program{
		Decls: []ast.Node{
			&ast.TaskDecl{
				ID:   "t1",
				Type: ast.TaskVoid,
				Rules: &ast.TaskPhase{
					PhaseKind: ast.KindTaskRules,
					Stmts: []ast.Stmt{
						&ast.LogStmt{Value: &ast.LiteralExpr{Text: "hi"}},
					},
				},
			},
		},
	}

	var kinds []ast.NodeKind
	ast.Walk(prog, func(n ast.Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})

	assert.Equal(t, []ast.NodeKind{
		ast.KindProgram,
		ast.KindTaskDecl,
		ast.KindTaskRules,
		ast.KindLogStmt,
		ast.KindLiteralExpr,
	}, kinds)
}

func TestWalk_StopsDescentOnFalse(t *testing.T) {
	prog := &ast.Program{
		Decls: []ast.Node{
			&ast.TaskDecl{
				ID:   "t1",
				Type: ast.TaskVoid,
				Rules: &ast.TaskPhase{
					PhaseKind: ast.KindTaskRules,
					Stmts:     []ast.Stmt{&ast.LogStmt{Value: &ast.LiteralExpr{Text: "hi"}}},
				},
			},
		},
	}

	var kinds []ast.NodeKind
	ast.Walk(prog, func(n ast.Node) bool {
		kinds = append(kinds, n.Kind())
		return n.Kind() != ast.KindTaskDecl
	})

	assert.Equal(t, []ast.NodeKind{ast.KindProgram, ast.KindTaskDecl}, kinds)
}

func TestTaskType_String(t *testing.T) {
	tests := []struct {
		tt   ast.TaskType
		want string
	}{
		{ast.TaskVoid, "VOID"},
		{ast.TaskFetch, "FETCH"},
		{ast.TaskStore, "STORE"},
		{ast.TaskTransfer, "TRANSFER"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.tt.String())
	}
}

func TestNodeKind_String_Unknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", ast.NodeKind(9999).String())
}
