package processor_test

import (
	"testing"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/processor"
	"github.com/informave/argon/value"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval_Literals(t *testing.T) {
	proc := processor.NewProcessor()

	v, err := processor.Eval(proc.Global, proc, &ast.LiteralExpr{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", v.Str())

	v, err = processor.Eval(proc.Global, proc, &ast.NumberExpr{IsInt: true, Int: 42})
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(42), i)

	v, err = processor.Eval(proc.Global, proc, &ast.NumberExpr{Dec: decimal.NewFromFloat(1.5)})
	require.NoError(t, err)
	n, _ := v.AsNumeric()
	assert.True(t, n.Equal(decimal.NewFromFloat(1.5)))

	v, err = processor.Eval(proc.Global, proc, &ast.NullExpr{})
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestEval_IdExpr_ResolvesGlobalVariable(t *testing.T) {
	proc := processor.NewProcessor()

	_, err := proc.Global.Symbols().Add("count", elements.NewValueElement("count", ast.SourceInfo{}, value.Int(7)))
	require.NoError(t, err)

	v, err := processor.Eval(proc.Global, proc, &ast.IdExpr{Name: "count"})
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(7), i)
}

func TestEval_IdExpr_UndeclaredFails(t *testing.T) {
	proc := processor.NewProcessor()

	_, err := processor.Eval(proc.Global, proc, &ast.IdExpr{Name: "nope"})
	assert.Error(t, err)

	var notDeclared *processor.NotDeclaredError
	assert.ErrorAs(t, err, &notDeclared)
}

func TestEval_BinaryArithmetic(t *testing.T) {
	proc := processor.NewProcessor()

	expr := &ast.BinaryExpr{
		Op:    ast.BinAdd,
		Left:  &ast.NumberExpr{IsInt: true, Int: 2},
		Right: &ast.NumberExpr{IsInt: true, Int: 3},
	}

	v, err := processor.Eval(proc.Global, proc, expr)
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(5), i)
}

func TestEval_BinaryArithmetic_DivisionByZeroIsRuntimeError(t *testing.T) {
	proc := processor.NewProcessor()

	expr := &ast.BinaryExpr{
		Op:    ast.BinDiv,
		Left:  &ast.NumberExpr{IsInt: true, Int: 1},
		Right: &ast.NumberExpr{IsInt: true, Int: 0},
	}

	_, err := processor.Eval(proc.Global, proc, expr)
	assert.Error(t, err)

	var rtErr *processor.RuntimeError
	assert.ErrorAs(t, err, &rtErr)
}

func TestEval_UnaryNot(t *testing.T) {
	proc := processor.NewProcessor()

	expr := &ast.UnaryExpr{Op: ast.UnNot, Operand: &ast.NullExpr{}}

	_, err := processor.Eval(proc.Global, proc, expr)
	assert.NoError(t, err)
}

func TestEval_AssignExpr_RebindsVariable(t *testing.T) {
	proc := processor.NewProcessor()

	_, err := proc.Global.Symbols().Add("x", elements.NewValueElement("x", ast.SourceInfo{}, value.Int(1)))
	require.NoError(t, err)

	expr := &ast.AssignExpr{Target: "x", Value: &ast.NumberExpr{IsInt: true, Int: 9}}

	v, err := processor.Eval(proc.Global, proc, expr)
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(9), i)

	got, err := processor.Eval(proc.Global, proc, &ast.IdExpr{Name: "x"})
	require.NoError(t, err)
	gi, _ := got.AsInt()
	assert.Equal(t, int64(9), gi)
}

func TestEval_FuncCall_Builtin(t *testing.T) {
	proc := processor.NewProcessor()

	expr := &ast.FuncCallExpr{
		Name: "string.concat",
		Args: []ast.Expr{&ast.LiteralExpr{Text: "foo"}, &ast.LiteralExpr{Text: "bar"}},
	}

	v, err := processor.Eval(proc.Global, proc, expr)
	require.NoError(t, err)
	assert.Equal(t, "foobar", v.Str())
}

func TestEval_FuncCall_UserFunction(t *testing.T) {
	proc := processor.NewProcessor()

	tree := &ast.Program{Decls: []ast.Node{
		&ast.FunctionDecl{
			ID:   "double",
			Args: &ast.ArgumentsSpec{Names: []ast.Identifier{"n"}},
			Body: &ast.CompoundStmt{Stmts: []ast.Stmt{
				&ast.ReturnStmt{Value: &ast.BinaryExpr{
					Op: ast.BinMul, Left: &ast.IdExpr{Name: "n"}, Right: &ast.NumberExpr{IsInt: true, Int: 2},
				}},
			}},
		},
	}}

	require.NoError(t, proc.Compile(tree))

	expr := &ast.FuncCallExpr{Name: "double", Args: []ast.Expr{&ast.NumberExpr{IsInt: true, Int: 21}}}

	v, err := processor.Eval(proc.Global, proc, expr)
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(42), i)
}
