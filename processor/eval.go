package processor

import (
	"github.com/informave/argon/ast"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/value"
)

// Eval walks an expression node and yields a value.Value, grounded on
// visitors.cc's EvalExprVisitor. Every AST expression shape is handled
// directly here rather than through a visitor double-dispatch, since
// Go's type switch already gives single-pass exhaustiveness checking
// without needing the original's accept/visit machinery (spec §4.8).
func Eval(ctx Context, proc *Processor, expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return value.Str(e.Text), nil

	case *ast.NumberExpr:
		if e.IsInt {
			return value.Int(e.Int), nil
		}

		return value.Numeric(e.Dec), nil

	case *ast.NullExpr:
		return value.Null(), nil

	case *ast.IdExpr:
		elem, err := ctx.Resolve(e.Name)
		if err != nil {
			return value.Value{}, err
		}

		return elem.Value(), nil

	case *ast.ColumnExpr:
		return evalColumn(ctx, e)

	case *ast.ResIdExpr:
		return ctx.LastInsertRowID()

	case *ast.FuncCallExpr:
		return evalFuncCall(ctx, proc, e)

	case *ast.BinaryExpr:
		l, err := Eval(ctx, proc, e.Left)
		if err != nil {
			return value.Value{}, err
		}

		r, err := Eval(ctx, proc, e.Right)
		if err != nil {
			return value.Value{}, err
		}

		v, err := value.Arith(value.BinOp(e.Op), l, r)
		if err != nil {
			return value.Value{}, (&RuntimeError{Message: err.Error()}).AddSourceInfo(e.Info())
		}

		return v, nil

	case *ast.UnaryExpr:
		v, err := Eval(ctx, proc, e.Operand)
		if err != nil {
			return value.Value{}, err
		}

		out, err := value.Unary(value.UnaryOp(e.Op), v)
		if err != nil {
			return value.Value{}, (&RuntimeError{Message: err.Error()}).AddSourceInfo(e.Info())
		}

		return out, nil

	case *ast.AssignExpr:
		v, err := Eval(ctx, proc, e.Value)
		if err != nil {
			return value.Value{}, err
		}

		if err := assignVar(ctx, e.Target, e.Info(), v); err != nil {
			return value.Value{}, err
		}

		return v, nil

	default:
		return value.Value{}, &InternalError{Message: "unhandled expression node"}
	}
}

// evalColumn resolves $col/$n against the main object and %col/%n
// against the result object, wrapping a FieldNotFound into a
// RuntimeError annotated with the node's source info (visitors.cc's
// catch(RuntimeError&) + addSourceInfo pattern for column nodes).
func evalColumn(ctx Context, e *ast.ColumnExpr) (value.Value, error) {
	col := elements.Column{Result: e.Result, ByName: e.ByName, Name: e.Name, Number: e.Number}

	var obj interface {
		Column(elements.Column) (value.Value, error)
	}

	if e.Result {
		o, err := ctx.ResultObject()
		if err != nil {
			return value.Value{}, err
		}

		obj = o
	} else {
		o, err := ctx.MainObject()
		if err != nil {
			return value.Value{}, err
		}

		obj = o
	}

	v, err := obj.Column(col)
	if err != nil {
		return value.Value{}, (&RuntimeError{Message: err.Error()}).AddSourceInfo(e.Info())
	}

	return v, nil
}

// evalFuncCall evaluates arguments left-to-right then dispatches by
// name: built-ins first (the common case), falling back to a
// user-declared FUNCTION (visitors.cc's FuncCallNode handling via
// Processor::createFunction, generalized here since Argon keeps
// built-ins in their own registry rather than the type table).
func evalFuncCall(ctx Context, proc *Processor, e *ast.FuncCallExpr) (value.Value, error) {
	args, err := evalArgs(ctx, proc, e.Args)
	if err != nil {
		return value.Value{}, err
	}

	if _, ok := proc.Builtins.Lookup(e.Name.String()); ok {
		v, err := proc.Builtins.Call(e.Name.String(), args)
		if err != nil {
			return value.Value{}, (&RuntimeError{Message: err.Error()}).AddSourceInfo(e.Info())
		}

		return v, nil
	}

	return proc.CallFunction(ctx, e.Name, args)
}
