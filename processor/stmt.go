package processor

import (
	goctx "context"
	"errors"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/control"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/value"
)

// ExecAll runs stmts in order, stopping at the first signal or error
// (break/continue/return/condition all unwind through the same return
// path, grounded on visitors.cc's ExecVisitor).
func ExecAll(ctx Context, proc *Processor, stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := Exec(ctx, proc, s); err != nil {
			return err
		}
	}

	return nil
}

// Exec runs one statement node, grounded on visitors.cc's ExecVisitor.
// Control-flow statements (RETURN/BREAK/CONTINUE/THROW) report
// themselves as one of the typed control.Signal errors rather than
// executing any further; callers (loops, task phase runners) use
// errors.As to recognize and act on them.
func Exec(ctx Context, proc *Processor, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.LogStmt:
		v, err := Eval(ctx, proc, s.Value)
		if err != nil {
			return err
		}

		proc.log(v.Str())

		return nil

	case *ast.SqlExecStmt:
		return execSQL(ctx, proc, s)

	case *ast.TaskExecStmt:
		args, err := evalArgs(ctx, proc, s.Args)
		if err != nil {
			return err
		}

		_, err = proc.CallByID(s.TaskID, args)

		return err

	case *ast.ColumnAssignStmt:
		v, err := Eval(ctx, proc, s.Value)
		if err != nil {
			return err
		}

		col := elements.Column{Result: s.LValue.Result, ByName: s.LValue.ByName, Name: s.LValue.Name, Number: s.LValue.Number}

		return ctx.SetColumn(col, v)

	case *ast.AssignStmt:
		v, err := Eval(ctx, proc, s.Value)
		if err != nil {
			return err
		}

		return assignVar(ctx, s.Target, s.Info(), v)

	case *ast.CompoundStmt:
		return ExecAll(ctx, proc, s.Stmts)

	case *ast.IfStmt:
		return execIf(ctx, proc, s)

	case *ast.WhileStmt:
		return execWhile(ctx, proc, s)

	case *ast.RepeatStmt:
		return execRepeat(ctx, proc, s)

	case *ast.ForStmt:
		return execFor(ctx, proc, s)

	case *ast.ReturnStmt:
		if s.Value == nil {
			return &control.Return{Value: value.Null()}
		}

		v, err := Eval(ctx, proc, s.Value)
		if err != nil {
			return err
		}

		return &control.Return{Value: v}

	case *ast.ContinueStmt:
		return &control.Continue{}

	case *ast.BreakStmt:
		return &control.Break{}

	case *ast.AssertStmt:
		v, err := Eval(ctx, proc, s.Cond)
		if err != nil {
			return err
		}

		ok, err := v.AsBool()
		if err != nil {
			return (&RuntimeError{Message: err.Error()}).AddSourceInfo(s.Info())
		}

		if !ok {
			return &control.Assert{Text: s.Text, Info: s.Info()}
		}

		return nil

	case *ast.ThrowStmt:
		return execThrow(ctx, proc, s)

	case *ast.LambdaFuncStmt:
		lam := &elements.Lambda{Body: s.Body, Closure: ctx.Symbols(), Info: s.Info()}

		elem := elements.Element(lam)
		if err := ctx.Symbols().Set(s.Target, elem); err != nil {
			if _, err := ctx.Symbols().Add(s.Target, elem); err != nil {
				return err
			}
		}

		return nil

	default:
		return &InternalError{Message: "unhandled statement node"}
	}
}

func execSQL(ctx Context, proc *Processor, s *ast.SqlExecStmt) error {
	conn, err := ResolveAs[*elements.Connection](ctx, s.ConnID)
	if err != nil {
		return err
	}

	args, err := evalArgs(ctx, proc, s.Args)
	if err != nil {
		return err
	}

	if _, err := conn.DBC.Exec(goctx.Background(), s.SQL, args...); err != nil {
		return &control.Condition{SQLState: sqlStateOf(err)}
	}

	return nil
}

func execThrow(ctx Context, proc *Processor, s *ast.ThrowStmt) error {
	if s.ExceptionID == "" {
		return &control.Rethrow{Info: s.Info()}
	}

	payload := value.Null()
	if len(s.Args) > 0 {
		v, err := Eval(ctx, proc, s.Args[0])
		if err != nil {
			return err
		}

		payload = v
	}

	return &control.Condition{Carrier: &elements.ExceptionCarrier{
		TypeID: s.ExceptionID, Payload: payload, Info: s.Info(),
	}}
}

func execIf(ctx Context, proc *Processor, s *ast.IfStmt) error {
	v, err := Eval(ctx, proc, s.Cond)
	if err != nil {
		return err
	}

	ok, err := v.AsBool()
	if err != nil {
		return (&RuntimeError{Message: err.Error()}).AddSourceInfo(s.Info())
	}

	if ok {
		return Exec(ctx, proc, s.Then)
	}

	if s.Else != nil {
		return Exec(ctx, proc, s.Else)
	}

	return nil
}

func execWhile(ctx Context, proc *Processor, s *ast.WhileStmt) error {
	for {
		v, err := Eval(ctx, proc, s.Cond)
		if err != nil {
			return err
		}

		ok, err := v.AsBool()
		if err != nil {
			return (&RuntimeError{Message: err.Error()}).AddSourceInfo(s.Info())
		}

		if !ok {
			return nil
		}

		if err := Exec(ctx, proc, s.Body); err != nil {
			stop, retErr := loopSignal(err)
			if stop {
				return retErr
			}
		}
	}
}

func execRepeat(ctx Context, proc *Processor, s *ast.RepeatStmt) error {
	for {
		if err := Exec(ctx, proc, s.Body); err != nil {
			stop, retErr := loopSignal(err)
			if stop {
				return retErr
			}
		}

		v, err := Eval(ctx, proc, s.Cond)
		if err != nil {
			return err
		}

		ok, err := v.AsBool()
		if err != nil {
			return (&RuntimeError{Message: err.Error()}).AddSourceInfo(s.Info())
		}

		if ok {
			return nil
		}
	}
}

func execFor(ctx Context, proc *Processor, s *ast.ForStmt) error {
	from, err := Eval(ctx, proc, s.From)
	if err != nil {
		return err
	}

	to, err := Eval(ctx, proc, s.To)
	if err != nil {
		return err
	}

	step := int64(1)
	if s.Step != nil {
		stepVal, err := Eval(ctx, proc, s.Step)
		if err != nil {
			return err
		}

		step, err = stepVal.AsInt()
		if err != nil {
			return (&RuntimeError{Message: err.Error()}).AddSourceInfo(s.Info())
		}
	}

	if step == 0 {
		return (&RuntimeError{Message: "FOR step must be non-zero"}).AddSourceInfo(s.Info())
	}

	start, err := from.AsInt()
	if err != nil {
		return (&RuntimeError{Message: err.Error()}).AddSourceInfo(s.Info())
	}

	end, err := to.AsInt()
	if err != nil {
		return (&RuntimeError{Message: err.Error()}).AddSourceInfo(s.Info())
	}

	for i := start; (step > 0 && i <= end) || (step < 0 && i >= end); i += step {
		if err := assignVar(ctx, s.Var, s.Info(), value.Int(i)); err != nil {
			return err
		}

		if err := Exec(ctx, proc, s.Body); err != nil {
			stop, retErr := loopSignal(err)
			if stop {
				return retErr
			}
		}
	}

	return nil
}

// loopSignal inspects an error from a loop body: a Break or Continue
// is consumed here (Continue lets the loop proceed to its next
// condition check/increment; Break exits), anything else (Return,
// Condition, Rethrow, a genuine RuntimeError) must propagate out of
// the loop entirely.
func loopSignal(err error) (stop bool, out error) {
	var brk *control.Break
	if errors.As(err, &brk) {
		return true, nil
	}

	var cont *control.Continue
	if errors.As(err, &cont) {
		return false, nil
	}

	return true, err
}
