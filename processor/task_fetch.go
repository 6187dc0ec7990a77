package processor

import (
	goctx "context"

	"github.com/informave/argon/control"
	"github.com/informave/argon/typetable"
	"github.com/informave/argon/value"
)

// runFetch drives a FETCH task: one source template operand in READ
// mode, iterated once per row through before/rules, with no left
// (column-assign) or result column references allowed (spec §4.5.2;
// validateTaskColumns in columns.go rejects a violation at Compile
// time, so a task reaching here has already passed that check).
func (t *Task) runFetch(proc *Processor, ctx *taskContext) (value.Value, error) {
	if len(t.TmplArgs) != 1 {
		return value.Value{}, &RuntimeError{Message: "FETCH task requires exactly one template operand"}
	}

	src, err := resolveTemplate(proc, ctx, t.TmplArgs[0], typetable.ReadMode)
	if err != nil {
		return value.Value{}, err
	}

	ctx.main = src.Object

	bg := goctx.Background()

	if err := src.Object.Open(bg); err != nil {
		return value.Value{}, &RuntimeError{Message: err.Error()}
	}
	defer src.Object.Close()

	if err := ExecAll(ctx, proc, t.Init); err != nil {
		return value.Value{}, err
	}

	for {
		ok, err := src.Object.Next(bg)
		if err != nil {
			return value.Value{}, &control.Condition{SQLState: sqlStateOf(err)}
		}

		if !ok {
			break
		}

		if err := ExecAll(ctx, proc, t.Before); err != nil {
			return value.Value{}, err
		}

		if err := ExecAll(ctx, proc, t.Rules); err != nil {
			return value.Value{}, err
		}
	}

	if err := ExecAll(ctx, proc, t.Final); err != nil {
		return value.Value{}, err
	}

	return value.Null(), nil
}
