package processor

import (
	goctx "context"

	"github.com/informave/argon/control"
	"github.com/informave/argon/typetable"
	"github.com/informave/argon/value"
)

// runTransfer drives a TRANSFER task: two template operands `[dest,
// source]`, looping over the source's rows, building and inserting
// one destination row per source row (spec §4.5.4).
func (t *Task) runTransfer(proc *Processor, ctx *taskContext) (value.Value, error) {
	if len(t.TmplArgs) != 2 {
		return value.Value{}, &RuntimeError{Message: "TRANSFER task requires exactly two template operands: [dest, source]"}
	}

	destCols, _ := allColumns(t)

	dest, err := resolveTemplate(proc, ctx, t.TmplArgs[0], typetable.InsertMode)
	if err != nil {
		return value.Value{}, err
	}

	src, err := resolveTemplate(proc, ctx, t.TmplArgs[1], typetable.ReadMode)
	if err != nil {
		return value.Value{}, err
	}

	ctx.dest = dest.Object
	ctx.main = src.Object

	bg := goctx.Background()

	if err := dest.Object.Open(bg); err != nil {
		return value.Value{}, &RuntimeError{Message: err.Error()}
	}
	defer dest.Object.Close()

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

		if err := ctx.insertRow(dest.Object, destCols); err != nil {
			return value.Value{}, err
		}

		if err := ExecAll(ctx, proc, t.After); err != nil {
			return value.Value{}, err
		}
	}

	if err := ExecAll(ctx, proc, t.Final); err != nil {
		return value.Value{}, err
	}

	if dest.finalize != nil {
		if err := dest.finalize(ctx); err != nil {
			return value.Value{}, err
		}
	}

	return value.Null(), nil
}
