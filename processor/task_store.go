package processor

import (
	goctx "context"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/typetable"
	"github.com/informave/argon/value"
)

// runStore drives a STORE task: one destination template operand in
// INSERT mode, a single row built from the column-assign statements
// found anywhere in the body, and a single INSERT once rules has run
// (spec §4.5.3). No right-hand $col reads are valid (there is no
// source); validateTaskColumns in columns.go rejects that at Compile
// time, so a task reaching here has already passed that check.
func (t *Task) runStore(proc *Processor, ctx *taskContext) (value.Value, error) {
	if len(t.TmplArgs) != 1 {
		return value.Value{}, &RuntimeError{Message: "STORE task requires exactly one template operand"}
	}

	destCols, _ := allColumns(t)

	dest, err := resolveTemplate(proc, ctx, t.TmplArgs[0], typetable.InsertMode)
	if err != nil {
		return value.Value{}, err
	}

	ctx.dest = dest.Object

	bg := goctx.Background()

	if err := dest.Object.Open(bg); err != nil {
		return value.Value{}, &RuntimeError{Message: err.Error()}
	}
	defer dest.Object.Close()

	if err := ExecAll(ctx, proc, t.Init); err != nil {
		return value.Value{}, err
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

// allColumns gathers a STORE/TRANSFER task's left (column-assign
// target) and right ($col read) columns across every phase, mirroring
// how visitors.cc's ColumnVisitor is applied to the whole task body
// rather than one phase at a time for these two variants (spec
// §4.5.3's "left-hand columns from column-assign nodes anywhere in the
// body").
func allColumns(t *Task) (left, right []elements.Column) {
	all := make([]ast.Stmt, 0, len(t.Init)+len(t.Before)+len(t.Rules)+len(t.After)+len(t.Final))
	all = append(all, t.Init...)
	all = append(all, t.Before...)
	all = append(all, t.Rules...)
	all = append(all, t.After...)
	all = append(all, t.Final...)

	return collectColumns(all)
}
