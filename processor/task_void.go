package processor

import "github.com/informave/argon/value"

// runVoid executes a VOID task's five phases once in order, with no
// main/result/dest object at all (spec §4.5.1).
func (t *Task) runVoid(proc *Processor, ctx *taskContext) (value.Value, error) {
	if err := ExecAll(ctx, proc, t.Init); err != nil {
		return value.Value{}, err
	}

	if err := ExecAll(ctx, proc, t.Before); err != nil {
		return value.Value{}, err
	}

	if err := ExecAll(ctx, proc, t.Rules); err != nil {
		return value.Value{}, err
	}

	if err := ExecAll(ctx, proc, t.After); err != nil {
		return value.Value{}, err
	}

	if err := ExecAll(ctx, proc, t.Final); err != nil {
		return value.Value{}, err
	}

	return value.Null(), nil
}
