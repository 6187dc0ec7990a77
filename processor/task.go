package processor

import (
	goctx "context"
	"errors"
	"fmt"
	"strings"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/control"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/objects"
	"github.com/informave/argon/symboltable"
	"github.com/informave/argon/typetable"
	"github.com/informave/argon/value"
)

// Task is a compiled task: the declaration metadata in elements.Task
// plus its five phase statement lists, template operands and handler
// index, grounded on original_source/src/task.cc's Task constructor
// partitioning a TaskNode's children into phase lists. Running it is
// driven by Processor.Call, which dispatches to run/VOID/FETCH/STORE/
// TRANSFER below by elements.Task.Type.
type Task struct {
	elements.Task

	TmplArgs []ast.Expr
	Init     []ast.Stmt
	Before   []ast.Stmt
	Rules    []ast.Stmt
	After    []ast.Stmt
	Final    []ast.Stmt
	Handlers *HandlerSet
}

var _ elements.Element = (*Task)(nil)

// newTask builds a processor.Task from its declaration, grounded on
// task.cc's constructor.
func newTask(decl *ast.TaskDecl) *Task {
	return &Task{
		Task: elements.Task{ID: decl.ID, Type: decl.Type, Args: decl.Args.Names, Info: decl.Info()},

		TmplArgs: decl.TmplArgs,
		Init:     phaseStmts(decl.Init),
		Before:   phaseStmts(decl.Before),
		Rules:    phaseStmts(decl.Rules),
		After:    phaseStmts(decl.After),
		Final:    phaseStmts(decl.Final),
		Handlers: NewHandlerSet(decl.Handlers),
	}
}

func phaseStmts(p *ast.TaskPhase) []ast.Stmt {
	if p == nil {
		return nil
	}

	return p.Stmts
}

// taskType is the typetable.Type backing a TaskDecl, registered in
// Pass1 (pass1visitor.cc's Pass1Visitor::visit(TaskNode*) -> new
// TaskType). NewInstance hands back the same pre-built processor.Task
// on every call; tasks carry no per-instance state of their own
// between runs (each run builds its own scope and context).
type taskType struct {
	decl *ast.TaskDecl
	task *Task
}

func (t *taskType) ID() ast.Identifier { return t.decl.ID }
func (t *taskType) Node() ast.Node     { return t.decl }
func (t *taskType) Builtin() bool      { return false }

func (t *taskType) NewInstance(args []value.Value, mode typetable.Mode) (elements.Element, error) {
	return t.task, nil
}

var _ typetable.Type = (*taskType)(nil)

// run binds args into a fresh task-scoped symbol table, builds the
// variant-specific context, dispatches to the phase driver for t.Type,
// and converts a trailing RETURN or matched exception Condition back
// into a normal (value, nil) result, grounded on task.cc's
// Task::run()/do_processData() split.
func (t *Task) run(proc *Processor, args []value.Value) (value.Value, error) {
	if len(args) != len(t.Args) {
		return value.Value{}, &RuntimeError{Message: fmt.Sprintf(
			"task %s expects %d argument(s), got %d", t.ID, len(t.Args), len(args)),
		}
	}

	syms := symboltable.New(proc.Global.Symbols())
	defer syms.Pop()

	for i, name := range t.Args {
		if _, err := syms.Add(name, elements.NewValueElement(name.String(), t.Info, args[i])); err != nil {
			return value.Value{}, err
		}
	}

	ctx := &taskContext{baseContext: baseContext{syms: syms}}

	var (
		v   value.Value
		err error
	)

	switch t.Type {
	case ast.TaskVoid:
		v, err = t.runVoid(proc, ctx)
	case ast.TaskFetch:
		v, err = t.runFetch(proc, ctx)
	case ast.TaskStore:
		v, err = t.runStore(proc, ctx)
	case ast.TaskTransfer:
		v, err = t.runTransfer(proc, ctx)
	default:
		return value.Value{}, &InternalError{Message: fmt.Sprintf("unhandled task type %s", t.Type)}
	}

	if err == nil {
		return v, nil
	}

	var ret *control.Return
	if errors.As(err, &ret) {
		return ret.Value, nil
	}

	var cond *control.Condition
	if errors.As(err, &cond) {
		excID := ast.Identifier("")
		if cond.Carrier != nil {
			excID = cond.Carrier.TypeID
		}

		if h := t.Handlers.Dispatch(cond.SQLState, excID); h != nil {
			return t.runHandler(proc, ctx, h, cond)
		}
	}

	var rethrow *control.Rethrow
	if errors.As(err, &rethrow) {
		return value.Value{}, (&RuntimeError{Message: rethrow.Error()}).AddSourceInfo(rethrow.Info)
	}

	return value.Value{}, err
}

func (t *Task) runHandler(proc *Processor, ctx *taskContext, h *ast.ExceptionHandler, cond *control.Condition) (value.Value, error) {
	ctx.SetException(cond.Carrier)
	defer ctx.ReleaseException()

	err := ExecAll(ctx, proc, h.Body.Stmts)
	if err == nil {
		return value.Null(), nil
	}

	var ret *control.Return
	if errors.As(err, &ret) {
		return ret.Value, nil
	}

	var rethrow *control.Rethrow
	if errors.As(err, &rethrow) {
		return value.Value{}, cond
	}

	return value.Value{}, err
}

// taskContext is the Context a task's phases run against: it adds the
// object-backed accessors ($col/%col/destination-column-assign) spec
// §4.4 describes on top of baseContext's scope/exception plumbing.
// Which of main/dest/result is populated depends on the task variant
// (task_void.go leaves all three nil; task_fetch.go sets only main;
// task_store.go only dest+result; task_transfer.go all three).
type taskContext struct {
	baseContext

	main   objects.Object
	dest   objects.Object
	result objects.Object

	pending      map[string]value.Value
	lastInsertID value.Value
}

func (c *taskContext) MainObject() (objects.Object, error) {
	if c.main == nil {
		return nil, &RuntimeError{Message: "task has no main object"}
	}

	return c.main, nil
}

func (c *taskContext) ResultObject() (objects.Object, error) {
	if c.result == nil {
		return nil, &RuntimeError{Message: "task has no result object"}
	}

	return c.result, nil
}

func (c *taskContext) DestObject() (objects.Object, error) {
	if c.dest == nil {
		return nil, &RuntimeError{Message: "task has no destination object"}
	}

	return c.dest, nil
}

func (c *taskContext) LastInsertRowID() (value.Value, error) {
	if c.main == nil && c.dest == nil {
		return value.Value{}, &RuntimeError{Message: "task has no main object"}
	}

	return c.lastInsertID, nil
}

func (c *taskContext) SetColumn(col elements.Column, v value.Value) error {
	if c.dest == nil {
		return &RuntimeError{Message: "task has no destination object"}
	}

	if c.pending == nil {
		c.pending = make(map[string]value.Value)
	}

	c.pending[col.String()] = v

	return nil
}

// buildRow orders the buffered column-assign values according to
// cols (the destination's declaration-order column list collected by
// collectColumns), defaulting any column never assigned this
// iteration to NULL.
func (c *taskContext) buildRow(cols []elements.Column) []value.Value {
	row := make([]value.Value, len(cols))
	for i, col := range cols {
		if v, ok := c.pending[col.String()]; ok {
			row[i] = v
		} else {
			row[i] = value.Null()
		}
	}

	c.pending = nil

	return row
}

// insertRow drives dest with one buffered row, recording the
// driver-reported last-insert id and wiring a resultRow adapter as
// the context's result object so subsequent %col/%% reads in the
// after/final phases resolve against the just-inserted row.
func (c *taskContext) insertRow(dest objects.Object, cols []elements.Column) error {
	row := c.buildRow(cols)

	rr, err := dest.Insert(goctx.Background(), row)
	if err != nil {
		c.lastInsertID = value.Null()
		return &control.Condition{SQLState: sqlStateOf(err)}
	}

	// A zero LastInsertID is ResultRow's "no id reported" value.
	c.lastInsertID = value.Null()
	if rr.LastInsertID != 0 {
		c.lastInsertID = value.Int(rr.LastInsertID)
	}
	c.result = &resultRow{row: rr}

	return nil
}

// resultRow adapts an objects.ResultRow (what Insert hands back) into
// an objects.Object so it can stand in as a taskContext's result
// object: a destination object is write-only once InsertMode has run
// its statement, so %col/%% reads after an INSERT are served from the
// row the driver actually reported rather than re-querying the
// destination.
type resultRow struct {
	row objects.ResultRow
}

var _ objects.Object = (*resultRow)(nil)

func (r *resultRow) Open(ctx goctx.Context) error { return nil }

func (r *resultRow) Next(ctx goctx.Context) (bool, error) {
	return false, fmt.Errorf("result row has a single implicit row")
}

func (r *resultRow) Column(col elements.Column) (value.Value, error) {
	if col.ByName {
		for i, n := range r.row.ColumnNames {
			if strings.EqualFold(n, col.Name) {
				return r.row.Columns[i], nil
			}
		}

		return value.Value{}, &FieldNotFoundError{Field: col.Name}
	}

	idx := col.Number - 1
	if idx < 0 || idx >= len(r.row.Columns) {
		return value.Value{}, &FieldNotFoundError{Field: col.String()}
	}

	return r.row.Columns[idx], nil
}

func (r *resultRow) Insert(ctx goctx.Context, row []value.Value) (objects.ResultRow, error) {
	return objects.ResultRow{}, fmt.Errorf("result row object is read-only")
}

func (r *resultRow) Close() error { return nil }
