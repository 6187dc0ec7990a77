package processor

import (
	goctx "context"
	"errors"
	"fmt"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/builtins"
	"github.com/informave/argon/control"
	"github.com/informave/argon/dbdriver"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/symboltable"
	"github.com/informave/argon/typetable"
	"github.com/informave/argon/value"
)

// Process exit codes a Run mirrors back to the embedder (spec §8
// scenario 4's assertion case; engine.Engine.Exec returns these
// verbatim).
const (
	ExitSuccess      = 0
	ExitAssert       = 2
	ExitRuntimeError = 3
)

// Logger receives one rendered line per LOG statement (spec §8
// scenario 1's "logger callback"). A nil Logger discards LOG output.
type Logger func(line string)

// Processor ties together the type table, global scope, built-in
// registry and call stack that Compile/Run drive, grounded on
// original_source/src/processor.cc. An embedder builds one, supplies
// its open connections, then calls Compile followed by Run.
type Processor struct {
	Types       *typetable.TypeTable
	Global      *GlobalContext
	Builtins    *builtins.Registry
	Connections map[string]*dbdriver.Connection
	Logger      Logger

	stack []elements.Element
}

// NewProcessor returns an empty Processor with its built-in registry
// pre-populated and sql.*/trx.*/seq.next/debug.symbol_exists wired in
// (builtins.go's doc comment: those seven need a live Processor to
// close over, unlike the stateless built-in groups).
func NewProcessor() *Processor {
	p := &Processor{
		Types:       typetable.New(),
		Global:      NewGlobalContext(),
		Builtins:    builtins.New(),
		Connections: make(map[string]*dbdriver.Connection),
	}

	p.registerProcessorBuiltins()

	return p
}

func (p *Processor) log(line string) {
	if p.Logger != nil {
		p.Logger(line)
	}
}

// Push/Pop satisfy control.stackFrame, so control.StackFrame can guard
// call-stack push/pop the way the original's ScopedStackPush does in
// processor.cc.
func (p *Processor) Push(elem elements.Element) { p.stack = append(p.stack, elem) }
func (p *Processor) Pop()                       { p.stack = p.stack[:len(p.stack)-1] }

// Compile runs the Pass1-equivalent of the original's two-pass
// compile: every declaration that introduces a *type* (DECLARE,
// TASK, FUNCTION, EXCEPTION) is registered into the type table.
// CONNECTION/VAR/SEQUENCE declarations register no type — they are
// instantiated as global *elements* in Run, mirroring pass2visitor.cc
// (grounded on the split documented in pass1visitor.cc/pass2visitor.cc).
func (p *Processor) Compile(tree *ast.Program) error {
	var diags []SemanticDiagnostic

	for _, decl := range tree.Decls {
		var err error

		switch d := decl.(type) {
		case *ast.ObjectDecl:
			err = p.Types.Add(&objectDeclType{proc: p, decl: d})

		case *ast.FunctionDecl:
			fn := &elements.Function{ID: d.ID, Args: d.Args.Names, Body: d.Body, Info: d.Info()}
			err = p.Types.Add(&functionType{decl: d, fn: fn})

		case *ast.TaskDecl:
			task := newTask(d)
			if colDiags := validateTaskColumns(d, task); len(colDiags) > 0 {
				diags = append(diags, colDiags...)
			} else {
				err = p.Types.Add(&taskType{decl: d, task: task})
			}

		case *ast.ExceptionDecl:
			err = p.Types.Add(&exceptionType{decl: d})

		case *ast.ConnDecl, *ast.VarDecl, *ast.SequenceDecl:
			// no type of their own: instantiated as global elements in Run.

		default:
			err = fmt.Errorf("unhandled top-level declaration %T", d)
		}

		if err != nil {
			diags = append(diags, SemanticDiagnostic{Severity: "error", Message: err.Error(), Info: decl.Info()})
		}
	}

	if len(diags) > 0 {
		return &SemanticError{Diagnostics: diags}
	}

	return nil
}

// Run instantiates every global element in declaration order (the
// Pass2-equivalent: VarDecl evaluates its initializer, SequenceDecl
// builds a counter, ConnDecl resolves the embedder-supplied connection
// and asserts it is usable), then calls "main" with no arguments,
// mapping the outcome to a process exit code the way the original's
// Processor::run()/main() driver does.
func (p *Processor) Run(tree *ast.Program) (int, error) {
	for _, decl := range tree.Decls {
		if err := p.instantiateGlobal(decl); err != nil {
			return ExitRuntimeError, err
		}
	}

	_, err := p.CallByID("main", nil)
	if err == nil {
		return ExitSuccess, nil
	}

	var term *control.Terminate
	if errors.As(err, &term) {
		return term.Code, nil
	}

	var assert *control.Assert
	if errors.As(err, &assert) {
		return ExitAssert, assert
	}

	return ExitRuntimeError, err
}

func (p *Processor) instantiateGlobal(decl ast.Node) error {
	switch d := decl.(type) {
	case *ast.VarDecl:
		v, err := Eval(p.Global, p, d.Init)
		if err != nil {
			return err
		}

		_, err = p.Global.Symbols().Add(d.ID, elements.NewValueElement(d.ID.String(), d.Info(), v))

		return err

	case *ast.SequenceDecl:
		_, err := p.Global.Symbols().Add(d.ID, elements.NewSequence(d.ID.String(), d.Start, d.Inc))
		return err

	case *ast.ConnDecl:
		dbc, ok := p.Connections[d.ID.Lower()]
		if !ok {
			return &ConnectionError{ID: d.ID.String()}
		}

		if err := dbc.Ping(goctx.Background()); err != nil {
			return &ConnectionError{ID: d.ID.String()}
		}

		conn := &elements.Connection{ID: d.ID, Driver: d.Driver, DBC: dbc, Info: d.Info()}
		_, err := p.Global.Symbols().Add(d.ID, conn)

		return err

	default:
		return nil
	}
}

// Call invokes a resolved callable element — a Task, a user Function
// or a Lambda — pushing/popping the call stack around it, the common
// dispatch point original_source/src/processor.cc's call() funnels
// every invocation through regardless of callee kind.
func (p *Processor) Call(elem elements.Element, args []value.Value) (value.Value, error) {
	pop := control.StackFrame(p, elem)
	defer pop()

	switch e := elem.(type) {
	case *Task:
		return e.run(p, args)
	case *elements.Function:
		return p.callFunction(e, args)
	case *elements.Lambda:
		return p.callLambda(e, args)
	default:
		return value.Value{}, &InternalError{Message: fmt.Sprintf("%T is not callable", elem)}
	}
}

// CallByID resolves id against the type table and calls it, the path
// Run uses to invoke "main" and TaskExecStmt uses for `TASK id(...)`.
func (p *Processor) CallByID(id ast.Identifier, args []value.Value) (value.Value, error) {
	typ, err := p.Types.Find(id)
	if err != nil {
		return value.Value{}, &NotDeclaredError{ID: id.String()}
	}

	elem, err := typ.NewInstance(args, typetable.DefaultMode)
	if err != nil {
		return value.Value{}, err
	}

	return p.Call(elem, args)
}

// CallFunction is evalFuncCall's fallback once the built-in registry
// has no match: a bound Lambda in scope takes priority (spec §3's
// LambdaFunc grouping is a plain variable reference at the call site),
// then a declared FUNCTION, mirroring visitors.cc's FuncCallNode
// handling via Processor::createFunction generalized to cover both.
func (p *Processor) CallFunction(ctx Context, name ast.Identifier, args []value.Value) (value.Value, error) {
	if elem, err := ctx.Resolve(name); err == nil {
		if lam, ok := elem.(*elements.Lambda); ok {
			return p.Call(lam, args)
		}
	}

	return p.CallByID(name, args)
}

func (p *Processor) callFunction(fn *elements.Function, args []value.Value) (value.Value, error) {
	if len(args) != len(fn.Args) {
		return value.Value{}, &RuntimeError{Message: fmt.Sprintf(
			"function %s expects %d argument(s), got %d", fn.ID, len(fn.Args), len(args)),
		}
	}

	child, pop := control.SubSymbols(p.closureScope(fn.Closure))
	defer pop()

	for i, name := range fn.Args {
		if _, err := child.Add(name, elements.NewValueElement(name.String(), fn.Info, args[i])); err != nil {
			return value.Value{}, err
		}
	}

	ctx := newCallContext(child)

	err := ExecAll(ctx, p, fn.Body.Stmts)
	if err == nil {
		return value.Null(), nil
	}

	var ret *control.Return
	if errors.As(err, &ret) {
		return ret.Value, nil
	}

	return value.Value{}, err
}

func (p *Processor) callLambda(lam *elements.Lambda, args []value.Value) (value.Value, error) {
	child, pop := control.SubSymbols(p.closureScope(lam.Closure))
	defer pop()

	ctx := newCallContext(child)

	err := ExecAll(ctx, p, lam.Body.Stmts)
	if err == nil {
		return value.Null(), nil
	}

	var ret *control.Return
	if errors.As(err, &ret) {
		return ret.Value, nil
	}

	return value.Value{}, err
}

// closureScope recovers the concrete *symboltable.SymbolTable behind
// an elements.Scope (always a SymbolTable in practice — see
// elements.Scope's doc comment on why Function/Lambda store it behind
// the narrower interface instead of importing symboltable directly),
// falling back to the global scope for top-level functions, which
// close over nothing.
func (p *Processor) closureScope(s elements.Scope) *symboltable.SymbolTable {
	if st, ok := s.(*symboltable.SymbolTable); ok {
		return st
	}

	return p.Global.Symbols()
}
