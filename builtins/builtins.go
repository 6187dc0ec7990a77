// Package builtins is the registry of built-in functions available to
// every DTS expression, grounded function-for-function on
// original_source/src/builtin/*.cc (string.cc, date.cc, numeric.cc,
// regex.cc, sys.cc, debug.cc). Functions that need more than their
// evaluated arguments — sql.* and trx.* (a live *dbdriver.Connection),
// seq.next (the running elements.Sequence), debug.symbol_exists (the
// program's global symbol table) — are realized in package
// processor instead, which registers them into this same Registry
// under their full dotted name once a Processor exists to close over.
package builtins

import (
	"fmt"

	"github.com/informave/argon/value"
)

// Func is a built-in's implementation: given its already-evaluated
// arguments, produce a result value.Value or an error. NULL-argument
// short-circuiting ("if any arg is NULL, return NULL") is handled per
// function below exactly as the original does it per call site, not
// centrally, since some built-ins (sys.isnull, debug.echo) must see
// NULL arguments rather than propagate past them.
type Func func(args []value.Value) (value.Value, error)

// Entry is one registered built-in: its name, arity bounds (max -1
// means unbounded, mirroring the original's builtin_func_def table),
// and implementation.
type Entry struct {
	Name   string
	MinArg int
	MaxArg int
	Fn     Func
}

// Registry is the flat name→Entry table built-ins are looked up from.
type Registry struct {
	entries map[string]Entry
}

// New returns a Registry pre-populated with every built-in group.
func New() *Registry {
	r := &Registry{entries: make(map[string]Entry)}
	r.register(stringFuncs())
	r.register(dateFuncs())
	r.register(numericFuncs())
	r.register(regexFuncs())
	r.register(sysFuncs())
	r.register(debugFuncs())

	return r
}

func (r *Registry) register(entries []Entry) {
	for _, e := range entries {
		r.entries[e.Name] = e
	}
}

// Register adds or replaces entries, the hook package processor uses
// to install sql.*, trx.*, seq.next and debug.symbol_exists once a
// running Processor exists for them to close over.
func (r *Registry) Register(entries ...Entry) {
	r.register(entries)
}

// Lookup finds a built-in by name, case-sensitively (built-in names
// use literal dotted identifiers, unlike DTS user identifiers).
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Call resolves name and invokes it after checking arity, the shared
// entry point processor.eval.go's FuncCallExpr handling calls through.
func (r *Registry) Call(name string, args []value.Value) (value.Value, error) {
	e, ok := r.Lookup(name)
	if !ok {
		return value.Value{}, fmt.Errorf("builtins: unknown function: %s", name)
	}

	if len(args) < e.MinArg || (e.MaxArg >= 0 && len(args) > e.MaxArg) {
		return value.Value{}, fmt.Errorf("builtins: %s: expected %d..%s arguments, got %d",
			name, e.MinArg, maxArgStr(e.MaxArg), len(args))
	}

	return e.Fn(args)
}

func maxArgStr(max int) string {
	if max < 0 {
		return "unbounded"
	}

	return fmt.Sprintf("%d", max)
}

// anyNull reports whether any of args is NULL, the short-circuit
// guard most numeric/date built-ins open with (e.g. date.year:
// "if(m_args[0]->_value().data().isnull()) return Value();").
func anyNull(args ...value.Value) bool {
	for _, a := range args {
		if a.IsNull() {
			return true
		}
	}

	return false
}
