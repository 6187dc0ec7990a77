package builtins

import (
	"fmt"
	"os"

	"github.com/informave/argon/value"
)

// debugFuncs grounds on original_source/src/builtin/debug.cc.
// debug.symbol_exists is registered by package processor instead
// (debug.cc's own func_symbol_exists is documented buggy there — it
// searches the callee's own empty symbol table, not the caller's —
// and any symbol lookup needs a symboltable.SymbolTable, which this
// package does not have access to). The processor version searches
// the global symbol table only, not the caller's local scopes.
func debugFuncs() []Entry {
	return []Entry{
		{Name: "debug.echo", MinArg: 1, MaxArg: 1, Fn: debugEcho},
	}
}

// debugEcho writes its argument's kind and rendering to stderr and
// returns it unchanged, matching func_echo::run's "[debug():] {type}
// value" line on std::cerr.
func debugEcho(args []value.Value) (value.Value, error) {
	fmt.Fprintf(os.Stderr, "[debug():] {%s} %s\n", args[0].Kind(), args[0].Str())
	return args[0], nil
}
