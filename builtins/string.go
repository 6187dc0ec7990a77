package builtins

import (
	"strings"

	"github.com/informave/argon/value"
)

// stringFuncs grounds on original_source/src/builtin/string.cc.
func stringFuncs() []Entry {
	return []Entry{
		{Name: "string.concat", MinArg: 2, MaxArg: -1, Fn: stringConcat},
		{Name: "string.len", MinArg: 1, MaxArg: 1, Fn: stringLen},
	}
}

// stringConcat renders every argument with Value.Str and joins them,
// NULL rendering as the literal "<null>" the way string.cc's
// func_concat::run concatenates each arg's data().str() unconditionally.
func stringConcat(args []value.Value) (value.Value, error) {
	var b strings.Builder

	for _, a := range args {
		if a.IsNull() {
			b.WriteString("<null>")
			continue
		}

		b.WriteString(a.Str())
	}

	return value.Str(b.String()), nil
}

// stringLen returns the character count of arg #1, NULL if arg is NULL.
func stringLen(args []value.Value) (value.Value, error) {
	if anyNull(args[0]) {
		return value.Null(), nil
	}

	return value.Int(int64(len([]rune(args[0].Str())))), nil
}
