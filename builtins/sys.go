package builtins

import (
	"github.com/informave/argon/control"
	"github.com/informave/argon/value"
)

// sysFuncs grounds on original_source/src/builtin/sys.cc. sys.isnull
// is also registered under the bare name "isnull", matching the
// original's table_sys_funcs entry for plain "isnull" (there is no
// "sys.isnull" entry in the original at all; Argon keeps both names
// since SPEC_FULL documents sys.isnull as the canonical one).
func sysFuncs() []Entry {
	isnull := Entry{Name: "sys.isnull", MinArg: 1, MaxArg: 1, Fn: sysIsNull}
	bareIsnull := isnull
	bareIsnull.Name = "isnull"

	return []Entry{
		isnull,
		bareIsnull,
		{Name: "sys.terminate", MinArg: 0, MaxArg: 1, Fn: sysTerminate},
		{Name: "sys.charseq", MinArg: 1, MaxArg: -1, Fn: sysCharseq},
		{Name: "sys.byteseq", MinArg: 1, MaxArg: -1, Fn: sysByteseq},
		{Name: "sys.newline", MinArg: 0, MaxArg: 0, Fn: sysNewline},
	}
}

func sysIsNull(args []value.Value) (value.Value, error) {
	return value.Bool(args[0].IsNull()), nil
}

// sysTerminate unwinds the whole program via control.Terminate,
// defaulting to exit code 0 when called with no argument.
func sysTerminate(args []value.Value) (value.Value, error) {
	code := 0

	if len(args) == 1 && !args[0].IsNull() {
		n, err := args[0].AsInt()
		if err != nil {
			return value.Null(), err
		}

		code = int(n)
	}

	return value.Null(), &control.Terminate{Code: code}
}

// sysCharseq builds a string from each argument's Unicode code point.
func sysCharseq(args []value.Value) (value.Value, error) {
	runes := make([]rune, 0, len(args))

	for _, a := range args {
		n, err := a.AsInt()
		if err != nil {
			return value.Null(), err
		}

		runes = append(runes, rune(n))
	}

	return value.Str(string(runes)), nil
}

// sysByteseq builds a VARBINARY value from each argument's byte value.
func sysByteseq(args []value.Value) (value.Value, error) {
	bs := make([]byte, 0, len(args))

	for _, a := range args {
		n, err := a.AsInt()
		if err != nil {
			return value.Null(), err
		}

		bs = append(bs, byte(n))
	}

	return value.Bytes(bs), nil
}

// sysNewline returns the hard-coded CRLF from sys.cc's func_newline
// (marked "/// @bug fixme" there for ignoring platform conventions;
// Argon keeps the same constant for compatibility with existing scripts).
func sysNewline([]value.Value) (value.Value, error) {
	return value.Str("\r\n"), nil
}
