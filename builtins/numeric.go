package builtins

import (
	"strings"

	"github.com/informave/argon/value"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// numericFuncs grounds on original_source/src/builtin/numeric.cc.
func numericFuncs() []Entry {
	return []Entry{
		{Name: "numeric.format", MinArg: 1, MaxArg: 4, Fn: numericFormat},
		{Name: "numeric.from_string", MinArg: 1, MaxArg: 1, Fn: numericFromString},
		{Name: "numeric.cast", MinArg: 1, MaxArg: 1, Fn: numericCast},
	}
}

// numericFormat renders a NUMERIC with locale-aware thousands grouping
// (golang.org/x/text/number, defaulting to the en-US symbols the
// original's "C" numpunct locale effectively falls back to), with
// arg #2 overriding the decimal scale, arg #3 the thousands
// separator and arg #4 the decimal separator, matching
// numeric.cc's func_format precedence.
func numericFormat(args []value.Value) (value.Value, error) {
	if anyNull(args[0]) {
		return value.Null(), nil
	}

	dec, err := args[0].AsNumeric()
	if err != nil {
		return value.Null(), err
	}

	scale := -dec.Exponent()
	if scale < 0 {
		scale = 0
	}

	if len(args) >= 2 && !args[1].IsNull() {
		n, err := args[1].AsInt()
		if err != nil {
			return value.Null(), err
		}

		scale = int(n)
	}

	// InexactFloat64 loses precision for coefficients beyond float64's
	// 53 mantissa bits; acceptable here since numeric.format is a
	// display/rendering built-in, not an arithmetic one.
	p := message.NewPrinter(language.AmericanEnglish)
	s := p.Sprintf("%v", number.Decimal(dec.InexactFloat64(), number.Scale(scale)))

	tsep := ","
	if len(args) >= 3 && !args[2].IsNull() {
		tsep = args[2].Str()
	}

	dsep := "."
	if len(args) >= 4 && !args[3].IsNull() {
		dsep = args[3].Str()
	}

	if tsep != "," || dsep != "." {
		// Swap both separators in a single pass through placeholders so
		// overriding one with the other's default character doesn't
		// clobber a separator we already substituted.
		const tPlaceholder, dPlaceholder = "\x00", "\x01"
		s = strings.ReplaceAll(s, ",", tPlaceholder)
		s = strings.ReplaceAll(s, ".", dPlaceholder)
		s = strings.ReplaceAll(s, tPlaceholder, tsep)
		s = strings.ReplaceAll(s, dPlaceholder, dsep)
	}

	return value.Str(s), nil
}

func numericFromString(args []value.Value) (value.Value, error) {
	return value.NumericFromString(args[0].Str())
}

func numericCast(args []value.Value) (value.Value, error) {
	if anyNull(args[0]) {
		return value.Null(), nil
	}

	d, err := args[0].AsNumeric()
	if err != nil {
		return value.Null(), err
	}

	return value.Numeric(d), nil
}
