package builtins

import (
	"fmt"
	"strings"

	"github.com/informave/argon/value"
)

// dateFuncs grounds on original_source/src/builtin/date.cc.
//
// date.year/month/day are declared (0,0) in the original's
// builtin_func_def table even though func_year/month/day each read
// m_args[0] unconditionally — a bug in the original the original never
// hit because the parser always supplied the argument anyway. Argon
// declares the honest arity, (1,1).
func dateFuncs() []Entry {
	return []Entry{
		{Name: "date.encode", MinArg: 3, MaxArg: 3, Fn: dateEncode},
		{Name: "date.year", MinArg: 1, MaxArg: 1, Fn: dateYear},
		{Name: "date.month", MinArg: 1, MaxArg: 1, Fn: dateMonth},
		{Name: "date.day", MinArg: 1, MaxArg: 1, Fn: dateDay},
		{Name: "date.format", MinArg: 2, MaxArg: 2, Fn: dateFormat},
	}
}

func dateEncode(args []value.Value) (value.Value, error) {
	if anyNull(args...) {
		return value.Null(), nil
	}

	year, err := args[0].AsInt()
	if err != nil {
		return value.Null(), err
	}

	month, err := args[1].AsInt()
	if err != nil {
		return value.Null(), err
	}

	day, err := args[2].AsInt()
	if err != nil {
		return value.Null(), err
	}

	return value.DateYMD(int(year), int(month), int(day)), nil
}

func dateYear(args []value.Value) (value.Value, error) {
	if anyNull(args[0]) {
		return value.Null(), nil
	}

	d, err := args[0].AsDate()
	if err != nil {
		return value.Null(), err
	}

	return value.Int(int64(d.Year())), nil
}

func dateMonth(args []value.Value) (value.Value, error) {
	if anyNull(args[0]) {
		return value.Null(), nil
	}

	d, err := args[0].AsDate()
	if err != nil {
		return value.Null(), err
	}

	return value.Int(int64(d.Month())), nil
}

func dateDay(args []value.Value) (value.Value, error) {
	if anyNull(args[0]) {
		return value.Null(), nil
	}

	d, err := args[0].AsDate()
	if err != nil {
		return value.Null(), err
	}

	return value.Int(int64(d.Day())), nil
}

// fmtInt zero-pads val to maxLen digits, or truncates to its last two
// digits if it overflows maxLen — the literal behavior of date.cc's
// fmt_int helper (its overflow branch keeps res.substr(size-2), not a
// left-truncation to maxLen, which Argon preserves verbatim).
func fmtInt(val, maxLen int) string {
	s := fmt.Sprintf("%d", val)
	if len(s) > maxLen {
		return s[len(s)-2:]
	}

	for len(s) < maxLen {
		s = "0" + s
	}

	return s
}

// dateFormat implements the small yy/yyyy, m/mm, d/dd pattern
// language from date.cc's func_format, copying literal runs of any
// other character straight through.
func dateFormat(args []value.Value) (value.Value, error) {
	if anyNull(args[0]) {
		return value.Null(), nil
	}

	d, err := args[0].AsDate()
	if err != nil {
		return value.Null(), err
	}

	pattern := args[1].Str()

	var out strings.Builder
	runes := []rune(pattern)

	for i := 0; i < len(runes); {
		c := runes[i]
		switch c {
		case 'y':
			j := i
			for j < len(runes) && runes[j] == 'y' {
				j++
			}
			tok := string(runes[i:j])
			switch tok {
			case "yyyy":
				out.WriteString(fmtInt(d.Year(), 4))
			case "yy":
				out.WriteString(fmtInt(d.Year(), 2))
			default:
				return value.Null(), fmt.Errorf("date.format: invalid format: %s", pattern)
			}
			i = j
		case 'd':
			j := i
			for j < len(runes) && runes[j] == 'd' {
				j++
			}
			tok := string(runes[i:j])
			switch tok {
			case "dd":
				out.WriteString(fmtInt(d.Day(), 2))
			case "d":
				out.WriteString(fmtInt(d.Day(), 1))
			default:
				return value.Null(), fmt.Errorf("date.format: invalid format: %s", pattern)
			}
			i = j
		case 'm':
			j := i
			for j < len(runes) && runes[j] == 'm' {
				j++
			}
			tok := string(runes[i:j])
			switch tok {
			case "mm":
				out.WriteString(fmtInt(int(d.Month()), 2))
			case "m":
				out.WriteString(fmtInt(int(d.Month()), 1))
			default:
				return value.Null(), fmt.Errorf("date.format: invalid format: %s", pattern)
			}
			i = j
		default:
			out.WriteRune(c)
			i++
		}
	}

	return value.Str(out.String()), nil
}
