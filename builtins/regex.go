package builtins

import (
	"fmt"
	"regexp"

	"github.com/informave/argon/value"
)

// regexFuncs grounds on original_source/src/builtin/regex.cc, which
// matches through boost::wregex in Perl mode. Argon uses stdlib
// regexp (RE2) instead of importing a third-party engine: RE2 has no
// backreference/lookaround support, a documented narrowing versus
// boost::regex, but needs no additional dependency and guarantees
// linear-time matching for untrusted patterns (see DESIGN.md).
func regexFuncs() []Entry {
	return []Entry{
		{Name: "regex.match", MinArg: 2, MaxArg: 2, Fn: regexMatch},
		{Name: "regex.search_n", MinArg: 3, MaxArg: 3, Fn: regexSearchN},
		{Name: "regex.replace", MinArg: 3, MaxArg: 3, Fn: regexReplace},
	}
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("regex: bad regular expression: %w", err)
	}

	return re, nil
}

func regexMatch(args []value.Value) (value.Value, error) {
	re, err := compilePattern(args[1].Str())
	if err != nil {
		return value.Null(), err
	}

	return value.Bool(re.MatchString(args[0].Str())), nil
}

// regexSearchN returns match slot num-1 out of FindStringSubmatch's
// result (slot 0 is the whole match, slot 1 the first capture group,
// and so on), the literal what[num-1] indexing from regex.cc's
// func_search_n — so num=1 is the whole match and num=2 is the first
// capture group, not num=1.
func regexSearchN(args []value.Value) (value.Value, error) {
	re, err := compilePattern(args[1].Str())
	if err != nil {
		return value.Null(), err
	}

	num, err := args[2].AsInt()
	if err != nil {
		return value.Null(), err
	}

	if num <= 0 {
		return value.Null(), fmt.Errorf("regex.search_n: argument #3 must be > 0")
	}

	m := re.FindStringSubmatch(args[0].Str())
	if m == nil || int(num) > len(m) {
		return value.Null(), nil
	}

	return value.Str(m[num-1]), nil
}

func regexReplace(args []value.Value) (value.Value, error) {
	re, err := compilePattern(args[1].Str())
	if err != nil {
		return value.Null(), err
	}

	replacement := perlToGoReplacement(args[2].Str())
	return value.Str(re.ReplaceAllString(args[0].Str(), replacement)), nil
}

// perlToGoReplacement rewrites boost::regex_replace's default Perl
// substitution syntax ($1, $2, ...) into regexp.ReplaceAllString's
// ${1}, ${2}, ... form so a bare "$12" keeps meaning "group 12" rather
// than "group 1 followed by literal 2".
func perlToGoReplacement(repl string) string {
	out := make([]byte, 0, len(repl))

	for i := 0; i < len(repl); i++ {
		if repl[i] == '$' && i+1 < len(repl) && repl[i+1] >= '0' && repl[i+1] <= '9' {
			j := i + 1
			for j < len(repl) && repl[j] >= '0' && repl[j] <= '9' {
				j++
			}

			out = append(out, '$', '{')
			out = append(out, repl[i+1:j]...)
			out = append(out, '}')
			i = j - 1
			continue
		}

		out = append(out, repl[i])
	}

	return string(out)
}
