package engine

import (
	"errors"

	"github.com/informave/argon/ast"
)

// ErrNoParser is returned by Load when no lexer/parser has registered
// itself. The lexer/parser that turns DTS source text into an
// *ast.Program is an external collaborator (spec §1/§6); this package
// only owns the seam it plugs into.
var ErrNoParser = errors.New("engine: no parser registered")

// ParseFunc turns source bytes into a Program, returning a
// *control.SyntaxError on malformed input.
type ParseFunc func(src []byte, filename string) (*ast.Program, error)

// parser is the process-wide registered ParseFunc, set by a real
// lexer/parser package's init() via RegisterParser — the same
// blank-import-registers-itself idiom dbdriver uses for database/sql
// drivers, generalized to the parsing collaborator.
var parser ParseFunc

// RegisterParser installs fn as the parser Load uses. Called from the
// lexer/parser package's init(), not from application code.
func RegisterParser(fn ParseFunc) { parser = fn }
