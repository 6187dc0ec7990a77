package control

import "github.com/informave/argon/ast"

// SyntaxError is the error shape the lexer/parser collaborator raises
// on malformed source (spec §6/§7) — this package only declares it so
// engine.Load has a concrete type to construct and callers have a
// concrete type to errors.As against; no tokenizer lives here.
type SyntaxError struct {
	Token string
	Info  ast.SourceInfo
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return "syntax error at " + e.Info.String()
	}

	return "syntax error near " + e.Token + " at " + e.Info.String()
}
