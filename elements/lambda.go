package elements

import (
	"github.com/informave/argon/ast"
	"github.com/informave/argon/value"
)

// Lambda is an inline function value bound with `-> { ... }` syntax
// (spec §3 LambdaFunc grouping), grounded on original_source/src/lambda.cc.
// Unlike Function it is anonymous and always carries a non-nil
// closure capturing the scope it was declared in.
type Lambda struct {
	Args    []ast.Identifier
	Body    *ast.CompoundStmt
	Closure Scope
	Info    ast.SourceInfo
}

func (l *Lambda) Value() value.Value         { return value.Null() }
func (l *Lambda) String() string             { return "lambda" }
func (l *Lambda) ElemName() string           { return "<lambda>" }
func (l *Lambda) TypeName() string           { return "lambda" }
func (l *Lambda) SourceInfo() ast.SourceInfo { return l.Info }
