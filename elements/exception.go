package elements

import (
	"fmt"

	"github.com/informave/argon/ast"
	"github.com/informave/argon/value"
)

// ExceptionCarrier wraps a raised user exception (`throw E(args...)`)
// as a symbol-table element so handler blocks can bind it and inspect
// its payload, grounded on original_source/src/customexception.cc.
type ExceptionCarrier struct {
	TypeID  ast.Identifier
	Payload value.Value
	Info    ast.SourceInfo
}

func (e *ExceptionCarrier) Value() value.Value { return e.Payload }

func (e *ExceptionCarrier) String() string {
	if e.Payload.IsNull() {
		return fmt.Sprintf("custom exception '%s' encountered: NULL <no message>", e.TypeID)
	}

	return fmt.Sprintf("custom exception '%s' encountered: %s", e.TypeID, e.Payload.Str())
}

func (e *ExceptionCarrier) ElemName() string           { return e.TypeID.String() }
func (e *ExceptionCarrier) TypeName() string           { return "exception" }
func (e *ExceptionCarrier) SourceInfo() ast.SourceInfo { return e.Info }
