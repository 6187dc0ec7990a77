package ast

import "github.com/shopspring/decimal"

// LiteralExpr is a string literal.
type LiteralExpr struct {
	NodeInfo
	Text string
}

func (e *LiteralExpr) Kind() NodeKind { return KindLiteralExpr }
func (e *LiteralExpr) exprNode()      {}

// NumberExpr is a numeric literal (integer or decimal).
type NumberExpr struct {
	NodeInfo
	IsInt bool
	Int   int64
	Dec   decimal.Decimal
}

func (e *NumberExpr) Kind() NodeKind { return KindNumberExpr }
func (e *NumberExpr) exprNode()      {}

// NullExpr is the NULL literal.
type NullExpr struct{ NodeInfo }

func (e *NullExpr) Kind() NodeKind { return KindNullExpr }
func (e *NullExpr) exprNode()      {}

// IdExpr references a declared identifier (variable, function-less lookup).
type IdExpr struct {
	NodeInfo
	Name Identifier
}

func (e *IdExpr) Kind() NodeKind { return KindIdExpr }
func (e *IdExpr) exprNode()      {}

// ColumnExpr is `$col` / `$n`, reading (or, as an lvalue, selecting) a
// column of the current task's main object or destination object.
type ColumnExpr struct {
	NodeInfo
	Result bool // true for %col (result object), false for $col (main object)
	ByName bool
	Name   string
	Number int
}

func (e *ColumnExpr) Kind() NodeKind {
	if e.Result {
		return KindResColumnExpr
	}

	return KindColumnExpr
}
func (e *ColumnExpr) exprNode() {}

// ResIdExpr is `%%`, the last-insert row id of the task's most recent
// destination insert.
type ResIdExpr struct{ NodeInfo }

func (e *ResIdExpr) Kind() NodeKind { return KindResIdExpr }
func (e *ResIdExpr) exprNode()      {}

// FuncCallExpr calls a built-in or user-defined function by name.
type FuncCallExpr struct {
	NodeInfo
	Name Identifier
	Args []Expr
}

func (e *FuncCallExpr) Kind() NodeKind { return KindFuncCallExpr }
func (e *FuncCallExpr) exprNode()      {}

// BinaryOp enumerates the surface-syntax binary operators (spec §4.8).
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinConcat
	BinAnd
	BinOr
	BinXor
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
)

// BinaryExpr is a binary operator expression.
type BinaryExpr struct {
	NodeInfo
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) Kind() NodeKind { return KindBinaryExpr }
func (e *BinaryExpr) exprNode()      {}

// UnaryOp enumerates the surface-syntax unary operators.
type UnaryOp int

const (
	UnPos UnaryOp = iota
	UnNeg
	UnNot
)

// UnaryExpr is a unary operator expression.
type UnaryExpr struct {
	NodeInfo
	Op      UnaryOp
	Operand Expr
}

func (e *UnaryExpr) Kind() NodeKind { return KindUnaryExpr }
func (e *UnaryExpr) exprNode()      {}

// AssignExpr evaluates the right side and assigns it, yielding the
// assigned value (spec §4.8's `Assign` expression form, distinct from
// the statement-level AssignStmt used for plain `x := expr;` lines).
type AssignExpr struct {
	NodeInfo
	Target Identifier
	Value  Expr
}

func (e *AssignExpr) Kind() NodeKind { return KindAssignExpr }
func (e *AssignExpr) exprNode()      {}

// NewSourceInfo is a convenience constructor used by callers (typically
// test fixtures standing in for the external parser) that build ast
// trees directly instead of through a parser.
func NewSourceInfo(file string, offset, length, line int) SourceInfo {
	return SourceInfo{File: file, Offset: offset, Length: length, Line: line}
}
