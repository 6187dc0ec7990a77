package value

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BinOp identifies a binary operator recognized by the evaluator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpConcat
	OpAnd
	OpOr
	OpXor
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// Arith evaluates a binary operator over two values.
//
// NULL policy (spec §4.8/§9, pinned down here as the one documented
// behavior a reimplementation must keep stable): every arithmetic and
// comparison operator propagates NULL when either operand is NULL. The
// sole exception is OpConcat, whose NULL operand renders as the literal
// string "<null>" rather than propagating NULL — this preserves legible
// log output, exactly as spec.md §4.8 calls out as an explicit, tested
// design choice. AND/OR/XOR follow three-valued logic when an operand is
// NULL and the other is not already decisive (e.g. `NULL AND false` is
// `false`, `NULL AND true` is `NULL`).
func Arith(op BinOp, l, r Value) (Value, error) {
	if op == OpConcat {
		return Str(concatStr(l) + concatStr(r)), nil
	}

	if op == OpAnd || op == OpOr || op == OpXor {
		return logical(op, l, r)
	}

	if l.IsNull() || r.IsNull() {
		return Null(), nil
	}

	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod:
		return numericArith(op, l, r)
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return compare(op, l, r)
	default:
		return Null(), fmt.Errorf("%w: %v", ErrUnsupportedOperator, op)
	}
}

func concatStr(v Value) string {
	if v.IsNull() {
		return "<null>"
	}

	return v.Str()
}

func logical(op BinOp, l, r Value) (Value, error) {
	lb, lNull := boolOrNull(l)
	rb, rNull := boolOrNull(r)

	switch op {
	case OpAnd:
		if !lNull && !lb {
			return Bool(false), nil
		}

		if !rNull && !rb {
			return Bool(false), nil
		}

		if lNull || rNull {
			return Null(), nil
		}

		return Bool(lb && rb), nil
	case OpOr:
		if !lNull && lb {
			return Bool(true), nil
		}

		if !rNull && rb {
			return Bool(true), nil
		}

		if lNull || rNull {
			return Null(), nil
		}

		return Bool(lb || rb), nil
	case OpXor:
		if lNull || rNull {
			return Null(), nil
		}

		return Bool(lb != rb), nil
	default:
		return Null(), fmt.Errorf("%w: %v", ErrUnsupportedOperator, op)
	}
}

func boolOrNull(v Value) (b bool, isNull bool) {
	if v.IsNull() {
		return false, true
	}

	bv, err := v.AsBool()
	if err != nil {
		return false, true
	}

	return bv, false
}

func numericArith(op BinOp, l, r Value) (Value, error) {
	if l.kind == KindString || r.kind == KindString {
		return Null(), fmt.Errorf("%w: arithmetic on STRING operand", ErrUnsupportedOperator)
	}

	ld, err := l.AsNumeric()
	if err != nil {
		return Null(), err
	}

	rd, err := r.AsNumeric()
	if err != nil {
		return Null(), err
	}

	bothInt := l.kind == KindInt && r.kind == KindInt

	switch op {
	case OpAdd:
		return normalizeNumeric(bothInt, ld.Add(rd)), nil
	case OpSub:
		return normalizeNumeric(bothInt, ld.Sub(rd)), nil
	case OpMul:
		return normalizeNumeric(bothInt, ld.Mul(rd)), nil
	case OpDiv:
		if rd.IsZero() {
			return Null(), ErrDivisionByZero
		}

		return Numeric(ld.Div(rd)), nil
	case OpMod:
		if rd.IsZero() {
			return Null(), ErrDivisionByZero
		}

		return normalizeNumeric(bothInt, ld.Mod(rd)), nil
	default:
		return Null(), fmt.Errorf("%w: %v", ErrUnsupportedOperator, op)
	}
}

// normalizeNumeric keeps INT op INT results as INT, matching the
// database variant's habit of not widening integer arithmetic to
// NUMERIC unless one side already is NUMERIC.
func normalizeNumeric(bothInt bool, result decimal.Decimal) Value {
	if bothInt {
		return Int(result.IntPart())
	}

	return Numeric(result)
}

func compare(op BinOp, l, r Value) (Value, error) {
	cmp, err := compareValues(l, r)
	if err != nil {
		return Null(), err
	}

	switch op {
	case OpEq:
		return Bool(cmp == 0), nil
	case OpNe:
		return Bool(cmp != 0), nil
	case OpLt:
		return Bool(cmp < 0), nil
	case OpLe:
		return Bool(cmp <= 0), nil
	case OpGt:
		return Bool(cmp > 0), nil
	case OpGe:
		return Bool(cmp >= 0), nil
	default:
		return Null(), fmt.Errorf("%w: %v", ErrUnsupportedOperator, op)
	}
}

func compareValues(l, r Value) (int, error) {
	if l.kind == KindString || r.kind == KindString {
		ls, rs := l.Str(), r.Str()
		switch {
		case ls < rs:
			return -1, nil
		case ls > rs:
			return 1, nil
		default:
			return 0, nil
		}
	}

	if l.kind == KindDate || r.kind == KindDate {
		ld, err := l.AsDate()
		if err != nil {
			return 0, err
		}

		rd, err := r.AsDate()
		if err != nil {
			return 0, err
		}

		switch {
		case ld.Before(rd):
			return -1, nil
		case ld.After(rd):
			return 1, nil
		default:
			return 0, nil
		}
	}

	ld, err := l.AsNumeric()
	if err != nil {
		return 0, err
	}

	rd, err := r.AsNumeric()
	if err != nil {
		return 0, err
	}

	return ld.Cmp(rd), nil
}

// UnaryOp identifies a unary operator.
type UnaryOp int

const (
	OpPos UnaryOp = iota
	OpNeg
	OpNot
)

// Unary evaluates a unary operator. NULL propagates through OpPos/OpNeg;
// OpNot on NULL yields NULL (three-valued NOT).
func Unary(op UnaryOp, v Value) (Value, error) {
	if v.IsNull() {
		return Null(), nil
	}

	switch op {
	case OpPos:
		return v, nil
	case OpNeg:
		d, err := v.AsNumeric()
		if err != nil {
			return Null(), err
		}

		if v.kind == KindInt {
			return Int(-d.IntPart()), nil
		}

		return Numeric(d.Neg()), nil
	case OpNot:
		b, err := v.AsBool()
		if err != nil {
			return Null(), err
		}

		return Bool(!b), nil
	default:
		return Null(), fmt.Errorf("%w: %v", ErrUnsupportedOperator, op)
	}
}
