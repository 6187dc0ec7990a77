// Package value implements Argon's dynamically-typed Value variant: the
// single runtime representation every expression, column, and bound
// parameter in a DTS script flows through.
package value

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind tags the underlying representation held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindString
	KindNumeric
	KindDate
	KindBool
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInt:
		return "INT"
	case KindString:
		return "STRING"
	case KindNumeric:
		return "NUMERIC"
	case KindDate:
		return "DATE"
	case KindBool:
		return "BOOL"
	case KindBytes:
		return "VARBINARY"
	default:
		return "UNKNOWN"
	}
}

var (
	// ErrTypeMismatch is returned when a Value is coerced into a Go type
	// its Kind cannot support.
	ErrTypeMismatch = errors.New("value: type mismatch")
	// ErrDivisionByZero is returned by arithmetic division/MOD with a zero divisor.
	ErrDivisionByZero = errors.New("value: division by zero")
	// ErrUnsupportedOperator is returned for an operator not defined on a Kind pairing.
	ErrUnsupportedOperator = errors.New("value: unsupported operator for operand types")
)

// Value is Argon's dynamically-typed runtime value. The zero Value is NULL.
type Value struct {
	kind Kind
	i    int64
	s    string
	n    decimal.Decimal
	d    time.Time
	b    bool
	bs   []byte
}

// Null returns the NULL value.
func Null() Value { return Value{kind: KindNull} }

// IsNull reports whether v holds NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Kind returns the tag of the underlying representation.
func (v Value) Kind() Kind { return v.kind }

// Int constructs an INT value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Str constructs a STRING value.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// Numeric constructs a NUMERIC value from a decimal.Decimal.
func Numeric(d decimal.Decimal) Value { return Value{kind: KindNumeric, n: d} }

// NumericFromString parses s as a NUMERIC value.
func NumericFromString(s string) (Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Null(), fmt.Errorf("%w: %s", ErrTypeMismatch, s)
	}

	return Numeric(d), nil
}

// Date constructs a DATE value (time-of-day is always truncated to midnight UTC).
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, d: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateYMD constructs a DATE value from a calendar year/month/day.
func DateYMD(year, month, day int) Value {
	return Value{kind: KindDate, d: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Bool constructs a BOOL value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Bytes constructs a VARBINARY value.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bs: append([]byte(nil), b...)} }

// AsInt returns the INT representation of v, coercing NUMERIC and BOOL.
func (v Value) AsInt() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindNumeric:
		return v.n.IntPart(), nil
	case KindBool:
		if v.b {
			return 1, nil
		}

		return 0, nil
	default:
		return 0, fmt.Errorf("%w: cannot convert %s to INT", ErrTypeMismatch, v.kind)
	}
}

// AsNumeric returns the NUMERIC representation of v.
func (v Value) AsNumeric() (decimal.Decimal, error) {
	switch v.kind {
	case KindNumeric:
		return v.n, nil
	case KindInt:
		return decimal.NewFromInt(v.i), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: cannot convert %s to NUMERIC", ErrTypeMismatch, v.kind)
	}
}

// AsDate returns the DATE representation of v.
func (v Value) AsDate() (time.Time, error) {
	if v.kind != KindDate {
		return time.Time{}, fmt.Errorf("%w: cannot convert %s to DATE", ErrTypeMismatch, v.kind)
	}

	return v.d, nil
}

// AsBool returns the BOOL representation of v, treating zero INT/NUMERIC as false.
func (v Value) AsBool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindInt:
		return v.i != 0, nil
	case KindNumeric:
		return !v.n.IsZero(), nil
	default:
		return false, fmt.Errorf("%w: cannot convert %s to BOOL", ErrTypeMismatch, v.kind)
	}
}

// AsBytes returns the VARBINARY representation of v.
func (v Value) AsBytes() ([]byte, error) {
	if v.kind != KindBytes {
		return nil, fmt.Errorf("%w: cannot convert %s to VARBINARY", ErrTypeMismatch, v.kind)
	}

	return append([]byte(nil), v.bs...), nil
}

// Str renders v as a display string. NULL renders as the empty string here;
// the concatenation-specific "<null>" rendering is applied by Arith's
// OpConcat (concatStr in arith.go) instead.
func (v Value) Str() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindString:
		return v.s
	case KindNumeric:
		return v.n.String()
	case KindDate:
		return v.d.Format("2006-01-02")
	case KindBool:
		if v.b {
			return "true"
		}

		return "false"
	case KindBytes:
		return string(v.bs)
	default:
		return ""
	}
}

// Native returns the Go-native value behind v, or nil for NULL. Used by
// dbdriver when binding parameters to a prepared statement.
func (v Value) Native() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindInt:
		return v.i
	case KindString:
		return v.s
	case KindNumeric:
		return v.n
	case KindDate:
		return v.d
	case KindBool:
		return v.b
	case KindBytes:
		return v.bs
	default:
		return nil
	}
}

// FromNative wraps a Go-native value (as returned by a database/sql driver)
// into a Value, inferring the closest Kind.
func FromNative(n any) Value {
	switch x := n.(type) {
	case nil:
		return Null()
	case int64:
		return Int(x)
	case int:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case string:
		return Str(x)
	case []byte:
		return Bytes(x)
	case bool:
		return Bool(x)
	case float64:
		return Numeric(decimal.NewFromFloat(x))
	case decimal.Decimal:
		return Numeric(x)
	case time.Time:
		return Date(x)
	default:
		return Str(fmt.Sprintf("%v", x))
	}
}

// Equal reports structural equality, used by tests and map-key columns.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.i == other.i
	case KindString:
		return v.s == other.s
	case KindNumeric:
		return v.n.Equal(other.n)
	case KindDate:
		return v.d.Equal(other.d)
	case KindBool:
		return v.b == other.b
	case KindBytes:
		return string(v.bs) == string(other.bs)
	default:
		return false
	}
}
