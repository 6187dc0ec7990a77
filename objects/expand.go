package objects

import (
	"context"
	"fmt"
	"strings"

	"github.com/informave/argon/elements"
	"github.com/informave/argon/value"
)

// Expand is the built-in object that splits a string on a separator
// into one row per piece, grounded on original_source/src/expand.cc.
// It is read-only: a FETCH/TRANSFER source, never a STORE destination.
type Expand struct {
	Value string
	Sep   string

	pieces []string
	idx    int
}

var _ Object = (*Expand)(nil)

func (e *Expand) Open(ctx context.Context) error {
	if len(e.Sep) == 0 {
		return fmt.Errorf("objects.Expand: separator must be of length >= 1")
	}

	e.pieces = strings.Split(e.Value, e.Sep)
	e.idx = -1

	return nil
}

func (e *Expand) Next(ctx context.Context) (bool, error) {
	e.idx++
	return e.idx < len(e.pieces), nil
}

func (e *Expand) Column(col elements.Column) (value.Value, error) {
	if e.idx < 0 || e.idx >= len(e.pieces) {
		return value.Value{}, fmt.Errorf("objects.Expand: no current row")
	}

	if (col.ByName && col.Name != "value") || (!col.ByName && col.Number != 1) {
		return value.Value{}, fmt.Errorf("objects.Expand: single-column object")
	}

	return value.Str(e.pieces[e.idx]), nil
}

func (e *Expand) Insert(ctx context.Context, row []value.Value) (ResultRow, error) {
	return ResultRow{}, fmt.Errorf("objects.Expand: read-only, cannot be a STORE destination")
}

func (e *Expand) Close() error { return nil }
