package objects

import (
	"context"
	"fmt"
	"strings"

	"github.com/informave/argon/elements"
	"github.com/informave/argon/value"
)

// Compact is the built-in write-only counterpart to Expand: it joins
// every inserted row's single column into one accumulated string,
// separated by Sep, grounded on original_source/src/compact.cc. The
// accumulated string is read back through Result() once the owning
// task finishes (the original assigns it into a referenced variable
// element on each Insert/execute call).
type Compact struct {
	Sep string

	parts []string
}

var _ Object = (*Compact)(nil)

func (c *Compact) Open(ctx context.Context) error {
	c.parts = nil
	return nil
}

func (c *Compact) Next(ctx context.Context) (bool, error) {
	return false, fmt.Errorf("objects.Compact: write-only, cannot be a FETCH source")
}

func (c *Compact) Column(col elements.Column) (value.Value, error) {
	return value.Value{}, fmt.Errorf("objects.Compact: write-only, cannot be a FETCH source")
}

func (c *Compact) Insert(ctx context.Context, row []value.Value) (ResultRow, error) {
	if len(row) != 1 {
		return ResultRow{}, fmt.Errorf("objects.Compact: expects exactly one column, got %d", len(row))
	}

	if row[0].IsNull() {
		return ResultRow{}, nil
	}

	c.parts = append(c.parts, row[0].Str())

	return ResultRow{}, nil
}

// Result returns the accumulated, separator-joined string once the
// task driving this object has finished inserting rows.
func (c *Compact) Result() value.Value {
	return value.Str(strings.Join(c.parts, c.Sep))
}

func (c *Compact) Close() error { return nil }
