package objects

import (
	"context"
	"fmt"

	"github.com/informave/argon/elements"
	"github.com/informave/argon/value"
)

// GenRange is the built-in row generator object producing one row per
// integer in [Start, Stop] stepping by Step, grounded on
// original_source/src/genrange.cc (next()/eof() compare with <=/>=:
// Stop itself is a valid, yielded value, only a value that would
// exceed Stop ends iteration). It has a single column (the generated
// integer), selectable by name "value" or position 1.
type GenRange struct {
	Start int64
	Stop  int64
	Step  int64

	cur     int64
	started bool
}

var _ Object = (*GenRange)(nil)

func (g *GenRange) Open(ctx context.Context) error {
	if g.Step == 0 {
		return fmt.Errorf("objects.GenRange: step must be non-zero")
	}

	g.cur = g.Start
	g.started = false

	return nil
}

func (g *GenRange) Next(ctx context.Context) (bool, error) {
	if !g.started {
		g.started = true
	} else {
		g.cur += g.Step
	}

	if g.Step > 0 {
		return g.cur <= g.Stop, nil
	}

	return g.cur >= g.Stop, nil
}

func (g *GenRange) Column(col elements.Column) (value.Value, error) {
	if col.ByName && col.Name != "value" {
		return value.Value{}, fmt.Errorf("objects.GenRange: column not found: %s", col.Name)
	}

	if !col.ByName && col.Number != 1 {
		return value.Value{}, fmt.Errorf("objects.GenRange: column index out of range: %d", col.Number)
	}

	return value.Int(g.cur), nil
}

func (g *GenRange) Insert(ctx context.Context, row []value.Value) (ResultRow, error) {
	return ResultRow{}, fmt.Errorf("objects.GenRange: read-only, cannot be a STORE destination")
}

func (g *GenRange) Close() error { return nil }
