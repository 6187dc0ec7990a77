package objects

import (
	"context"
	"fmt"
	"strings"

	"github.com/informave/argon/dbdriver"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/typetable"
	"github.com/informave/argon/value"
)

// Sql is a raw-SQL object template (spec §3 `sql`/`view`/`procedure`
// decl kinds), grounded on original_source/src/sql.cc. Unlike Table it
// carries its own query text instead of deriving one from a table
// name, and its bind arguments come from the task's template
// arguments (Insert appends the row values after them).
type Sql struct {
	Query   string
	Conn    *dbdriver.Connection
	Dialect Dialect
	Args    []value.Value
	Mode    typetable.Mode

	rs      *dbdriver.Resultset
	columns []string
}

var _ Object = (*Sql)(nil)

func (s *Sql) Open(ctx context.Context) error {
	if s.Mode == typetable.InsertMode {
		return nil
	}

	rs, err := s.Conn.Query(ctx, s.Query, s.Args...)
	if err != nil {
		return fmt.Errorf("objects.Sql: open: %w", err)
	}

	s.rs = rs
	s.columns = rs.Columns()

	return nil
}

func (s *Sql) Next(ctx context.Context) (bool, error) {
	if s.rs == nil {
		return false, fmt.Errorf("objects.Sql: not open for reading")
	}

	if !s.rs.Next() {
		return false, s.rs.Err()
	}

	return true, nil
}

func (s *Sql) Column(col elements.Column) (value.Value, error) {
	if s.rs == nil {
		return value.Value{}, fmt.Errorf("objects.Sql: not open for reading")
	}

	row, err := s.rs.Scan()
	if err != nil {
		return value.Value{}, err
	}

	return selectColumn(row, s.columns, col)
}

// Insert runs the object's statement with the row values appended to
// its template arguments as additional bind parameters, the `sql`
// decl's STORE-mode shape (spec §4.6). A declared statement that
// itself carries a RETURNING clause (the only way a raw sql/view/
// procedure template can report result columns, since Sql has no
// table name to rebuild a reselect query from) is run as a query so
// the returned row becomes the result columns for `%%`/`%col`.
func (s *Sql) Insert(ctx context.Context, row []value.Value) (ResultRow, error) {
	args := append(append([]value.Value{}, s.Args...), row...)

	if hasReturningClause(s.Query) {
		rs, err := s.Conn.Query(ctx, s.Query, args...)
		if err != nil {
			return ResultRow{}, err
		}
		defer rs.Close()

		if !rs.Next() {
			return ResultRow{}, rs.Err()
		}

		cols, err := rs.Scan()
		if err != nil {
			return ResultRow{}, err
		}

		return ResultRow{Columns: cols, ColumnNames: rs.Columns()}, nil
	}

	res, err := s.Conn.Exec(ctx, s.Query, args...)
	if err != nil {
		return ResultRow{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return ResultRow{}, nil
	}

	return ResultRow{LastInsertID: id}, nil
}

// hasReturningClause reports whether query contains the word
// RETURNING anywhere (case-insensitive substring match, so a
// RETURNING inside a string literal or subquery also counts), the signal that Query (not Exec) must run it so
// the driver hands back a row.
func hasReturningClause(query string) bool {
	return strings.Contains(strings.ToUpper(query), "RETURNING")
}

func (s *Sql) Close() error {
	if s.rs != nil {
		return s.rs.Close()
	}

	return nil
}
