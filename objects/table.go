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

// Table is a plain table reference object (spec §3 `table` decl kind),
// grounded on original_source/src/table.cc + table_sqlite.cc. In
// ReadMode it runs a `SELECT * FROM <name>` and iterates the result;
// in InsertMode it builds parameterized INSERT statements per row and,
// when IDCol is set, reselects the inserted row through its Dialect
// (or reads it back via RETURNING on dialects that support it).
type Table struct {
	Name    string
	Conn    *dbdriver.Connection
	Dialect Dialect
	IDCol   string // primary key / rowid column name, for InsertMode reselects
	Mode    typetable.Mode

	rs      *dbdriver.Resultset
	columns []string
}

var _ Object = (*Table)(nil)

func (t *Table) Open(ctx context.Context) error {
	if t.Mode == typetable.InsertMode {
		return nil // nothing to open: each Insert call issues its own statement
	}

	rs, err := t.Conn.Query(ctx, "SELECT * FROM "+t.Name)
	if err != nil {
		return fmt.Errorf("objects.Table: open %s: %w", t.Name, err)
	}

	t.rs = rs
	t.columns = rs.Columns()

	return nil
}

func (t *Table) Next(ctx context.Context) (bool, error) {
	if t.rs == nil {
		return false, fmt.Errorf("objects.Table: not open for reading")
	}

	if !t.rs.Next() {
		return false, t.rs.Err()
	}

	return true, nil
}

func (t *Table) Column(col elements.Column) (value.Value, error) {
	if t.rs == nil {
		return value.Value{}, fmt.Errorf("objects.Table: not open for reading")
	}

	row, err := t.rs.Scan()
	if err != nil {
		return value.Value{}, err
	}

	return selectColumn(row, t.columns, col)
}

func (t *Table) Insert(ctx context.Context, row []value.Value) (ResultRow, error) {
	if len(row) == 0 {
		return ResultRow{}, fmt.Errorf("objects.Table: insert with no columns")
	}

	placeholders := make([]string, len(row))
	for i := range row {
		placeholders[i] = t.Dialect.Placeholder(i + 1)
	}

	if t.Dialect.SupportsReturning() {
		query := fmt.Sprintf("INSERT INTO %s VALUES (%s) RETURNING *", t.Name, strings.Join(placeholders, ", "))
		return t.insertReturning(ctx, query, row)
	}

	query := fmt.Sprintf("INSERT INTO %s VALUES (%s)", t.Name, strings.Join(placeholders, ", "))

	res, err := t.Conn.Exec(ctx, query, row...)
	if err != nil {
		return ResultRow{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		// Not every driver/statement reports a last-insert id (e.g. a
		// table with no rowid-compatible PK); %% then resolves to NULL
		// (a documented open-question decision, see DESIGN.md).
		return ResultRow{}, nil
	}

	return t.reselect(ctx, id)
}

// insertReturning runs query (an INSERT ... RETURNING * statement) as
// a query rather than an exec, since a RETURNING clause makes the
// driver hand back a row instead of a bare rows-affected result.
func (t *Table) insertReturning(ctx context.Context, query string, row []value.Value) (ResultRow, error) {
	rs, err := t.Conn.Query(ctx, query, row...)
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

	result := ResultRow{Columns: cols, ColumnNames: rs.Columns()}

	if t.IDCol != "" {
		if v, err := selectColumn(cols, rs.Columns(), elements.Column{ByName: true, Name: t.IDCol}); err == nil {
			if id, err := v.AsInt(); err == nil {
				result.LastInsertID = id
			}
		}
	}

	return result, nil
}

func (t *Table) reselect(ctx context.Context, id int64) (ResultRow, error) {
	if t.IDCol == "" {
		return ResultRow{LastInsertID: id}, nil
	}

	rs, err := t.Conn.Query(ctx, t.Dialect.ReselectSQL(t.Name, t.IDCol), value.Int(id))
	if err != nil {
		return ResultRow{LastInsertID: id}, nil
	}
	defer rs.Close()

	if !rs.Next() {
		return ResultRow{LastInsertID: id}, nil
	}

	cols, err := rs.Scan()
	if err != nil {
		return ResultRow{LastInsertID: id}, nil
	}

	return ResultRow{LastInsertID: id, Columns: cols, ColumnNames: rs.Columns()}, nil
}

func (t *Table) Close() error {
	if t.rs != nil {
		return t.rs.Close()
	}

	return nil
}

// selectColumn resolves a Column selector (by position or by name)
// against a scanned row and its column-name list, shared by Table and
// Sql objects.
func selectColumn(row []value.Value, names []string, col elements.Column) (value.Value, error) {
	if col.ByName {
		for i, n := range names {
			if strings.EqualFold(n, col.Name) {
				return row[i], nil
			}
		}

		return value.Value{}, fmt.Errorf("objects: column not found: %s", col.Name)
	}

	idx := col.Number - 1 // columns are 1-based in DTS source syntax
	if idx < 0 || idx >= len(row) {
		return value.Value{}, fmt.Errorf("objects: column index out of range: %d", col.Number)
	}

	return row[idx], nil
}
