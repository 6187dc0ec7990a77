// Package objects implements the object templates a task's FETCH/
// STORE/TRANSFER shape reads from or writes to: Table (a plain table
// reference), Sql (a raw query/statement), and the generator objects
// GenRange/Expand/Compact. Grounded on original_source/src/table.cc,
// table_sqlite.cc, sql.cc, genrange.cc, expand.cc, compact.cc.
package objects

import (
	"context"
	"fmt"

	"github.com/informave/argon/dbdriver"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/value"
)

// Object is the runtime interface every DECL'd template (table/sql/
// view/procedure) and every built-in generator (GenRange/Expand/
// Compact) implements: an iterator over rows, writable on the
// destination side of a STORE/TRANSFER task.
type Object interface {
	// Open prepares the object for iteration (running its backing
	// query for read objects; write-mode Table/Sql objects do nothing
	// here, since each Insert issues its own statement), mirroring
	// Table::run/Table::execute.
	Open(ctx context.Context) error

	// Next advances to the next row, returning false when exhausted.
	Next(ctx context.Context) (bool, error)

	// Column returns the current row's value for a column selector.
	Column(col elements.Column) (value.Value, error)

	// Insert writes one row of column values (ordered by declaration
	// position) to a write-mode object, returning the inserted row's
	// result columns when the task requested them (`%%`, `%col`).
	Insert(ctx context.Context, row []value.Value) (ResultRow, error)

	// Close releases any backing cursor/statement.
	Close() error
}

// ResultRow is what Insert reports back for `%%`/`%col` references:
// the driver-reported last-insert id plus, when the dialect supports
// it, the freshly inserted row's full column set.
type ResultRow struct {
	LastInsertID int64
	Columns      []value.Value
	ColumnNames  []string
}

// Dialect captures the handful of per-database behaviors Table/Sql
// need beyond plain database/sql: how to re-read a just-inserted row
// (RETURNING where supported, a round-trip SELECT otherwise) and the
// bind-parameter placeholder syntax, table_sqlite.cc/table_firebird.cc's
// split in original_source generalized to an interface implemented once
// per wired driver.
type Dialect interface {
	// SupportsReturning reports whether Table.Insert should append a
	// RETURNING clause and read the inserted row back from the same
	// statement (true for Postgres) or issue a follow-up SELECT
	// (sqlite, mysql).
	SupportsReturning() bool

	// ReselectSQL builds the "read back row N" query used when
	// SupportsReturning is false.
	ReselectSQL(table string, idColumn string) string

	// Placeholder renders the bind-parameter marker for the pos'th
	// (1-based) argument of a statement.
	Placeholder(pos int) string
}

type sqliteDialect struct{}

func (sqliteDialect) SupportsReturning() bool { return false }
func (sqliteDialect) ReselectSQL(table, idColumn string) string {
	return fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", table, idColumn)
}
func (sqliteDialect) Placeholder(pos int) string { return "?" }

type postgresDialect struct{}

func (postgresDialect) SupportsReturning() bool { return true }
func (postgresDialect) ReselectSQL(table, idColumn string) string {
	return "" // unused: Table.Insert never reaches the reselect path for this dialect, RETURNING is appended to the INSERT itself
}
func (postgresDialect) Placeholder(pos int) string { return fmt.Sprintf("$%d", pos) }

type mysqlDialect struct{}

func (mysqlDialect) SupportsReturning() bool { return false }
func (mysqlDialect) ReselectSQL(table, idColumn string) string {
	return fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", table, idColumn)
}
func (mysqlDialect) Placeholder(pos int) string { return "?" }

// DialectFor resolves the objects.Dialect strategy for a dbdriver.Dialect.
func DialectFor(d dbdriver.Dialect) Dialect {
	switch d {
	case dbdriver.DialectPostgres:
		return postgresDialect{}
	case dbdriver.DialectMySQL:
		return mysqlDialect{}
	default:
		return sqliteDialect{}
	}
}
