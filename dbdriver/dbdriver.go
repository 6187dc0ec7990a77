// Package dbdriver is the database client abstraction Argon's task
// engine (FETCH/STORE/TRANSFER) runs statements through. It wraps
// database/sql rather than defining its own wire protocol, the way
// shibukawa/snapsql's pull.DatabaseConnector wraps database/sql for
// schema introspection (pull/connector.go) — here generalized to the
// three drivers Argon wires: sqlite3, pgx (stdlib façade) and
// go-sql-driver/mysql.
//
// This is the external "database client library" collaborator named
// in spec §1/§6; only the thin Connection/Resultset/Variant surface
// the interpreter core actually calls through lives here.
package dbdriver

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // mysql driver registration
	_ "github.com/jackc/pgx/v5/stdlib" // pgx postgres driver registration
	_ "github.com/mattn/go-sqlite3"    // sqlite3 driver registration

	"github.com/informave/argon/value"
)

// Dialect names the three wired SQL dialects, used both to pick the
// database/sql driver name and to select an objects.Dialect strategy.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// driverName maps a Dialect to the database/sql driver name it was
// registered under by the blank imports above.
func (d Dialect) driverName() string {
	switch d {
	case DialectPostgres:
		return "pgx"
	case DialectMySQL:
		return "mysql"
	default:
		return "sqlite3"
	}
}

// Connection is an open database handle bound to one dialect,
// realizing spec §6's database-client-library interface over
// database/sql. It tracks at most one in-flight transaction, started
// by the trx.begin built-in (package processor's processor_builtins.go): once tx is
// non-nil, Exec/Query run against it instead of DB directly, so a
// script's trx.begin/trx.commit pair brackets every statement it runs
// in between.
type Connection struct {
	Dialect Dialect
	DB      *sql.DB

	tx *sql.Tx
}

// Open dials dsn using the database/sql driver registered for dialect.
func Open(dialect Dialect, dsn string) (*Connection, error) {
	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("dbdriver: open %s: %w", dialect, err)
	}

	return &Connection{Dialect: dialect, DB: db}, nil
}

// Ping verifies the connection is reachable.
func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close releases the underlying *sql.DB.
func (c *Connection) Close() error {
	return c.DB.Close()
}

// Exec runs a statement that does not return rows (INSERT/UPDATE/
// DELETE without RETURNING, DDL, ...), translating args through
// value.Value.Native for database/sql binding.
func (c *Connection) Exec(ctx context.Context, query string, args ...value.Value) (sql.Result, error) {
	if c.tx != nil {
		return c.tx.ExecContext(ctx, query, nativeArgs(args)...)
	}

	return c.DB.ExecContext(ctx, query, nativeArgs(args)...)
}

// Query runs a statement expected to return rows and wraps the result
// in a Resultset, the cursor the FETCH task's Rules phase iterates.
func (c *Connection) Query(ctx context.Context, query string, args ...value.Value) (*Resultset, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if c.tx != nil {
		rows, err = c.tx.QueryContext(ctx, query, nativeArgs(args)...)
	} else {
		rows, err = c.DB.QueryContext(ctx, query, nativeArgs(args)...)
	}

	if err != nil {
		return nil, err
	}

	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}

	return &Resultset{rows: rows, columns: cols}, nil
}

// BeginTx starts a transaction that subsequent Exec/Query calls run
// against, failing if one is already open.
func (c *Connection) BeginTx(ctx context.Context) error {
	if c.tx != nil {
		return fmt.Errorf("dbdriver: transaction already in progress")
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	c.tx = tx

	return nil
}

// Commit commits the open transaction started by BeginTx.
func (c *Connection) Commit() error {
	if c.tx == nil {
		return fmt.Errorf("dbdriver: no transaction in progress")
	}

	tx := c.tx
	c.tx = nil

	return tx.Commit()
}

// Rollback rolls back the open transaction started by BeginTx.
func (c *Connection) Rollback() error {
	if c.tx == nil {
		return fmt.Errorf("dbdriver: no transaction in progress")
	}

	tx := c.tx
	c.tx = nil

	return tx.Rollback()
}

func nativeArgs(args []value.Value) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a.Native()
	}

	return out
}

// Resultset is a forward-only cursor over query results, wrapping
// *sql.Rows. Scan returns one row as Variant-like value.Value slices,
// the object model's row representation (spec §4.6's table/sql
// objects iterate one of these per FETCH/TRANSFER iteration).
type Resultset struct {
	rows    *sql.Rows
	columns []string
}

// Columns returns the result column names in positional order.
func (r *Resultset) Columns() []string {
	return r.columns
}

// Next advances the cursor, returning false when exhausted (mirrors
// sql.Rows.Next/Err so callers check Err after a false Next).
func (r *Resultset) Next() bool {
	return r.rows.Next()
}

// Err returns the first error encountered by Next.
func (r *Resultset) Err() error {
	return r.rows.Err()
}

// Scan reads the current row into value.Value columns, each holding
// whatever database/sql decoded (nil for SQL NULL).
func (r *Resultset) Scan() ([]value.Value, error) {
	raw := make([]any, len(r.columns))
	ptrs := make([]any, len(r.columns))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	if err := r.rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	out := make([]value.Value, len(raw))
	for i, v := range raw {
		out[i] = value.FromNative(v)
	}

	return out, nil
}

// Close releases the underlying *sql.Rows.
func (r *Resultset) Close() error {
	return r.rows.Close()
}
