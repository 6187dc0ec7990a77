package dbdriver_test

import (
	"context"
	"testing"

	"github.com/informave/argon/dbdriver"
	"github.com/informave/argon/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemDB(t *testing.T) *dbdriver.Connection {
	t.Helper()

	conn, err := dbdriver.Open(dbdriver.DialectSQLite, ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestConnection_ExecAndQuery(t *testing.T) {
	ctx := context.Background()
	conn := openMemDB(t)

	_, err := conn.Exec(ctx, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, age INTEGER)")
	require.NoError(t, err)

	_, err = conn.Exec(ctx, "INSERT INTO users (name, age) VALUES (?, ?)", value.Str("Alice"), value.Int(30))
	require.NoError(t, err)

	_, err = conn.Exec(ctx, "INSERT INTO users (name, age) VALUES (?, ?)", value.Str("Bob"), value.Null())
	require.NoError(t, err)

	rs, err := conn.Query(ctx, "SELECT name, age FROM users ORDER BY id")
	require.NoError(t, err)
	defer rs.Close()

	assert.Equal(t, []string{"name", "age"}, rs.Columns())

	require.True(t, rs.Next())
	row, err := rs.Scan()
	require.NoError(t, err)
	assert.Equal(t, "Alice", row[0].Str())
	age, _ := row[1].AsInt()
	assert.Equal(t, int64(30), age)

	require.True(t, rs.Next())
	row, err = rs.Scan()
	require.NoError(t, err)
	assert.Equal(t, "Bob", row[0].Str())
	assert.True(t, row[1].IsNull())

	assert.False(t, rs.Next())
	assert.NoError(t, rs.Err())
}

func TestConnection_Ping(t *testing.T) {
	conn := openMemDB(t)
	assert.NoError(t, conn.Ping(context.Background()))
}

func TestConnection_ExecReturnsLastInsertID(t *testing.T) {
	ctx := context.Background()
	conn := openMemDB(t)

	_, err := conn.Exec(ctx, "CREATE TABLE t (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)

	res, err := conn.Exec(ctx, "INSERT INTO t DEFAULT VALUES")
	require.NoError(t, err)

	id, err := res.LastInsertId()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}
