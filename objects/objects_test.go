package objects_test

import (
	"context"
	"testing"

	"github.com/informave/argon/dbdriver"
	"github.com/informave/argon/elements"
	"github.com/informave/argon/objects"
	"github.com/informave/argon/typetable"
	"github.com/informave/argon/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenRange_Iterates(t *testing.T) {
	ctx := context.Background()
	g := &objects.GenRange{Start: 0, Stop: 5, Step: 2}

	require.NoError(t, g.Open(ctx))

	var got []int64
	for {
		ok, err := g.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}

		v, err := g.Column(elements.Column{Number: 1})
		require.NoError(t, err)
		i, _ := v.AsInt()
		got = append(got, i)
	}

	assert.Equal(t, []int64{0, 2, 4}, got)
}

func TestGenRange_NegativeStep(t *testing.T) {
	ctx := context.Background()
	g := &objects.GenRange{Start: 3, Stop: 0, Step: -1}
	require.NoError(t, g.Open(ctx))

	var got []int64
	for {
		ok, err := g.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}

		v, _ := g.Column(elements.Column{ByName: true, Name: "value"})
		i, _ := v.AsInt()
		got = append(got, i)
	}

	assert.Equal(t, []int64{3, 2, 1, 0}, got)
}

func TestGenRange_ZeroStepRejected(t *testing.T) {
	g := &objects.GenRange{Start: 0, Stop: 5, Step: 0}
	assert.Error(t, g.Open(context.Background()))
}

func TestExpand_SplitsOnSeparator(t *testing.T) {
	ctx := context.Background()
	e := &objects.Expand{Value: "a,b,,c", Sep: ","}
	require.NoError(t, e.Open(ctx))

	var got []string
	for {
		ok, err := e.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}

		v, err := e.Column(elements.Column{Number: 1})
		require.NoError(t, err)
		got = append(got, v.Str())
	}

	assert.Equal(t, []string{"a", "b", "", "c"}, got)
}

func TestExpand_EmptySeparatorRejected(t *testing.T) {
	e := &objects.Expand{Value: "a,b", Sep: ""}
	assert.Error(t, e.Open(context.Background()))
}

func TestCompact_JoinsInsertedRows(t *testing.T) {
	ctx := context.Background()
	c := &objects.Compact{Sep: "-"}
	require.NoError(t, c.Open(ctx))

	_, err := c.Insert(ctx, []value.Value{value.Str("a")})
	require.NoError(t, err)
	_, err = c.Insert(ctx, []value.Value{value.Null()})
	require.NoError(t, err)
	_, err = c.Insert(ctx, []value.Value{value.Str("b")})
	require.NoError(t, err)

	assert.Equal(t, "a-b", c.Result().Str())
}

func TestTable_InsertAndReselect(t *testing.T) {
	ctx := context.Background()

	conn, err := dbdriver.Open(dbdriver.DialectSQLite, ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(ctx, "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)

	tbl := &objects.Table{
		Name:    "users",
		Conn:    conn,
		Dialect: objects.DialectFor(dbdriver.DialectSQLite),
		IDCol:   "rowid",
		Mode:    typetable.InsertMode,
	}

	require.NoError(t, tbl.Open(ctx))

	res, err := tbl.Insert(ctx, []value.Value{value.Int(1), value.Str("Alice")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LastInsertID)
	require.Len(t, res.Columns, 2)
	assert.Equal(t, "Alice", res.Columns[1].Str())
}

func TestTable_ReadMode(t *testing.T) {
	ctx := context.Background()

	conn, err := dbdriver.Open(dbdriver.DialectSQLite, ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(ctx, "CREATE TABLE t (id INTEGER, name TEXT)")
	require.NoError(t, err)
	_, err = conn.Exec(ctx, "INSERT INTO t VALUES (1, 'x')")
	require.NoError(t, err)

	tbl := &objects.Table{Name: "t", Conn: conn, Mode: typetable.ReadMode}
	require.NoError(t, tbl.Open(ctx))

	ok, err := tbl.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	v, err := tbl.Column(elements.Column{ByName: true, Name: "name"})
	require.NoError(t, err)
	assert.Equal(t, "x", v.Str())
}
