package builtins_test

import (
	"testing"

	"github.com/informave/argon/builtins"
	"github.com/informave/argon/control"
	"github.com/informave/argon/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_UnknownFunction(t *testing.T) {
	r := builtins.New()
	_, err := r.Call("no.such.fn", nil)
	assert.Error(t, err)
}

func TestRegistry_ArityChecked(t *testing.T) {
	r := builtins.New()
	_, err := r.Call("string.len", nil)
	assert.Error(t, err)

	_, err = r.Call("string.len", []value.Value{value.Str("a"), value.Str("b")})
	assert.Error(t, err)
}

func TestStringConcat(t *testing.T) {
	r := builtins.New()

	v, err := r.Call("string.concat", []value.Value{value.Str("a"), value.Str("b"), value.Str("c")})
	require.NoError(t, err)
	assert.Equal(t, "abc", v.Str())

	v, err = r.Call("string.concat", []value.Value{value.Str("x="), value.Null()})
	require.NoError(t, err)
	assert.Equal(t, "x=<null>", v.Str())
}

func TestStringLen(t *testing.T) {
	r := builtins.New()

	v, err := r.Call("string.len", []value.Value{value.Str("hello")})
	require.NoError(t, err)
	got, _ := v.AsInt()
	assert.Equal(t, int64(5), got)

	v, err = r.Call("string.len", []value.Value{value.Null()})
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestDateEncodeYearMonthDay(t *testing.T) {
	r := builtins.New()

	d, err := r.Call("date.encode", []value.Value{value.Int(2024), value.Int(3), value.Int(15)})
	require.NoError(t, err)

	y, err := r.Call("date.year", []value.Value{d})
	require.NoError(t, err)
	yi, _ := y.AsInt()
	assert.Equal(t, int64(2024), yi)

	m, err := r.Call("date.month", []value.Value{d})
	require.NoError(t, err)
	mi, _ := m.AsInt()
	assert.Equal(t, int64(3), mi)

	day, err := r.Call("date.day", []value.Value{d})
	require.NoError(t, err)
	di, _ := day.AsInt()
	assert.Equal(t, int64(15), di)
}

func TestDateEncode_NullPropagates(t *testing.T) {
	r := builtins.New()

	v, err := r.Call("date.encode", []value.Value{value.Null(), value.Int(1), value.Int(1)})
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestDateFormat(t *testing.T) {
	r := builtins.New()

	d, err := r.Call("date.encode", []value.Value{value.Int(2024), value.Int(3), value.Int(5)})
	require.NoError(t, err)

	v, err := r.Call("date.format", []value.Value{d, value.Str("yyyy-mm-dd")})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", v.Str())

	v, err = r.Call("date.format", []value.Value{d, value.Str("yy/m/d")})
	require.NoError(t, err)
	assert.Equal(t, "24/3/5", v.Str())
}

func TestDateFormat_InvalidPattern(t *testing.T) {
	r := builtins.New()

	d, err := r.Call("date.encode", []value.Value{value.Int(2024), value.Int(1), value.Int(1)})
	require.NoError(t, err)

	_, err = r.Call("date.format", []value.Value{d, value.Str("yyy")})
	assert.Error(t, err)
}

func TestNumericFromStringAndCast(t *testing.T) {
	r := builtins.New()

	v, err := r.Call("numeric.from_string", []value.Value{value.Str("12.5")})
	require.NoError(t, err)

	cast, err := r.Call("numeric.cast", []value.Value{v})
	require.NoError(t, err)
	assert.Equal(t, "12.5", cast.Str())
}

func TestNumericFormat_Grouping(t *testing.T) {
	r := builtins.New()

	n, err := r.Call("numeric.from_string", []value.Value{value.Str("1234567.891")})
	require.NoError(t, err)

	v, err := r.Call("numeric.format", []value.Value{n})
	require.NoError(t, err)
	assert.Equal(t, "1,234,567.891", v.Str())
}

func TestNumericFormat_CustomSeparators(t *testing.T) {
	r := builtins.New()

	n, err := r.Call("numeric.from_string", []value.Value{value.Str("1234.5")})
	require.NoError(t, err)

	v, err := r.Call("numeric.format", []value.Value{n, value.Int(2), value.Str("."), value.Str(",")})
	require.NoError(t, err)
	assert.Equal(t, "1.234,50", v.Str())
}

func TestRegexMatch(t *testing.T) {
	r := builtins.New()

	v, err := r.Call("regex.match", []value.Value{value.Str("hello world"), value.Str("wor")})
	require.NoError(t, err)
	b, _ := v.AsBool()
	assert.True(t, b)

	v, err = r.Call("regex.match", []value.Value{value.Str("hello"), value.Str("xyz")})
	require.NoError(t, err)
	b, _ = v.AsBool()
	assert.False(t, b)
}

func TestRegexSearchN(t *testing.T) {
	r := builtins.New()

	v, err := r.Call("regex.search_n", []value.Value{
		value.Str("2024-03-15"), value.Str(`(\d+)-(\d+)-(\d+)`), value.Int(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024", v.Str())

	v, err = r.Call("regex.search_n", []value.Value{
		value.Str("no digits"), value.Str(`(\d+)`), value.Int(2),
	})
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestRegexReplace(t *testing.T) {
	r := builtins.New()

	v, err := r.Call("regex.replace", []value.Value{
		value.Str("2024-03-15"), value.Str(`(\d+)-(\d+)-(\d+)`), value.Str("$3/$2/$1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "15/03/2024", v.Str())
}

func TestSysIsnull_BareAndNamespaced(t *testing.T) {
	r := builtins.New()

	for _, name := range []string{"isnull", "sys.isnull"} {
		v, err := r.Call(name, []value.Value{value.Null()})
		require.NoError(t, err)
		b, _ := v.AsBool()
		assert.True(t, b)

		v, err = r.Call(name, []value.Value{value.Int(1)})
		require.NoError(t, err)
		b, _ = v.AsBool()
		assert.False(t, b)
	}
}

func TestSysTerminate_SignalsControlFlow(t *testing.T) {
	r := builtins.New()

	_, err := r.Call("sys.terminate", []value.Value{value.Int(7)})
	var term *control.Terminate
	require.ErrorAs(t, err, &term)
	assert.Equal(t, 7, term.Code)

	_, err = r.Call("sys.terminate", nil)
	require.ErrorAs(t, err, &term)
	assert.Equal(t, 0, term.Code)
}

func TestSysCharseqAndByteseq(t *testing.T) {
	r := builtins.New()

	v, err := r.Call("sys.charseq", []value.Value{value.Int(72), value.Int(105)})
	require.NoError(t, err)
	assert.Equal(t, "Hi", v.Str())

	v, err = r.Call("sys.byteseq", []value.Value{value.Int(65), value.Int(66)})
	require.NoError(t, err)
	bs, _ := v.AsBytes()
	assert.Equal(t, []byte("AB"), bs)
}

func TestSysNewline(t *testing.T) {
	r := builtins.New()

	v, err := r.Call("sys.newline", nil)
	require.NoError(t, err)
	assert.Equal(t, "\r\n", v.Str())
}

func TestDebugEcho_ReturnsArgUnchanged(t *testing.T) {
	r := builtins.New()

	v, err := r.Call("debug.echo", []value.Value{value.Str("hi")})
	require.NoError(t, err)
	assert.Equal(t, "hi", v.Str())
}
