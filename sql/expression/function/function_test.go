package function

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtabledb/fedsql/sql"
)

func call(t *testing.T, name string, args ...sql.Value) sql.Value {
	t.Helper()
	e, ok := Resolve(name)
	require.True(t, ok, "function %s not registered", name)
	v, err := e.Fn(args)
	require.NoError(t, err)
	return v
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	_, ok := Resolve("upper")
	require.True(t, ok)
	_, ok = Resolve("UPPER")
	require.True(t, ok)
	_, ok = Resolve("nonexistent")
	require.False(t, ok)
}

func TestUpperLower(t *testing.T) {
	require.Equal(t, sql.NewText("FOO"), call(t, "UPPER", sql.NewText("foo")))
	require.Equal(t, sql.NewText("foo"), call(t, "LOWER", sql.NewText("FOO")))
}

func TestUpperNullPropagates(t *testing.T) {
	require.True(t, call(t, "UPPER", sql.Null).IsNull())
}

func TestLength(t *testing.T) {
	require.Equal(t, sql.NewInt(3), call(t, "LENGTH", sql.NewText("abc")))
}

func TestTrimVariants(t *testing.T) {
	require.Equal(t, sql.NewText("abc"), call(t, "TRIM", sql.NewText("  abc  ")))
	require.Equal(t, sql.NewText("abc  "), call(t, "LTRIM", sql.NewText("  abc  ")))
	require.Equal(t, sql.NewText("  abc"), call(t, "RTRIM", sql.NewText("  abc  ")))
}

func TestSubstrPositiveStart(t *testing.T) {
	require.Equal(t, sql.NewText("bcd"), call(t, "SUBSTR", sql.NewText("abcdef"), sql.NewInt(2), sql.NewInt(3)))
}

func TestSubstrNegativeStart(t *testing.T) {
	require.Equal(t, sql.NewText("ef"), call(t, "SUBSTR", sql.NewText("abcdef"), sql.NewInt(-2)))
}

func TestSubstrAliasSubstring(t *testing.T) {
	require.Equal(t, sql.NewText("cde"), call(t, "SUBSTRING", sql.NewText("abcdef"), sql.NewInt(3), sql.NewInt(3)))
}

func TestConcat(t *testing.T) {
	require.Equal(t, sql.NewText("abc"), call(t, "CONCAT", sql.NewText("a"), sql.NewText("b"), sql.NewText("c")))
}

func TestConcatAnyNullIsNull(t *testing.T) {
	require.True(t, call(t, "CONCAT", sql.NewText("a"), sql.Null).IsNull())
}

func TestReplace(t *testing.T) {
	require.Equal(t, sql.NewText("ayz"), call(t, "REPLACE", sql.NewText("abc"), sql.NewText("bc"), sql.NewText("yz")))
}

func TestInstrFoundAndNotFound(t *testing.T) {
	require.Equal(t, sql.NewInt(2), call(t, "INSTR", sql.NewText("abc"), sql.NewText("b")))
	require.Equal(t, sql.NewInt(0), call(t, "INSTR", sql.NewText("abc"), sql.NewText("z")))
}

func TestAbs(t *testing.T) {
	require.Equal(t, sql.NewInt(5), call(t, "ABS", sql.NewInt(-5)))
	require.Equal(t, sql.NewFloat(5.5), call(t, "ABS", sql.NewFloat(-5.5)))
}

func TestRoundDefaultAndDigits(t *testing.T) {
	require.Equal(t, sql.NewFloat(3), call(t, "ROUND", sql.NewFloat(3.4)))
	require.Equal(t, sql.NewFloat(3.14), call(t, "ROUND", sql.NewFloat(3.14159), sql.NewInt(2)))
}

func TestFloorCeil(t *testing.T) {
	require.Equal(t, sql.NewFloat(3), call(t, "FLOOR", sql.NewFloat(3.9)))
	require.Equal(t, sql.NewFloat(4), call(t, "CEIL", sql.NewFloat(3.1)))
	require.Equal(t, sql.NewFloat(4), call(t, "CEILING", sql.NewFloat(3.1)))
}

func TestCoalesceFirstNonNull(t *testing.T) {
	require.Equal(t, sql.NewInt(2), call(t, "COALESCE", sql.Null, sql.NewInt(2), sql.NewInt(3)))
	require.True(t, call(t, "COALESCE", sql.Null, sql.Null).IsNull())
}

func TestNullifEqualYieldsNull(t *testing.T) {
	require.True(t, call(t, "NULLIF", sql.NewInt(1), sql.NewInt(1)).IsNull())
	require.Equal(t, sql.NewInt(1), call(t, "NULLIF", sql.NewInt(1), sql.NewInt(2)))
}

func TestIfnullAndAliasNvl(t *testing.T) {
	require.Equal(t, sql.NewInt(2), call(t, "IFNULL", sql.Null, sql.NewInt(2)))
	require.Equal(t, sql.NewInt(1), call(t, "IFNULL", sql.NewInt(1), sql.NewInt(2)))
	require.Equal(t, sql.NewInt(2), call(t, "NVL", sql.Null, sql.NewInt(2)))
}

func TestCastIsIdentity(t *testing.T) {
	require.Equal(t, sql.NewInt(1), call(t, "CAST", sql.NewInt(1)))
}
