package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueKindAndAccessors(t *testing.T) {
	require.True(t, Null.IsNull())
	require.Equal(t, KindNull, Null.Kind())

	b := NewBool(true)
	require.Equal(t, KindBool, b.Kind())
	require.True(t, b.Bool())

	i := NewInt(42)
	require.True(t, i.IsNumeric())
	require.Equal(t, int64(42), i.Int())
	require.Equal(t, float64(42), i.AsFloat64())

	f := NewFloat(3.5)
	require.True(t, f.IsNumeric())
	require.Equal(t, 3.5, f.AsFloat64())

	s := NewText("hi")
	require.False(t, s.IsNumeric())
	require.Equal(t, "hi", s.Text())

	bs := NewBytes([]byte("raw"))
	require.Equal(t, []byte("raw"), bs.Bytes())
}

func TestValueString(t *testing.T) {
	require.Equal(t, "NULL", Null.String())
	require.Equal(t, "1", NewBool(true).String())
	require.Equal(t, "0", NewBool(false).String())
	require.Equal(t, "42", NewInt(42).String())
	require.Equal(t, "hi", NewText("hi").String())
	require.Equal(t, "raw", NewBytes([]byte("raw")).String())
}

func TestValueRaw(t *testing.T) {
	require.Nil(t, Null.Raw())
	require.Equal(t, true, NewBool(true).Raw())
	require.Equal(t, int64(7), NewInt(7).Raw())
	require.Equal(t, "x", NewText("x").Raw())
}

func TestFromRaw(t *testing.T) {
	require.True(t, FromRaw(nil).IsNull())
	require.Equal(t, NewBool(true), FromRaw(true))
	require.Equal(t, NewInt(5), FromRaw(5))
	require.Equal(t, NewInt(5), FromRaw(int32(5)))
	require.Equal(t, NewInt(5), FromRaw(int64(5)))
	require.Equal(t, NewFloat(1.5), FromRaw(float32(1.5)))
	require.Equal(t, NewFloat(1.5), FromRaw(1.5))
	require.Equal(t, NewText("s"), FromRaw("s"))
	require.Equal(t, NewBytes([]byte("b")), FromRaw([]byte("b")))
	require.Equal(t, NewInt(9), FromRaw(NewInt(9)))
}
