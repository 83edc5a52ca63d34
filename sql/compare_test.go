package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareNumeric(t *testing.T) {
	require.Equal(t, Less, Compare(NewInt(1), NewInt(2)))
	require.Equal(t, Greater, Compare(NewFloat(2.5), NewInt(1)))
	require.Equal(t, Equal, Compare(NewInt(3), NewFloat(3.0)))
}

func TestCompareText(t *testing.T) {
	require.Equal(t, Less, Compare(NewText("a"), NewText("b")))
	require.Equal(t, Equal, Compare(NewText("a"), NewText("a")))
}

func TestCompareMixedClassNumericBeforeText(t *testing.T) {
	require.Equal(t, Less, Compare(NewInt(1), NewText("a")))
	require.Equal(t, Greater, Compare(NewText("a"), NewInt(1)))
}

func TestLooseEqual(t *testing.T) {
	require.True(t, LooseEqual(NewInt(1), NewFloat(1.0)))
	require.True(t, LooseEqual(NewText("1"), NewInt(1)))
	require.True(t, LooseEqual(NewInt(1), NewText("1")))
	require.False(t, LooseEqual(NewText("abc"), NewInt(1)))
	require.True(t, LooseEqual(NewBool(true), NewInt(1)))
	require.False(t, LooseEqual(NewText("a"), NewText("A")))
}

func TestValueEqualNullHandling(t *testing.T) {
	require.True(t, ValueEqual(Null, Null))
	require.False(t, ValueEqual(Null, NewInt(1)))
	require.False(t, ValueEqual(NewInt(1), Null))
	require.True(t, ValueEqual(NewInt(1), NewInt(1)))
}

func TestRowEqual(t *testing.T) {
	require.True(t, RowEqual([]Value{NewInt(1), Null}, []Value{NewInt(1), Null}))
	require.False(t, RowEqual([]Value{NewInt(1)}, []Value{NewInt(1), NewInt(2)}))
	require.False(t, RowEqual([]Value{NewInt(1)}, []Value{NewInt(2)}))
}
