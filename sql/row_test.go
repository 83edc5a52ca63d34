package sql

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowSetAndGet(t *testing.T) {
	r := NewRow()
	r.Set("id", NewInt(1))
	v, ok := r.Get("id")
	require.True(t, ok)
	require.Equal(t, NewInt(1), v)

	_, ok = r.Get("missing")
	require.False(t, ok)
}

func TestRowSetOverwritesKeepsOrder(t *testing.T) {
	r := NewRow()
	r.Set("a", NewInt(1))
	r.Set("b", NewInt(2))
	r.Set("a", NewInt(99))

	require.Equal(t, []string{"a", "b"}, r.Columns())
	v, _ := r.Get("a")
	require.Equal(t, NewInt(99), v)
}

func TestRowFromColumns(t *testing.T) {
	r := RowFromColumns([]string{"x", "y"}, []Value{NewInt(1), NewInt(2)})
	require.Equal(t, []string{"x", "y"}, r.Columns())
	v, _ := r.Get("y")
	require.Equal(t, NewInt(2), v)
}

func TestRowMergeRightWinsOnCollision(t *testing.T) {
	left := NewRow()
	left.Set("id", NewInt(1))
	left.Set("name", NewText("left"))

	right := NewRow()
	right.Set("id", NewInt(2))

	merged := left.Merge(right)
	v, _ := merged.Get("id")
	require.Equal(t, NewInt(2), v)
	v, _ = merged.Get("name")
	require.Equal(t, NewText("left"), v)
	require.Equal(t, []string{"id", "name"}, merged.Columns())
}

func TestRowValues(t *testing.T) {
	r := RowFromColumns([]string{"a", "b"}, []Value{NewInt(1), NewInt(2)})
	vals := r.Values([]string{"b", "a", "missing"})
	require.Equal(t, []Value{NewInt(2), NewInt(1), Null}, vals)
}

func TestRowResolveQualifiedThenUnqualified(t *testing.T) {
	r := NewRow()
	r.Set("t.id", NewInt(1))
	r.Set("id", NewInt(2))

	v, ok := r.Resolve([]string{"t", "id"})
	require.True(t, ok)
	require.Equal(t, NewInt(1), v)

	v, ok = r.Resolve([]string{"id"})
	require.True(t, ok)
	require.Equal(t, NewInt(2), v)
}

func TestRowResolveFallsBackToUnqualifiedTail(t *testing.T) {
	r := NewRow()
	r.Set("id", NewInt(5))

	v, ok := r.Resolve([]string{"t", "id"})
	require.True(t, ok)
	require.Equal(t, NewInt(5), v)
}

func TestRowResolveThreePartsFails(t *testing.T) {
	r := NewRow()
	_, ok := r.Resolve([]string{"a", "b", "c"})
	require.False(t, ok)
}

func TestSchemaNames(t *testing.T) {
	s := Schema{{Name: "id"}, {Name: "name"}}
	require.Equal(t, []string{"id", "name"}, s.Names())
}
