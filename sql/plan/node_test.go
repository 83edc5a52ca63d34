package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtabledb/fedsql/sql"
)

type fakeTable struct {
	name string
}

func (f *fakeTable) Name() string       { return f.name }
func (f *fakeTable) Columns() sql.Schema { return nil }

func (f *fakeTable) Iterate(ctx *sql.Context) (sql.RowIter, error) {
	return sql.NewSliceIter(nil), nil
}

func (f *fakeTable) Count(ctx *sql.Context) (int64, error) { return 0, nil }

func TestResolvedTableStringAndChildren(t *testing.T) {
	rt := NewResolvedTable(&fakeTable{name: "t"})
	require.Equal(t, "t", rt.String())
	require.Nil(t, rt.Children())

	_, err := rt.WithChildren(NewResolvedTable(&fakeTable{name: "u"}))
	require.Error(t, err)

	same, err := rt.WithChildren()
	require.NoError(t, err)
	require.Same(t, rt, same)
}

func TestTableAliasWithChildren(t *testing.T) {
	rt := NewResolvedTable(&fakeTable{name: "t"})
	alias := NewTableAlias(rt, "x")
	require.Equal(t, []Node{rt}, alias.Children())
	require.Equal(t, "t AS x", alias.String())

	rebuilt, err := alias.WithChildren(rt)
	require.NoError(t, err)
	require.Equal(t, "x", rebuilt.(*TableAlias).Alias)

	_, err = alias.WithChildren(rt, rt)
	require.Error(t, err)
}

func TestSubqueryAliasString(t *testing.T) {
	rt := NewResolvedTable(&fakeTable{name: "t"})
	sa := NewSubqueryAlias(rt, "d")
	require.Equal(t, "(t) AS d", sa.String())
	require.Equal(t, []Node{rt}, sa.Children())
}

func TestTwoChildrenHelperRejectsWrongArity(t *testing.T) {
	_, _, err := twoChildren([]Node{NewResolvedTable(&fakeTable{name: "t"})})
	require.Error(t, err)
}
