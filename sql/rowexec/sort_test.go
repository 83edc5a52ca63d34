package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression"
	"github.com/vtabledb/fedsql/sql/plan"
)

func TestSortRowsNullsLastAscending(t *testing.T) {
	ctx := newCtx()
	rows := []sql.Row{intRow("n", 3), intRow("n", 1), nullIntRow("n")}
	keys := []sql.OrderKey{{Expr: expression.NewIdentifier("n"), Dir: sql.Ascending}}
	out, err := SortRows(ctx, rows, keys)
	require.NoError(t, err)
	v0, _ := out[0].Get("n")
	v1, _ := out[1].Get("n")
	require.Equal(t, sql.NewInt(1), v0)
	require.Equal(t, sql.NewInt(3), v1)
	require.True(t, func() bool { v, _ := out[2].Get("n"); return v.IsNull() }())
}

func nullIntRow(col string) sql.Row {
	r := sql.NewRow()
	r.Set(col, sql.Null)
	return r
}

func TestSortRowsNullsFirstDescending(t *testing.T) {
	ctx := newCtx()
	rows := []sql.Row{intRow("n", 3), nullIntRow("n"), intRow("n", 1)}
	keys := []sql.OrderKey{{Expr: expression.NewIdentifier("n"), Dir: sql.Descending}}
	out, err := SortRows(ctx, rows, keys)
	require.NoError(t, err)
	v0, _ := out[0].Get("n")
	require.True(t, v0.IsNull())
}

func TestBuildSortOrdersChild(t *testing.T) {
	ctx := newCtx()
	tbl := intTable("t", "n", 3, 1, 2)
	n := plan.NewSort(plan.NewResolvedTable(tbl), []sql.OrderKey{{Expr: expression.NewIdentifier("n"), Dir: sql.Ascending}})
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 3)
	v, _ := out[0].Get("n")
	require.Equal(t, sql.NewInt(1), v)
}

func TestBuildOffsetSkipsRows(t *testing.T) {
	ctx := newCtx()
	tbl := intTable("t", "n", 1, 2, 3)
	n := plan.NewOffset(plan.NewResolvedTable(tbl), 2)
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 1)
}

func TestBuildLimitCapsRows(t *testing.T) {
	ctx := newCtx()
	tbl := intTable("t", "n", 1, 2, 3)
	n := plan.NewLimit(plan.NewResolvedTable(tbl), 2)
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 2)
}
