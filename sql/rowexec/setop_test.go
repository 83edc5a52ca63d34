package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression"
	"github.com/vtabledb/fedsql/sql/plan"
)

func projN(child plan.Node, alias string) plan.Node {
	return plan.NewProject(child, []sql.SelectItem{{Expr: expression.NewIdentifier("n"), Alias: alias}})
}

func TestSetOpUnionDedupes(t *testing.T) {
	ctx := newCtx()
	left := projN(plan.NewResolvedTable(intTable("l", "n", 1, 2)), "n")
	right := projN(plan.NewResolvedTable(intTable("r", "n", 2, 3)), "n")
	n := plan.NewSetOp(left, right, sql.Union, false)
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 3)
}

func TestSetOpUnionAllKeepsDuplicates(t *testing.T) {
	ctx := newCtx()
	left := projN(plan.NewResolvedTable(intTable("l", "n", 1, 2)), "n")
	right := projN(plan.NewResolvedTable(intTable("r", "n", 2, 3)), "n")
	n := plan.NewSetOp(left, right, sql.Union, true)
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 4)
}

func TestSetOpIntersect(t *testing.T) {
	ctx := newCtx()
	left := projN(plan.NewResolvedTable(intTable("l", "n", 1, 2)), "n")
	right := projN(plan.NewResolvedTable(intTable("r", "n", 2, 3)), "n")
	n := plan.NewSetOp(left, right, sql.Intersect, false)
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 1)
	v, _ := out[0].Get("n")
	require.Equal(t, sql.NewInt(2), v)
}

func TestSetOpArityMismatchErrors(t *testing.T) {
	ctx := newCtx()
	left := projN(plan.NewResolvedTable(intTable("l", "n", 1, 2)), "n")
	right := plan.NewProject(plan.NewResolvedTable(intTable("r", "n", 2)), []sql.SelectItem{
		{Expr: expression.NewIdentifier("n"), Alias: "n"},
		{Expr: expression.NewIdentifier("n"), Alias: "n2"},
	})
	n := plan.NewSetOp(left, right, sql.Union, false)
	it, err := Build(ctx, n)
	require.Error(t, err)
	require.Nil(t, it)
	require.True(t, sql.ErrSetOpArityMismatch.Is(err))
}

func TestSetOpExcept(t *testing.T) {
	ctx := newCtx()
	left := projN(plan.NewResolvedTable(intTable("l", "n", 1, 2)), "n")
	right := projN(plan.NewResolvedTable(intTable("r", "n", 2, 3)), "n")
	n := plan.NewSetOp(left, right, sql.Except, false)
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 1)
	v, _ := out[0].Get("n")
	require.Equal(t, sql.NewInt(1), v)
}
