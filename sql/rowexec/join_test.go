package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression"
	"github.com/vtabledb/fedsql/sql/plan"
)

func TestCrossJoinProducesCartesianProduct(t *testing.T) {
	ctx := newCtx()
	left := intTable("l", "a", 1, 2)
	right := intTable("r", "b", 10, 20)
	n := plan.NewCrossJoin(plan.NewResolvedTable(left), plan.NewResolvedTable(right))
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 4)
}

func TestInnerJoinEquiJoinMatchesOnly(t *testing.T) {
	ctx := newCtx()
	left := intTable("l", "a", 1, 2)
	right := intTable("r", "a", 2, 3)
	on := expression.NewComparison(sql.OpEq, expression.NewIdentifier("l.a"), expression.NewIdentifier("r.a"))
	n := plan.NewInnerJoin(plan.NewResolvedTable(left), plan.NewResolvedTable(right), on)
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 1)
	v, ok := out[0].Get("l.a")
	require.True(t, ok)
	require.Equal(t, sql.NewInt(2), v)
}

func TestLeftJoinPadsUnmatchedWithNull(t *testing.T) {
	ctx := newCtx()
	left := intTable("l", "a", 1, 2)
	right := intTable("r", "a", 2)
	on := expression.NewComparison(sql.OpEq, expression.NewIdentifier("l.a"), expression.NewIdentifier("r.a"))
	n := plan.NewLeftJoin(plan.NewResolvedTable(left), plan.NewResolvedTable(right), on)
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 2)
	var sawNull bool
	for _, r := range out {
		v, _ := r.Get("r.a")
		if v.IsNull() {
			sawNull = true
		}
	}
	require.True(t, sawNull)
}

func TestRightJoinPadsUnmatchedWithNull(t *testing.T) {
	ctx := newCtx()
	left := intTable("l", "a", 1)
	right := intTable("r", "a", 1, 2)
	on := expression.NewComparison(sql.OpEq, expression.NewIdentifier("l.a"), expression.NewIdentifier("r.a"))
	n := plan.NewRightJoin(plan.NewResolvedTable(left), plan.NewResolvedTable(right), on)
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 2)
	var sawNull bool
	for _, r := range out {
		v, _ := r.Get("l.a")
		if v.IsNull() {
			sawNull = true
		}
	}
	require.True(t, sawNull)
}

func TestFullJoinKeepsBothUnmatchedSides(t *testing.T) {
	ctx := newCtx()
	left := intTable("l", "a", 1, 2)
	right := intTable("r", "a", 2, 3)
	on := expression.NewComparison(sql.OpEq, expression.NewIdentifier("l.a"), expression.NewIdentifier("r.a"))
	n := plan.NewFullJoin(plan.NewResolvedTable(left), plan.NewResolvedTable(right), on)
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 3)
}
