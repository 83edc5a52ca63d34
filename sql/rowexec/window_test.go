package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression"
	"github.com/vtabledb/fedsql/sql/expression/window"
	"github.com/vtabledb/fedsql/sql/plan"
)

func TestBuildWindowAssignsRowNumberPerPartition(t *testing.T) {
	ctx := newCtx()
	rows := []sql.Row{
		groupedRow("grp", "a", "n", 1),
		groupedRow("grp", "a", "n", 2),
		groupedRow("grp", "b", "n", 1),
	}
	tbl := &sliceTable{name: "t", rows: rows}
	funcs := []plan.WindowFunc{{
		Kind:        window.RowNumber,
		PartitionBy: []sql.Expression{expression.NewIdentifier("t.grp")},
		OrderBy:     []sql.OrderKey{{Expr: expression.NewIdentifier("t.n"), Dir: sql.Ascending}},
		Alias:       "rn",
	}}
	n := plan.NewWindow(plan.NewResolvedTable(tbl), funcs)
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)
	require.Len(t, out, 3)
	for _, r := range out {
		rn, ok := r.Get("rn")
		require.True(t, ok)
		require.True(t, rn.Int() >= 1)
	}
}

func groupedRow(gcol, gval, ncol string, n int64) sql.Row {
	r := sql.NewRow()
	r.Set(gcol, sql.NewText(gval))
	r.Set(ncol, sql.NewInt(n))
	return r
}
