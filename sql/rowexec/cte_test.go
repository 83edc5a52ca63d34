package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression"
	"github.com/vtabledb/fedsql/sql/plan"
)

type workingTable struct {
	name    string
	working *[]sql.Row
}

func (w *workingTable) Name() string       { return w.name }
func (w *workingTable) Columns() sql.Schema { return nil }
func (w *workingTable) Iterate(ctx *sql.Context) (sql.RowIter, error) {
	return sql.NewSliceIter(*w.working), nil
}
func (w *workingTable) Count(ctx *sql.Context) (int64, error) { return int64(len(*w.working)), nil }

func TestRecursiveCTEAccumulatesUntilFixpoint(t *testing.T) {
	ctx := newCtx()

	anchor := plan.NewResolvedTable(intTable("a", "n", 1))

	var working []sql.Row
	wt := &workingTable{name: "wt", working: &working}
	pred := expression.NewComparison(sql.OpLt, expression.NewIdentifier("n"), expression.NewLiteral(sql.NewInt(3)))
	incr := expression.NewArithmetic(sql.OpPlus, expression.NewIdentifier("n"), expression.NewLiteral(sql.NewInt(1)))
	recursive := plan.NewProject(
		plan.NewFilter(plan.NewResolvedTable(wt), pred),
		[]sql.SelectItem{{Expr: incr, Alias: "n"}},
	)

	n := plan.NewRecursiveCTE("cte", anchor, recursive, &working)
	it, err := Build(ctx, n)
	require.NoError(t, err)
	out := drain(t, ctx, it)

	got := map[int64]bool{}
	for _, r := range out {
		v, ok := r.Get("n")
		require.True(t, ok)
		got[v.Int()] = true
	}
	require.Equal(t, map[int64]bool{1: true, 2: true, 3: true}, got)
}
