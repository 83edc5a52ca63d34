package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression"
	"github.com/vtabledb/fedsql/sql/expression/aggregation"
	"github.com/vtabledb/fedsql/sql/expression/window"
	"github.com/vtabledb/fedsql/sql/plan"
)

func TestFlattenAnd(t *testing.T) {
	a := expression.NewIdentifier("a")
	b := expression.NewIdentifier("b")
	c := expression.NewIdentifier("c")
	and := expression.NewAnd(expression.NewAnd(a, b), c)

	got := flattenAnd(and)
	require.Equal(t, []sql.Expression{a, b, c}, got)
}

func TestFlattenAndSingleConjunct(t *testing.T) {
	a := expression.NewIdentifier("a")
	require.Equal(t, []sql.Expression{a}, flattenAnd(a))
}

func TestReferencedTablesQualified(t *testing.T) {
	cmp := expression.NewComparison(sql.OpEq,
		expression.NewIdentifier("p", "id"),
		expression.NewIdentifier("o", "product_id"))

	got := referencedTables(cmp, []string{"p", "o"})
	require.ElementsMatch(t, []string{"p", "o"}, got)
}

func TestReferencedTablesUnqualifiedFallsToSentinel(t *testing.T) {
	cmp := expression.NewComparison(sql.OpEq,
		expression.NewIdentifier("id"),
		expression.NewLiteral(sql.NewInt(1)))

	got := referencedTables(cmp, []string{"p", "o"})
	require.Equal(t, []string{"?"}, got)
	require.False(t, contains([]string{"p", "o"}, "?"))
}

func TestIndexOfAndContains(t *testing.T) {
	names := []string{"p", "o"}
	require.Equal(t, 0, indexOf(names, "p"))
	require.Equal(t, 1, indexOf(names, "o"))
	require.Equal(t, -1, indexOf(names, "missing"))
	require.True(t, contains(names, "p"))
	require.False(t, contains(names, "missing"))
}

func TestBindWindowFuncsUsesExplicitAlias(t *testing.T) {
	wr := expression.NewWindowRef(window.RowNumber, nil, nil)
	items := []sql.SelectItem{{Expr: wr, Alias: "rn"}}

	funcs, bound := bindWindowFuncs(items)
	require.Len(t, funcs, 1)
	require.Equal(t, "rn", funcs[0].Alias)
	require.Equal(t, "rn", bound[0].Alias)

	boundRef, ok := bound[0].Expr.(*expression.WindowRef)
	require.True(t, ok)
	require.Equal(t, "rn", boundRef.Alias)
}

func TestBindWindowFuncsFallsBackToExprString(t *testing.T) {
	wr := expression.NewWindowRef(window.RowNumber, nil, nil)
	items := []sql.SelectItem{{Expr: wr}}

	funcs, bound := bindWindowFuncs(items)
	require.Len(t, funcs, 1)
	require.Equal(t, wr.String(), funcs[0].Alias)
	require.Equal(t, wr.String(), bound[0].Alias)
}

func TestBindWindowFuncsIgnoresOrdinaryExpressions(t *testing.T) {
	items := []sql.SelectItem{{Expr: expression.NewIdentifier("name")}}
	funcs, bound := bindWindowFuncs(items)
	require.Empty(t, funcs)
	require.Equal(t, items, bound)
}

func TestHasAggregateFindsNestedAggregation(t *testing.T) {
	items := []sql.SelectItem{{Expr: expression.NewIdentifier("name")}}
	require.False(t, hasAggregate(items))

	withAgg := []sql.SelectItem{{Expr: aggregation.NewSum(expression.NewIdentifier("amount"), false)}}
	require.True(t, hasAggregate(withAgg))
}

func TestPushFilterIntoUnwrapsTableAlias(t *testing.T) {
	ctx := sql.NewContext(context.Background())
	src := &fakePushdownSource{name: "widgets"}
	aliased := plan.NewTableAlias(plan.NewResolvedTable(src), "w")

	filter := expression.NewComparison(sql.OpEq, expression.NewIdentifier("w", "id"), expression.NewLiteral(sql.NewInt(1)))
	applied, leftover, ok, err := pushFilterInto(ctx, aliased, filter)
	require.NoError(t, err)
	require.True(t, ok)
	require.Nil(t, leftover)

	alias, isAlias := applied.(*plan.TableAlias)
	require.True(t, isAlias)
	require.Equal(t, "w", alias.Alias)
	rt, isRT := alias.Child.(*plan.ResolvedTable)
	require.True(t, isRT)
	require.True(t, rt.Source.(*fakePushdownSource).applied)
}

func TestPushFilterIntoReportsNoFacet(t *testing.T) {
	ctx := sql.NewContext(context.Background())
	node := plan.NewResolvedTable(&fakePlainSource{name: "widgets"})
	_, _, ok, err := pushFilterInto(ctx, node, expression.NewIdentifier("x"))
	require.NoError(t, err)
	require.False(t, ok)
}

type fakePlainSource struct{ name string }

func (f *fakePlainSource) Name() string                                 { return f.name }
func (f *fakePlainSource) Columns() sql.Schema                          { return nil }
func (f *fakePlainSource) Iterate(ctx *sql.Context) (sql.RowIter, error) { return sql.NewSliceIter(nil), nil }
func (f *fakePlainSource) Count(ctx *sql.Context) (int64, error)        { return 0, nil }

type fakePushdownSource struct {
	name    string
	applied bool
}

func (f *fakePushdownSource) Name() string                                 { return f.name }
func (f *fakePushdownSource) Columns() sql.Schema                          { return nil }
func (f *fakePushdownSource) Iterate(ctx *sql.Context) (sql.RowIter, error) { return sql.NewSliceIter(nil), nil }
func (f *fakePushdownSource) Count(ctx *sql.Context) (int64, error)        { return 0, nil }
func (f *fakePushdownSource) TryApplyFilter(ctx *sql.Context, filter sql.Expression) (sql.TableSource, sql.Expression, error) {
	return &fakePushdownSource{name: f.name, applied: true}, nil, nil
}
