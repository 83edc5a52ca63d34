package aggregation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression"
)

func rowsOf(vals ...sql.Value) []sql.Row {
	out := make([]sql.Row, len(vals))
	for i, v := range vals {
		r := sql.NewRow()
		r.Set("n", v)
		out[i] = r
	}
	return out
}

func runBuffer(t *testing.T, agg Aggregation, rows []sql.Row) sql.Value {
	t.Helper()
	c := sql.NewContext(context.Background())
	buf := agg.NewBuffer()
	for _, row := range rows {
		require.NoError(t, buf.Update(c, row))
	}
	v, err := buf.Eval(c)
	require.NoError(t, err)
	return v
}

func TestCountStarCountsAllRows(t *testing.T) {
	rows := rowsOf(sql.NewInt(1), sql.Null, sql.NewInt(3))
	v := runBuffer(t, NewCount(nil, false), rows)
	require.Equal(t, sql.NewInt(3), v)
}

func TestCountExprSkipsNull(t *testing.T) {
	rows := rowsOf(sql.NewInt(1), sql.Null, sql.NewInt(3))
	v := runBuffer(t, NewCount(expression.NewIdentifier("n"), false), rows)
	require.Equal(t, sql.NewInt(2), v)
}

func TestCountDistinctDedupes(t *testing.T) {
	rows := rowsOf(sql.NewInt(1), sql.NewInt(1), sql.NewInt(2))
	v := runBuffer(t, NewCount(expression.NewIdentifier("n"), true), rows)
	require.Equal(t, sql.NewInt(2), v)
}

func TestSumSkipsNullAndEmptyIsNull(t *testing.T) {
	v := runBuffer(t, NewSum(expression.NewIdentifier("n"), false), rowsOf(sql.Null))
	require.True(t, v.IsNull())

	rows := rowsOf(sql.NewInt(1), sql.NewInt(2), sql.Null)
	v = runBuffer(t, NewSum(expression.NewIdentifier("n"), false), rows)
	require.Equal(t, sql.NewInt(3), v)
}

func TestSumPromotesToFloat(t *testing.T) {
	rows := rowsOf(sql.NewInt(1), sql.NewFloat(1.5))
	v := runBuffer(t, NewSum(expression.NewIdentifier("n"), false), rows)
	require.Equal(t, sql.NewFloat(2.5), v)
}

func TestAvgComputesMean(t *testing.T) {
	rows := rowsOf(sql.NewInt(2), sql.NewInt(4))
	v := runBuffer(t, NewAvg(expression.NewIdentifier("n"), false), rows)
	require.Equal(t, sql.NewFloat(3), v)
}

func TestMinMaxSkipNulls(t *testing.T) {
	rows := rowsOf(sql.NewInt(5), sql.Null, sql.NewInt(1), sql.NewInt(9))
	min := runBuffer(t, NewMin(expression.NewIdentifier("n"), false), rows)
	require.Equal(t, sql.NewInt(1), min)

	max := runBuffer(t, NewMax(expression.NewIdentifier("n"), false), rows)
	require.Equal(t, sql.NewInt(9), max)
}

func TestMinMaxEmptyIsNull(t *testing.T) {
	v := runBuffer(t, NewMin(expression.NewIdentifier("n"), false), rowsOf(sql.Null))
	require.True(t, v.IsNull())
}

func TestAggregationString(t *testing.T) {
	require.Equal(t, "COUNT(*)", NewCount(nil, false).String())
	require.Equal(t, "COUNT(DISTINCT n)", NewCount(expression.NewIdentifier("n"), true).String())
	require.Equal(t, "SUM(n)", NewSum(expression.NewIdentifier("n"), false).String())
	require.Equal(t, "MIN(n)", NewMin(expression.NewIdentifier("n"), false).String())
	require.Equal(t, "MAX(n)", NewMax(expression.NewIdentifier("n"), false).String())
}
