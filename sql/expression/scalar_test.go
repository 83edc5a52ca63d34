package expression

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vtabledb/fedsql/sql"
)

func ctx() *sql.Context { return sql.NewContext(context.Background()) }

func TestIdentifierResolvesFromRowThenOuter(t *testing.T) {
	row := sql.NewRow()
	row.Set("id", sql.NewInt(1))

	id := NewIdentifier("id")
	v, err := id.Eval(ctx(), row)
	require.NoError(t, err)
	require.Equal(t, sql.NewInt(1), v)
}

func TestIdentifierUnknownErrors(t *testing.T) {
	id := NewIdentifier("missing")
	_, err := id.Eval(ctx(), sql.NewRow())
	require.Error(t, err)
}

func TestIdentifierResolvesFromOuterContext(t *testing.T) {
	outer := sql.NewRow()
	outer.Set("id", sql.NewInt(7))
	c := ctx().PushOuterRow(outer)

	id := NewIdentifier("id")
	v, err := id.Eval(c, sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.NewInt(7), v)
}

func TestStarEvalIsError(t *testing.T) {
	s := &Star{}
	_, err := s.Eval(ctx(), sql.NewRow())
	require.Error(t, err)
	require.Equal(t, "*", s.String())
}

func TestLiteralEvalAndString(t *testing.T) {
	l := NewLiteral(sql.NewInt(5))
	v, err := l.Eval(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.NewInt(5), v)
	require.Equal(t, "5", l.String())

	require.Equal(t, "NULL", NewLiteral(sql.Null).String())
	require.Equal(t, `"abc"`, NewLiteral(sql.NewText("abc")).String())
}

func TestPlaceholderUnboundErrors(t *testing.T) {
	p := NewPlaceholder("x")
	require.False(t, p.Bound())
	_, err := p.Eval(ctx(), sql.NewRow())
	require.Error(t, err)
}

func TestPlaceholderBoundEvaluates(t *testing.T) {
	p := NewPlaceholder("x").Bind(sql.NewInt(9))
	require.True(t, p.Bound())
	v, err := p.Eval(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.NewInt(9), v)
}

func TestComparisonNullYieldsUnknown(t *testing.T) {
	c := NewComparison(sql.OpEq, NewLiteral(sql.Null), NewLiteral(sql.NewInt(1)))
	tr, err := c.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.Unknown, tr)
}

func TestComparisonOperators(t *testing.T) {
	cases := []struct {
		op   sql.BinaryOp
		l, r int64
		want sql.Trit
	}{
		{sql.OpLt, 1, 2, sql.True},
		{sql.OpLtEq, 2, 2, sql.True},
		{sql.OpGt, 3, 2, sql.True},
		{sql.OpGtEq, 2, 2, sql.True},
		{sql.OpEq, 2, 2, sql.True},
		{sql.OpNotEq, 2, 3, sql.True},
	}
	for _, c := range cases {
		cmp := NewComparison(c.op, NewLiteral(sql.NewInt(c.l)), NewLiteral(sql.NewInt(c.r)))
		tr, err := cmp.EvalBool(ctx(), sql.NewRow())
		require.NoError(t, err)
		require.Equal(t, c.want, tr, c.op.String())
	}
}

func TestRowEqualityComparisonBothNullTrue(t *testing.T) {
	req := NewRowEqualityComparison(NewLiteral(sql.Null), NewLiteral(sql.Null), false)
	tr, err := req.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.True, tr)
}

func TestRowEqualityComparisonNegated(t *testing.T) {
	req := NewRowEqualityComparison(NewLiteral(sql.NewInt(1)), NewLiteral(sql.NewInt(1)), true)
	tr, err := req.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.False, tr)
}

func TestAndShortCircuitsOnFalse(t *testing.T) {
	and := NewAnd(NewLiteral(sql.NewBool(false)), NewLiteral(sql.Null))
	tr, err := and.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.False, tr)
}

func TestOrShortCircuitsOnTrue(t *testing.T) {
	or := NewOr(NewLiteral(sql.NewBool(true)), NewLiteral(sql.Null))
	tr, err := or.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.True, tr)
}

func TestNotFlips(t *testing.T) {
	n := NewNot(NewLiteral(sql.NewBool(true)))
	tr, err := n.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.False, tr)
}

func TestUnaryMinusAndPlus(t *testing.T) {
	m := NewUnaryMinus(NewLiteral(sql.NewInt(5)))
	v, err := m.Eval(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.NewInt(-5), v)

	p := NewUnaryPlus(NewLiteral(sql.NewInt(5)))
	v, err = p.Eval(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.NewInt(5), v)
}

func TestBetweenFalseWhenAnyOperandNull(t *testing.T) {
	b := NewBetween(NewLiteral(sql.Null), NewLiteral(sql.NewInt(1)), NewLiteral(sql.NewInt(5)), false)
	tr, err := b.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.False, tr)
}

func TestBetweenInRange(t *testing.T) {
	b := NewBetween(NewLiteral(sql.NewInt(3)), NewLiteral(sql.NewInt(1)), NewLiteral(sql.NewInt(5)), false)
	tr, err := b.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.True, tr)
}

func TestBetweenNegated(t *testing.T) {
	b := NewBetween(NewLiteral(sql.NewInt(3)), NewLiteral(sql.NewInt(1)), NewLiteral(sql.NewInt(5)), true)
	tr, err := b.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.False, tr)
}

func TestLikeMatchesWildcard(t *testing.T) {
	l := NewLike(NewLiteral(sql.NewText("foobar")), NewLiteral(sql.NewText("foo%")), false)
	tr, err := l.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.True, tr)
}

func TestLikeNullIsFalse(t *testing.T) {
	l := NewLike(NewLiteral(sql.Null), NewLiteral(sql.NewText("foo%")), false)
	tr, err := l.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.False, tr)
}

func TestIsNullNeverUnknown(t *testing.T) {
	n := NewIsNull(NewLiteral(sql.Null), false)
	tr, err := n.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.True, tr)

	notNull := NewIsNull(NewLiteral(sql.NewInt(1)), true)
	tr, err = notNull.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.True, tr)
}

func TestInMatchesElement(t *testing.T) {
	in := NewIn(NewLiteral(sql.NewInt(2)),
		[]sql.Expression{NewLiteral(sql.NewInt(1)), NewLiteral(sql.NewInt(2))}, false)
	tr, err := in.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.True, tr)
}

func TestInLeftNullIsFalse(t *testing.T) {
	in := NewIn(NewLiteral(sql.Null), []sql.Expression{NewLiteral(sql.NewInt(1))}, false)
	tr, err := in.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.False, tr)
}

func TestInNegatedNoMatch(t *testing.T) {
	in := NewIn(NewLiteral(sql.NewInt(9)), []sql.Expression{NewLiteral(sql.NewInt(1))}, true)
	tr, err := in.EvalBool(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.True, tr)
}

func TestCaseWhenSearchedForm(t *testing.T) {
	c := NewCaseWhen(nil, []CaseBranch{
		{When: NewLiteral(sql.NewBool(false)), Then: NewLiteral(sql.NewText("no"))},
		{When: NewLiteral(sql.NewBool(true)), Then: NewLiteral(sql.NewText("yes"))},
	}, NewLiteral(sql.NewText("else")))
	v, err := c.Eval(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.NewText("yes"), v)
}

func TestCaseWhenSimpleFormFallsToElse(t *testing.T) {
	c := NewCaseWhen(NewLiteral(sql.NewInt(1)), []CaseBranch{
		{When: NewLiteral(sql.NewInt(2)), Then: NewLiteral(sql.NewText("two"))},
	}, NewLiteral(sql.NewText("other")))
	v, err := c.Eval(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.NewText("other"), v)
}

func TestCaseWhenNoElseYieldsNull(t *testing.T) {
	c := NewCaseWhen(nil, []CaseBranch{
		{When: NewLiteral(sql.NewBool(false)), Then: NewLiteral(sql.NewText("no"))},
	}, nil)
	v, err := c.Eval(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestArithmeticOperators(t *testing.T) {
	plus := NewArithmetic(sql.OpPlus, NewLiteral(sql.NewInt(2)), NewLiteral(sql.NewInt(3)))
	v, err := plus.Eval(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.NewInt(5), v)

	div := NewArithmetic(sql.OpDiv, NewLiteral(sql.NewInt(6)), NewLiteral(sql.NewInt(3)))
	v, err = div.Eval(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.NewFloat(2), v)
}

func TestArithmeticDivByZeroIsNull(t *testing.T) {
	div := NewArithmetic(sql.OpDiv, NewLiteral(sql.NewInt(1)), NewLiteral(sql.NewInt(0)))
	v, err := div.Eval(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestArithmeticConcat(t *testing.T) {
	concat := NewArithmetic(sql.OpConcat, NewLiteral(sql.NewText("a")), NewLiteral(sql.NewText("b")))
	v, err := concat.Eval(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.NewText("ab"), v)
}

func TestWindowRefReadsAliasFromRow(t *testing.T) {
	w := NewWindowRef(0, nil, nil)
	w.Alias = "rn"
	row := sql.NewRow()
	row.Set("rn", sql.NewInt(2))
	v, err := w.Eval(ctx(), row)
	require.NoError(t, err)
	require.Equal(t, sql.NewInt(2), v)
}

func TestWindowRefMissingAliasIsNull(t *testing.T) {
	w := NewWindowRef(0, nil, nil)
	w.Alias = "rn"
	v, err := w.Eval(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestNiladicFnUsesInjectedClock(t *testing.T) {
	fixed := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	n := &NiladicFn{Name: CurrentDate, now: func() time.Time { return fixed }}
	v, err := n.Eval(ctx(), sql.NewRow())
	require.NoError(t, err)
	require.Equal(t, sql.NewText("2024-03-04"), v)
}
