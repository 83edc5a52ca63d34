package expression

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
)

// Between implements BETWEEN / NOT BETWEEN: false if any of
// value/low/high is Null. A fully rewritten tree never carries
// Negated=true — the rewriter turns "NOT BETWEEN" into an OR of flipped
// comparisons — but Between still supports it directly
// so a partially-rewritten or test-constructed tree evaluates correctly.
type Between struct {
	Expr, Low, High sql.Expression
	Negated         bool
}

// NewBetween builds a Between node.
func NewBetween(expr, low, high sql.Expression, negated bool) *Between {
	return &Between{Expr: expr, Low: low, High: high, Negated: negated}
}

// EvalBool implements sql.BoolExpression.
func (b *Between) EvalBool(ctx *sql.Context, row sql.Row) (sql.Trit, error) {
	v, err := b.Expr.Eval(ctx, row)
	if err != nil {
		return sql.Unknown, err
	}
	lo, err := b.Low.Eval(ctx, row)
	if err != nil {
		return sql.Unknown, err
	}
	hi, err := b.High.Eval(ctx, row)
	if err != nil {
		return sql.Unknown, err
	}
	if v.IsNull() || lo.IsNull() || hi.IsNull() {
		return sql.False, nil
	}
	in := sql.Compare(v, lo) != sql.Less && sql.Compare(v, hi) != sql.Greater
	if b.Negated {
		in = !in
	}
	return sql.BoolTrit(in), nil
}

// Eval implements sql.Expression.
func (b *Between) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	t, err := b.EvalBool(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	return t.ToValue(), nil
}

// Children implements sql.Expression.
func (b *Between) Children() []sql.Expression { return []sql.Expression{b.Expr, b.Low, b.High} }

// WithChildren implements sql.Expression.
func (b *Between) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 3 {
		return nil, fmt.Errorf("between expects 3 children, got %d", len(children))
	}
	return NewBetween(children[0], children[1], children[2], b.Negated), nil
}

// String implements sql.Expression.
func (b *Between) String() string {
	neg := ""
	if b.Negated {
		neg = "NOT "
	}
	return fmt.Sprintf("(%s %sBETWEEN %s AND %s)", b.Expr, neg, b.Low, b.High)
}
