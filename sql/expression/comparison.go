package expression

import (
	"github.com/vtabledb/fedsql/sql"
)

// Comparison implements =, <>, <, <=, >, >=.
// Equality/inequality use the loose-equality coercion of sql.LooseEqual;
// strict ordering uses sql.Compare's mixed-type total order.
type Comparison struct {
	BinaryBase
	Op sql.BinaryOp
}

// NewComparison builds a Comparison node.
func NewComparison(op sql.BinaryOp, left, right sql.Expression) *Comparison {
	return &Comparison{BinaryBase: BinaryBase{Left: left, Right: right}, Op: op}
}

// EvalBool implements sql.BoolExpression. In general expression context
// (not the DISTINCT/GROUP BY row-equality rule), both operands NULL yields
// Unknown, not True/False.
func (c *Comparison) EvalBool(ctx *sql.Context, row sql.Row) (sql.Trit, error) {
	l, err := c.Left.Eval(ctx, row)
	if err != nil {
		return sql.Unknown, err
	}
	r, err := c.Right.Eval(ctx, row)
	if err != nil {
		return sql.Unknown, err
	}
	if l.IsNull() || r.IsNull() {
		return sql.Unknown, nil
	}

	if c.Op == sql.OpEq {
		return sql.BoolTrit(sql.LooseEqual(l, r)), nil
	}
	if c.Op == sql.OpNotEq {
		return sql.BoolTrit(!sql.LooseEqual(l, r)), nil
	}

	ord := sql.Compare(l, r)
	switch c.Op {
	case sql.OpLt:
		return sql.BoolTrit(ord == sql.Less), nil
	case sql.OpLtEq:
		return sql.BoolTrit(ord != sql.Greater), nil
	case sql.OpGt:
		return sql.BoolTrit(ord == sql.Greater), nil
	case sql.OpGtEq:
		return sql.BoolTrit(ord != sql.Less), nil
	default:
		return sql.Unknown, sql.ErrUnsupportedOperator.New(c.Op.String())
	}
}

// Eval implements sql.Expression in terms of EvalBool.
func (c *Comparison) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	t, err := c.EvalBool(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	return t.ToValue(), nil
}

// WithChildren implements sql.Expression.
func (c *Comparison) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	l, r, err := twoChildren(children)
	if err != nil {
		return nil, err
	}
	return NewComparison(c.Op, l, r), nil
}

// String implements sql.Expression.
func (c *Comparison) String() string {
	return "(" + c.Left.String() + " " + c.Op.String() + " " + c.Right.String() + ")"
}

// RowEqualityComparison implements the special-cased "both sides NULL"
// equality rule used by DISTINCT/GROUP BY: unlike ordinary "=" / "<>",
// both sides Null yields true / false respectively, but only when
// explicitly requested by the row-equality rule. It is not produced by
// the rewriter or by parsing, and the executor's grouping/distinct stages
// do not build it either: they call sql.RowEqual on key tuples directly.
type RowEqualityComparison struct {
	BinaryBase
	Negate bool
}

// NewRowEqualityComparison builds a RowEqualityComparison node.
func NewRowEqualityComparison(left, right sql.Expression, negate bool) *RowEqualityComparison {
	return &RowEqualityComparison{BinaryBase: BinaryBase{Left: left, Right: right}, Negate: negate}
}

// EvalBool implements sql.BoolExpression.
func (r *RowEqualityComparison) EvalBool(ctx *sql.Context, row sql.Row) (sql.Trit, error) {
	l, err := r.Left.Eval(ctx, row)
	if err != nil {
		return sql.Unknown, err
	}
	rv, err := r.Right.Eval(ctx, row)
	if err != nil {
		return sql.Unknown, err
	}
	eq := sql.ValueEqual(l, rv)
	if r.Negate {
		eq = !eq
	}
	return sql.BoolTrit(eq), nil
}

// Eval implements sql.Expression.
func (r *RowEqualityComparison) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	t, err := r.EvalBool(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	return t.ToValue(), nil
}

// WithChildren implements sql.Expression.
func (r *RowEqualityComparison) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	l, rhs, err := twoChildren(children)
	if err != nil {
		return nil, err
	}
	return NewRowEqualityComparison(l, rhs, r.Negate), nil
}

// String implements sql.Expression.
func (r *RowEqualityComparison) String() string {
	op := "<=>"
	if r.Negate {
		op = "<!=>"
	}
	return "(" + r.Left.String() + " " + op + " " + r.Right.String() + ")"
}
