package expression

import (
	"github.com/vtabledb/fedsql/sql"
)

// And implements short-circuit SQL AND: False before evaluating the
// right operand.
type And struct{ BinaryBase }

// NewAnd builds an And node.
func NewAnd(left, right sql.Expression) *And { return &And{BinaryBase{Left: left, Right: right}} }

// EvalBool implements sql.BoolExpression.
func (a *And) EvalBool(ctx *sql.Context, row sql.Row) (sql.Trit, error) {
	l, err := sql.EvalBool(ctx, a.Left, row)
	if err != nil {
		return sql.Unknown, err
	}
	if l == sql.False {
		return sql.False, nil
	}
	r, err := sql.EvalBool(ctx, a.Right, row)
	if err != nil {
		return sql.Unknown, err
	}
	return l.And(r), nil
}

// Eval implements sql.Expression.
func (a *And) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	t, err := a.EvalBool(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	return t.ToValue(), nil
}

// WithChildren implements sql.Expression.
func (a *And) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	l, r, err := twoChildren(children)
	if err != nil {
		return nil, err
	}
	return NewAnd(l, r), nil
}

// String implements sql.Expression.
func (a *And) String() string { return "(" + a.Left.String() + " AND " + a.Right.String() + ")" }

// Or implements short-circuit SQL OR: True before evaluating the right
// operand.
type Or struct{ BinaryBase }

// NewOr builds an Or node.
func NewOr(left, right sql.Expression) *Or { return &Or{BinaryBase{Left: left, Right: right}} }

// EvalBool implements sql.BoolExpression.
func (o *Or) EvalBool(ctx *sql.Context, row sql.Row) (sql.Trit, error) {
	l, err := sql.EvalBool(ctx, o.Left, row)
	if err != nil {
		return sql.Unknown, err
	}
	if l == sql.True {
		return sql.True, nil
	}
	r, err := sql.EvalBool(ctx, o.Right, row)
	if err != nil {
		return sql.Unknown, err
	}
	return l.Or(r), nil
}

// Eval implements sql.Expression.
func (o *Or) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	t, err := o.EvalBool(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	return t.ToValue(), nil
}

// WithChildren implements sql.Expression.
func (o *Or) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	l, r, err := twoChildren(children)
	if err != nil {
		return nil, err
	}
	return NewOr(l, r), nil
}

// String implements sql.Expression.
func (o *Or) String() string { return "(" + o.Left.String() + " OR " + o.Right.String() + ")" }

// Not implements SQL NOT. Only nodes the rewriter could not push through
// (an opaque subexpression) survive as a Not in a fully rewritten tree.
type Not struct{ UnaryBase }

// NewNot builds a Not node.
func NewNot(child sql.Expression) *Not { return &Not{UnaryBase{Child: child}} }

// EvalBool implements sql.BoolExpression.
func (n *Not) EvalBool(ctx *sql.Context, row sql.Row) (sql.Trit, error) {
	t, err := sql.EvalBool(ctx, n.Child, row)
	if err != nil {
		return sql.Unknown, err
	}
	return t.Not(), nil
}

// Eval implements sql.Expression.
func (n *Not) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	t, err := n.EvalBool(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	return t.ToValue(), nil
}

// WithChildren implements sql.Expression.
func (n *Not) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewNot(c), nil
}

// String implements sql.Expression.
func (n *Not) String() string { return "(NOT " + n.Child.String() + ")" }

// UnaryMinus implements unary "-".
type UnaryMinus struct{ UnaryBase }

// NewUnaryMinus builds a UnaryMinus node.
func NewUnaryMinus(child sql.Expression) *UnaryMinus { return &UnaryMinus{UnaryBase{Child: child}} }

// Eval implements sql.Expression.
func (u *UnaryMinus) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	v, err := u.Child.Eval(ctx, row)
	if err != nil || v.IsNull() {
		return v, err
	}
	if v.Kind() == sql.KindFloat {
		return sql.NewFloat(-v.Float()), nil
	}
	return sql.NewInt(-v.Int()), nil
}

// WithChildren implements sql.Expression.
func (u *UnaryMinus) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewUnaryMinus(c), nil
}

// String implements sql.Expression.
func (u *UnaryMinus) String() string { return "(-" + u.Child.String() + ")" }

// UnaryPlus implements unary "+" (identity).
type UnaryPlus struct{ UnaryBase }

// NewUnaryPlus builds a UnaryPlus node.
func NewUnaryPlus(child sql.Expression) *UnaryPlus { return &UnaryPlus{UnaryBase{Child: child}} }

// Eval implements sql.Expression.
func (u *UnaryPlus) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	return u.Child.Eval(ctx, row)
}

// WithChildren implements sql.Expression.
func (u *UnaryPlus) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewUnaryPlus(c), nil
}

// String implements sql.Expression.
func (u *UnaryPlus) String() string { return "(+" + u.Child.String() + ")" }
