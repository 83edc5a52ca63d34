package expression

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
)

// IsNull implements IS NULL / IS NOT NULL. Never returns Unknown.
type IsNull struct {
	UnaryBase
	Negated bool
}

// NewIsNull builds an IsNull node.
func NewIsNull(child sql.Expression, negated bool) *IsNull {
	return &IsNull{UnaryBase: UnaryBase{Child: child}, Negated: negated}
}

// EvalBool implements sql.BoolExpression.
func (n *IsNull) EvalBool(ctx *sql.Context, row sql.Row) (sql.Trit, error) {
	v, err := n.Child.Eval(ctx, row)
	if err != nil {
		return sql.Unknown, err
	}
	isNull := v.IsNull()
	if n.Negated {
		isNull = !isNull
	}
	return sql.BoolTrit(isNull), nil
}

// Eval implements sql.Expression.
func (n *IsNull) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	t, err := n.EvalBool(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	return t.ToValue(), nil
}

// WithChildren implements sql.Expression.
func (n *IsNull) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewIsNull(c, n.Negated), nil
}

// String implements sql.Expression.
func (n *IsNull) String() string {
	if n.Negated {
		return fmt.Sprintf("(%s IS NOT NULL)", n.Child)
	}
	return fmt.Sprintf("(%s IS NULL)", n.Child)
}
