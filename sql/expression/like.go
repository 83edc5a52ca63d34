package expression

import (
	"fmt"

	"github.com/vtabledb/fedsql/internal/likematch"
	"github.com/vtabledb/fedsql/sql"
)

// Like implements LIKE / NOT LIKE: false if value or pattern is Null;
// pattern wildcards translated via internal/likematch.
type Like struct {
	BinaryBase
	Negated bool
}

// NewLike builds a Like node; Left is the value, Right is the pattern.
func NewLike(left, right sql.Expression, negated bool) *Like {
	return &Like{BinaryBase: BinaryBase{Left: left, Right: right}, Negated: negated}
}

// EvalBool implements sql.BoolExpression.
func (l *Like) EvalBool(ctx *sql.Context, row sql.Row) (sql.Trit, error) {
	v, err := l.Left.Eval(ctx, row)
	if err != nil {
		return sql.Unknown, err
	}
	p, err := l.Right.Eval(ctx, row)
	if err != nil {
		return sql.Unknown, err
	}
	if v.IsNull() || p.IsNull() {
		return sql.False, nil
	}
	re, err := likematch.Compile(p.String())
	if err != nil {
		return sql.Unknown, err
	}
	matched := re.MatchString(v.String())
	if l.Negated {
		matched = !matched
	}
	return sql.BoolTrit(matched), nil
}

// Eval implements sql.Expression.
func (l *Like) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	t, err := l.EvalBool(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	return t.ToValue(), nil
}

// WithChildren implements sql.Expression.
func (l *Like) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	left, right, err := twoChildren(children)
	if err != nil {
		return nil, err
	}
	return NewLike(left, right, l.Negated), nil
}

// String implements sql.Expression.
func (l *Like) String() string {
	neg := ""
	if l.Negated {
		neg = "NOT "
	}
	return fmt.Sprintf("(%s %sLIKE %s)", l.Left, neg, l.Right)
}
