package expression

import (
	"fmt"
	"io"
	"strings"

	"github.com/vtabledb/fedsql/sql"
)

// In implements IN (v1..vn) / NOT IN (v1..vn) against a literal value
// list. The subquery form is a separate node,
// InSubquery, handled by the executor's subquery dispatch — the rewriter
// leaves it alone.
type In struct {
	Left    sql.Expression
	Values  []sql.Expression
	Negated bool
}

// NewIn builds an In node.
func NewIn(left sql.Expression, values []sql.Expression, negated bool) *In {
	return &In{Left: left, Values: values, Negated: negated}
}

// EvalBool implements sql.BoolExpression. False if left is NULL; otherwise
// true on the first equal element (negation inverts), else false. An
// empty value list: "IN ()" matches nothing (a boundary
// case); "NOT IN ()" matches everything — the rewriter turns that into
// literal true rule 2, so In itself need not special-case it
// here beyond the ordinary loop-over-nothing behavior.
func (in *In) EvalBool(ctx *sql.Context, row sql.Row) (sql.Trit, error) {
	l, err := in.Left.Eval(ctx, row)
	if err != nil {
		return sql.Unknown, err
	}
	if l.IsNull() {
		return sql.False, nil
	}
	found := false
	for _, ve := range in.Values {
		v, err := ve.Eval(ctx, row)
		if err != nil {
			return sql.Unknown, err
		}
		if v.IsNull() {
			continue
		}
		if sql.LooseEqual(l, v) {
			found = true
			break
		}
	}
	if in.Negated {
		found = !found
	}
	return sql.BoolTrit(found), nil
}

// Eval implements sql.Expression.
func (in *In) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	t, err := in.EvalBool(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	return t.ToValue(), nil
}

// Children implements sql.Expression.
func (in *In) Children() []sql.Expression {
	return append([]sql.Expression{in.Left}, in.Values...)
}

// WithChildren implements sql.Expression.
func (in *In) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) < 1 {
		return nil, fmt.Errorf("in expects at least 1 child, got %d", len(children))
	}
	return NewIn(children[0], children[1:], in.Negated), nil
}

// String implements sql.Expression.
func (in *In) String() string {
	parts := make([]string, len(in.Values))
	for i, v := range in.Values {
		parts[i] = v.String()
	}
	neg := ""
	if in.Negated {
		neg = "NOT "
	}
	return fmt.Sprintf("(%s %sIN (%s))", in.Left, neg, strings.Join(parts, ", "))
}

// InSubquery implements "expr [NOT] IN (subquery)". Evaluation is
// delegated to the executor via ctx.RunSubquery — the evaluator never
// imports the executor package.
//
// NULL-correct negation: "x NOT IN (1,NULL)" is Unknown when x does not
// match any non-NULL element but the subquery yielded at least one NULL —
// the SQL-standard behavior, not the simpler False a naive implementation
// would give.
type InSubquery struct {
	Left    sql.Expression
	Query   *sql.SelectStatement
	Negated bool
}

// NewInSubquery builds an InSubquery node.
func NewInSubquery(left sql.Expression, query *sql.SelectStatement, negated bool) *InSubquery {
	return &InSubquery{Left: left, Query: query, Negated: negated}
}

// EvalBool implements sql.BoolExpression.
func (in *InSubquery) EvalBool(ctx *sql.Context, row sql.Row) (sql.Trit, error) {
	l, err := in.Left.Eval(ctx, row)
	if err != nil {
		return sql.Unknown, err
	}

	iter, _, err := ctx.RunSubquery(in.Query, row)
	if err != nil {
		return sql.Unknown, err
	}
	defer iter.Close(ctx)

	sawNull := false
	found := false
	for {
		r, err := iter.Next(ctx)
		if err != nil {
			if err == io.EOF {
				break
			}
			return sql.Unknown, err
		}
		cols := r.Columns()
		if len(cols) == 0 {
			continue
		}
		v, _ := r.Get(cols[0])
		if v.IsNull() {
			sawNull = true
			continue
		}
		if !l.IsNull() && sql.LooseEqual(l, v) {
			found = true
			break
		}
	}

	if l.IsNull() {
		return sql.Unknown, nil
	}

	result := found
	if in.Negated {
		result = !found
		if !found && sawNull {
			return sql.Unknown, nil
		}
	} else if !found && sawNull {
		// IN semantics: unmatched but a NULL was present -> Unknown.
		return sql.Unknown, nil
	}
	return sql.BoolTrit(result), nil
}

// Eval implements sql.Expression.
func (in *InSubquery) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	t, err := in.EvalBool(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	return t.ToValue(), nil
}

// Children implements sql.Expression.
func (in *InSubquery) Children() []sql.Expression { return []sql.Expression{in.Left} }

// WithChildren implements sql.Expression.
func (in *InSubquery) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewInSubquery(c, in.Query, in.Negated), nil
}

// String implements sql.Expression.
func (in *InSubquery) String() string {
	neg := ""
	if in.Negated {
		neg = "NOT "
	}
	return fmt.Sprintf("(%s %sIN (<subquery>))", in.Left, neg)
}
