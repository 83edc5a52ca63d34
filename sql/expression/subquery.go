package expression

import (
	"fmt"
	"io"

	"github.com/vtabledb/fedsql/sql"
)

// ScalarSubquery implements the scalar-subquery expression form. Collects
// up to 2 rows to detect a cardinality violation cheaply without
// materializing the whole result.
type ScalarSubquery struct {
	Query *sql.SelectStatement
}

// NewScalarSubquery builds a ScalarSubquery node.
func NewScalarSubquery(query *sql.SelectStatement) *ScalarSubquery {
	return &ScalarSubquery{Query: query}
}

// Eval implements sql.Expression.
func (s *ScalarSubquery) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	iter, _, err := ctx.RunSubquery(s.Query, row)
	if err != nil {
		return sql.Null, err
	}
	defer iter.Close(ctx)

	var rows []sql.Row
	for len(rows) < 2 {
		r, err := iter.Next(ctx)
		if err != nil {
			if err == io.EOF {
				break
			}
			return sql.Null, err
		}
		rows = append(rows, r)
	}
	if len(rows) > 1 {
		return sql.Null, sql.ErrScalarSubqueryCardinality.New()
	}
	if len(rows) == 0 {
		return sql.Null, nil
	}
	cols := rows[0].Columns()
	if len(cols) > 1 {
		return sql.Null, sql.ErrScalarSubqueryCardinality.New()
	}
	if len(cols) == 0 {
		return sql.Null, nil
	}
	v, _ := rows[0].Get(cols[0])
	return v, nil
}

// Children implements sql.Expression.
func (s *ScalarSubquery) Children() []sql.Expression { return nil }

// WithChildren implements sql.Expression.
func (s *ScalarSubquery) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("scalar subquery takes no children")
	}
	return s, nil
}

// String implements sql.Expression.
func (s *ScalarSubquery) String() string { return "(<scalar subquery>)" }

// ExistsSubquery implements EXISTS / NOT EXISTS: true iff at least one
// row is yielded, short-circuiting on the first.
type ExistsSubquery struct {
	Query   *sql.SelectStatement
	Negated bool
}

// NewExistsSubquery builds an ExistsSubquery node.
func NewExistsSubquery(query *sql.SelectStatement, negated bool) *ExistsSubquery {
	return &ExistsSubquery{Query: query, Negated: negated}
}

// EvalBool implements sql.BoolExpression.
func (e *ExistsSubquery) EvalBool(ctx *sql.Context, row sql.Row) (sql.Trit, error) {
	iter, _, err := ctx.RunSubquery(e.Query, row)
	if err != nil {
		return sql.Unknown, err
	}
	defer iter.Close(ctx)
	_, err = iter.Next(ctx)
	if err != nil && err != io.EOF {
		return sql.Unknown, err
	}
	exists := err == nil
	if e.Negated {
		exists = !exists
	}
	return sql.BoolTrit(exists), nil
}

// Eval implements sql.Expression.
func (e *ExistsSubquery) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	t, err := e.EvalBool(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	return t.ToValue(), nil
}

// Children implements sql.Expression.
func (e *ExistsSubquery) Children() []sql.Expression { return nil }

// WithChildren implements sql.Expression.
func (e *ExistsSubquery) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("exists subquery takes no children")
	}
	return e, nil
}

// String implements sql.Expression.
func (e *ExistsSubquery) String() string {
	if e.Negated {
		return "(NOT EXISTS (<subquery>))"
	}
	return "(EXISTS (<subquery>))"
}

// QuantifierKind distinguishes ALL from ANY/SOME.
type QuantifierKind uint8

const (
	QuantAll QuantifierKind = iota
	QuantAny
)

// QuantifiedComparison implements "expr CMP ALL|ANY (subquery)":
// universal/existential quantification over the yielded column.
type QuantifiedComparison struct {
	Left       sql.Expression
	Op         sql.BinaryOp
	Quantifier QuantifierKind
	Query      *sql.SelectStatement
}

// NewQuantifiedComparison builds a QuantifiedComparison node.
func NewQuantifiedComparison(left sql.Expression, op sql.BinaryOp, q QuantifierKind, query *sql.SelectStatement) *QuantifiedComparison {
	return &QuantifiedComparison{Left: left, Op: op, Quantifier: q, Query: query}
}

func compareOp(op sql.BinaryOp, l, r sql.Value) (bool, error) {
	if l.IsNull() || r.IsNull() {
		return false, nil
	}
	if op == sql.OpEq {
		return sql.LooseEqual(l, r), nil
	}
	if op == sql.OpNotEq {
		return !sql.LooseEqual(l, r), nil
	}
	ord := sql.Compare(l, r)
	switch op {
	case sql.OpLt:
		return ord == sql.Less, nil
	case sql.OpLtEq:
		return ord != sql.Greater, nil
	case sql.OpGt:
		return ord == sql.Greater, nil
	case sql.OpGtEq:
		return ord != sql.Less, nil
	default:
		return false, sql.ErrUnsupportedOperator.New(op.String())
	}
}

// EvalBool implements sql.BoolExpression. ALL over an empty result is true;
// ANY over an empty result is false.
func (q *QuantifiedComparison) EvalBool(ctx *sql.Context, row sql.Row) (sql.Trit, error) {
	l, err := q.Left.Eval(ctx, row)
	if err != nil {
		return sql.Unknown, err
	}

	iter, _, err := ctx.RunSubquery(q.Query, row)
	if err != nil {
		return sql.Unknown, err
	}
	defer iter.Close(ctx)

	sawNull := false
	sawAny := false
	for {
		r, err := iter.Next(ctx)
		if err != nil {
			if err == io.EOF {
				break
			}
			return sql.Unknown, err
		}
		sawAny = true
		cols := r.Columns()
		if len(cols) == 0 {
			continue
		}
		v, _ := r.Get(cols[0])
		if v.IsNull() || l.IsNull() {
			sawNull = true
			continue
		}
		matched, err := compareOp(q.Op, l, v)
		if err != nil {
			return sql.Unknown, err
		}
		if q.Quantifier == QuantAny && matched {
			return sql.True, nil
		}
		if q.Quantifier == QuantAll && !matched {
			return sql.False, nil
		}
	}

	if q.Quantifier == QuantAll {
		if sawNull {
			return sql.Unknown, nil
		}
		return sql.True, nil
	}
	// ANY/SOME: no match found.
	if !sawAny {
		return sql.False, nil
	}
	if sawNull {
		return sql.Unknown, nil
	}
	return sql.False, nil
}

// Eval implements sql.Expression.
func (q *QuantifiedComparison) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	t, err := q.EvalBool(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	return t.ToValue(), nil
}

// Children implements sql.Expression.
func (q *QuantifiedComparison) Children() []sql.Expression { return []sql.Expression{q.Left} }

// WithChildren implements sql.Expression.
func (q *QuantifiedComparison) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewQuantifiedComparison(c, q.Op, q.Quantifier, q.Query), nil
}

// String implements sql.Expression.
func (q *QuantifiedComparison) String() string {
	quant := "ALL"
	if q.Quantifier == QuantAny {
		quant = "ANY"
	}
	return fmt.Sprintf("(%s %s %s (<subquery>))", q.Left, q.Op, quant)
}
