package expression

import (
	"fmt"
	"strings"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression/window"
)

// WindowRef is the select-list placeholder for a window function call.
// The window stage of the plan computes the ranking value for every row
// ahead of projection and stores it under Alias;
// WindowRef.Eval simply reads it back, the same way an aggregation's
// result is read back from the grouped row rather than recomputed per
// projection.
type WindowRef struct {
	Kind        window.Kind
	PartitionBy []sql.Expression
	OrderBy     []sql.OrderKey
	Alias       string
}

// NewWindowRef builds an unbound WindowRef; the executor fills in Alias
// once it knows the select item's output column name.
func NewWindowRef(kind window.Kind, partitionBy []sql.Expression, orderBy []sql.OrderKey) *WindowRef {
	return &WindowRef{Kind: kind, PartitionBy: partitionBy, OrderBy: orderBy}
}

// Eval implements sql.Expression.
func (w *WindowRef) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	v, ok := row.Get(w.Alias)
	if !ok {
		return sql.Null, nil
	}
	return v, nil
}

// Children implements sql.Expression. Window specs are not walked/
// rewritten by the negation rewriter (they carry no boolean shape), so
// this is provided only for completeness of the Expression interface.
func (w *WindowRef) Children() []sql.Expression { return append([]sql.Expression{}, w.PartitionBy...) }

// WithChildren implements sql.Expression.
func (w *WindowRef) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != len(w.PartitionBy) {
		return nil, fmt.Errorf("window ref expects %d children, got %d", len(w.PartitionBy), len(children))
	}
	bound := *w
	bound.PartitionBy = children
	return &bound, nil
}

// String implements sql.Expression.
func (w *WindowRef) String() string {
	parts := make([]string, len(w.PartitionBy))
	for i, p := range w.PartitionBy {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s() OVER (PARTITION BY %s)", w.Kind, strings.Join(parts, ", "))
}
