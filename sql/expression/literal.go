package expression

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
)

// Literal wraps a constant value bound at parse time.
type Literal struct {
	Value sql.Value
}

// NewLiteral builds a Literal.
func NewLiteral(v sql.Value) *Literal { return &Literal{Value: v} }

// Eval implements sql.Expression.
func (l *Literal) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) { return l.Value, nil }

// Children implements sql.Expression.
func (l *Literal) Children() []sql.Expression { return nil }

// WithChildren implements sql.Expression.
func (l *Literal) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("literal takes no children")
	}
	return l, nil
}

// String implements sql.Expression.
func (l *Literal) String() string {
	if l.Value.IsNull() {
		return "NULL"
	}
	if l.Value.Kind() == sql.KindText {
		return fmt.Sprintf("%q", l.Value.Text())
	}
	return l.Value.String()
}

// Placeholder is a bind parameter; must be Bound before it reaches the
// evaluator.
type Placeholder struct {
	Name   string
	bound  bool
	value  sql.Value
}

// NewPlaceholder builds an unbound Placeholder.
func NewPlaceholder(name string) *Placeholder { return &Placeholder{Name: name} }

// Bind sets the placeholder's value, satisfying the "every placeholder
// bound before evaluation" invariant.
func (p *Placeholder) Bind(v sql.Value) *Placeholder {
	return &Placeholder{Name: p.Name, bound: true, value: v}
}

// Bound reports whether Bind has been called.
func (p *Placeholder) Bound() bool { return p.bound }

// Eval implements sql.Expression.
func (p *Placeholder) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	if !p.bound {
		return sql.Null, sql.ErrUnboundPlaceholder.New(p.Name)
	}
	return p.value, nil
}

// Children implements sql.Expression.
func (p *Placeholder) Children() []sql.Expression { return nil }

// WithChildren implements sql.Expression.
func (p *Placeholder) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("placeholder takes no children")
	}
	return p, nil
}

// String implements sql.Expression.
func (p *Placeholder) String() string { return "@" + p.Name }
