package expression

import (
	"fmt"
	"strings"

	"github.com/vtabledb/fedsql/sql"
)

// Identifier resolves a one- or two-part column reference against the
// current row, then the outer-context stack.
type Identifier struct {
	Parts []string
}

// NewIdentifier builds an Identifier from its dotted parts.
func NewIdentifier(parts ...string) *Identifier { return &Identifier{Parts: parts} }

// Eval implements sql.Expression.
func (id *Identifier) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	if v, ok := row.Resolve(id.Parts); ok {
		return v, nil
	}
	if v, ok := ctx.ResolveOuter(id.Parts); ok {
		return v, nil
	}
	return sql.Null, sql.ErrUnknownIdentifier.New(id.String())
}

// Children implements sql.Expression.
func (id *Identifier) Children() []sql.Expression { return nil }

// WithChildren implements sql.Expression.
func (id *Identifier) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("identifier takes no children")
	}
	return id, nil
}

// String implements sql.Expression.
func (id *Identifier) String() string { return strings.Join(id.Parts, ".") }

// Star is the "*" / "t.*" wildcard. It is only valid inside a select list;
// reaching Eval means it surfaced in an expression context, which is an
// error.
type Star struct {
	Table string // "" for a bare "*"
}

// Eval implements sql.Expression.
func (s *Star) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	return sql.Null, sql.ErrWildcardInExpr.New(s.String())
}

// Children implements sql.Expression.
func (s *Star) Children() []sql.Expression { return nil }

// WithChildren implements sql.Expression.
func (s *Star) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("star takes no children")
	}
	return s, nil
}

// String implements sql.Expression.
func (s *Star) String() string {
	if s.Table == "" {
		return "*"
	}
	return s.Table + ".*"
}
