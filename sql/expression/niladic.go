package expression

import (
	"fmt"
	"time"

	"github.com/vtabledb/fedsql/sql"
)

// NiladicFnName enumerates the zero-argument built-ins.
type NiladicFnName uint8

const (
	CurrentDate NiladicFnName = iota
	CurrentTime
	CurrentTimestamp
)

// NiladicFn implements CURRENT_DATE/CURRENT_TIME/CURRENT_TIMESTAMP.
// Resolved against wall-clock time at every Eval, not at parse/bind time;
// the *sql.Context plays no part, so two evaluations within one statement
// can see different values.
type NiladicFn struct {
	Name NiladicFnName
	now  func() time.Time
}

// NewNiladicFn builds a NiladicFn using time.Now.
func NewNiladicFn(name NiladicFnName) *NiladicFn {
	return &NiladicFn{Name: name, now: time.Now}
}

// Eval implements sql.Expression.
func (n *NiladicFn) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	t := n.now()
	switch n.Name {
	case CurrentDate:
		return sql.NewText(t.Format("2006-01-02")), nil
	case CurrentTime:
		return sql.NewText(t.Format("15:04:05")), nil
	case CurrentTimestamp:
		return sql.NewText(t.Format("2006-01-02 15:04:05")), nil
	default:
		return sql.Null, fmt.Errorf("unknown niladic function")
	}
}

// Children implements sql.Expression.
func (n *NiladicFn) Children() []sql.Expression { return nil }

// WithChildren implements sql.Expression.
func (n *NiladicFn) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("niladic function takes no children")
	}
	return n, nil
}

// String implements sql.Expression.
func (n *NiladicFn) String() string {
	switch n.Name {
	case CurrentDate:
		return "CURRENT_DATE"
	case CurrentTime:
		return "CURRENT_TIME"
	case CurrentTimestamp:
		return "CURRENT_TIMESTAMP"
	default:
		return "?"
	}
}
