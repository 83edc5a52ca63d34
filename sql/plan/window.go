package plan

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression/window"
)

// WindowFunc is one OVER(...) expression to compute alongside Child's
// rows.
type WindowFunc struct {
	Kind        window.Kind
	PartitionBy []sql.Expression
	OrderBy     []sql.OrderKey
	Alias       string
}

// Window evaluates Funcs per row of Child without collapsing rows, unlike
// GroupBy.
type Window struct {
	Child Node
	Funcs []WindowFunc
}

// NewWindow builds a Window node.
func NewWindow(child Node, funcs []WindowFunc) *Window { return &Window{Child: child, Funcs: funcs} }

// Children implements Node.
func (w *Window) Children() []Node { return []Node{w.Child} }

// WithChildren implements Node.
func (w *Window) WithChildren(children ...Node) (Node, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewWindow(c, w.Funcs), nil
}

// String implements Node.
func (w *Window) String() string { return fmt.Sprintf("Window(%d funcs)\n  %s", len(w.Funcs), w.Child) }
