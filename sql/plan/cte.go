package plan

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
)

// RecursiveCTE implements a WITH RECURSIVE binding: execute the anchor,
// then repeatedly execute the recursive term against the prior result,
// until a round contributes no new rows.
// A non-recursive CTE needs no dedicated node: the executor materializes
// its Query once and registers the result as a ResolvedTable under its
// name, same as any other base table.
//
// Recursive's own FROM clause references the CTE's own name, which the
// executor binds to a table source reading through Working — the rowexec
// builder updates *Working between rounds so each rebuild of Recursive
// sees the accumulated result so far, without needing a mutable registry.
type RecursiveCTE struct {
	Name      string
	Anchor    Node
	Recursive Node
	Working   *[]sql.Row
}

// NewRecursiveCTE builds a RecursiveCTE node. Recursive is rebuilt against
// the working set on every fixpoint round by the executor, so it is not a
// fixed child in the usual sense — Children/WithChildren only expose
// Anchor, since Recursive must be re-resolved (its FROM references the
// CTE's own growing result) rather than rebuilt structurally in place.
func NewRecursiveCTE(name string, anchor, recursive Node, working *[]sql.Row) *RecursiveCTE {
	return &RecursiveCTE{Name: name, Anchor: anchor, Recursive: recursive, Working: working}
}

// Children implements Node.
func (r *RecursiveCTE) Children() []Node { return []Node{r.Anchor} }

// WithChildren implements Node.
func (r *RecursiveCTE) WithChildren(children ...Node) (Node, error) {
	a, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewRecursiveCTE(r.Name, a, r.Recursive, r.Working), nil
}

// String implements Node.
func (r *RecursiveCTE) String() string { return fmt.Sprintf("RecursiveCTE(%s)\n  %s", r.Name, r.Anchor) }
