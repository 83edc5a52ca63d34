package plan

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
)

// GroupBy partitions Child's rows by GroupExprs and evaluates Aggregates
// once per group, then drops any group for which Having evaluates to
// something other than True. A query with aggregates
// but no GROUP BY clause is one implicit group over all of Child's rows
// (GroupExprs is nil in that case) — the rowexec groupByIter treats the
// two the same way. Having is evaluated in the group's row context (its own
// aggregate subexpressions are computed over the group, not over the
// already-projected output row), so it can reference aggregates that never
// appear in Aggregates.
type GroupBy struct {
	Child      Node
	GroupExprs []sql.Expression
	Aggregates []sql.SelectItem
	Having     sql.Expression // nil means no HAVING clause
}

// NewGroupBy builds a GroupBy node.
func NewGroupBy(child Node, groupExprs []sql.Expression, aggregates []sql.SelectItem, having sql.Expression) *GroupBy {
	return &GroupBy{Child: child, GroupExprs: groupExprs, Aggregates: aggregates, Having: having}
}

// Children implements Node.
func (g *GroupBy) Children() []Node { return []Node{g.Child} }

// WithChildren implements Node.
func (g *GroupBy) WithChildren(children ...Node) (Node, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewGroupBy(c, g.GroupExprs, g.Aggregates, g.Having), nil
}

// String implements Node.
func (g *GroupBy) String() string {
	return fmt.Sprintf("GroupBy(%d keys, %d aggregates)\n  %s", len(g.GroupExprs), len(g.Aggregates), g.Child)
}

// SetOp composes Left and Right via UNION [ALL] / INTERSECT / EXCEPT. Both
// sides must have matching column arity; rowexec.buildSetOp raises
// sql.ErrSetOpArityMismatch when they don't.
type SetOp struct {
	Left, Right Node
	Kind        sql.SetOpKind
	All         bool
}

// NewSetOp builds a SetOp node.
func NewSetOp(left, right Node, kind sql.SetOpKind, all bool) *SetOp {
	return &SetOp{Left: left, Right: right, Kind: kind, All: all}
}

// Children implements Node.
func (s *SetOp) Children() []Node { return []Node{s.Left, s.Right} }

// WithChildren implements Node.
func (s *SetOp) WithChildren(children ...Node) (Node, error) {
	l, r, err := twoChildren(children)
	if err != nil {
		return nil, err
	}
	return NewSetOp(l, r, s.Kind, s.All), nil
}

func (s *SetOp) kindName() string {
	switch s.Kind {
	case sql.Union:
		if s.All {
			return "UnionAll"
		}
		return "Union"
	case sql.Intersect:
		return "Intersect"
	case sql.Except:
		return "Except"
	default:
		return "SetOp"
	}
}

// String implements Node.
func (s *SetOp) String() string { return fmt.Sprintf("%s\n  %s\n  %s", s.kindName(), s.Left, s.Right) }
