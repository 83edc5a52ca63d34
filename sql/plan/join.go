package plan

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
)

// CrossJoin is the Cartesian product of Left and Right — CROSS JOIN and
// comma join both lower to this node.
type CrossJoin struct {
	Left, Right Node
}

// NewCrossJoin builds a CrossJoin node.
func NewCrossJoin(left, right Node) *CrossJoin { return &CrossJoin{Left: left, Right: right} }

// Children implements Node.
func (j *CrossJoin) Children() []Node { return []Node{j.Left, j.Right} }

// WithChildren implements Node.
func (j *CrossJoin) WithChildren(children ...Node) (Node, error) {
	l, r, err := twoChildren(children)
	if err != nil {
		return nil, err
	}
	return NewCrossJoin(l, r), nil
}

// String implements Node.
func (j *CrossJoin) String() string { return fmt.Sprintf("CrossJoin\n  %s\n  %s", j.Left, j.Right) }

// InnerJoin keeps Left/Right pairs where On evaluates True.
type InnerJoin struct {
	Left, Right Node
	On          sql.Expression
}

// NewInnerJoin builds an InnerJoin node.
func NewInnerJoin(left, right Node, on sql.Expression) *InnerJoin {
	return &InnerJoin{Left: left, Right: right, On: on}
}

// Children implements Node.
func (j *InnerJoin) Children() []Node { return []Node{j.Left, j.Right} }

// WithChildren implements Node.
func (j *InnerJoin) WithChildren(children ...Node) (Node, error) {
	l, r, err := twoChildren(children)
	if err != nil {
		return nil, err
	}
	return NewInnerJoin(l, r, j.On), nil
}

// String implements Node.
func (j *InnerJoin) String() string {
	return fmt.Sprintf("InnerJoin(%s)\n  %s\n  %s", j.On, j.Left, j.Right)
}

// LeftJoin keeps every Left row; unmatched rows are padded with Null on
// the Right side: every left row appears at least once; unmatched rows
// get Null right columns.
type LeftJoin struct {
	Left, Right Node
	On          sql.Expression
}

// NewLeftJoin builds a LeftJoin node.
func NewLeftJoin(left, right Node, on sql.Expression) *LeftJoin {
	return &LeftJoin{Left: left, Right: right, On: on}
}

// Children implements Node.
func (j *LeftJoin) Children() []Node { return []Node{j.Left, j.Right} }

// WithChildren implements Node.
func (j *LeftJoin) WithChildren(children ...Node) (Node, error) {
	l, r, err := twoChildren(children)
	if err != nil {
		return nil, err
	}
	return NewLeftJoin(l, r, j.On), nil
}

// String implements Node.
func (j *LeftJoin) String() string {
	return fmt.Sprintf("LeftJoin(%s)\n  %s\n  %s", j.On, j.Left, j.Right)
}

// RightJoin keeps every Right row; unmatched rows are padded with Null on
// the Left side. RIGHT JOIN is a first-class iterator rather than a
// rewrite into LeftJoin with swapped sides, which would silently change
// column ordering in the output schema.
type RightJoin struct {
	Left, Right Node
	On          sql.Expression
}

// NewRightJoin builds a RightJoin node.
func NewRightJoin(left, right Node, on sql.Expression) *RightJoin {
	return &RightJoin{Left: left, Right: right, On: on}
}

// Children implements Node.
func (j *RightJoin) Children() []Node { return []Node{j.Left, j.Right} }

// WithChildren implements Node.
func (j *RightJoin) WithChildren(children ...Node) (Node, error) {
	l, r, err := twoChildren(children)
	if err != nil {
		return nil, err
	}
	return NewRightJoin(l, r, j.On), nil
}

// String implements Node.
func (j *RightJoin) String() string {
	return fmt.Sprintf("RightJoin(%s)\n  %s\n  %s", j.On, j.Left, j.Right)
}

// FullJoin keeps every row from both sides, padding the unmatched side
// with Null: full outer join, rounding out inner/left/right into the
// complete SQL join family.
type FullJoin struct {
	Left, Right Node
	On          sql.Expression
}

// NewFullJoin builds a FullJoin node.
func NewFullJoin(left, right Node, on sql.Expression) *FullJoin {
	return &FullJoin{Left: left, Right: right, On: on}
}

// Children implements Node.
func (j *FullJoin) Children() []Node { return []Node{j.Left, j.Right} }

// WithChildren implements Node.
func (j *FullJoin) WithChildren(children ...Node) (Node, error) {
	l, r, err := twoChildren(children)
	if err != nil {
		return nil, err
	}
	return NewFullJoin(l, r, j.On), nil
}

// String implements Node.
func (j *FullJoin) String() string {
	return fmt.Sprintf("FullJoin(%s)\n  %s\n  %s", j.On, j.Left, j.Right)
}
