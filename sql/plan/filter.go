package plan

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
)

// Filter evaluates Predicate per row of Child, keeping rows where it is
// True. Both WHERE and HAVING lower to this node; Unknown and False are
// both treated as reject.
type Filter struct {
	Child     Node
	Predicate sql.Expression
}

// NewFilter builds a Filter node.
func NewFilter(child Node, predicate sql.Expression) *Filter {
	return &Filter{Child: child, Predicate: predicate}
}

// Children implements Node.
func (f *Filter) Children() []Node { return []Node{f.Child} }

// WithChildren implements Node.
func (f *Filter) WithChildren(children ...Node) (Node, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewFilter(c, f.Predicate), nil
}

// String implements Node.
func (f *Filter) String() string {
	return fmt.Sprintf("Filter(%s)\n  %s", f.Predicate, f.Child)
}

// Project evaluates each SelectItem per row of Child, producing the
// output row shape of a SELECT.
type Project struct {
	Child Node
	Items []sql.SelectItem
}

// NewProject builds a Project node.
func NewProject(child Node, items []sql.SelectItem) *Project {
	return &Project{Child: child, Items: items}
}

// Children implements Node.
func (p *Project) Children() []Node { return []Node{p.Child} }

// WithChildren implements Node.
func (p *Project) WithChildren(children ...Node) (Node, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewProject(c, p.Items), nil
}

// String implements Node.
func (p *Project) String() string {
	return fmt.Sprintf("Project(%d items)\n  %s", len(p.Items), p.Child)
}

// Distinct deduplicates Child's rows using full-row equality, with NULL
// equal to NULL for this purpose.
type Distinct struct {
	Child Node
}

// NewDistinct builds a Distinct node.
func NewDistinct(child Node) *Distinct { return &Distinct{Child: child} }

// Children implements Node.
func (d *Distinct) Children() []Node { return []Node{d.Child} }

// WithChildren implements Node.
func (d *Distinct) WithChildren(children ...Node) (Node, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewDistinct(c), nil
}

// String implements Node.
func (d *Distinct) String() string { return "Distinct\n  " + d.Child.String() }

// Sort orders Child's rows by Keys.
type Sort struct {
	Child Node
	Keys  []sql.OrderKey
}

// NewSort builds a Sort node.
func NewSort(child Node, keys []sql.OrderKey) *Sort { return &Sort{Child: child, Keys: keys} }

// Children implements Node.
func (s *Sort) Children() []Node { return []Node{s.Child} }

// WithChildren implements Node.
func (s *Sort) WithChildren(children ...Node) (Node, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewSort(c, s.Keys), nil
}

// String implements Node.
func (s *Sort) String() string { return fmt.Sprintf("Sort(%d keys)\n  %s", len(s.Keys), s.Child) }

// Offset skips the first N rows of Child.
type Offset struct {
	Child Node
	N     int64
}

// NewOffset builds an Offset node.
func NewOffset(child Node, n int64) *Offset { return &Offset{Child: child, N: n} }

// Children implements Node.
func (o *Offset) Children() []Node { return []Node{o.Child} }

// WithChildren implements Node.
func (o *Offset) WithChildren(children ...Node) (Node, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewOffset(c, o.N), nil
}

// String implements Node.
func (o *Offset) String() string { return fmt.Sprintf("Offset(%d)\n  %s", o.N, o.Child) }

// Limit caps Child to the first N rows, applied after Offset.
type Limit struct {
	Child Node
	N     int64
}

// NewLimit builds a Limit node.
func NewLimit(child Node, n int64) *Limit { return &Limit{Child: child, N: n} }

// Children implements Node.
func (l *Limit) Children() []Node { return []Node{l.Child} }

// WithChildren implements Node.
func (l *Limit) WithChildren(children ...Node) (Node, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewLimit(c, l.N), nil
}

// String implements Node.
func (l *Limit) String() string { return fmt.Sprintf("Limit(%d)\n  %s", l.N, l.Child) }
