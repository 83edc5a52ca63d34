// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package plan defines the logical query plan tree the executor builds
// from a sql.SelectStatement: joins, filters, projection, grouping,
// sorting, set operations, and windowing. Row iteration itself lives in
// the separate sql/rowexec package, which type-switches over these nodes
// to build sql.RowIter trees — the same plan/rowexec split go-mysql-server
// uses.
package plan

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
)

// Node is a logical plan node. Unlike sql.Expression, Node has no Eval —
// sql/rowexec.Build is the only thing that turns a Node tree into row
// iteration.
type Node interface {
	Children() []Node
	WithChildren(children ...Node) (Node, error)
	String() string
}

func oneChild(children []Node) (Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expected 1 child, got %d", len(children))
	}
	return children[0], nil
}

func twoChildren(children []Node) (Node, Node, error) {
	if len(children) != 2 {
		return nil, nil, fmt.Errorf("expected 2 children, got %d", len(children))
	}
	return children[0], children[1], nil
}

// ResolvedTable wraps a concrete sql.TableSource as a leaf plan node.
type ResolvedTable struct {
	Source sql.TableSource
}

// NewResolvedTable builds a ResolvedTable leaf.
func NewResolvedTable(source sql.TableSource) *ResolvedTable { return &ResolvedTable{Source: source} }

// Children implements Node.
func (r *ResolvedTable) Children() []Node { return nil }

// WithChildren implements Node.
func (r *ResolvedTable) WithChildren(children ...Node) (Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("resolved table takes no children")
	}
	return r, nil
}

// String implements Node.
func (r *ResolvedTable) String() string { return r.Source.Name() }

// TableAlias renames a subtree's output to Alias, so qualified references
// like "t.col" resolve against it regardless of the underlying source's
// own name.
type TableAlias struct {
	Child Node
	Alias string
}

// NewTableAlias builds a TableAlias node.
func NewTableAlias(child Node, alias string) *TableAlias { return &TableAlias{Child: child, Alias: alias} }

// Children implements Node.
func (t *TableAlias) Children() []Node { return []Node{t.Child} }

// WithChildren implements Node.
func (t *TableAlias) WithChildren(children ...Node) (Node, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewTableAlias(c, t.Alias), nil
}

// String implements Node.
func (t *TableAlias) String() string { return t.Child.String() + " AS " + t.Alias }

// SubqueryAlias wraps a derived-table subquery's already-built plan as a
// leaf in an outer FROM clause.
type SubqueryAlias struct {
	Child Node
	Alias string
}

// NewSubqueryAlias builds a SubqueryAlias node.
func NewSubqueryAlias(child Node, alias string) *SubqueryAlias {
	return &SubqueryAlias{Child: child, Alias: alias}
}

// Children implements Node.
func (s *SubqueryAlias) Children() []Node { return []Node{s.Child} }

// WithChildren implements Node.
func (s *SubqueryAlias) WithChildren(children ...Node) (Node, error) {
	c, err := oneChild(children)
	if err != nil {
		return nil, err
	}
	return NewSubqueryAlias(c, s.Alias), nil
}

// String implements Node.
func (s *SubqueryAlias) String() string { return "(" + s.Child.String() + ") AS " + s.Alias }
