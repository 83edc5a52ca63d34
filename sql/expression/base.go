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

// Package expression implements the concrete Expression node types of the
// AST model and the evaluator. One file per concept, mirroring
// go-mysql-server's sql/expression file-per-node naming (comparison.go,
// between.go, like.go, case.go, in.go, isnull.go, logic.go).
package expression

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
)

// BinaryBase factors the Left/Right Children/WithChildren boilerplate
// shared by every two-operand node (Binary, comparisons, AND/OR).
type BinaryBase struct {
	Left, Right sql.Expression
}

// Children implements sql.Expression.
func (b BinaryBase) Children() []sql.Expression { return []sql.Expression{b.Left, b.Right} }

func twoChildren(children []sql.Expression) (sql.Expression, sql.Expression, error) {
	if len(children) != 2 {
		return nil, nil, fmt.Errorf("expected 2 children, got %d", len(children))
	}
	return children[0], children[1], nil
}

// UnaryBase factors the single-Child Children/WithChildren boilerplate
// shared by NOT, unary +/-, IS NULL.
type UnaryBase struct {
	Child sql.Expression
}

// Children implements sql.Expression.
func (u UnaryBase) Children() []sql.Expression { return []sql.Expression{u.Child} }

func oneChild(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expected 1 child, got %d", len(children))
	}
	return children[0], nil
}

// NaryBase factors the Children/WithChildren boilerplate for variable-arity
// nodes (function calls, tuples, CASE branches flattened).
type NaryBase struct {
	Args []sql.Expression
}

// Children implements sql.Expression.
func (n NaryBase) Children() []sql.Expression { return n.Args }
