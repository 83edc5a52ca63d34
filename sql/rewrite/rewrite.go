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

// Package rewrite implements the negation rewriter: it pushes NOT
// through the tree, flips comparisons, and preserves NULL semantics, so
// the evaluator never has to special-case a negated predicate form.
// Modeled on go-mysql-server's sql/transform package naming convention
// (TransformUp) via sql.TransformUp.
package rewrite

import (
	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression"
)

// Rewrite applies the rules to a fixed point: it repeats a
// post-order pass until the tree stops changing (rule application can
// expose new NOT nodes to simplify, e.g. "NOT NOT NOT x").
func Rewrite(e sql.Expression) (sql.Expression, error) {
	for {
		next, err := pass(e)
		if err != nil {
			return nil, err
		}
		if sameShape(e, next) {
			return next, nil
		}
		e = next
	}
}

// pass runs one post-order rewrite pass.
func pass(e sql.Expression) (sql.Expression, error) {
	return sql.TransformUp(e, rewriteNode)
}

// rewriteNode applies the negation-pushdown rules to a single node whose
// children have already been rewritten.
func rewriteNode(e sql.Expression) (sql.Expression, error) {
	not, ok := e.(*expression.Not)
	if !ok {
		return e, nil
	}
	child := not.Child

	switch c := child.(type) {
	case *expression.Between:
		// Rule 1: NOT BETWEEN low AND high -> (e < low) OR (e > high).
		if !c.Negated {
			lt := expression.NewComparison(sql.OpLt, c.Expr, c.Low)
			gt := expression.NewComparison(sql.OpGt, c.Expr, c.High)
			return expression.NewOr(lt, gt), nil
		}

	case *expression.In:
		// Rule 2: NOT IN (v1..vn) with a literal list -> conjunction of <>;
		// empty list -> literal true.
		if !c.Negated {
			if len(c.Values) == 0 {
				return expression.NewLiteral(sql.NewBool(true)), nil
			}
			var conj sql.Expression
			for _, v := range c.Values {
				ne := expression.NewComparison(sql.OpNotEq, c.Left, v)
				if conj == nil {
					conj = ne
				} else {
					conj = expression.NewAnd(conj, ne)
				}
			}
			return conj, nil
		}

	case *expression.InSubquery:
		// Rule 2 (subquery form): kept as-is, negated flag toggled. The
		// executor handles the NULL-correct semantics directly.
		return expression.NewInSubquery(c.Left, c.Query, !c.Negated), nil

	case *expression.Comparison:
		// Rule 3: NOT (a CMP b) -> flipped comparison.
		return expression.NewComparison(c.Op.Flip(), c.Left, c.Right), nil

	case *expression.And:
		// Rule 4: NOT (a AND b) -> NOT a OR NOT b.
		return expression.NewOr(expression.NewNot(c.Left), expression.NewNot(c.Right)), nil

	case *expression.Or:
		// Rule 4: NOT (a OR b) -> NOT a AND NOT b.
		return expression.NewAnd(expression.NewNot(c.Left), expression.NewNot(c.Right)), nil

	case *expression.Not:
		// Rule 5: NOT NOT x -> x.
		return c.Child, nil

	case *expression.IsNull:
		// Rule 6: NOT (e IS NULL) -> e IS NOT NULL (toggle negated).
		return expression.NewIsNull(c.Child, !c.Negated), nil

	case *expression.Like:
		// Rule 6: NOT (e LIKE p) -> e NOT LIKE p (toggle negated).
		return expression.NewLike(c.Left, c.Right, !c.Negated), nil
	}

	// Rule 7: any other NOT e is retained (e's children were already
	// rewritten by the post-order walk).
	return e, nil
}

// sameShape is a cheap fixed-point check: two rewrite passes produced
// identical output when their String() renderings match. The AST is
// small and rewriting is idempotent after at most a handful of passes,
// so this is not a performance concern.
func sameShape(a, b sql.Expression) bool {
	return a.String() == b.String()
}
