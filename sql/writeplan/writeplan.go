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

// Package writeplan implements INSERT/UPDATE/DELETE expressed over a
// reusable, composable filter scope, so a caller can build one
// PartialQuery ("orders belonging to this tenant") and issue many
// mutations against it, each combining its own call-site filter with the
// scope by AND.
package writeplan

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression"
	"github.com/vtabledb/fedsql/sql/plan"
	"github.com/vtabledb/fedsql/sql/rowexec"
)

// PartialQuery is the base scope: a plan tree (possibly a join, for a
// read-only reusable filter) plus an optional WHERE-shaped Scope
// expression and LIMIT. Mutating it (via MutablePartialQuery) additionally
// requires Base to resolve to exactly one physical table.
type PartialQuery struct {
	Base  plan.Node
	Scope sql.Expression // nil means unrestricted
	Limit *int64
}

// NewPartialQuery builds a read-only partial query scope.
func NewPartialQuery(base plan.Node, scope sql.Expression, limit *int64) *PartialQuery {
	return &PartialQuery{Base: base, Scope: scope, Limit: limit}
}

// Rows evaluates the scope (Scope AND'd with an optional extra filter,
// with Limit applied) and drains the result, for callers that just want to
// read through the scope rather than mutate it.
func (q *PartialQuery) Rows(ctx *sql.Context, extra sql.Expression) ([]sql.Row, error) {
	node := q.scoped(extra)
	iter, err := rowexec.Build(ctx, node)
	if err != nil {
		return nil, err
	}
	return sql.RowIterToRows(ctx, iter)
}

func (q *PartialQuery) scoped(extra sql.Expression) plan.Node {
	node := q.Base
	if filter := combineAnd(q.Scope, extra); filter != nil {
		node = plan.NewFilter(node, filter)
	}
	if q.Limit != nil {
		node = plan.NewLimit(node, *q.Limit)
	}
	return node
}

func combineAnd(a, b sql.Expression) sql.Expression {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return expression.NewAnd(a, b)
}

// MutablePartialQuery is a PartialQuery known, at construction time, to
// resolve to exactly one physical sql.TableSource. Any JOIN, UNION, or
// derived-table subquery in the base fails construction with
// sql.ErrSingleTableConstraint.
type MutablePartialQuery struct {
	PartialQuery
	source sql.TableSource
}

// NewMutablePartialQuery builds a MutablePartialQuery, failing with
// sql.ErrSingleTableConstraint if base contains a join or set operation
// anywhere in its tree.
func NewMutablePartialQuery(base plan.Node, scope sql.Expression, limit *int64) (*MutablePartialQuery, error) {
	source, err := singleSource(base)
	if err != nil {
		return nil, err
	}
	return &MutablePartialQuery{
		PartialQuery: PartialQuery{Base: base, Scope: scope, Limit: limit},
		source:       source,
	}, nil
}

// singleSource walks down through the filter/projection/alias wrapper
// nodes a write scope is expected to be built from, erroring the first
// time it meets a node that composes two row streams (any join kind, any
// set operation) or a derived-table subquery (which has no single backing
// TableSource to delegate writes to).
func singleSource(n plan.Node) (sql.TableSource, error) {
	switch node := n.(type) {
	case *plan.ResolvedTable:
		return node.Source, nil
	case *plan.TableAlias:
		return singleSource(node.Child)
	case *plan.Filter, *plan.Project, *plan.Distinct, *plan.Sort, *plan.Offset, *plan.Limit:
		children := node.Children()
		if len(children) != 1 {
			return nil, sql.ErrSingleTableConstraint.New()
		}
		return singleSource(children[0])
	default:
		// SubqueryAlias, CrossJoin, InnerJoin, LeftJoin, RightJoin, FullJoin,
		// SetOp, GroupBy, Window, RecursiveCTE: none names one physical table
		// unambiguously.
		return nil, sql.ErrSingleTableConstraint.New()
	}
}

// Insert validates row against the scope filter (treating row itself as
// the current row being tested) and the optional rowValidator, then
// delegates to the source's Insert facet.
func Insert(ctx *sql.Context, q *MutablePartialQuery, row sql.Row, rowValidator func(*sql.Context, sql.Row) error) error {
	if q.Scope != nil {
		t, err := sql.EvalBool(ctx, q.Scope, row)
		if err != nil {
			return err
		}
		if !t.Bool() {
			return sql.ErrScopeViolation.New()
		}
	}
	if rowValidator != nil {
		if err := rowValidator(ctx, row); err != nil {
			return sql.ErrRowValidationFailed.New(err.Error())
		}
	}
	ins, ok := q.source.(sql.Inserter)
	if !ok {
		return fmt.Errorf("table %s does not support insert", q.source.Name())
	}
	return ins.Insert(ctx, row)
}

// Update combines q's scope with filter by AND, validates each
// to-be-affected row first when perRowValidator is set, then delegates to
// the source's Updater facet.
func Update(ctx *sql.Context, q *MutablePartialQuery, filter sql.Expression, changes map[string]sql.Expression, perRowValidator func(*sql.Context, sql.Row) error) (int64, error) {
	combined := combineAnd(q.Scope, filter)
	if perRowValidator != nil {
		if err := validateEachRow(ctx, q, combined, perRowValidator); err != nil {
			return 0, err
		}
	}
	upd, ok := q.source.(sql.Updater)
	if !ok {
		return 0, fmt.Errorf("table %s does not support update", q.source.Name())
	}
	return upd.Update(ctx, combined, changes)
}

// Delete combines q's scope with filter by AND and delegates to the
// source's Deleter facet. A nil filter is rejected outright: DELETE
// without a WHERE clause is an error at this layer; callers wanting mass
// delete must bypass the planner.
func Delete(ctx *sql.Context, q *MutablePartialQuery, filter sql.Expression, perRowValidator func(*sql.Context, sql.Row) error) (int64, error) {
	if filter == nil {
		return 0, sql.ErrDeleteWithoutWhere.New()
	}
	combined := combineAnd(q.Scope, filter)
	if perRowValidator != nil {
		if err := validateEachRow(ctx, q, combined, perRowValidator); err != nil {
			return 0, err
		}
	}
	del, ok := q.source.(sql.Deleter)
	if !ok {
		return 0, fmt.Errorf("table %s does not support delete", q.source.Name())
	}
	return del.Delete(ctx, combined)
}

// validateEachRow drains the rows filter would affect and runs validator
// over each, aggregating every failure with hashicorp/go-multierror so a
// caller sees every offending row from one Update/Delete call instead of
// only the first.
func validateEachRow(ctx *sql.Context, q *MutablePartialQuery, filter sql.Expression, validator func(*sql.Context, sql.Row) error) error {
	node := q.Base
	if filter != nil {
		node = plan.NewFilter(node, filter)
	}
	iter, err := rowexec.Build(ctx, node)
	if err != nil {
		return err
	}
	rows, err := sql.RowIterToRows(ctx, iter)
	if err != nil {
		return err
	}
	var result *multierror.Error
	for _, row := range rows {
		if err := validator(ctx, row); err != nil {
			result = multierror.Append(result, sql.ErrRowValidationFailed.New(err.Error()))
		}
	}
	return result.ErrorOrNil()
}
