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

// Package rowexec turns a plan.Node tree into sql.RowIter chains. Each
// node type gets its own iterator; Build recursively dispatches via a
// type switch, the same split go-mysql-server keeps between sql/plan and
// sql/rowexec — the logical tree and its execution are deliberately
// separate concerns.
package rowexec

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/plan"
)

// Build compiles n into a row iterator, wrapping each node's construction
// in a "plan.<NodeName>" span, matching go-mysql-server's span naming.
func Build(ctx *sql.Context, n plan.Node) (sql.RowIter, error) {
	switch node := n.(type) {
	case *plan.ResolvedTable:
		return buildResolvedTable(ctx, node)
	case *plan.TableAlias:
		return buildTableAlias(ctx, node)
	case *plan.SubqueryAlias:
		return buildSubqueryAlias(ctx, node)
	case *plan.Filter:
		return buildFilter(ctx, node)
	case *plan.Project:
		return buildProject(ctx, node)
	case *plan.Distinct:
		return buildDistinct(ctx, node)
	case *plan.Sort:
		return buildSort(ctx, node)
	case *plan.Offset:
		return buildOffset(ctx, node)
	case *plan.Limit:
		return buildLimit(ctx, node)
	case *plan.CrossJoin:
		return buildCrossJoin(ctx, node)
	case *plan.InnerJoin:
		return buildInnerJoin(ctx, node)
	case *plan.LeftJoin:
		return buildLeftJoin(ctx, node)
	case *plan.RightJoin:
		return buildRightJoin(ctx, node)
	case *plan.FullJoin:
		return buildFullJoin(ctx, node)
	case *plan.GroupBy:
		return buildGroupBy(ctx, node)
	case *plan.SetOp:
		return buildSetOp(ctx, node)
	case *plan.Window:
		return buildWindow(ctx, node)
	case *plan.RecursiveCTE:
		return buildRecursiveCTE(ctx, node)
	default:
		return nil, fmt.Errorf("rowexec: unhandled node type %T", n)
	}
}

func span(ctx *sql.Context, name string) func() {
	s := ctx.Span("plan." + name)
	return func() { s.Finish() }
}
