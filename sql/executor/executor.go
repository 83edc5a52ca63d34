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

package executor

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/rowexec"
)

// Executor owns a table registry and compiles/runs
// one SelectStatement at a time, installing itself as the Context's
// SubqueryRunner so Subquery expressions can call back in for correlated,
// scalar, EXISTS and quantified subqueries.
type Executor struct {
	registry sql.Registry
	cfg      Config
	logger   *logrus.Entry
}

// NewExecutor builds an Executor over registry, the base table namespace
// every statement's FROM clause resolves against.
func NewExecutor(registry sql.Registry, cfg Config) *Executor {
	return &Executor{registry: registry, cfg: cfg, logger: logrus.NewEntry(logrus.StandardLogger())}
}

// Query runs stmt to completion against parent, returning the output
// schema (best-effort: derived from the materialized result, falling back
// to the select list's own aliases when the result is empty) and the
// materialized result rows.
func (e *Executor) Query(parent context.Context, stmt *sql.SelectStatement) (sql.Schema, []sql.Row, error) {
	ctx := e.newContext(parent)
	rows, err := e.QueryRows(ctx, stmt)
	if err != nil {
		return nil, nil, err
	}
	schema := schemaOf(rows)
	if schema == nil {
		schema = schemaFromSelectItems(stmt.SelectList)
	}
	return schema, rows, nil
}

// QueryRows runs stmt to completion and returns the materialized result,
// for callers that already hold a *sql.Context (Query calls it after
// building one) and don't need a fresh one built.
func (e *Executor) QueryRows(ctx *sql.Context, stmt *sql.SelectStatement) ([]sql.Row, error) {
	iter, err := e.Execute(ctx, stmt)
	if err != nil {
		return nil, err
	}
	return sql.RowIterToRows(ctx, iter)
}

// Execute compiles stmt and returns its row iterator directly, for callers
// (QueryRows, or a caller that wants to stream rather than drain) that
// already hold a *sql.Context built via newContext/WithSubqueryRunner.
func (e *Executor) Execute(ctx *sql.Context, stmt *sql.SelectStatement) (sql.RowIter, error) {
	node, err := e.build(ctx, stmt, e.registry)
	if err != nil {
		return nil, err
	}
	return rowexec.Build(ctx, node)
}

// newContext builds a *sql.Context wired with this executor's subquery
// dispatch hook and the configured query timeout.
func (e *Executor) newContext(parent context.Context) *sql.Context {
	opts := []sql.ContextOption{
		sql.WithLogger(e.logger),
		sql.WithSubqueryRunner(e.runSubquery),
	}
	if e.cfg.QueryTimeoutSeconds > 0 {
		opts = append(opts, sql.WithDeadline(time.Now().Add(time.Duration(e.cfg.QueryTimeoutSeconds)*time.Second)))
	}
	return sql.NewContext(parent, opts...)
}

// runSubquery implements sql.SubqueryRunner: it pushes outerRow onto the
// Context's outer-row stack and runs query against the same registry this
// Executor was built with, so a correlated subquery's FROM clause sees the
// same tables and CTEs a top-level statement would.
func (e *Executor) runSubquery(ctx *sql.Context, query *sql.SelectStatement, outerRow sql.Row) (sql.RowIter, sql.Schema, error) {
	inner := ctx.PushOuterRow(outerRow)
	node, err := e.build(inner, query, e.registry)
	if err != nil {
		return nil, nil, err
	}
	iter, err := rowexec.Build(inner, node)
	if err != nil {
		return nil, nil, err
	}
	return iter, nil, nil
}

// schemaFromSelectItems derives a best-effort output schema directly from
// the select list, for the empty-result-set case where schemaOf has no row
// to read column names from. Wildcards contribute no column (their actual
// expansion depends on the source schema, which the caller would have
// needed rows to observe anyway).
func schemaFromSelectItems(items []sql.SelectItem) sql.Schema {
	var out sql.Schema
	for _, item := range items {
		if item.Wildcard {
			continue
		}
		name := item.Alias
		if name == "" && item.Expr != nil {
			name = item.Expr.String()
		}
		out = append(out, sql.Column{Name: name, DeclaredType: sql.KindText, Nullable: true})
	}
	return out
}
