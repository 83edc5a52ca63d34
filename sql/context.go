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

package sql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
)

// SubqueryRunner is the function-valued hook the evaluator uses to dispatch
// Subquery nodes back into the executor. The executor supplies a closure
// over its per-statement state (CTE table, registry, timeout) at Context
// construction time; the evaluator never imports the executor package.
type SubqueryRunner func(ctx *Context, query *SelectStatement, outerRow Row) (RowIter, Schema, error)

// Context wraps a stdlib context.Context with the session/tracing/outer-
// row-stack state every evaluation and iteration step needs. Modeled on
// go-mysql-server's sql.Context, including its root-span/tracer support.
type Context struct {
	context.Context

	queryID  string
	logger   *logrus.Entry
	tracer   opentracing.Tracer
	rootSpan opentracing.Span

	// outerRows is the immutable outer-row stack for correlated subqueries,
	// innermost first.
	outerRows []Row

	subqueryExec SubqueryRunner

	deadline time.Time
}

// ContextOption configures a Context at construction time.
type ContextOption func(*Context)

// WithTracer sets the opentracing.Tracer used for per-node/per-function
// spans.
func WithTracer(t opentracing.Tracer) ContextOption {
	return func(c *Context) { c.tracer = t }
}

// WithRootSpan attaches a pre-started root span, overriding the one this
// Context would otherwise start.
func WithRootSpan(span opentracing.Span) ContextOption {
	return func(c *Context) { c.rootSpan = span }
}

// WithLogger sets the base logrus.Entry new stage/field loggers derive
// from.
func WithLogger(l *logrus.Entry) ContextOption {
	return func(c *Context) { c.logger = l }
}

// WithSubqueryRunner installs the executor-supplied subquery dispatch hook.
func WithSubqueryRunner(r SubqueryRunner) ContextOption {
	return func(c *Context) { c.subqueryExec = r }
}

// WithDeadline sets a hard deadline; iteration checks it and raises
// ErrQueryTimeout on the next row pull once tripped.
func WithDeadline(d time.Time) ContextOption {
	return func(c *Context) { c.deadline = d }
}

// NewContext builds a Context over a stdlib context.Context, applying the
// given options. Mirrors go-mysql-server's
// sql.NewContext(context.TODO(), sql.WithTracer(...)) pattern.
func NewContext(parent context.Context, opts ...ContextOption) *Context {
	c := &Context{
		Context: parent,
		queryID: uuid.NewString(),
		tracer:  opentracing.NoopTracer{},
		logger:  logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithField("query_id", c.queryID)
	if c.rootSpan == nil {
		c.rootSpan = c.tracer.StartSpan("query")
	}
	return c
}

// QueryID returns the per-statement identifier, also attached to the
// Context's logger as the "query_id" field.
func (c *Context) QueryID() string { return c.queryID }

// Logger returns the structured logger for this statement.
func (c *Context) Logger() *logrus.Entry { return c.logger }

// Span starts a child span named "plan.<name>" / "expression.<name>" /
// "function.<name>" / "aggregation.<name>", matching go-mysql-server's
// span naming convention. The caller must Finish() the returned span.
func (c *Context) Span(operationName string) opentracing.Span {
	return c.tracer.StartSpan(operationName, opentracing.ChildOf(c.rootSpan.Context()))
}

// FinishRootSpan finishes the context's root span; called once when the
// top-level statement completes.
func (c *Context) FinishRootSpan() { c.rootSpan.Finish() }

// PushOuterRow returns a derived Context with row pushed onto the outer-row
// stack (innermost first), for evaluating a correlated subquery's body.
// The original Context (and its stack) is unaffected — rows are immutable
// once pushed.
func (c *Context) PushOuterRow(row Row) *Context {
	stack := make([]Row, 0, len(c.outerRows)+1)
	stack = append(stack, row)
	stack = append(stack, c.outerRows...)
	derived := *c
	derived.outerRows = stack
	return &derived
}

// ResolveOuter walks the outer-row stack innermost-first, used by
// identifier resolution when a name is not found in the current row.
func (c *Context) ResolveOuter(parts []string) (Value, bool) {
	for _, row := range c.outerRows {
		if v, ok := row.Resolve(parts); ok {
			return v, ok
		}
	}
	return Null, false
}

// RunSubquery invokes the executor-supplied subquery dispatch hook. Returns
// an error if none was installed (a Context built outside the executor,
// e.g. in a unit test that never registers one).
func (c *Context) RunSubquery(query *SelectStatement, outerRow Row) (RowIter, Schema, error) {
	if c.subqueryExec == nil {
		return nil, nil, ErrUnsupportedOperator.New("subquery evaluation requires a SubqueryRunner")
	}
	return c.subqueryExec(c, query, outerRow)
}

// CheckDeadline raises ErrQueryTimeout if a deadline was set and has
// passed. Intended to be called once per row pull by iterators that sit at
// the bottom of the composition tree.
func (c *Context) CheckDeadline() error {
	if c.deadline.IsZero() {
		return nil
	}
	if time.Now().After(c.deadline) {
		return ErrQueryTimeout.New()
	}
	select {
	case <-c.Done():
		return ErrQueryTimeout.New()
	default:
		return nil
	}
}
