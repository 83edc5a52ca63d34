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

// Package aggregation implements COUNT/SUM/AVG/MIN/MAX. Buffer shape
// (NewBuffer/Update/Eval) follows go-mysql-server's
// sql/expression/aggregation naming convention: an aggregation
// node is itself an sql.Expression (so it can sit in a select list and be
// detected by type assertion), and additionally exposes a NewBuffer()
// method the executor's GROUP BY stage drives directly across a group's
// rows rather than calling Eval per row.
package aggregation

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
)

// Buffer accumulates one group's worth of input for one aggregate
// expression.
type Buffer interface {
	Update(ctx *sql.Context, row sql.Row) error
	Eval(ctx *sql.Context) (sql.Value, error)
}

// Aggregation is implemented by every aggregate expression node.
type Aggregation interface {
	sql.Expression
	NewBuffer() Buffer
}

// evalStandalone runs a fresh buffer over a single row — used when an
// aggregation's Eval is invoked outside the GROUP BY stage (e.g. a
// standalone unit test); the rowexec GROUP BY iterator drives NewBuffer/
// Update/Eval directly instead of calling this.
func evalStandalone(ctx *sql.Context, a Aggregation, row sql.Row) (sql.Value, error) {
	buf := a.NewBuffer()
	if err := buf.Update(ctx, row); err != nil {
		return sql.Null, err
	}
	return buf.Eval(ctx)
}

// Count implements COUNT(*) / COUNT(expr) [DISTINCT]: COUNT(*) counts
// rows, COUNT(expr) counts non-Null values.
type Count struct {
	Expr     sql.Expression // nil for COUNT(*)
	Distinct bool
}

// NewCount builds a Count aggregation.
func NewCount(expr sql.Expression, distinct bool) *Count { return &Count{Expr: expr, Distinct: distinct} }

type countBuffer struct {
	c    *Count
	n    int64
	seen map[string]bool
}

// NewBuffer implements Aggregation.
func (c *Count) NewBuffer() Buffer {
	b := &countBuffer{c: c}
	if c.Distinct {
		b.seen = map[string]bool{}
	}
	return b
}

func (b *countBuffer) Update(ctx *sql.Context, row sql.Row) error {
	if b.c.Expr == nil {
		b.n++
		return nil
	}
	v, err := b.c.Expr.Eval(ctx, row)
	if err != nil {
		return err
	}
	if v.IsNull() {
		return nil
	}
	if b.c.Distinct {
		key := v.String()
		if b.seen[key] {
			return nil
		}
		b.seen[key] = true
	}
	b.n++
	return nil
}

func (b *countBuffer) Eval(ctx *sql.Context) (sql.Value, error) { return sql.NewInt(b.n), nil }

// Eval implements sql.Expression.
func (c *Count) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) { return evalStandalone(ctx, c, row) }

// Children implements sql.Expression.
func (c *Count) Children() []sql.Expression {
	if c.Expr == nil {
		return nil
	}
	return []sql.Expression{c.Expr}
}

// WithChildren implements sql.Expression.
func (c *Count) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if c.Expr == nil {
		if len(children) != 0 {
			return nil, fmt.Errorf("count(*) takes no children")
		}
		return c, nil
	}
	if len(children) != 1 {
		return nil, fmt.Errorf("count expects 1 child, got %d", len(children))
	}
	return NewCount(children[0], c.Distinct), nil
}

// String implements sql.Expression.
func (c *Count) String() string {
	arg := "*"
	if c.Expr != nil {
		arg = c.Expr.String()
	}
	if c.Distinct {
		return fmt.Sprintf("COUNT(DISTINCT %s)", arg)
	}
	return fmt.Sprintf("COUNT(%s)", arg)
}

// numericAccumulator is shared by SUM/AVG: skip NULL, dedupe if DISTINCT,
// promote to float if any value is a float.
type numericAccumulator struct {
	expr     sql.Expression
	distinct bool
	seen     map[string]bool
	sum      float64
	isFloat  bool
	count    int64
}

func newNumericAccumulator(expr sql.Expression, distinct bool) *numericAccumulator {
	acc := &numericAccumulator{expr: expr, distinct: distinct}
	if distinct {
		acc.seen = map[string]bool{}
	}
	return acc
}

func (a *numericAccumulator) update(ctx *sql.Context, row sql.Row) error {
	v, err := a.expr.Eval(ctx, row)
	if err != nil {
		return err
	}
	if v.IsNull() {
		return nil
	}
	if a.distinct {
		key := v.String()
		if a.seen[key] {
			return nil
		}
		a.seen[key] = true
	}
	if v.Kind() == sql.KindFloat {
		a.isFloat = true
	}
	a.sum += v.AsFloat64()
	a.count++
	return nil
}

// Sum implements SUM(expr) [DISTINCT].
type Sum struct {
	Expr     sql.Expression
	Distinct bool
}

// NewSum builds a Sum aggregation.
func NewSum(expr sql.Expression, distinct bool) *Sum { return &Sum{Expr: expr, Distinct: distinct} }

type sumBuffer struct{ acc *numericAccumulator }

// NewBuffer implements Aggregation.
func (s *Sum) NewBuffer() Buffer { return &sumBuffer{acc: newNumericAccumulator(s.Expr, s.Distinct)} }

func (b *sumBuffer) Update(ctx *sql.Context, row sql.Row) error { return b.acc.update(ctx, row) }

func (b *sumBuffer) Eval(ctx *sql.Context) (sql.Value, error) {
	if b.acc.count == 0 {
		return sql.Null, nil
	}
	if b.acc.isFloat {
		return sql.NewFloat(b.acc.sum), nil
	}
	return sql.NewInt(int64(b.acc.sum)), nil
}

// Eval implements sql.Expression.
func (s *Sum) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) { return evalStandalone(ctx, s, row) }

// Children implements sql.Expression.
func (s *Sum) Children() []sql.Expression { return []sql.Expression{s.Expr} }

// WithChildren implements sql.Expression.
func (s *Sum) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	c, err := oneArg(children)
	if err != nil {
		return nil, err
	}
	return NewSum(c, s.Distinct), nil
}

// String implements sql.Expression.
func (s *Sum) String() string { return wrapDistinct("SUM", s.Expr, s.Distinct) }

// Avg implements AVG(expr) [DISTINCT].
type Avg struct {
	Expr     sql.Expression
	Distinct bool
}

// NewAvg builds an Avg aggregation.
func NewAvg(expr sql.Expression, distinct bool) *Avg { return &Avg{Expr: expr, Distinct: distinct} }

type avgBuffer struct{ acc *numericAccumulator }

// NewBuffer implements Aggregation.
func (a *Avg) NewBuffer() Buffer { return &avgBuffer{acc: newNumericAccumulator(a.Expr, a.Distinct)} }

func (b *avgBuffer) Update(ctx *sql.Context, row sql.Row) error { return b.acc.update(ctx, row) }

func (b *avgBuffer) Eval(ctx *sql.Context) (sql.Value, error) {
	if b.acc.count == 0 {
		return sql.Null, nil
	}
	return sql.NewFloat(b.acc.sum / float64(b.acc.count)), nil
}

// Eval implements sql.Expression.
func (a *Avg) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) { return evalStandalone(ctx, a, row) }

// Children implements sql.Expression.
func (a *Avg) Children() []sql.Expression { return []sql.Expression{a.Expr} }

// WithChildren implements sql.Expression.
func (a *Avg) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	c, err := oneArg(children)
	if err != nil {
		return nil, err
	}
	return NewAvg(c, a.Distinct), nil
}

// String implements sql.Expression.
func (a *Avg) String() string { return wrapDistinct("AVG", a.Expr, a.Distinct) }

// minMax implements MIN/MAX(expr) [DISTINCT], skipping Null values;
// isMax selects the comparison direction.
type minMax struct {
	Expr     sql.Expression
	Distinct bool
	isMax    bool
}

// NewMin builds a Min aggregation.
func NewMin(expr sql.Expression, distinct bool) Aggregation {
	return &minMax{Expr: expr, Distinct: distinct, isMax: false}
}

// NewMax builds a Max aggregation.
func NewMax(expr sql.Expression, distinct bool) Aggregation {
	return &minMax{Expr: expr, Distinct: distinct, isMax: true}
}

type minMaxBuffer struct {
	m       *minMax
	has     bool
	current sql.Value
}

// NewBuffer implements Aggregation.
func (m *minMax) NewBuffer() Buffer { return &minMaxBuffer{m: m} }

func (b *minMaxBuffer) Update(ctx *sql.Context, row sql.Row) error {
	v, err := b.m.Expr.Eval(ctx, row)
	if err != nil {
		return err
	}
	if v.IsNull() {
		return nil
	}
	if !b.has {
		b.has = true
		b.current = v
		return nil
	}
	ord := sql.Compare(v, b.current)
	if (b.m.isMax && ord == sql.Greater) || (!b.m.isMax && ord == sql.Less) {
		b.current = v
	}
	return nil
}

func (b *minMaxBuffer) Eval(ctx *sql.Context) (sql.Value, error) {
	if !b.has {
		return sql.Null, nil
	}
	return b.current, nil
}

// Eval implements sql.Expression.
func (m *minMax) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) { return evalStandalone(ctx, m, row) }

// Children implements sql.Expression.
func (m *minMax) Children() []sql.Expression { return []sql.Expression{m.Expr} }

// WithChildren implements sql.Expression.
func (m *minMax) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	c, err := oneArg(children)
	if err != nil {
		return nil, err
	}
	if m.isMax {
		return NewMax(c, m.Distinct), nil
	}
	return NewMin(c, m.Distinct), nil
}

// String implements sql.Expression.
func (m *minMax) String() string {
	name := "MIN"
	if m.isMax {
		name = "MAX"
	}
	return wrapDistinct(name, m.Expr, m.Distinct)
}

func oneArg(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("aggregation expects 1 child, got %d", len(children))
	}
	return children[0], nil
}

func wrapDistinct(name string, expr sql.Expression, distinct bool) string {
	if distinct {
		return fmt.Sprintf("%s(DISTINCT %s)", name, expr)
	}
	return fmt.Sprintf("%s(%s)", name, expr)
}

