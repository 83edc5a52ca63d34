package rowexec

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression"
	"github.com/vtabledb/fedsql/sql/expression/aggregation"
	"github.com/vtabledb/fedsql/sql/plan"
)

// havingAggKey is the synthetic row key substituted for a HAVING
// aggregate's position by bindHavingAggregates.
func havingAggKey(i int) string { return fmt.Sprintf("\x00having_agg_%d", i) }

// bindHavingAggregates rewrites having so every aggregation.Aggregation
// subexpression is replaced by a placeholder identifier, returning the
// rewritten expression plus the original aggregate expressions in
// placeholder order. This lets buildGroupBy compute each HAVING aggregate
// over the group's own rows (via NewBuffer/Update/Eval, the same as an
// Aggregates item) instead of letting HAVING's Eval fall through to
// aggregation.Aggregation's single-row standalone evaluation.
func bindHavingAggregates(having sql.Expression) (sql.Expression, []sql.Expression, error) {
	var aggs []sql.Expression
	rewritten, err := sql.TransformUp(having, func(e sql.Expression) (sql.Expression, error) {
		if agg, ok := e.(aggregation.Aggregation); ok {
			key := havingAggKey(len(aggs))
			aggs = append(aggs, agg)
			return expression.NewIdentifier(key), nil
		}
		return e, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return rewritten, aggs, nil
}

// buildGroupBy materializes Child, partitions its rows by GroupExprs, and
// evaluates one Aggregates row per partition, dropping any partition Having
// rejects. A query with aggregates and
// no explicit GROUP BY is a single implicit partition over every row.
func buildGroupBy(ctx *sql.Context, n *plan.GroupBy) (sql.RowIter, error) {
	defer span(ctx, "GroupBy")()
	child, err := Build(ctx, n.Child)
	if err != nil {
		return nil, err
	}
	rows, err := sql.RowIterToRows(ctx, child)
	if err != nil {
		return nil, err
	}

	var having sql.Expression
	var havingAggs []sql.Expression
	if n.Having != nil {
		having, havingAggs, err = bindHavingAggregates(n.Having)
		if err != nil {
			return nil, err
		}
	}

	type group struct {
		key  []sql.Value
		rows []sql.Row
	}
	var groups []*group
	for _, row := range rows {
		key := make([]sql.Value, len(n.GroupExprs))
		for i, g := range n.GroupExprs {
			v, err := g.Eval(ctx, row)
			if err != nil {
				return nil, err
			}
			key[i] = v
		}
		var found *group
		for _, g := range groups {
			if sql.RowEqual(g.key, key) {
				found = g
				break
			}
		}
		if found == nil {
			found = &group{key: key}
			groups = append(groups, found)
		}
		found.rows = append(found.rows, row)
	}
	if len(groups) == 0 && len(n.GroupExprs) == 0 {
		// Aggregates over zero rows still produce one result row (e.g.
		// COUNT(*) = 0) under the implicit-single-group rule.
		groups = append(groups, &group{})
	}

	out := make([]sql.Row, 0, len(groups))
	for _, g := range groups {
		buffers := make([]aggregation.Buffer, len(n.Aggregates))
		for i, item := range n.Aggregates {
			if agg, ok := item.Expr.(aggregation.Aggregation); ok {
				buffers[i] = agg.NewBuffer()
			}
		}
		for _, row := range g.rows {
			for _, buf := range buffers {
				if buf == nil {
					continue
				}
				if err := buf.Update(ctx, row); err != nil {
					return nil, err
				}
			}
		}

		var repRow sql.Row
		if len(g.rows) > 0 {
			repRow = g.rows[0]
		} else {
			repRow = sql.NewRow()
		}

		if having != nil {
			havingBuffers := make([]aggregation.Buffer, len(havingAggs))
			for i, agg := range havingAggs {
				havingBuffers[i] = agg.(aggregation.Aggregation).NewBuffer()
			}
			for _, row := range g.rows {
				for _, buf := range havingBuffers {
					if err := buf.Update(ctx, row); err != nil {
						return nil, err
					}
				}
			}
			extra := sql.NewRow()
			for i, buf := range havingBuffers {
				v, err := buf.Eval(ctx)
				if err != nil {
					return nil, err
				}
				extra.Set(havingAggKey(i), v)
			}
			havingRow := repRow.Merge(extra)
			keep, err := sql.EvalBool(ctx, having, havingRow)
			if err != nil {
				return nil, err
			}
			if !keep.Bool() {
				continue
			}
		}

		outRow := sql.NewRow()
		for i, item := range n.Aggregates {
			var v sql.Value
			var err error
			if buffers[i] != nil {
				v, err = buffers[i].Eval(ctx)
			} else {
				v, err = item.Expr.Eval(ctx, repRow)
			}
			if err != nil {
				return nil, err
			}
			name := item.Alias
			if name == "" {
				name = item.Expr.String()
			}
			outRow.Set(name, v)
		}
		out = append(out, outRow)
	}
	return sql.NewSliceIter(out), nil
}
