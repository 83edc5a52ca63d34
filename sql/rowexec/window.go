package rowexec

import (
	"sort"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression/window"
	"github.com/vtabledb/fedsql/sql/plan"
)

// buildWindow materializes Child, then for each WindowFunc partitions the
// rows by PartitionBy, sorts each partition by OrderBy, and assigns the
// ranking value via window.Compute — row count is unchanged, unlike
// GroupBy.
func buildWindow(ctx *sql.Context, n *plan.Window) (sql.RowIter, error) {
	defer span(ctx, "Window")()
	child, err := Build(ctx, n.Child)
	if err != nil {
		return nil, err
	}
	rows, err := sql.RowIterToRows(ctx, child)
	if err != nil {
		return nil, err
	}

	results := make([]sql.Row, len(rows))
	copy(results, rows)

	for _, wf := range n.Funcs {
		values, err := computeWindowFunc(ctx, rows, wf)
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			results[i].Set(wf.Alias, v)
		}
	}
	return sql.NewSliceIter(results), nil
}

type windowRow struct {
	idx      int
	orderKey []sql.Value
}

// computeWindowFunc returns, parallel to rows, the ranking value each row
// receives within its PARTITION BY group.
func computeWindowFunc(ctx *sql.Context, rows []sql.Row, wf plan.WindowFunc) ([]sql.Value, error) {
	out := make([]sql.Value, len(rows))
	orderExprs := exprsOf(wf.OrderBy)

	groups := map[string][]windowRow{}
	var groupOrder []string
	for i, r := range rows {
		partKey, err := evalExprs(ctx, r, wf.PartitionBy)
		if err != nil {
			return nil, err
		}
		orderKey, err := evalExprs(ctx, r, orderExprs)
		if err != nil {
			return nil, err
		}
		k := valuesKey(partKey)
		if _, ok := groups[k]; !ok {
			groupOrder = append(groupOrder, k)
		}
		groups[k] = append(groups[k], windowRow{idx: i, orderKey: orderKey})
	}

	for _, k := range groupOrder {
		part := groups[k]
		sort.SliceStable(part, func(a, b int) bool {
			return compareOrderKeys(part[a].orderKey, part[b].orderKey, wf.OrderBy) < 0
		})

		keys := make([][]sql.Value, len(part))
		for pos, wr := range part {
			keys[pos] = wr.orderKey
		}
		ranks := window.Compute(wf.Kind, keys)
		for pos, wr := range part {
			out[wr.idx] = ranks[pos]
		}
	}
	return out, nil
}

func exprsOf(keys []sql.OrderKey) []sql.Expression {
	out := make([]sql.Expression, len(keys))
	for i, k := range keys {
		out[i] = k.Expr
	}
	return out
}

func evalExprs(ctx *sql.Context, row sql.Row, exprs []sql.Expression) ([]sql.Value, error) {
	out := make([]sql.Value, len(exprs))
	for i, e := range exprs {
		v, err := e.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func valuesKey(vals []sql.Value) string {
	s := ""
	for _, v := range vals {
		s += v.String() + "\x00"
	}
	return s
}

// compareOrderKeys compares two order-key tuples honoring each key's
// direction and the NULL-last-on-ASC/NULL-first-on-DESC rule.
func compareOrderKeys(ka, kb []sql.Value, orderBy []sql.OrderKey) int {
	for i := range ka {
		va, vb := ka[i], kb[i]
		dir := orderBy[i].Dir
		switch {
		case va.IsNull() && vb.IsNull():
			continue
		case va.IsNull():
			if dir == sql.Descending {
				return -1
			}
			return 1
		case vb.IsNull():
			if dir == sql.Ascending {
				return -1
			}
			return 1
		}
		ord := sql.Compare(va, vb)
		if ord == sql.Equal {
			continue
		}
		if dir == sql.Descending {
			ord = -ord
		}
		if ord == sql.Less {
			return -1
		}
		return 1
	}
	return 0
}
