package rowexec

import (
	"io"
	"sort"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/plan"
)

func buildSort(ctx *sql.Context, n *plan.Sort) (sql.RowIter, error) {
	defer span(ctx, "Sort")()
	child, err := Build(ctx, n.Child)
	if err != nil {
		return nil, err
	}
	rows, err := sql.RowIterToRows(ctx, child)
	if err != nil {
		return nil, err
	}
	sorted, err := SortRows(ctx, rows, n.Keys)
	if err != nil {
		return nil, err
	}
	return sql.NewSliceIter(sorted), nil
}

// SortRows orders rows by keys, stably. NULL sorts last under ASC, first
// under DESC — so NULL is always the "high" end of the order regardless
// of direction, and DESC is the exact reverse of ASC, NULLs included.
func SortRows(ctx *sql.Context, rows []sql.Row, keys []sql.OrderKey) ([]sql.Row, error) {
	type evaled struct {
		row  sql.Row
		vals []sql.Value
	}
	buf := make([]evaled, len(rows))
	for i, r := range rows {
		vals := make([]sql.Value, len(keys))
		for j, k := range keys {
			v, err := k.Expr.Eval(ctx, r)
			if err != nil {
				return nil, err
			}
			vals[j] = v
		}
		buf[i] = evaled{row: r, vals: vals}
	}

	sort.SliceStable(buf, func(i, j int) bool {
		for k, key := range keys {
			a, b := buf[i].vals[k], buf[j].vals[k]
			switch {
			case a.IsNull() && b.IsNull():
				continue
			case a.IsNull():
				// NULL sorts last under ASC, first under DESC.
				return key.Dir == sql.Descending
			case b.IsNull():
				return key.Dir == sql.Ascending
			}
			ord := sql.Compare(a, b)
			if ord == sql.Equal {
				continue
			}
			if key.Dir == sql.Descending {
				return ord == sql.Greater
			}
			return ord == sql.Less
		}
		return false
	})

	out := make([]sql.Row, len(buf))
	for i, b := range buf {
		out[i] = b.row
	}
	return out, nil
}

type offsetIter struct {
	child   sql.RowIter
	n       int64
	skipped int64
}

func buildOffset(ctx *sql.Context, n *plan.Offset) (sql.RowIter, error) {
	defer span(ctx, "Offset")()
	child, err := Build(ctx, n.Child)
	if err != nil {
		return nil, err
	}
	return &offsetIter{child: child, n: n.N}, nil
}

func (o *offsetIter) Next(ctx *sql.Context) (sql.Row, error) {
	for o.skipped < o.n {
		if _, err := o.child.Next(ctx); err != nil {
			return sql.Row{}, err
		}
		o.skipped++
	}
	return o.child.Next(ctx)
}

func (o *offsetIter) Close(ctx *sql.Context) error { return o.child.Close(ctx) }

type limitIter struct {
	child   sql.RowIter
	n       int64
	emitted int64
}

func buildLimit(ctx *sql.Context, n *plan.Limit) (sql.RowIter, error) {
	defer span(ctx, "Limit")()
	child, err := Build(ctx, n.Child)
	if err != nil {
		return nil, err
	}
	return &limitIter{child: child, n: n.N}, nil
}

func (l *limitIter) Next(ctx *sql.Context) (sql.Row, error) {
	if l.emitted >= l.n {
		return sql.Row{}, io.EOF
	}
	row, err := l.child.Next(ctx)
	if err != nil {
		return sql.Row{}, err
	}
	l.emitted++
	return row, nil
}

func (l *limitIter) Close(ctx *sql.Context) error { return l.child.Close(ctx) }
