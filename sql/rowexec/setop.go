package rowexec

import (
	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/plan"
)

// buildSetOp materializes both sides and combines them: UNION ALL keeps
// every row; UNION/INTERSECT/EXCEPT compare rows with the same
// row-equality rule DISTINCT and GROUP BY use.
func buildSetOp(ctx *sql.Context, n *plan.SetOp) (sql.RowIter, error) {
	defer span(ctx, "SetOp")()
	leftIter, err := Build(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	leftRows, err := sql.RowIterToRows(ctx, leftIter)
	if err != nil {
		return nil, err
	}
	rightIter, err := Build(ctx, n.Right)
	if err != nil {
		return nil, err
	}
	rightRows, err := sql.RowIterToRows(ctx, rightIter)
	if err != nil {
		return nil, err
	}

	var cols []string
	if len(leftRows) > 0 {
		cols = leftRows[0].Columns()
	} else if len(rightRows) > 0 {
		cols = rightRows[0].Columns()
	}
	if len(leftRows) > 0 && len(rightRows) > 0 {
		lc, rc := leftRows[0].Columns(), rightRows[0].Columns()
		if len(lc) != len(rc) {
			return nil, sql.ErrSetOpArityMismatch.New(len(lc), len(rc))
		}
	}

	var out []sql.Row
	switch n.Kind {
	case sql.Union:
		out = append(out, leftRows...)
		out = append(out, rightRows...)
		if !n.All {
			out = dedupeRows(out, cols)
		}
	case sql.Intersect:
		for _, l := range leftRows {
			lk := l.Values(cols)
			for _, r := range rightRows {
				if sql.RowEqual(lk, r.Values(cols)) {
					out = append(out, l)
					break
				}
			}
		}
		if !n.All {
			out = dedupeRows(out, cols)
		}
	case sql.Except:
		for _, l := range leftRows {
			lk := l.Values(cols)
			found := false
			for _, r := range rightRows {
				if sql.RowEqual(lk, r.Values(cols)) {
					found = true
					break
				}
			}
			if !found {
				out = append(out, l)
			}
		}
		if !n.All {
			out = dedupeRows(out, cols)
		}
	}
	return sql.NewSliceIter(out), nil
}

func dedupeRows(rows []sql.Row, cols []string) []sql.Row {
	var out []sql.Row
	var seen [][]sql.Value
	for _, r := range rows {
		key := r.Values(cols)
		dup := false
		for _, s := range seen {
			if sql.RowEqual(s, key) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen = append(seen, key)
		out = append(out, r)
	}
	return out
}
