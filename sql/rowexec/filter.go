package rowexec

import (
	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/plan"
)

type filterIter struct {
	ctx       *sql.Context
	child     sql.RowIter
	predicate sql.Expression
}

func buildFilter(ctx *sql.Context, n *plan.Filter) (sql.RowIter, error) {
	defer span(ctx, "Filter")()
	child, err := Build(ctx, n.Child)
	if err != nil {
		return nil, err
	}
	return &filterIter{ctx: ctx, child: child, predicate: n.Predicate}, nil
}

func (f *filterIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		if err := ctx.CheckDeadline(); err != nil {
			return sql.Row{}, err
		}
		row, err := f.child.Next(ctx)
		if err != nil {
			return sql.Row{}, err
		}
		keep, err := sql.EvalBool(ctx, f.predicate, row)
		if err != nil {
			return sql.Row{}, err
		}
		if keep.Bool() {
			return row, nil
		}
	}
}

func (f *filterIter) Close(ctx *sql.Context) error { return f.child.Close(ctx) }

type projectIter struct {
	ctx   *sql.Context
	child sql.RowIter
	items []sql.SelectItem
}

func buildProject(ctx *sql.Context, n *plan.Project) (sql.RowIter, error) {
	defer span(ctx, "Project")()
	child, err := Build(ctx, n.Child)
	if err != nil {
		return nil, err
	}
	return &projectIter{ctx: ctx, child: child, items: n.Items}, nil
}

func (p *projectIter) Next(ctx *sql.Context) (sql.Row, error) {
	row, err := p.child.Next(ctx)
	if err != nil {
		return sql.Row{}, err
	}
	return ProjectRow(ctx, row, p.items)
}

// ProjectRow evaluates items against row, expanding wildcards in place.
// Within this module projectIter is its only caller; buildGroupBy names
// its output columns by the same alias-or-String() rule without calling it.
func ProjectRow(ctx *sql.Context, row sql.Row, items []sql.SelectItem) (sql.Row, error) {
	out := sql.NewRow()
	for _, item := range items {
		if item.Wildcard {
			for _, col := range row.Columns() {
				if item.WildcardTable != "" {
					prefix := item.WildcardTable + "."
					if len(col) <= len(prefix) || col[:len(prefix)] != prefix {
						continue
					}
				}
				v, _ := row.Get(col)
				out.Set(col, v)
			}
			continue
		}
		v, err := item.Expr.Eval(ctx, row)
		if err != nil {
			return sql.Row{}, err
		}
		name := item.Alias
		if name == "" {
			name = item.Expr.String()
		}
		out.Set(name, v)
	}
	return out, nil
}

func (p *projectIter) Close(ctx *sql.Context) error { return p.child.Close(ctx) }

type distinctIter struct {
	ctx     *sql.Context
	child   sql.RowIter
	cols    []string
	seen    [][]sql.Value
	primed  bool
}

func buildDistinct(ctx *sql.Context, n *plan.Distinct) (sql.RowIter, error) {
	defer span(ctx, "Distinct")()
	child, err := Build(ctx, n.Child)
	if err != nil {
		return nil, err
	}
	return &distinctIter{ctx: ctx, child: child}, nil
}

func (d *distinctIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		row, err := d.child.Next(ctx)
		if err != nil {
			return sql.Row{}, err
		}
		if !d.primed {
			d.cols = row.Columns()
			d.primed = true
		}
		key := row.Values(d.cols)
		dup := false
		for _, prior := range d.seen {
			if sql.RowEqual(prior, key) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		d.seen = append(d.seen, key)
		return row, nil
	}
}

func (d *distinctIter) Close(ctx *sql.Context) error { return d.child.Close(ctx) }
