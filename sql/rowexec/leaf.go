package rowexec

import (
	"strings"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/plan"
)

func buildResolvedTable(ctx *sql.Context, n *plan.ResolvedTable) (sql.RowIter, error) {
	defer span(ctx, "ResolvedTable")()
	iter, err := n.Source.Iterate(ctx)
	if err != nil {
		return nil, err
	}
	return &qualifyIter{child: iter, qualifier: n.Source.Name()}, nil
}

func buildTableAlias(ctx *sql.Context, n *plan.TableAlias) (sql.RowIter, error) {
	defer span(ctx, "TableAlias")()
	child, err := Build(ctx, n.Child)
	if err != nil {
		return nil, err
	}
	return &qualifyIter{child: child, qualifier: n.Alias}, nil
}

func buildSubqueryAlias(ctx *sql.Context, n *plan.SubqueryAlias) (sql.RowIter, error) {
	defer span(ctx, "SubqueryAlias")()
	child, err := Build(ctx, n.Child)
	if err != nil {
		return nil, err
	}
	return &qualifyIter{child: child, qualifier: n.Alias}, nil
}

// qualifyIter adds "<qualifier>.col" keys alongside every unqualified key
// already on a row, so a table reached through an alias resolves under
// both its own name (or an outer alias layered on top) and the new one —
// the Row invariant's "inner-most wins" rule means layering never loses a
// binding, only adds more ways to reach it.
type qualifyIter struct {
	child     sql.RowIter
	qualifier string
}

func (q *qualifyIter) Next(ctx *sql.Context) (sql.Row, error) {
	row, err := q.child.Next(ctx)
	if err != nil {
		return sql.Row{}, err
	}
	return qualifyRow(row, q.qualifier), nil
}

func (q *qualifyIter) Close(ctx *sql.Context) error { return q.child.Close(ctx) }

func qualifyRow(row sql.Row, qualifier string) sql.Row {
	out := sql.NewRow()
	for _, c := range row.Columns() {
		v, _ := row.Get(c)
		out.Set(c, v)
	}
	for _, c := range row.Columns() {
		if strings.Contains(c, ".") {
			continue
		}
		v, _ := row.Get(c)
		out.Set(qualifier+"."+c, v)
	}
	return out
}
