package rowexec

import (
	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/plan"
)

// buildRecursiveCTE executes Anchor once, then repeatedly rebuilds
// Recursive against the accumulated working set until a round contributes
// no rows not already in the accumulated result, using row-equality to
// detect novelty.
// Recursive's FROM clause referencing the CTE's own name must already be
// bound by the executor (once, before this builder runs) to a table
// source that reads through n.Working; this builder rewrites *n.Working
// with the accumulated rows before each round and calls back into Build
// for each round's plan.
func buildRecursiveCTE(ctx *sql.Context, n *plan.RecursiveCTE) (sql.RowIter, error) {
	defer span(ctx, "RecursiveCTE")()

	anchorIter, err := Build(ctx, n.Anchor)
	if err != nil {
		return nil, err
	}
	accumulated, err := sql.RowIterToRows(ctx, anchorIter)
	if err != nil {
		return nil, err
	}

	var cols []string
	if len(accumulated) > 0 {
		cols = accumulated[0].Columns()
	}
	all := append([]sql.Row(nil), accumulated...)
	working := accumulated
	if n.Working != nil {
		*n.Working = all
	}

	const maxRounds = 10000 // fixpoint safety valve against a malformed recursive term
	for round := 0; len(working) > 0 && round < maxRounds; round++ {
		if err := ctx.CheckDeadline(); err != nil {
			return nil, err
		}
		recIter, err := Build(ctx, n.Recursive)
		if err != nil {
			return nil, err
		}
		produced, err := sql.RowIterToRows(ctx, recIter)
		if err != nil {
			return nil, err
		}

		var fresh []sql.Row
		for _, r := range produced {
			key := r.Values(cols)
			isNew := true
			for _, existing := range all {
				if sql.RowEqual(existing.Values(cols), key) {
					isNew = false
					break
				}
			}
			if isNew {
				fresh = append(fresh, r)
				all = append(all, r)
			}
		}
		working = fresh
		if n.Working != nil {
			*n.Working = all
		}
	}
	return sql.NewSliceIter(all), nil
}
