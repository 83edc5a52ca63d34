package executor

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression"
	"github.com/vtabledb/fedsql/sql/expression/aggregation"
	"github.com/vtabledb/fedsql/sql/plan"
	"github.com/vtabledb/fedsql/sql/rewrite"
	"github.com/vtabledb/fedsql/sql/rowexec"
)

// build compiles stmt into a plan.Node, threading registry (already
// overlaid with any enclosing CTEs) through FROM resolution. It implements
// the full stage order, including the SetOp/ORDER BY/OFFSET/
// LIMIT stages that sit outside a single SELECT's "core" (stages 2-6, 8).
func (e *Executor) build(ctx *sql.Context, stmt *sql.SelectStatement, registry sql.Registry) (plan.Node, error) {
	reg := registry
	for _, cte := range stmt.CTEs {
		src, err := e.materializeCTE(ctx, cte, reg)
		if err != nil {
			return nil, err
		}
		reg = overlayRegistry{base: reg, name: cte.Name, src: src}
	}

	core, err := e.buildCore(ctx, stmt, reg)
	if err != nil {
		return nil, err
	}

	if stmt.SetOp != nil {
		right, err := e.build(ctx, stmt.SetOpRight, reg)
		if err != nil {
			return nil, err
		}
		core = plan.NewSetOp(core, right, *stmt.SetOp, stmt.SetOpAll)
	}

	if len(stmt.OrderBy) > 0 {
		core = plan.NewSort(core, stmt.OrderBy)
	}
	if stmt.Offset != nil {
		core = plan.NewOffset(core, *stmt.Offset)
	}
	if stmt.Limit != nil {
		core = plan.NewLimit(core, *stmt.Limit)
	}
	return core, nil
}

// buildCore implements stages 2-6 and 8: FROM composition
// through SELECT projection, plus window functions, stopping short of set
// operations and the final ORDER BY/OFFSET/LIMIT (those combine two
// cores, in build above).
func (e *Executor) buildCore(ctx *sql.Context, stmt *sql.SelectStatement, registry sql.Registry) (plan.Node, error) {
	node, where, err := e.buildFrom(ctx, stmt, registry)
	if err != nil {
		return nil, err
	}

	if where != nil {
		rewritten, err := rewrite.Rewrite(where)
		if err != nil {
			return nil, err
		}
		node = plan.NewFilter(node, rewritten)
	}

	items := append([]sql.SelectItem(nil), stmt.SelectList...)

	if hasAggregate(items) || len(stmt.GroupBy) > 0 {
		var having sql.Expression
		if stmt.Having != nil {
			rewritten, err := rewrite.Rewrite(stmt.Having)
			if err != nil {
				return nil, err
			}
			having = rewritten
		}
		node = plan.NewGroupBy(node, stmt.GroupBy, items, having)
		// GroupBy's own output row already carries each item's alias (or
		// its String() fallback), so no further projection is needed: its
		// output row shape IS the select list.
		if stmt.Distinct {
			node = plan.NewDistinct(node)
		}
		return node, nil
	}

	windowFuncs, boundItems := bindWindowFuncs(items)
	if len(windowFuncs) > 0 {
		node = plan.NewWindow(node, windowFuncs)
	}
	node = plan.NewProject(node, boundItems)
	if stmt.Distinct {
		node = plan.NewDistinct(node)
	}
	return node, nil
}

// bindWindowFuncs binds each WindowRef select item to its output alias
// (falling back to the expression's own rendering, same rule
// rowexec.ProjectRow uses for ordinary expressions) and extracts the
// plan.WindowFunc list the Window stage needs to compute ahead of
// projection.
func bindWindowFuncs(items []sql.SelectItem) ([]plan.WindowFunc, []sql.SelectItem) {
	out := append([]sql.SelectItem(nil), items...)
	var funcs []plan.WindowFunc
	for i, item := range out {
		wr, ok := item.Expr.(*expression.WindowRef)
		if !ok {
			continue
		}
		alias := item.Alias
		if alias == "" {
			alias = item.Expr.String()
		}
		bound := *wr
		bound.Alias = alias
		out[i].Expr = &bound
		out[i].Alias = alias
		funcs = append(funcs, plan.WindowFunc{Kind: bound.Kind, PartitionBy: bound.PartitionBy, OrderBy: bound.OrderBy, Alias: alias})
	}
	return funcs, out
}

func hasAggregate(items []sql.SelectItem) bool {
	found := false
	for _, item := range items {
		if item.Expr == nil {
			continue
		}
		sql.Walk(func(e sql.Expression) bool {
			if found {
				return false
			}
			if _, ok := e.(aggregation.Aggregation); ok {
				found = true
				return false
			}
			return true
		}, item.Expr)
		if found {
			break
		}
	}
	return found
}

// buildFrom implements (FROM composition), returning the
// residual predicate the caller must still apply as a Filter: for a
// single table or an explicit join chain this is simply stmt.Where
// unchanged; for a comma-joined list it is whatever predicate pushdown
// (below) could not push into a table source or use as a join hint.
func (e *Executor) buildFrom(ctx *sql.Context, stmt *sql.SelectStatement, registry sql.Registry) (plan.Node, sql.Expression, error) {
	if stmt.From == nil && len(stmt.CommaFrom) == 0 {
		return plan.NewResolvedTable(oneRowSource{}), stmt.Where, nil
	}

	if len(stmt.CommaFrom) > 0 {
		return e.buildCommaJoin(ctx, stmt, registry)
	}

	node, err := e.resolveTableRef(ctx, *stmt.From, registry)
	if err != nil {
		return nil, nil, err
	}
	for _, j := range stmt.Joins {
		right, err := e.resolveTableRef(ctx, j.Right, registry)
		if err != nil {
			return nil, nil, err
		}
		var on sql.Expression
		if j.On != nil {
			on, err = rewrite.Rewrite(j.On)
			if err != nil {
				return nil, nil, err
			}
		}
		switch j.Kind {
		case sql.CrossJoin:
			node = plan.NewCrossJoin(node, right)
		case sql.InnerJoin:
			node = plan.NewInnerJoin(node, right, on)
		case sql.LeftJoin:
			node = plan.NewLeftJoin(node, right, on)
		case sql.RightJoin:
			node = plan.NewRightJoin(node, right, on)
		case sql.FullJoin:
			node = plan.NewFullJoin(node, right, on)
		default:
			return nil, nil, fmt.Errorf("unhandled join kind %v", j.Kind)
		}
	}
	return node, stmt.Where, nil
}

// buildCommaJoin implements predicate pushdown over an implicit
// comma-joined FROM list: single-table conjuncts of WHERE are
// pushed into the matching table's FilterPushdown facet, two-table
// equi-join conjuncts become join hints composed as InnerJoin (itself
// preferring a hash join, rowexec/join.go), and anything left over is
// returned as the residual filter for buildCore to apply on top.
func (e *Executor) buildCommaJoin(ctx *sql.Context, stmt *sql.SelectStatement, registry sql.Registry) (plan.Node, sql.Expression, error) {
	refs := stmt.CommaFrom
	maxTables := e.cfg.MaxCommaJoinTables
	if maxTables == 0 {
		maxTables = 4
	}
	if len(refs) > maxTables {
		return nil, nil, sql.ErrCommaJoinTooManyTables.New(len(refs), maxTables)
	}

	names := make([]string, len(refs))
	nodes := make([]plan.Node, len(refs))
	for i, ref := range refs {
		names[i] = ref.EffectiveName()
		node, err := e.resolveTableRef(ctx, ref, registry)
		if err != nil {
			return nil, nil, err
		}
		nodes[i] = node
	}

	var conjuncts []sql.Expression
	if stmt.Where != nil {
		rewritten, err := rewrite.Rewrite(stmt.Where)
		if err != nil {
			return nil, nil, err
		}
		conjuncts = flattenAnd(rewritten)
	}

	// Push single-table conjuncts into the owning table's FilterPushdown
	// facet, carrying forward any residual the facet itself couldn't
	// absorb.
	var residual []sql.Expression
	var joinHints []sql.Expression
	for _, c := range conjuncts {
		refd := referencedTables(c, names)
		switch len(refd) {
		case 1:
			idx := indexOf(names, refd[0])
			if applied, leftover, ok, err := pushFilterInto(ctx, nodes[idx], c); err != nil {
				return nil, nil, err
			} else if ok {
				nodes[idx] = applied
				if leftover != nil {
					residual = append(residual, leftover)
				}
				continue
			}
			residual = append(residual, c)
		case 2:
			if cmp, ok := c.(*expression.Comparison); ok && cmp.Op == sql.OpEq {
				joinHints = append(joinHints, c)
				continue
			}
			residual = append(residual, c)
		default:
			residual = append(residual, c)
		}
	}

	// Compose the cross product in FROM order, using a matching join hint
	// (if the next table connects to anything already composed) as an
	// InnerJoin predicate.
	composed := nodes[0]
	composedNames := []string{names[0]}
	for i := 1; i < len(nodes); i++ {
		var on sql.Expression
		var used int = -1
		for hi, hint := range joinHints {
			refd := referencedTables(hint, names)
			if len(refd) != 2 {
				continue
			}
			if (refd[0] == names[i] && contains(composedNames, refd[1])) ||
				(refd[1] == names[i] && contains(composedNames, refd[0])) {
				on = hint
				used = hi
				break
			}
		}
		if on != nil {
			composed = plan.NewInnerJoin(composed, nodes[i], on)
			joinHints = append(joinHints[:used], joinHints[used+1:]...)
		} else {
			composed = plan.NewCrossJoin(composed, nodes[i])
		}
		composedNames = append(composedNames, names[i])
	}

	// Any join hints left unconsumed (e.g. a three-table cycle) fall back
	// into the residual filter; applying a true equality again is harmless.
	residual = append(residual, joinHints...)

	var out sql.Expression
	if len(residual) > 0 {
		out = residual[0]
		for _, r := range residual[1:] {
			out = expression.NewAnd(out, r)
		}
	}
	return composed, out, nil
}

// pushFilterInto tries to push filter into node's underlying ResolvedTable,
// unwrapping a TableAlias wrapper first since an aliased comma-join entry
// is still a single physical source. ok is false when node has no
// FilterPushdown facet to push into at all.
func pushFilterInto(ctx *sql.Context, node plan.Node, filter sql.Expression) (plan.Node, sql.Expression, bool, error) {
	if alias, isAlias := node.(*plan.TableAlias); isAlias {
		applied, leftover, ok, err := pushFilterInto(ctx, alias.Child, filter)
		if !ok || err != nil {
			return node, nil, ok, err
		}
		return plan.NewTableAlias(applied, alias.Alias), leftover, true, nil
	}
	rt, ok := node.(*plan.ResolvedTable)
	if !ok {
		return node, nil, false, nil
	}
	fp, isFP := rt.Source.(sql.FilterPushdown)
	if !isFP {
		return node, nil, false, nil
	}
	newSrc, leftover, err := fp.TryApplyFilter(ctx, filter)
	if err != nil {
		return node, nil, true, err
	}
	return plan.NewResolvedTable(newSrc), leftover, true, nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func contains(names []string, name string) bool {
	return indexOf(names, name) >= 0
}

// flattenAnd splits e along top-level AND so each conjunct can be
// classified and pushed independently.
func flattenAnd(e sql.Expression) []sql.Expression {
	if and, ok := e.(*expression.And); ok {
		return append(flattenAnd(and.Left), flattenAnd(and.Right)...)
	}
	return []sql.Expression{e}
}

// referencedTables returns which of names a conjunct's identifiers
// attribute to, via each Identifier's qualifier part. An unqualified
// identifier can't be attributed to a single table here (no schema/binder
// layer to disambiguate it) and is reported as "?", which never matches a
// real table name, so the conjunct safely falls through to the residual.
func referencedTables(e sql.Expression, names []string) []string {
	seen := map[string]bool{}
	var order []string
	sql.Walk(func(x sql.Expression) bool {
		id, ok := x.(*expression.Identifier)
		if !ok {
			return true
		}
		table := "?"
		if len(id.Parts) >= 2 {
			table = id.Parts[len(id.Parts)-2]
		}
		if !seen[table] {
			seen[table] = true
			order = append(order, table)
		}
		return true
	}, e)
	return order
}

// resolveTableRef resolves one FROM-list entry: a base/CTE table name
// looked up in registry, or a derived-table subquery built recursively
// and wrapped in a SubqueryAlias.
func (e *Executor) resolveTableRef(ctx *sql.Context, ref sql.TableRef, registry sql.Registry) (plan.Node, error) {
	if ref.Subquery != nil {
		sub, err := e.build(ctx, ref.Subquery, registry)
		if err != nil {
			return nil, err
		}
		return plan.NewSubqueryAlias(sub, ref.EffectiveName()), nil
	}
	source, ok := registry.Resolve(ref.Name)
	if !ok {
		return nil, fmt.Errorf("unknown table: %s", e.cfg.Dialect.QuoteIdent(ref.Name))
	}
	var node plan.Node = plan.NewResolvedTable(source)
	if ref.Alias != "" {
		node = plan.NewTableAlias(node, ref.Alias)
	}
	return node, nil
}

// materializeCTE drains a single CTE's result set (running its own
// fixpoint round loop first if it is RECURSIVE) and wraps it as a
// TableSource under the CTE's name.
func (e *Executor) materializeCTE(ctx *sql.Context, cte sql.CTE, registry sql.Registry) (sql.TableSource, error) {
	if !cte.Recursive {
		node, err := e.build(ctx, cte.Query, registry)
		if err != nil {
			return nil, err
		}
		rows, err := e.drain(ctx, node)
		if err != nil {
			return nil, err
		}
		return newMaterializedTable(cte.Name, rows), nil
	}

	anchor, err := e.build(ctx, cte.Query, registry)
	if err != nil {
		return nil, err
	}

	working := &[]sql.Row{}
	recRegistry := overlayRegistry{base: registry, name: cte.Name, src: &selfTable{name: cte.Name, working: working}}
	recursive, err := e.build(ctx, cte.RecursiveStep, recRegistry)
	if err != nil {
		return nil, err
	}

	top := plan.NewRecursiveCTE(cte.Name, anchor, recursive, working)
	rows, err := e.drain(ctx, top)
	if err != nil {
		return nil, err
	}
	return newMaterializedTable(cte.Name, rows), nil
}

func (e *Executor) drain(ctx *sql.Context, node plan.Node) ([]sql.Row, error) {
	iter, err := rowexec.Build(ctx, node)
	if err != nil {
		return nil, err
	}
	return sql.RowIterToRows(ctx, iter)
}
