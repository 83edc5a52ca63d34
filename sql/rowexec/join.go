package rowexec

import (
	"io"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression"
	"github.com/vtabledb/fedsql/sql/plan"
)

// crossJoinIter materializes the right side once and re-scans it for each
// left row; correct for arbitrary predicates (the executor picks a
// hash-join plan instead when it detects an equi-join condition it can
// exploit).
type crossJoinIter struct {
	ctx       *sql.Context
	left      sql.RowIter
	rightRows []sql.Row
	on        sql.Expression // nil for a plain CROSS JOIN
	leftRow   sql.Row
	rightPos  int
}

func materializeRight(ctx *sql.Context, n plan.Node) ([]sql.Row, error) {
	iter, err := Build(ctx, n)
	if err != nil {
		return nil, err
	}
	return sql.RowIterToRows(ctx, iter)
}

func buildCrossJoin(ctx *sql.Context, n *plan.CrossJoin) (sql.RowIter, error) {
	defer span(ctx, "CrossJoin")()
	left, err := Build(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := materializeRight(ctx, n.Right)
	if err != nil {
		return nil, err
	}
	return &crossJoinIter{ctx: ctx, left: left, rightRows: right, rightPos: len(right)}, nil
}

func (j *crossJoinIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		if err := ctx.CheckDeadline(); err != nil {
			return sql.Row{}, err
		}
		if j.rightPos >= len(j.rightRows) {
			row, err := j.left.Next(ctx)
			if err != nil {
				return sql.Row{}, err
			}
			j.leftRow = row
			j.rightPos = 0
		}
		if len(j.rightRows) == 0 {
			// left row contributes nothing against an empty right side.
			_, err := j.left.Next(ctx)
			if err != nil {
				return sql.Row{}, err
			}
			continue
		}
		rightRow := j.rightRows[j.rightPos]
		j.rightPos++
		combined := j.leftRow.Merge(rightRow)
		if j.on != nil {
			keep, err := sql.EvalBool(ctx, j.on, combined)
			if err != nil {
				return sql.Row{}, err
			}
			if !keep.Bool() {
				continue
			}
		}
		return combined, nil
	}
}

func (j *crossJoinIter) Close(ctx *sql.Context) error { return j.left.Close(ctx) }

func buildInnerJoin(ctx *sql.Context, n *plan.InnerJoin) (sql.RowIter, error) {
	defer span(ctx, "InnerJoin")()
	left, err := Build(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := materializeRight(ctx, n.Right)
	if err != nil {
		return nil, err
	}
	if leftKey, rightKey, ok := equiJoinKeys(ctx, n.On, right); ok {
		return buildHashJoin(ctx, left, right, leftKey, rightKey, n.On), nil
	}
	return &crossJoinIter{ctx: ctx, left: left, rightRows: right, rightPos: len(right), on: n.On}, nil
}

// equiJoinKeys detects the "equi-join conjuncts of the form
// a.col1 = b.col2" shape: on is a single "=" comparison whose right
// operand is fully resolvable using only rightRows' columns. Anything
// else (a non-equality predicate, an operand mixing both sides' columns)
// falls back to nested-loop evaluation in crossJoinIter.
func equiJoinKeys(ctx *sql.Context, on sql.Expression, rightRows []sql.Row) (leftKey, rightKey sql.Expression, ok bool) {
	cmp, isCmp := on.(*expression.Comparison)
	if !isCmp || cmp.Op != sql.OpEq {
		return nil, nil, false
	}
	var rightCols []string
	if len(rightRows) > 0 {
		rightCols = rightRows[0].Columns()
	}
	probe := nullRow(rightCols)
	if resolvableFrom(ctx, cmp.Right, probe) && !resolvableFrom(ctx, cmp.Left, probe) {
		return cmp.Left, cmp.Right, true
	}
	if resolvableFrom(ctx, cmp.Left, probe) && !resolvableFrom(ctx, cmp.Right, probe) {
		return cmp.Right, cmp.Left, true
	}
	return nil, nil, false
}

func resolvableFrom(ctx *sql.Context, expr sql.Expression, probe sql.Row) bool {
	_, err := expr.Eval(ctx, probe)
	return err == nil
}

// hashJoinIter builds a hash map keyed by the inner (right) side's join
// column and probes it from the outer (left) stream, used in place of
// crossJoinIter whenever equiJoinKeys recognizes an equality condition.
type hashJoinIter struct {
	ctx       *sql.Context
	left      sql.RowIter
	index     map[string][]sql.Row
	leftKey   sql.Expression
	on        sql.Expression
	bucket    []sql.Row
	bucketPos int
	leftRow   sql.Row
}

func buildHashJoin(ctx *sql.Context, left sql.RowIter, rightRows []sql.Row, leftKeyExpr, rightKeyExpr sql.Expression, on sql.Expression) sql.RowIter {
	index := map[string][]sql.Row{}
	for _, r := range rightRows {
		k, err := rightKeyExpr.Eval(ctx, r)
		if err != nil {
			continue
		}
		index[k.String()] = append(index[k.String()], r)
	}
	return &hashJoinIter{ctx: ctx, left: left, index: index, leftKey: leftKeyExpr, on: on}
}

func (h *hashJoinIter) Next(ctx *sql.Context) (sql.Row, error) {
	for {
		if h.bucketPos >= len(h.bucket) {
			row, err := h.left.Next(ctx)
			if err != nil {
				return sql.Row{}, err
			}
			h.leftRow = row
			key, err := h.leftKey.Eval(ctx, row)
			if err != nil {
				return sql.Row{}, err
			}
			h.bucket = h.index[key.String()]
			h.bucketPos = 0
			continue
		}
		rightRow := h.bucket[h.bucketPos]
		h.bucketPos++
		combined := h.leftRow.Merge(rightRow)
		keep, err := sql.EvalBool(ctx, h.on, combined)
		if err != nil {
			return sql.Row{}, err
		}
		if keep.Bool() {
			return combined, nil
		}
	}
}

func (h *hashJoinIter) Close(ctx *sql.Context) error { return h.left.Close(ctx) }

// outerJoinIter wraps an inner-join-shaped scan, padding in a Null-filled
// row for the preserved side whenever a left row (LEFT/FULL) or right row
// (RIGHT/FULL) never matched: unmatched rows get the other side's
// columns set to Null.
type outerJoinIter struct {
	ctx           *sql.Context
	leftRows      []sql.Row
	rightRows     []sql.Row
	on            sql.Expression
	leftCols      []string
	rightCols     []string
	leftMatched   []bool
	rightMatched  []bool
	pairs         []sql.Row
	pos           int
	preserveLeft  bool
	preserveRight bool
}

func newOuterJoinIter(ctx *sql.Context, left, right plan.Node, on sql.Expression, preserveLeft, preserveRight bool) (*outerJoinIter, error) {
	leftIter, err := Build(ctx, left)
	if err != nil {
		return nil, err
	}
	leftRows, err := sql.RowIterToRows(ctx, leftIter)
	if err != nil {
		return nil, err
	}
	rightRows, err := materializeRight(ctx, right)
	if err != nil {
		return nil, err
	}

	var leftCols, rightCols []string
	if len(leftRows) > 0 {
		leftCols = leftRows[0].Columns()
	}
	if len(rightRows) > 0 {
		rightCols = rightRows[0].Columns()
	}

	j := &outerJoinIter{
		ctx: ctx, leftRows: leftRows, rightRows: rightRows, on: on,
		leftCols: leftCols, rightCols: rightCols,
		leftMatched:  make([]bool, len(leftRows)),
		rightMatched: make([]bool, len(rightRows)),
		preserveLeft: preserveLeft, preserveRight: preserveRight,
	}
	for li, lr := range leftRows {
		for ri, rr := range rightRows {
			combined := lr.Merge(rr)
			keep, err := sql.EvalBool(ctx, on, combined)
			if err != nil {
				return nil, err
			}
			if keep.Bool() {
				j.leftMatched[li] = true
				j.rightMatched[ri] = true
				j.pairs = append(j.pairs, combined)
			}
		}
	}
	if preserveLeft {
		for li, lr := range leftRows {
			if !j.leftMatched[li] {
				j.pairs = append(j.pairs, lr.Merge(nullRow(rightCols)))
			}
		}
	}
	if preserveRight {
		for ri, rr := range rightRows {
			if !j.rightMatched[ri] {
				j.pairs = append(j.pairs, nullRow(leftCols).Merge(rr))
			}
		}
	}
	return j, nil
}

func nullRow(cols []string) sql.Row {
	r := sql.NewRow()
	for _, c := range cols {
		r.Set(c, sql.Null)
	}
	return r
}

func (j *outerJoinIter) Next(ctx *sql.Context) (sql.Row, error) {
	if j.pos >= len(j.pairs) {
		return sql.Row{}, io.EOF
	}
	row := j.pairs[j.pos]
	j.pos++
	return row, nil
}

func (j *outerJoinIter) Close(ctx *sql.Context) error { return nil }

func buildLeftJoin(ctx *sql.Context, n *plan.LeftJoin) (sql.RowIter, error) {
	defer span(ctx, "LeftJoin")()
	return newOuterJoinIter(ctx, n.Left, n.Right, n.On, true, false)
}

func buildRightJoin(ctx *sql.Context, n *plan.RightJoin) (sql.RowIter, error) {
	defer span(ctx, "RightJoin")()
	return newOuterJoinIter(ctx, n.Left, n.Right, n.On, false, true)
}

func buildFullJoin(ctx *sql.Context, n *plan.FullJoin) (sql.RowIter, error) {
	defer span(ctx, "FullJoin")()
	return newOuterJoinIter(ctx, n.Left, n.Right, n.On, true, true)
}
