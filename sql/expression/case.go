package expression

import (
	"fmt"

	"github.com/vtabledb/fedsql/sql"
)

// CaseBranch is one WHEN/THEN pair of a CaseWhen node.
type CaseBranch struct {
	When, Then sql.Expression
}

// CaseWhen implements CASE ... END. Simple form
// (Operand != nil) compares Operand to each branch's When using loose
// equality; searched form (Operand == nil) evaluates each When as boolean.
// Returns the first matching Then; Else (or NULL) if none match.
type CaseWhen struct {
	Operand  sql.Expression // nil for the searched form
	Branches []CaseBranch
	Else     sql.Expression // nil if absent
}

// NewCaseWhen builds a CaseWhen node.
func NewCaseWhen(operand sql.Expression, branches []CaseBranch, els sql.Expression) *CaseWhen {
	return &CaseWhen{Operand: operand, Branches: branches, Else: els}
}

// Eval implements sql.Expression.
func (c *CaseWhen) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	var operandVal sql.Value
	if c.Operand != nil {
		v, err := c.Operand.Eval(ctx, row)
		if err != nil {
			return sql.Null, err
		}
		operandVal = v
	}

	for _, branch := range c.Branches {
		if c.Operand != nil {
			whenVal, err := branch.When.Eval(ctx, row)
			if err != nil {
				return sql.Null, err
			}
			if !operandVal.IsNull() && !whenVal.IsNull() && sql.LooseEqual(operandVal, whenVal) {
				return branch.Then.Eval(ctx, row)
			}
			continue
		}
		t, err := sql.EvalBool(ctx, branch.When, row)
		if err != nil {
			return sql.Null, err
		}
		if t == sql.True {
			return branch.Then.Eval(ctx, row)
		}
	}
	if c.Else != nil {
		return c.Else.Eval(ctx, row)
	}
	return sql.Null, nil
}

// Children implements sql.Expression: operand (if any), then each
// when/then pair, then else (if any), in a fixed flattened order so
// WithChildren can rebuild exactly.
func (c *CaseWhen) Children() []sql.Expression {
	var out []sql.Expression
	if c.Operand != nil {
		out = append(out, c.Operand)
	}
	for _, b := range c.Branches {
		out = append(out, b.When, b.Then)
	}
	if c.Else != nil {
		out = append(out, c.Else)
	}
	return out
}

// WithChildren implements sql.Expression.
func (c *CaseWhen) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	idx := 0
	var operand sql.Expression
	if c.Operand != nil {
		operand = children[idx]
		idx++
	}
	branches := make([]CaseBranch, len(c.Branches))
	for i := range c.Branches {
		branches[i] = CaseBranch{When: children[idx], Then: children[idx+1]}
		idx += 2
	}
	var els sql.Expression
	if c.Else != nil {
		els = children[idx]
		idx++
	}
	if idx != len(children) {
		return nil, fmt.Errorf("case: expected %d children, got %d", idx, len(children))
	}
	return NewCaseWhen(operand, branches, els), nil
}

// String implements sql.Expression.
func (c *CaseWhen) String() string {
	s := "CASE"
	if c.Operand != nil {
		s += " " + c.Operand.String()
	}
	for _, b := range c.Branches {
		s += fmt.Sprintf(" WHEN %s THEN %s", b.When, b.Then)
	}
	if c.Else != nil {
		s += " ELSE " + c.Else.String()
	}
	return s + " END"
}
