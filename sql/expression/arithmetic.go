package expression

import (
	"github.com/vtabledb/fedsql/sql"
)

// Arithmetic implements +, -, *, /, % and ||.
// NULL propagates for every operand except the divide/modulo-by-zero rule,
// which yields NULL rather than an error.
type Arithmetic struct {
	BinaryBase
	Op sql.BinaryOp
}

// NewArithmetic builds an Arithmetic node.
func NewArithmetic(op sql.BinaryOp, left, right sql.Expression) *Arithmetic {
	return &Arithmetic{BinaryBase: BinaryBase{Left: left, Right: right}, Op: op}
}

// Eval implements sql.Expression.
func (a *Arithmetic) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	l, err := a.Left.Eval(ctx, row)
	if err != nil {
		return sql.Null, err
	}
	r, err := a.Right.Eval(ctx, row)
	if err != nil {
		return sql.Null, err
	}

	if a.Op == sql.OpConcat {
		if l.IsNull() || r.IsNull() {
			return sql.Null, nil
		}
		return sql.NewText(l.String() + r.String()), nil
	}

	if l.IsNull() || r.IsNull() {
		return sql.Null, nil
	}

	useFloat := l.Kind() == sql.KindFloat || r.Kind() == sql.KindFloat
	switch a.Op {
	case sql.OpPlus:
		if useFloat {
			return sql.NewFloat(l.AsFloat64() + r.AsFloat64()), nil
		}
		return sql.NewInt(l.Int() + r.Int()), nil
	case sql.OpMinus:
		if useFloat {
			return sql.NewFloat(l.AsFloat64() - r.AsFloat64()), nil
		}
		return sql.NewInt(l.Int() - r.Int()), nil
	case sql.OpMul:
		if useFloat {
			return sql.NewFloat(l.AsFloat64() * r.AsFloat64()), nil
		}
		return sql.NewInt(l.Int() * r.Int()), nil
	case sql.OpDiv:
		if r.AsFloat64() == 0 {
			return sql.Null, nil
		}
		return sql.NewFloat(l.AsFloat64() / r.AsFloat64()), nil
	case sql.OpMod:
		if r.AsFloat64() == 0 {
			return sql.Null, nil
		}
		if useFloat {
			lf, rf := l.AsFloat64(), r.AsFloat64()
			q := float64(int64(lf / rf))
			return sql.NewFloat(lf - q*rf), nil
		}
		return sql.NewInt(l.Int() % r.Int()), nil
	default:
		return sql.Null, sql.ErrUnsupportedOperator.New(a.Op.String())
	}
}

// WithChildren implements sql.Expression.
func (a *Arithmetic) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	l, r, err := twoChildren(children)
	if err != nil {
		return nil, err
	}
	return NewArithmetic(a.Op, l, r), nil
}

// String implements sql.Expression.
func (a *Arithmetic) String() string {
	return "(" + a.Left.String() + " " + a.Op.String() + " " + a.Right.String() + ")"
}
