package sql

// Expression is the interface every AST expression node implements,
// modeled on go-mysql-server's sql.Expression: evaluation dispatches on
// the concrete type rather than on a tag field.
type Expression interface {
	// Eval evaluates the expression against a row and the outer-context
	// carried by ctx.
	Eval(ctx *Context, row Row) (Value, error)
	// Children returns the expression's direct subexpressions, in a fixed
	// order, for Walk/rewrite.
	Children() []Expression
	// WithChildren returns a copy of the expression with its children
	// replaced; len(children) must equal len(Children()).
	WithChildren(children ...Expression) (Expression, error)
	// String renders the expression for diagnostics and error messages.
	String() string
}

// BoolExpression is implemented by expression nodes with native
// three-valued semantics (comparisons, AND/OR, IS NULL, BETWEEN, IN, LIKE,
// EXISTS...). The rewriter and the WHERE/HAVING/ON boundary use EvalBool in
// preference to Eval+TritOf so that Unknown survives explicitly instead of
// round-tripping through a generic Value.
type BoolExpression interface {
	Expression
	EvalBool(ctx *Context, row Row) (Trit, error)
}

// EvalBool evaluates any expression in a boolean context: BoolExpression
// nodes get their native three-valued semantics, everything else falls
// back to Eval+TritOf.
func EvalBool(ctx *Context, e Expression, row Row) (Trit, error) {
	if b, ok := e.(BoolExpression); ok {
		return b.EvalBool(ctx, row)
	}
	v, err := e.Eval(ctx, row)
	if err != nil {
		return Unknown, err
	}
	return TritOf(v), nil
}

// Walk visits every node of the expression tree in pre-order, calling fn on
// each. If fn returns false, Walk does not descend into that node's
// children. Mirrors go-mysql-server's sql/expression Walk convention.
func Walk(fn func(Expression) bool, e Expression) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range e.Children() {
		Walk(fn, c)
	}
}

// TransformUp rebuilds the expression tree bottom-up, applying fn to every
// node after its children have already been transformed. Mirrors
// go-mysql-server's sql/transform.TransformUp convention.
func TransformUp(e Expression, fn func(Expression) (Expression, error)) (Expression, error) {
	if e == nil {
		return e, nil
	}
	children := e.Children()
	if len(children) > 0 {
		newChildren := make([]Expression, len(children))
		for i, c := range children {
			nc, err := TransformUp(c, fn)
			if err != nil {
				return nil, err
			}
			newChildren[i] = nc
		}
		var err error
		e, err = e.WithChildren(newChildren...)
		if err != nil {
			return nil, err
		}
	}
	return fn(e)
}

// BinaryOp tags the operator of a Binary node.
type BinaryOp uint8

const (
	OpEq BinaryOp = iota
	OpNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpPlus
	OpMinus
	OpMul
	OpDiv
	OpMod
	OpConcat
	OpAnd
	OpOr
)

// String renders the operator's SQL spelling.
func (op BinaryOp) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNotEq:
		return "<>"
	case OpLt:
		return "<"
	case OpLtEq:
		return "<="
	case OpGt:
		return ">"
	case OpGtEq:
		return ">="
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpConcat:
		return "||"
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return "?"
	}
}

// Flip returns the comparison operator that negates this one for the
// rewriter's "NOT (a CMP b)" rule. Only valid for
// comparison operators.
func (op BinaryOp) Flip() BinaryOp {
	switch op {
	case OpEq:
		return OpNotEq
	case OpNotEq:
		return OpEq
	case OpLt:
		return OpGtEq
	case OpLtEq:
		return OpGt
	case OpGt:
		return OpLtEq
	case OpGtEq:
		return OpLt
	default:
		return op
	}
}

// IsComparison reports whether op is one of {=,<>,<,<=,>,>=}.
func (op BinaryOp) IsComparison() bool {
	return op >= OpEq && op <= OpGtEq
}
