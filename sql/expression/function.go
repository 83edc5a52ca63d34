package expression

import (
	"fmt"
	"strings"

	"github.com/vtabledb/fedsql/sql"
	"github.com/vtabledb/fedsql/sql/expression/function"
)

// FunctionCall implements a scalar function invocation. Dispatch goes
// through sql/expression/function's registry; unknown names are an error.
type FunctionCall struct {
	NaryBase
	Name string
}

// NewFunctionCall builds a FunctionCall node.
func NewFunctionCall(name string, args []sql.Expression) *FunctionCall {
	return &FunctionCall{NaryBase: NaryBase{Args: args}, Name: name}
}

// Eval implements sql.Expression.
func (f *FunctionCall) Eval(ctx *sql.Context, row sql.Row) (sql.Value, error) {
	span := ctx.Span("function." + strings.ToUpper(f.Name))
	defer span.Finish()

	entry, ok := function.Resolve(f.Name)
	if !ok {
		return sql.Null, sql.ErrUnknownFunction.New(f.Name)
	}
	if len(f.Args) < entry.MinArgs || (entry.MaxArgs >= 0 && len(f.Args) > entry.MaxArgs) {
		return sql.Null, fmt.Errorf("function %s: wrong number of arguments (got %d)", f.Name, len(f.Args))
	}

	args := make([]sql.Value, len(f.Args))
	for i, a := range f.Args {
		v, err := a.Eval(ctx, row)
		if err != nil {
			return sql.Null, err
		}
		args[i] = v
	}
	return entry.Fn(args)
}

// WithChildren implements sql.Expression.
func (f *FunctionCall) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewFunctionCall(f.Name, children), nil
}

// String implements sql.Expression.
func (f *FunctionCall) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", strings.ToUpper(f.Name), strings.Join(parts, ", "))
}
