package sql

// Trit is the three-valued boolean domain SQL predicates evaluate to:
// True, False, Unknown. It is distinct from a generic Null Value so the
// evaluator never has to special-case "is this NULL acting as a boolean"
// at every call site.
type Trit uint8

const (
	False Trit = iota
	True
	Unknown
)

// BoolTrit converts a plain bool to the corresponding Trit.
func BoolTrit(b bool) Trit {
	if b {
		return True
	}
	return False
}

// Not implements SQL NOT over the three-valued domain.
func (t Trit) Not() Trit {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// And implements the short-circuit-aware AND truth table.
func (t Trit) And(other Trit) Trit {
	if t == False || other == False {
		return False
	}
	if t == True && other == True {
		return True
	}
	return Unknown
}

// Or implements the short-circuit-aware OR truth table.
func (t Trit) Or(other Trit) Trit {
	if t == True || other == True {
		return True
	}
	if t == False && other == False {
		return False
	}
	return Unknown
}

// Bool collapses Unknown to false — the row-inclusion boundary rule used by
// WHERE/HAVING/ON.
func (t Trit) Bool() bool { return t == True }

// ToValue converts the Trit back into a generic boolean Value, with Unknown
// represented as Null (used when a boolean subexpression is nested inside a
// non-boolean context, e.g. SELECT (a = b)).
func (t Trit) ToValue() Value {
	switch t {
	case True:
		return NewBool(true)
	case False:
		return NewBool(false)
	default:
		return Null
	}
}

// TritOf converts a generic Value used in a boolean context into a Trit:
// Null becomes Unknown, any other value is truthy/falsy by its Bool().
func TritOf(v Value) Trit {
	if v.IsNull() {
		return Unknown
	}
	if v.Kind() == KindBool {
		return BoolTrit(v.Bool())
	}
	// Non-boolean scalar used as a predicate (rare, but permitted): a
	// non-zero number is truthy, and any other value is truthy when its
	// text rendering is non-empty (so the text "0" is truthy).
	switch v.Kind() {
	case KindInt:
		return BoolTrit(v.Int() != 0)
	case KindFloat:
		return BoolTrit(v.Float() != 0)
	default:
		return BoolTrit(v.String() != "")
	}
}
