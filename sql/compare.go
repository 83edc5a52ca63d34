package sql

import (
	"strings"

	"github.com/spf13/cast"
)

// Ordering is the result of a strict comparison between two non-NULL values.
type Ordering int

const (
	Less Ordering = iota - 1
	Equal
	Greater
)

// orderClass buckets a value for the mixed-type total order: numeric
// sorts before text.
func orderClass(v Value) int {
	if v.IsNumeric() {
		return 0
	}
	return 1
}

// Compare implements SQL value ordering. Both
// operands must be non-NULL; NULL handling is the caller's responsibility
// (three-valued logic collapses any NULL operand to Unknown before this is
// reached, except where the operator explicitly special-cases NULL).
//
// Numeric values compare by magnitude across Int/Float. Text compares
// lexicographically. Mixed numeric/text comparisons use an
// implementation-defined but stable total order: numeric < text, then
// lexicographic within a class.
func Compare(a, b Value) Ordering {
	ca, cb := orderClass(a), orderClass(b)
	if ca != cb {
		if ca < cb {
			return Less
		}
		return Greater
	}

	if ca == 0 {
		// both numeric
		fa, fb := a.AsFloat64(), b.AsFloat64()
		switch {
		case fa < fb:
			return Less
		case fa > fb:
			return Greater
		default:
			return Equal
		}
	}

	sa, sb := cast.ToString(a.Raw()), cast.ToString(b.Raw())
	switch {
	case sa < sb:
		return Less
	case sa > sb:
		return Greater
	default:
		return Equal
	}
}

// LooseEqual implements the "=" / "<>" loose-equality coercion rule:
// text <-> number comparisons are permitted for equality, via
// github.com/spf13/cast. Used by equality comparisons, IN, CASE's simple
// form and NULLIF.
func LooseEqual(a, b Value) bool {
	if a.IsNumeric() && b.IsNumeric() {
		return a.AsFloat64() == b.AsFloat64()
	}
	if a.Kind() == KindText && b.Kind() == KindText {
		return a.Text() == b.Text()
	}
	if a.Kind() == KindBool || b.Kind() == KindBool {
		return cast.ToBool(a.Raw()) == cast.ToBool(b.Raw())
	}
	if a.IsNumeric() && b.Kind() == KindText {
		f, err := cast.ToFloat64E(b.Text())
		if err != nil {
			return false
		}
		return a.AsFloat64() == f
	}
	if b.IsNumeric() && a.Kind() == KindText {
		f, err := cast.ToFloat64E(a.Text())
		if err != nil {
			return false
		}
		return f == b.AsFloat64()
	}
	return strings.EqualFold(cast.ToString(a.Raw()), cast.ToString(b.Raw()))
}

// ValueEqual is the row-equality element comparison used by DISTINCT,
// GROUP BY, set operations, and the recursive CTE fixpoint: two NULLs are
// considered equal here, unlike ordinary predicate evaluation.
func ValueEqual(a, b Value) bool {
	if a.IsNull() && b.IsNull() {
		return true
	}
	if a.IsNull() || b.IsNull() {
		return false
	}
	return LooseEqual(a, b)
}

// RowEqual implements row-equality: same column arity, each column
// either both NULL or loosely equal.
func RowEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ValueEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
