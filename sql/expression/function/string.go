package function

import (
	"strings"

	"github.com/vtabledb/fedsql/sql"
)

func nullIfAnyNull(args []sql.Value) bool {
	for _, a := range args {
		if a.IsNull() {
			return true
		}
	}
	return false
}

func registerStringFuncs() {
	register("UPPER", 1, 1, func(args []sql.Value) (sql.Value, error) {
		if args[0].IsNull() {
			return sql.Null, nil
		}
		return sql.NewText(strings.ToUpper(args[0].String())), nil
	})
	register("LOWER", 1, 1, func(args []sql.Value) (sql.Value, error) {
		if args[0].IsNull() {
			return sql.Null, nil
		}
		return sql.NewText(strings.ToLower(args[0].String())), nil
	})
	register("LENGTH", 1, 1, func(args []sql.Value) (sql.Value, error) {
		if args[0].IsNull() {
			return sql.Null, nil
		}
		return sql.NewInt(int64(len(args[0].String()))), nil
	})
	registerAlias("LEN", "LENGTH")
	register("TRIM", 1, 1, func(args []sql.Value) (sql.Value, error) {
		if args[0].IsNull() {
			return sql.Null, nil
		}
		return sql.NewText(strings.TrimSpace(args[0].String())), nil
	})
	register("LTRIM", 1, 1, func(args []sql.Value) (sql.Value, error) {
		if args[0].IsNull() {
			return sql.Null, nil
		}
		return sql.NewText(strings.TrimLeft(args[0].String(), " \t\n\r")), nil
	})
	register("RTRIM", 1, 1, func(args []sql.Value) (sql.Value, error) {
		if args[0].IsNull() {
			return sql.Null, nil
		}
		return sql.NewText(strings.TrimRight(args[0].String(), " \t\n\r")), nil
	})
	register("SUBSTR", 2, 3, substr)
	registerAlias("SUBSTRING", "SUBSTR")
	register("CONCAT", 0, -1, func(args []sql.Value) (sql.Value, error) {
		if nullIfAnyNull(args) {
			return sql.Null, nil
		}
		var b strings.Builder
		for _, a := range args {
			b.WriteString(a.String())
		}
		return sql.NewText(b.String()), nil
	})
	register("REPLACE", 3, 3, func(args []sql.Value) (sql.Value, error) {
		if nullIfAnyNull(args) {
			return sql.Null, nil
		}
		return sql.NewText(strings.ReplaceAll(args[0].String(), args[1].String(), args[2].String())), nil
	})
	register("INSTR", 2, 2, func(args []sql.Value) (sql.Value, error) {
		if nullIfAnyNull(args) {
			return sql.Null, nil
		}
		idx := strings.Index(args[0].String(), args[1].String())
		if idx < 0 {
			return sql.NewInt(0), nil
		}
		return sql.NewInt(int64(idx + 1)), nil
	})
}

// substr implements SUBSTR/SUBSTRING(s, start, len?), 1-indexed.
func substr(args []sql.Value) (sql.Value, error) {
	if args[0].IsNull() || args[1].IsNull() {
		return sql.Null, nil
	}
	s := args[0].String()
	start := int(args[1].Int())
	runes := []rune(s)
	n := len(runes)

	idx := start - 1
	if start < 0 {
		idx = n + start
	}
	if idx < 0 {
		idx = 0
	}
	if idx > n {
		idx = n
	}

	end := n
	if len(args) == 3 {
		if args[2].IsNull() {
			return sql.Null, nil
		}
		l := int(args[2].Int())
		if l < 0 {
			l = 0
		}
		end = idx + l
		if end > n {
			end = n
		}
	}
	if idx >= end {
		return sql.NewText(""), nil
	}
	return sql.NewText(string(runes[idx:end])), nil
}
