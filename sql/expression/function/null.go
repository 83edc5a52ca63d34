package function

import "github.com/vtabledb/fedsql/sql"

func registerNullFuncs() {
	register("COALESCE", 1, -1, func(args []sql.Value) (sql.Value, error) {
		for _, a := range args {
			if !a.IsNull() {
				return a, nil
			}
		}
		return sql.Null, nil
	})
	register("NULLIF", 2, 2, func(args []sql.Value) (sql.Value, error) {
		if args[0].IsNull() || args[1].IsNull() {
			return args[0], nil
		}
		if sql.LooseEqual(args[0], args[1]) {
			return sql.Null, nil
		}
		return args[0], nil
	})
	register("IFNULL", 2, 2, func(args []sql.Value) (sql.Value, error) {
		if !args[0].IsNull() {
			return args[0], nil
		}
		return args[1], nil
	})
	registerAlias("NVL", "IFNULL")
	register("CAST", 1, 1, func(args []sql.Value) (sql.Value, error) {
		return args[0], nil
	})
}
