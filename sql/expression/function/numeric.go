package function

import (
	"math"

	"github.com/vtabledb/fedsql/sql"
)

func registerNumericFuncs() {
	register("ABS", 1, 1, func(args []sql.Value) (sql.Value, error) {
		if args[0].IsNull() {
			return sql.Null, nil
		}
		if args[0].Kind() == sql.KindInt {
			v := args[0].Int()
			if v < 0 {
				v = -v
			}
			return sql.NewInt(v), nil
		}
		return sql.NewFloat(math.Abs(args[0].AsFloat64())), nil
	})
	register("ROUND", 1, 2, func(args []sql.Value) (sql.Value, error) {
		if args[0].IsNull() {
			return sql.Null, nil
		}
		digits := 0
		if len(args) == 2 {
			if args[1].IsNull() {
				return sql.Null, nil
			}
			digits = int(args[1].Int())
		}
		mult := math.Pow(10, float64(digits))
		return sql.NewFloat(math.Round(args[0].AsFloat64()*mult) / mult), nil
	})
	register("FLOOR", 1, 1, func(args []sql.Value) (sql.Value, error) {
		if args[0].IsNull() {
			return sql.Null, nil
		}
		return sql.NewFloat(math.Floor(args[0].AsFloat64())), nil
	})
	register("CEIL", 1, 1, func(args []sql.Value) (sql.Value, error) {
		if args[0].IsNull() {
			return sql.Null, nil
		}
		return sql.NewFloat(math.Ceil(args[0].AsFloat64())), nil
	})
	registerAlias("CEILING", "CEIL")
}
