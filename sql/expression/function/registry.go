// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package function implements the built-in scalar functions, grounded on
// go-mysql-server's sql/expression/function package layout: function is
// its own subpackage of expression rather than folded into expression
// itself.
package function

import (
	"strings"

	"github.com/vtabledb/fedsql/sql"
)

// Func is a resolved scalar function body: the already-evaluated argument
// values in, one Value out. Scalar functions never see the row or outer
// context directly — CAST, COALESCE et al. are pure over their arguments.
type Func func(args []sql.Value) (sql.Value, error)

// Entry pairs a Func with its declared arity; MaxArgs == -1 means variadic
// (COALESCE, CONCAT).
type Entry struct {
	MinArgs, MaxArgs int
	Fn               Func
}

var registry = map[string]Entry{}

func register(name string, min, max int, fn Func) {
	registry[name] = Entry{MinArgs: min, MaxArgs: max, Fn: fn}
}

func registerAlias(alias, target string) {
	registry[alias] = registry[target]
}

// Resolve looks up a scalar function by name, case-insensitively. Unknown
// names are the caller's responsibility to turn into
// sql.ErrUnknownFunction.
func Resolve(name string) (Entry, bool) {
	e, ok := registry[strings.ToUpper(name)]
	return e, ok
}

func init() {
	registerStringFuncs()
	registerNumericFuncs()
	registerNullFuncs()
}
