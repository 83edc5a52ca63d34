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

// Package window implements ROW_NUMBER/RANK/DENSE_RANK.
// Unlike scalar/aggregate expressions, a window function's value for one
// row depends on the whole partition it belongs to, so it is not modeled
// as an sql.Expression with a per-row Eval: sql/rowexec's window iterator
// partitions rows by PARTITION BY, sorts within each partition by
// ORDER BY, and calls Compute once per partition.
package window

import "github.com/vtabledb/fedsql/sql"

// Kind enumerates the three ranking functions names.
type Kind uint8

const (
	RowNumber Kind = iota
	Rank
	DenseRank
)

// String renders the function's SQL name.
func (k Kind) String() string {
	switch k {
	case RowNumber:
		return "ROW_NUMBER"
	case Rank:
		return "RANK"
	case DenseRank:
		return "DENSE_RANK"
	default:
		return "?"
	}
}

// Compute assigns one ranking value per row of an already partition-sorted
// slice of order-key tuples (one []sql.Value per row, in the row's final
// sort order). RANK leaves gaps on ties; DENSE_RANK does not; ROW_NUMBER
// is simply 1..n regardless of ties.
func Compute(kind Kind, orderKeys [][]sql.Value) []sql.Value {
	out := make([]sql.Value, len(orderKeys))
	if kind == RowNumber {
		for i := range orderKeys {
			out[i] = sql.NewInt(int64(i + 1))
		}
		return out
	}

	rank := int64(0)
	denseRank := int64(0)
	for i, key := range orderKeys {
		isNewGroup := i == 0 || !sql.RowEqual(orderKeys[i-1], key)
		if isNewGroup {
			rank = int64(i + 1)
			denseRank++
		}
		if kind == Rank {
			out[i] = sql.NewInt(rank)
		} else {
			out[i] = sql.NewInt(denseRank)
		}
	}
	return out
}
