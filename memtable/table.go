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

// Package memtable implements an in-memory sql.TableSource, grounded on
// go-mysql-server's memory package (its NewTable/Insert/Name/String
// shape), simplified down to a single flat row slice — no partitions or
// index drivers, just the Iterate/Count/Insert/Update/Delete/
// TryApplyFilter facets this core's TableSource protocol actually names.
package memtable

import (
	"sync"

	"github.com/vtabledb/fedsql/sql"
)

// Table is a mutex-guarded in-memory row slice implementing
// sql.TableSource plus its Inserter/Updater/Deleter/FilterPushdown
// facets, the reference backend used by tests and by the products/users/
// orders fixture.
type Table struct {
	mu     sync.RWMutex
	name   string
	schema sql.Schema
	rows   []sql.Row
}

// NewTable builds an empty table under name with the given schema.
func NewTable(name string, schema sql.Schema) *Table {
	return &Table{name: name, schema: schema}
}

// NewTableWithRows builds a table pre-populated with rows, for fixture
// setup in tests.
func NewTableWithRows(name string, schema sql.Schema, rows []sql.Row) *Table {
	return &Table{name: name, schema: schema, rows: append([]sql.Row(nil), rows...)}
}

// Name implements sql.TableSource.
func (t *Table) Name() string { return t.name }

// Columns implements sql.TableSource.
func (t *Table) Columns() sql.Schema { return t.schema }

// Iterate implements sql.TableSource. The snapshot is copied under the
// read lock so a concurrent Insert/Update/Delete from another statement
// cannot mutate rows out from under an in-flight iteration.
func (t *Table) Iterate(ctx *sql.Context) (sql.RowIter, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snapshot := append([]sql.Row(nil), t.rows...)
	return sql.NewSliceIter(snapshot), nil
}

// Count implements sql.TableSource.
func (t *Table) Count(ctx *sql.Context) (int64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return int64(len(t.rows)), nil
}

// Restartable implements sql.Restartable: Iterate always re-snapshots, so
// repeated calls within one statement (subquery re-evaluation) are safe.
func (t *Table) Restartable() bool { return true }

// Insert implements sql.Inserter.
func (t *Table) Insert(ctx *sql.Context, row sql.Row) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, row)
	return nil
}

// Update implements sql.Updater: every row for which filter evaluates
// True has changes applied in place, column by column.
func (t *Table) Update(ctx *sql.Context, filter sql.Expression, changes map[string]sql.Expression) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var count int64
	for i, row := range t.rows {
		matched := true
		if filter != nil {
			trit, err := sql.EvalBool(ctx, filter, row)
			if err != nil {
				return count, err
			}
			matched = trit.Bool()
		}
		if !matched {
			continue
		}
		updated := row.Merge(sql.NewRow())
		for col, expr := range changes {
			v, err := expr.Eval(ctx, row)
			if err != nil {
				return count, err
			}
			updated.Set(col, v)
		}
		t.rows[i] = updated
		count++
	}
	return count, nil
}

// Delete implements sql.Deleter.
func (t *Table) Delete(ctx *sql.Context, filter sql.Expression) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.rows[:0:0]
	var count int64
	for _, row := range t.rows {
		matched := true
		if filter != nil {
			trit, err := sql.EvalBool(ctx, filter, row)
			if err != nil {
				return count, err
			}
			matched = trit.Bool()
		}
		if matched {
			count++
			continue
		}
		kept = append(kept, row)
	}
	t.rows = kept
	return count, nil
}

// TryApplyFilter implements sql.FilterPushdown by fully absorbing filter:
// a filteredTable wraps this Table and applies filter during Iterate, and
// the returned residual is nil, so the executor adds no residual filter
// for this conjunct.
func (t *Table) TryApplyFilter(ctx *sql.Context, filter sql.Expression) (sql.TableSource, sql.Expression, error) {
	return &filteredTable{Table: t, filter: filter}, nil, nil
}

// filteredTable is the pushed-down view of a Table: same backing rows,
// but Iterate only yields rows matching filter.
type filteredTable struct {
	*Table
	filter sql.Expression
}

// Iterate implements sql.TableSource, applying filter to the base
// snapshot.
func (f *filteredTable) Iterate(ctx *sql.Context) (sql.RowIter, error) {
	f.mu.RLock()
	snapshot := append([]sql.Row(nil), f.rows...)
	f.mu.RUnlock()

	var out []sql.Row
	for _, row := range snapshot {
		trit, err := sql.EvalBool(ctx, f.filter, row)
		if err != nil {
			return nil, err
		}
		if trit.Bool() {
			out = append(out, row)
		}
	}
	return sql.NewSliceIter(out), nil
}

// Count implements sql.TableSource by draining Iterate, since the pushed
// filter changes the matching row count from the base Table's.
func (f *filteredTable) Count(ctx *sql.Context) (int64, error) {
	iter, err := f.Iterate(ctx)
	if err != nil {
		return 0, err
	}
	rows, err := sql.RowIterToRows(ctx, iter)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}
