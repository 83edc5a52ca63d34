package executor

import "github.com/vtabledb/fedsql/sql"

// materializedTable wraps a CTE's drained result set as a TableSource so
// later FROM references to the CTE's name resolve through the same
// registry path as any base table.
type materializedTable struct {
	name string
	rows []sql.Row
	cols sql.Schema
}

func newMaterializedTable(name string, rows []sql.Row) *materializedTable {
	return &materializedTable{name: name, rows: rows, cols: schemaOf(rows)}
}

func schemaOf(rows []sql.Row) sql.Schema {
	if len(rows) == 0 {
		return nil
	}
	cols := make(sql.Schema, 0, len(rows[0].Columns()))
	for _, c := range rows[0].Columns() {
		cols = append(cols, sql.Column{Name: c, DeclaredType: sql.KindText, Nullable: true})
	}
	return cols
}

// Name implements sql.TableSource.
func (m *materializedTable) Name() string { return m.name }

// Columns implements sql.TableSource.
func (m *materializedTable) Columns() sql.Schema { return m.cols }

// Iterate implements sql.TableSource. Restartable: each call re-scans the
// same materialized slice, never mutating it.
func (m *materializedTable) Iterate(ctx *sql.Context) (sql.RowIter, error) {
	return sql.NewSliceIter(m.rows), nil
}

// Count implements sql.TableSource.
func (m *materializedTable) Count(ctx *sql.Context) (int64, error) { return int64(len(m.rows)), nil }

// Restartable implements sql.Restartable.
func (m *materializedTable) Restartable() bool { return true }

// selfTable is a RECURSIVE CTE's self-reference: it reads whatever the
// fixpoint loop currently holds in working, rather than a fixed slice, so
// each round's rebuild of the recursive term sees the latest accumulated
// result.
type selfTable struct {
	name    string
	working *[]sql.Row
}

// Name implements sql.TableSource.
func (s *selfTable) Name() string { return s.name }

// Columns implements sql.TableSource.
func (s *selfTable) Columns() sql.Schema { return schemaOf(*s.working) }

// Iterate implements sql.TableSource.
func (s *selfTable) Iterate(ctx *sql.Context) (sql.RowIter, error) {
	rows := append([]sql.Row(nil), (*s.working)...)
	return sql.NewSliceIter(rows), nil
}

// Count implements sql.TableSource.
func (s *selfTable) Count(ctx *sql.Context) (int64, error) { return int64(len(*s.working)), nil }

// oneRowSource backs a FROM-less SELECT (e.g. "SELECT 1+1") with a single
// empty row to drive expression evaluation against, the same role the
// classic single-row "dual" table plays in dialects without a bare SELECT.
type oneRowSource struct{}

// Name implements sql.TableSource.
func (oneRowSource) Name() string { return "dual" }

// Columns implements sql.TableSource.
func (oneRowSource) Columns() sql.Schema { return nil }

// Iterate implements sql.TableSource.
func (oneRowSource) Iterate(ctx *sql.Context) (sql.RowIter, error) {
	return sql.NewSliceIter([]sql.Row{sql.NewRow()}), nil
}

// Count implements sql.TableSource.
func (oneRowSource) Count(ctx *sql.Context) (int64, error) { return 1, nil }

// overlayRegistry layers one named binding (a CTE, or a recursive CTE's
// self-reference) over a base registry, so FROM resolution inside a
// statement sees the CTE without the executor having to copy or mutate
// the caller-supplied registry.
type overlayRegistry struct {
	base sql.Registry
	name string
	src  sql.TableSource
}

// Resolve implements sql.Registry.
func (o overlayRegistry) Resolve(name string) (sql.TableSource, bool) {
	if name == o.name {
		return o.src, true
	}
	if o.base == nil {
		return nil, false
	}
	return o.base.Resolve(name)
}
