package sql

// TableSource is the uniform interface every virtual table exposes, using
// Go-idiomatic small-interface composition: the base TableSource covers
// iterate/count/columns, and the optional pushdown/mutation facets are
// separate interfaces a concrete source opts into, type-asserted by the
// executor/write planner at the call site — the same shape go-mysql-server
// composes sql.Table / sql.FilteredTable / sql.UpdatableTable as separate
// interfaces.
type TableSource interface {
	// Name identifies the source for diagnostics and qualified-column
	// resolution.
	Name() string
	// Columns returns the ordered schema.
	Columns() Schema
	// Iterate returns a lazy, finite row stream. Not restartable unless the
	// concrete source documents otherwise.
	Iterate(ctx *Context) (RowIter, error)
	// Count returns the row count; must agree with a full Iterate.
	Count(ctx *Context) (int64, error)
}

// Restartable is implemented by sources whose Iterate may be called more
// than once within a statement.
type Restartable interface {
	TableSource
	Restartable() bool
}

// FilterPushdown is the optional pushdown facet. A source that cannot do
// any better returns itself unchanged and the full expression as the
// residual; the executor always re-applies the residual.
type FilterPushdown interface {
	TableSource
	TryApplyFilter(ctx *Context, filter Expression) (TableSource, Expression, error)
}

// Inserter is the optional insert facet of a mutable source.
type Inserter interface {
	TableSource
	Insert(ctx *Context, row Row) error
}

// Updater is the optional update facet of a mutable source.
type Updater interface {
	TableSource
	// Update applies changes to every row matching filter, returning the
	// count of rows affected.
	Update(ctx *Context, filter Expression, changes map[string]Expression) (int64, error)
}

// Deleter is the optional delete facet of a mutable source.
type Deleter interface {
	TableSource
	// Delete removes every row matching filter, returning the count of
	// rows affected.
	Delete(ctx *Context, filter Expression) (int64, error)
}

// Registry resolves a logical table name (as named in a TableRef) to a
// TableSource. The executor consults it for every FROM entry that is not a
// CTE.
type Registry interface {
	Resolve(name string) (TableSource, bool)
}

// MapRegistry is the simplest Registry: a plain name -> TableSource map.
type MapRegistry map[string]TableSource

// Resolve implements Registry.
func (m MapRegistry) Resolve(name string) (TableSource, bool) {
	t, ok := m[name]
	return t, ok
}
