package sql

import "strings"

// Dialect tags the identifier-quoting and LIMIT-form convention used only
// when generating passthrough SQL against a backing driver; the
// core's own evaluation never depends on it.
type Dialect uint8

const (
	MySQL Dialect = iota
	Postgres
	Sqlite
	SqlServer
	Oracle
	Generic
	Virtual
)

// QuoteIdent quotes a single identifier segment per the dialect's
// convention: backtick for MySQL, double-quote for
// Postgres/Sqlite/Oracle/Generic/Virtual, brackets for SqlServer. Doubling
// the closing quote character escapes an embedded occurrence.
func (d Dialect) QuoteIdent(ident string) string {
	open, closeCh := d.quoteChars()
	escaped := strings.ReplaceAll(ident, closeCh, closeCh+closeCh)
	return open + escaped + closeCh
}

func (d Dialect) quoteChars() (open, closeCh string) {
	switch d {
	case MySQL:
		return "`", "`"
	case SqlServer:
		return "[", "]"
	default:
		return `"`, `"`
	}
}

// QuotePath quotes each dotted segment of a qualified identifier
// separately.
func (d Dialect) QuotePath(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = d.QuoteIdent(p)
	}
	return strings.Join(quoted, ".")
}
