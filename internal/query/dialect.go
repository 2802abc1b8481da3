package query

import "fmt"

// QueryDialect abstracts SQL syntax differences needed for query building.
// Each database backend provides an implementation. The default is SQLite.
type QueryDialect interface {
	// Placeholder returns the parameter placeholder for the given 1-based index.
	// SQLite returns "?" (ignoring the index), PostgreSQL returns "$1", "$2", etc.
	Placeholder(index int) string

	// IDColumn returns the name of the row identifier column.
	// SQLite uses "rowid", PostgreSQL uses "id".
	IDColumn() string

	// QuoteColumn returns the column name quoted for the dialect. Column keys
	// are camelCase, so both backends quote them to keep their case.
	QuoteColumn(name string) string

	// ContainsSQL returns a case-insensitive substring match of a column
	// against the placeholder at paramIdx.
	ContainsSQL(column string, paramIdx int) string
}

// sqliteQueryDialect is the default dialect, producing SQLite-compatible SQL.
type sqliteQueryDialect struct{}

func (d sqliteQueryDialect) Placeholder(index int) string   { return "?" }
func (d sqliteQueryDialect) IDColumn() string               { return "rowid" }
func (d sqliteQueryDialect) QuoteColumn(name string) string { return `"` + name + `"` }

// SQLite LIKE is case-insensitive for ASCII.
func (d sqliteQueryDialect) ContainsSQL(column string, paramIdx int) string {
	return fmt.Sprintf(`(CAST(%s AS TEXT) LIKE ? ESCAPE '\')`, column)
}

// DefaultDialect is the query dialect used when none is explicitly set.
// It produces SQLite-compatible SQL.
var DefaultDialect QueryDialect = sqliteQueryDialect{}
