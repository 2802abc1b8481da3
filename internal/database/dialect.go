package database

// Dialect abstracts all database-specific SQL generation.
// Each database backend (SQLite, PostgreSQL) implements this interface.
// The Placeholder, IDColumn, QuoteColumn and ContainsSQL methods match the
// query.QueryDialect interface through Go structural typing, so a Dialect can
// also serve as a QueryDialect.
type Dialect interface {
	// DriverName returns the database/sql driver name (e.g. "sqlite", "pgx").
	DriverName() string

	// DSN returns the data source name for opening a connection.
	DSN(pathOrConnStr string) string

	// Placeholder returns the parameter placeholder for the given 1-based index.
	Placeholder(index int) string

	// IDColumn returns the row identifier column name.
	// SQLite: "rowid" (implicit), PostgreSQL: "id" (explicit serial).
	IDColumn() string

	// QuoteColumn returns the column name quoted for the dialect.
	QuoteColumn(name string) string

	// ContainsSQL returns a case-insensitive substring test of column against
	// the placeholder at paramIdx.
	ContainsSQL(column string, paramIdx int) string

	// SchemaCheckColumnSQL returns a SQL query that counts how many times a column
	// appears in a table's schema. Used for migration checks.
	SchemaCheckColumnSQL(table, column string) string

	// CreateTableSQL returns the DDL for a domain table.
	CreateTableSQL(t TableDef) string

	// AddColumnSQL returns DDL adding a missing column to a table.
	AddColumnSQL(table string, c ColumnDef) string

	// CreateIndexSQL returns DDL to create an index on a table column.
	CreateIndexSQL(indexName, tableName, column string) string

	// InsertSQL returns the parameterized INSERT statement for a table,
	// with one placeholder per column in table order.
	InsertSQL(t TableDef) string
}
