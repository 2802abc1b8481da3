package database

import (
	"fmt"
	"strings"
)

// PostgresDialect implements the Dialect interface for PostgreSQL databases.
// It also satisfies query.QueryDialect through structural typing.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string              { return "pgx" }
func (d *PostgresDialect) DSN(pathOrConnStr string) string { return pathOrConnStr }
func (d *PostgresDialect) Placeholder(index int) string    { return fmt.Sprintf("$%d", index) }
func (d *PostgresDialect) IDColumn() string                { return "id" }

// QuoteColumn always quotes: unquoted identifiers fold to lower case, which
// would break camelCase column keys.
func (d *PostgresDialect) QuoteColumn(name string) string { return `"` + name + `"` }

func (d *PostgresDialect) ContainsSQL(column string, paramIdx int) string {
	return fmt.Sprintf(`(CAST(%s AS TEXT) ILIKE %s ESCAPE '\')`, column, d.Placeholder(paramIdx))
}

func (d *PostgresDialect) SchemaCheckColumnSQL(table, column string) string {
	return fmt.Sprintf(
		"SELECT COUNT(*) FROM information_schema.columns WHERE table_name='%s' AND column_name='%s'",
		table, column)
}

func (d *PostgresDialect) columnType(c ColumnDef) string {
	if c.Numeric {
		return "DOUBLE PRECISION"
	}
	return "TEXT"
}

func (d *PostgresDialect) CreateTableSQL(t TableDef) string {
	cols := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, "id SERIAL PRIMARY KEY")
	for _, c := range t.Columns {
		cols = append(cols, d.QuoteColumn(c.Name)+" "+d.columnType(c))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t.Name, strings.Join(cols, ", "))
}

func (d *PostgresDialect) AddColumnSQL(table string, c ColumnDef) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s", table, d.QuoteColumn(c.Name), d.columnType(c))
}

func (d *PostgresDialect) CreateIndexSQL(indexName, tableName, column string) string {
	return fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS %s ON %s (%s)", indexName, tableName, d.QuoteColumn(column))
}

func (d *PostgresDialect) InsertSQL(t TableDef) string {
	return insertSQL(d, t)
}
