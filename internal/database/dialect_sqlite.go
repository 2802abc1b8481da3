package database

import (
	"fmt"
	"strings"
)

// SQLiteDialect implements the Dialect interface for SQLite databases.
// It also satisfies query.QueryDialect through structural typing.
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string              { return "sqlite" }
func (d *SQLiteDialect) DSN(pathOrConnStr string) string { return pathOrConnStr }
func (d *SQLiteDialect) Placeholder(index int) string    { return "?" }
func (d *SQLiteDialect) IDColumn() string                { return "rowid" }
func (d *SQLiteDialect) QuoteColumn(name string) string  { return `"` + name + `"` }

func (d *SQLiteDialect) ContainsSQL(column string, paramIdx int) string {
	return fmt.Sprintf(`(CAST(%s AS TEXT) LIKE ? ESCAPE '\')`, column)
}

func (d *SQLiteDialect) SchemaCheckColumnSQL(table, column string) string {
	return fmt.Sprintf(
		"SELECT COUNT(*) FROM pragma_table_info('%s') WHERE name='%s'", table, column)
}

func (d *SQLiteDialect) columnType(c ColumnDef) string {
	if c.Numeric {
		return "REAL"
	}
	return "TEXT"
}

func (d *SQLiteDialect) CreateTableSQL(t TableDef) string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = d.QuoteColumn(c.Name) + " " + d.columnType(c)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t.Name, strings.Join(cols, ", "))
}

func (d *SQLiteDialect) AddColumnSQL(table string, c ColumnDef) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, d.QuoteColumn(c.Name), d.columnType(c))
}

func (d *SQLiteDialect) CreateIndexSQL(indexName, tableName, column string) string {
	return fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS %s ON %s (%s)", indexName, tableName, d.QuoteColumn(column))
}

func (d *SQLiteDialect) InsertSQL(t TableDef) string {
	return insertSQL(d, t)
}

// insertSQL builds an INSERT over every column of t using the dialect's
// quoting and placeholders.
func insertSQL(d Dialect, t TableDef) string {
	cols := make([]string, len(t.Columns))
	params := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = d.QuoteColumn(c.Name)
		params[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.Name, strings.Join(cols, ", "), strings.Join(params, ", "))
}
