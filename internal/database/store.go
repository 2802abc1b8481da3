package database

import (
	"sort"

	"github.com/cdtdelta/insiderwatch/internal/domains"
	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/query"
)

// TablePrefix is prepended to a domain id to name its table.
const TablePrefix = "iw_"

// IndexColumns are indexed on every table that has them.
var IndexColumns = []string{model.KeyTimestamp, model.KeyUser, model.KeyRisk}

// ColumnDef is one stored column. Numeric columns hold floating point values;
// everything else is text.
type ColumnDef struct {
	Name    string
	Numeric bool
}

// TableDef describes the table holding one domain's records.
type TableDef struct {
	Name    string
	Domain  model.DomainID
	Columns []ColumnDef
}

// ColumnNames returns the column names in table order.
func (t TableDef) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Has reports whether the table has the named column.
func (t TableDef) Has(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Query starts a query over every column of the table.
func (t TableDef) Query(pageSize int) *query.Query {
	return query.New(t.Name, t.ColumnNames(), pageSize)
}

// TableName returns the table name for a domain.
func TableName(id model.DomainID) string {
	return TablePrefix + string(id)
}

// TableFor derives a table from a domain's schema. Agent fields that are not
// display columns are stored as extra text columns so imports keep them.
func TableFor(d *domains.Domain) TableDef {
	t := TableDef{Name: TableName(d.ID), Domain: d.ID}
	seen := make(map[string]bool)
	for _, c := range d.Schema.Columns {
		t.Columns = append(t.Columns, ColumnDef{Name: c.Key, Numeric: c.Kind.Numeric()})
		seen[c.Key] = true
	}

	var extra []string
	for _, key := range d.AgentFields {
		if !seen[key] {
			seen[key] = true
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		t.Columns = append(t.Columns, ColumnDef{Name: key})
	}
	return t
}

// TablesFor returns one table per domain in the catalog, in navigation order.
func TablesFor(c *domains.Catalog) []TableDef {
	all := c.All()
	tables := make([]TableDef, len(all))
	for i, d := range all {
		tables[i] = TableFor(d)
	}
	return tables
}

// Store defines the interface for all log store operations.
// Callers depend on the interface, not on a concrete database type.
type Store interface {
	// Record writes
	InsertRecords(table string, records []model.Record, onProgress func(int)) (int, error)

	// Reads. Queries are rendered with the store's own dialect.
	LoadRecords(table string, limit int) ([]model.Record, error)
	ExecuteQuery(q *query.Query) ([]model.Record, error)
	ExecuteCountQuery(q *query.Query) (int64, error)
	CountRecords(table string) (int64, error)

	// Metadata
	GetDistinctValues(table, field string) (map[string]int64, error)
	GetTimestampRange(table string) (string, string, error)
	Tables() []TableDef
	Table(name string) (TableDef, bool)

	// Schema maintenance
	Migrate() error

	// Lifecycle
	Close() error
	Path() string
}
