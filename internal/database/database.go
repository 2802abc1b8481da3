// Package database is the log store: one table per telemetry domain on
// SQLite or PostgreSQL.
package database

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/query"

	_ "modernc.org/sqlite"
)

// sqlStore implements Store for any database/sql backend with a Dialect.
type sqlStore struct {
	path     string
	conn     *sql.DB
	dialect  Dialect
	tables   []TableDef
	byName   map[string]TableDef
	sanitize func(string) string
}

func newSQLStore(d Dialect, path string, tables []TableDef) *sqlStore {
	s := &sqlStore{
		path:     path,
		dialect:  d,
		tables:   tables,
		byName:   make(map[string]TableDef, len(tables)),
		sanitize: func(s string) string { return s },
	}
	for _, t := range tables {
		s.byName[t.Name] = t
	}
	return s
}

// SQLiteStore manages all SQLite operations for a log store file.
// It implements the Store interface.
type SQLiteStore struct {
	*sqlStore
}

// OpenSQLite opens an existing SQLite log store and brings its tables up to date.
func OpenSQLite(path string, tables []TableDef) (*SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	d := &SQLiteDialect{}
	conn, err := sql.Open(d.DriverName(), d.DSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Verify the connection works
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db := &SQLiteStore{newSQLStore(d, path, tables)}
	db.conn = conn

	if err := db.Migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// CreateSQLite creates a new SQLite log store with one table per domain.
func CreateSQLite(path string, tables []TableDef) (*SQLiteStore, error) {
	d := &SQLiteDialect{}

	conn, err := sql.Open(d.DriverName(), d.DSN(path))
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	db := &SQLiteStore{newSQLStore(d, path, tables)}
	db.conn = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *sqlStore) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the file path or connection string of the store.
func (db *sqlStore) Path() string {
	return db.path
}

// Conn returns the underlying *sql.DB connection for advanced query usage.
func (db *sqlStore) Conn() *sql.DB {
	return db.conn
}

// Dialect returns the SQL dialect of the store.
func (db *sqlStore) Dialect() Dialect {
	return db.dialect
}

// Tables returns the domain tables of the store.
func (db *sqlStore) Tables() []TableDef {
	return db.tables
}

// Table looks up a table by name.
func (db *sqlStore) Table(name string) (TableDef, bool) {
	t, ok := db.byName[name]
	return t, ok
}

func (db *sqlStore) table(name string) (TableDef, error) {
	t, ok := db.byName[name]
	if !ok {
		return TableDef{}, fmt.Errorf("unknown table: %s", name)
	}
	return t, nil
}

// createSchema builds all tables and indexes for a new store.
func (db *sqlStore) createSchema() error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range db.tables {
		if _, err := tx.Exec(db.dialect.CreateTableSQL(t)); err != nil {
			return fmt.Errorf("creating %s table: %w", t.Name, err)
		}
		if err := db.createIndexes(tx, t); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (db *sqlStore) createIndexes(tx *sql.Tx, t TableDef) error {
	for _, col := range IndexColumns {
		if !t.Has(col) {
			continue
		}
		idx := t.Name + "_" + col + "_idx"
		if _, err := tx.Exec(db.dialect.CreateIndexSQL(idx, t.Name, col)); err != nil {
			return fmt.Errorf("creating index on %s.%s: %w", t.Name, col, err)
		}
	}
	return nil
}

// Migrate creates missing tables and adds columns that newer domain
// definitions introduced.
func (db *sqlStore) Migrate() error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range db.tables {
		if _, err := tx.Exec(db.dialect.CreateTableSQL(t)); err != nil {
			return fmt.Errorf("creating %s table: %w", t.Name, err)
		}
		for _, c := range t.Columns {
			var count int
			if err := tx.QueryRow(db.dialect.SchemaCheckColumnSQL(t.Name, c.Name)).Scan(&count); err != nil {
				return fmt.Errorf("checking column %s.%s: %w", t.Name, c.Name, err)
			}
			if count > 0 {
				continue
			}
			if _, err := tx.Exec(db.dialect.AddColumnSQL(t.Name, c)); err != nil {
				return fmt.Errorf("adding column %s.%s: %w", t.Name, c.Name, err)
			}
		}
		if err := db.createIndexes(tx, t); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// bindValue converts a record value into the column's storage type.
// Absent or unparseable numbers become NULL.
func (db *sqlStore) bindValue(c ColumnDef, v interface{}) interface{} {
	if c.Numeric {
		n, ok := model.ToFloat(v)
		if !ok {
			return nil
		}
		return n
	}
	if v == nil {
		return nil
	}
	return db.sanitize(model.ToString(v))
}

// InsertRecords inserts a batch of records into table inside a single transaction.
// The onProgress callback is called every 10,000 records with the current count.
// Pass nil for onProgress if you don't need progress updates.
func (db *sqlStore) InsertRecords(table string, records []model.Record, onProgress func(count int)) (int, error) {
	t, err := db.table(table)
	if err != nil {
		return 0, err
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(db.dialect.InsertSQL(t))
	if err != nil {
		return 0, fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(t.Columns))
	inserted := 0
	for _, r := range records {
		for i, c := range t.Columns {
			args[i] = db.bindValue(c, r[c.Name])
		}
		if _, err := stmt.Exec(args...); err != nil {
			return inserted, fmt.Errorf("inserting record %d: %w", inserted+1, err)
		}
		inserted++
		if onProgress != nil && inserted%10000 == 0 {
			onProgress(inserted)
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("committing transaction: %w", err)
	}
	return inserted, nil
}

// LoadRecords returns up to limit records of table in insertion order.
// A limit of 0 loads everything.
func (db *sqlStore) LoadRecords(table string, limit int) ([]model.Record, error) {
	t, err := db.table(table)
	if err != nil {
		return nil, err
	}
	return db.ExecuteQuery(t.Query(limit))
}

// ExecuteQuery runs a built query and scans its rows into records.
// NULL columns are left out of the record.
func (db *sqlStore) ExecuteQuery(q *query.Query) ([]model.Record, error) {
	t, err := db.table(q.Table())
	if err != nil {
		return nil, err
	}

	sqlStr, args := q.Build(db.dialect)
	rows, err := db.conn.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.Name, err)
	}
	defer rows.Close()

	return scanRecords(rows, t, q.Columns())
}

// ExecuteCountQuery returns the number of rows a query matches, ignoring pagination.
func (db *sqlStore) ExecuteCountQuery(q *query.Query) (int64, error) {
	if _, err := db.table(q.Table()); err != nil {
		return 0, err
	}
	sqlStr, args := q.BuildCount(db.dialect)
	var count int64
	err := db.conn.QueryRow(sqlStr, args...).Scan(&count)
	return count, err
}

// CountRecords returns the number of records in table.
func (db *sqlStore) CountRecords(table string) (int64, error) {
	t, err := db.table(table)
	if err != nil {
		return 0, err
	}
	return db.ExecuteCountQuery(t.Query(0))
}

// GetDistinctValues returns a map of distinct values and their counts for a column.
func (db *sqlStore) GetDistinctValues(table, field string) (map[string]int64, error) {
	t, err := db.table(table)
	if err != nil {
		return nil, err
	}
	// Validate field name against the table to prevent injection
	if !t.Has(field) {
		return nil, fmt.Errorf("invalid field name: %s", field)
	}

	col := db.dialect.QuoteColumn(field)
	sqlStr := fmt.Sprintf("SELECT %s, COUNT(*) FROM %s GROUP BY %s", col, t.Name, col)

	rows, err := db.conn.Query(sqlStr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var value sql.NullString
		var count int64
		if err := rows.Scan(&value, &count); err != nil {
			return nil, err
		}
		if value.Valid && value.String != "" {
			result[value.String] = count
		}
	}
	return result, rows.Err()
}

// GetTimestampRange returns the earliest and latest timestamp in table.
// Tables without a timestamp column return empty strings.
func (db *sqlStore) GetTimestampRange(table string) (minTS, maxTS string, err error) {
	t, err := db.table(table)
	if err != nil {
		return "", "", err
	}
	if !t.Has(model.KeyTimestamp) {
		return "", "", nil
	}
	col := db.dialect.QuoteColumn(model.KeyTimestamp)
	err = db.conn.QueryRow(fmt.Sprintf(
		"SELECT COALESCE(MIN(%s), ''), COALESCE(MAX(%s), '') FROM %s WHERE %s <> ''",
		col, col, t.Name, col),
	).Scan(&minTS, &maxTS)
	return
}

// scanRecords reads rows laid out as the id column followed by columns.
func scanRecords(rows *sql.Rows, t TableDef, columns []string) ([]model.Record, error) {
	numeric := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		numeric[c.Name] = c.Numeric
	}

	var records []model.Record
	for rows.Next() {
		var id int64
		dest := make([]interface{}, len(columns)+1)
		dest[0] = &id
		for i, c := range columns {
			if numeric[c] {
				dest[i+1] = new(sql.NullFloat64)
			} else {
				dest[i+1] = new(sql.NullString)
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		r := make(model.Record, len(columns))
		for i, c := range columns {
			switch v := dest[i+1].(type) {
			case *sql.NullFloat64:
				if v.Valid {
					r[c] = v.Float64
				}
			case *sql.NullString:
				if v.Valid {
					r[c] = v.String
				}
			}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
