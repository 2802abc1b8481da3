package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// pgSanitizeString strips null bytes (0x00) from a string. SQLite stores these
// fine but PostgreSQL rejects them with "invalid byte sequence for encoding UTF8".
func pgSanitizeString(s string) string {
	if strings.ContainsRune(s, '\x00') {
		return strings.ReplaceAll(s, "\x00", "")
	}
	return s
}

// PostgresStore manages all PostgreSQL operations for a log store.
// It implements the Store interface.
type PostgresStore struct {
	*sqlStore
}

func connectPostgres(connStr string, tables []TableDef) (*PostgresStore, error) {
	d := &PostgresDialect{}

	conn, err := sql.Open(d.DriverName(), d.DSN(connStr))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db := &PostgresStore{newSQLStore(d, connStr, tables)}
	db.conn = conn
	db.sanitize = pgSanitizeString
	return db, nil
}

// OpenPostgres opens an existing PostgreSQL log store and brings its tables up to date.
func OpenPostgres(connStr string, tables []TableDef) (*PostgresStore, error) {
	db, err := connectPostgres(connStr, tables)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// CreatePostgres creates the log store tables on a PostgreSQL database.
// The database itself must already exist.
func CreatePostgres(connStr string, tables []TableDef) (*PostgresStore, error) {
	db, err := connectPostgres(connStr, tables)
	if err != nil {
		return nil, err
	}
	if err := db.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}
