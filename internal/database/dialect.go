package database

import "fmt"

// Dialect abstracts SQL syntax differences between SQLite and PostgreSQL.
type Dialect interface {
	// DriverName returns the driver name for sql.Open().
	DriverName() string

	// Placeholder returns the parameter placeholder for the given position
	// (1-indexed). SQLite ignores the position and uses "?".
	Placeholder(position int) string

	// BlobType returns the column type for binary snapshot payloads.
	BlobType() string

	// InitStatements returns database-specific statements to run on open.
	InitStatements() []string
}

// DialectType identifies the database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect creates a new Dialect for the given type.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}

// SQLiteDialect implements Dialect for modernc.org/sqlite.
type SQLiteDialect struct{}

// DriverName returns "sqlite"
func (d *SQLiteDialect) DriverName() string { return "sqlite" }

// Placeholder returns "?" regardless of position
func (d *SQLiteDialect) Placeholder(position int) string { return "?" }

// BlobType returns SQLite's BLOB type
func (d *SQLiteDialect) BlobType() string { return "BLOB" }

// InitStatements returns the PRAGMA setup for SQLite
func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

// PostgresDialect implements Dialect for lib/pq.
type PostgresDialect struct{}

// DriverName returns "postgres"
func (d *PostgresDialect) DriverName() string { return "postgres" }

// Placeholder returns "$1", "$2", etc.
func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

// BlobType returns PostgreSQL's BYTEA type
func (d *PostgresDialect) BlobType() string { return "BYTEA" }

// InitStatements returns nothing; PostgreSQL needs no session setup here
func (d *PostgresDialect) InitStatements() []string { return nil }
