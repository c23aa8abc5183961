// Package database persists serialized world snapshots to SQLite or
// PostgreSQL, keyed by world name.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/lawnchairsociety/openworldmud/server/internal/config"
)

var (
	ErrWorldNotFound = errors.New("database: world not found")
)

// WorldRecord is one stored world snapshot.
type WorldRecord struct {
	Name      string
	WorldSeed int64
	BlockSize int
	Snapshot  []byte
	SavedAt   time.Time
}

// Store wraps the SQL connection and provides snapshot persistence.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the configured database and runs migrations.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	var dsn string
	switch dialect.DriverName() {
	case "postgres":
		dsn = cfg.Postgres.PostgresDSN()
	default:
		// Ensure the directory for the SQLite file exists
		dir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.SQLitePath
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run init statement: %w", err)
		}
	}

	s := &Store{db: db, dialect: dialect}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS worlds (
		name TEXT PRIMARY KEY,
		world_seed BIGINT NOT NULL,
		block_size INTEGER NOT NULL,
		snapshot %s NOT NULL,
		saved_at TIMESTAMP NOT NULL
	)`, s.dialect.BlobType())

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// SaveWorld inserts or replaces the snapshot for a named world.
func (s *Store) SaveWorld(name string, seed int64, blockSize int, snapshot []byte) error {
	query := fmt.Sprintf(`INSERT INTO worlds (name, world_seed, block_size, snapshot, saved_at)
		VALUES (%s, %s, %s, %s, %s)
		ON CONFLICT (name) DO UPDATE SET
			world_seed = EXCLUDED.world_seed,
			block_size = EXCLUDED.block_size,
			snapshot = EXCLUDED.snapshot,
			saved_at = EXCLUDED.saved_at`,
		s.dialect.Placeholder(1), s.dialect.Placeholder(2), s.dialect.Placeholder(3),
		s.dialect.Placeholder(4), s.dialect.Placeholder(5))

	if _, err := s.db.Exec(query, name, seed, blockSize, snapshot, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save world %q: %w", name, err)
	}
	return nil
}

// LoadWorld returns the stored snapshot for a named world.
func (s *Store) LoadWorld(name string) (*WorldRecord, error) {
	query := fmt.Sprintf(`SELECT name, world_seed, block_size, snapshot, saved_at
		FROM worlds WHERE name = %s`, s.dialect.Placeholder(1))

	var rec WorldRecord
	err := s.db.QueryRow(query, name).Scan(
		&rec.Name, &rec.WorldSeed, &rec.BlockSize, &rec.Snapshot, &rec.SavedAt)
	if err == sql.ErrNoRows {
		return nil, ErrWorldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load world %q: %w", name, err)
	}

	return &rec, nil
}

// ListWorlds returns metadata for every stored world, newest first.
// Snapshot payloads are not loaded.
func (s *Store) ListWorlds() ([]WorldRecord, error) {
	rows, err := s.db.Query(`SELECT name, world_seed, block_size, saved_at
		FROM worlds ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}
	defer rows.Close()

	var records []WorldRecord
	for rows.Next() {
		var rec WorldRecord
		if err := rows.Scan(&rec.Name, &rec.WorldSeed, &rec.BlockSize, &rec.SavedAt); err != nil {
			return nil, fmt.Errorf("failed to scan world row: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DeleteWorld removes a stored world. Deleting a missing world is not an
// error.
func (s *Store) DeleteWorld(name string) error {
	query := fmt.Sprintf(`DELETE FROM worlds WHERE name = %s`, s.dialect.Placeholder(1))
	if _, err := s.db.Exec(query, name); err != nil {
		return fmt.Errorf("failed to delete world %q: %w", name, err)
	}
	return nil
}
