package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/HamzaEzziymy/timers/internal/db"
)

const (
	createTableQuery = `
		CREATE TABLE IF NOT EXISTS kv_store (
			name    VARCHAR PRIMARY KEY,
			payload VARCHAR NOT NULL
		)
	`
	getQuery = `SELECT payload FROM kv_store WHERE name = ?`
	setQuery = `INSERT OR REPLACE INTO kv_store (name, payload) VALUES (?, ?)`
)

// SQL is a Storage backed by a single kv_store table in a database/sql
// database. DuckDB and SQLite share the same schema and statements.
type SQL struct {
	db *sql.DB
}

// NewDuckDB opens a DuckDB-backed store at path
func NewDuckDB(path string) (*SQL, error) {
	database, err := db.OpenDuckDB(path)
	if err != nil {
		return nil, err
	}
	return newSQL(database)
}

// NewSQLite opens a SQLite-backed store at path
func NewSQLite(path string) (*SQL, error) {
	database, err := db.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	return newSQL(database)
}

func newSQL(database *sql.DB) (*SQL, error) {
	if _, err := database.Exec(createTableQuery); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return &SQL{db: database}, nil
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var payload sql.NullString
	err := s.db.QueryRowContext(ctx, getQuery, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return payload.String, payload.Valid, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, setQuery, key, value); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
