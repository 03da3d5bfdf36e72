// Package storage provides the durable key-value stores the timer list is
// persisted in.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Storage is a durable string key-value store. A Get that follows a Set of the
// same key must observe the value just written.
type Storage interface {
	// Get returns the value stored under key. ok is false when the key has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Close releases the underlying connection.
	Close() error
}

// Backend names accepted by Open
const (
	BackendMemory = "memory"
	BackendDuckDB = "duckdb"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name
var ErrUnknownBackend = errors.New("unknown storage backend")

// Options selects and configures a backend
type Options struct {
	Backend   string
	Path      string // duckdb / sqlite database file
	RedisAddr string
	RedisDB   int
	Prefix    string // redis key prefix
}

// Open creates the Storage named by opts.Backend
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch strings.ToLower(opts.Backend) {
	case BackendMemory:
		return NewMemory(), nil
	case "", BackendDuckDB:
		return NewDuckDB(opts.Path)
	case BackendSQLite:
		return NewSQLite(opts.Path)
	case BackendRedis:
		return NewRedis(ctx, opts.RedisAddr, opts.RedisDB, opts.Prefix)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
