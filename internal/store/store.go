// Package store persists serialized model lists under string keys. It backs
// modellist.Store with memory, file, SQLite and Postgres implementations.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kinds accepted by Open.
const (
	KindMemory   = "memory"
	KindFile     = "file"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
)

// ErrEmptyKey is returned for a blank storage key.
var ErrEmptyKey = errors.New("storage key is required")

// Store is a key/value store of serialized payloads.
type Store interface {
	// Get returns the value under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set replaces the value under key.
	Set(ctx context.Context, key, value string) error
	// Kind names the backend.
	Kind() string
	Close() error
}

// Open returns the store of the given kind. dsn is ignored for memory, a
// directory for file, a database path for sqlite and a connection string for
// postgres.
func Open(ctx context.Context, kind, dsn string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindMemory:
		return NewMemory(), nil
	case KindFile:
		return OpenFile(dsn)
	case KindSQLite:
		return OpenSQLite(dsn)
	case KindPostgres:
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}

func checkKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyKey
	}
	return key, nil
}
