// Package store persists measurement sets under caller-chosen labels.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"benchguard/internal/measure"
)

// ErrNotFound is returned by Get and Delete when no set exists under the
// requested label. It is recoverable; every other store error is fatal.
var ErrNotFound = errors.New("measurement set not found")

// Store persists measurement sets. Put is atomic: a set is either fully
// visible under its label or not visible at all. Re-putting a label replaces
// the previous set wholesale.
type Store interface {
	Put(ctx context.Context, set measure.Set) error
	Get(ctx context.Context, label string) (*measure.Set, error)
	Labels(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, label string) error
	Close() error
}

// Config selects the storage backend.
type Config struct {
	Type string // "file", "sqlite" or "postgres"
	Path string // directory for file, db path for sqlite, DSN for postgres
}

// New creates a Store from the configuration. An empty type defaults to the
// JSON file backend under .benchguard/baselines.
func New(config Config) (Store, error) {
	switch strings.ToLower(config.Type) {
	case "postgres", "postgresql":
		if config.Path == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(config.Path)
	case "sqlite", "sqlite3":
		if config.Path == "" {
			config.Path = ".benchguard/baselines.db"
		}
		return NewSQLiteStore(config.Path)
	case "file", "":
		if config.Path == "" {
			config.Path = ".benchguard/baselines"
		}
		return NewFileStore(config.Path)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}
