// Package storage provides the durable key-value blob stores that back the ledger.
package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/hamyon/internal/common"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = common.ErrNotFound

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Backends lists every supported backend.
var Backends = []string{BackendSQLite, BackendFile, BackendMemory}

// BlobStore is a synchronous key-value store of opaque documents.
// Put replaces the whole value; there is no partial update.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Path is the database file for sqlite and the directory for file.
	Path string
}

// Open creates the configured blob store, running migrations where needed.
func Open(ctx context.Context, opts Options) (BlobStore, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	switch opts.Backend {
	case BackendSQLite, "":
		store, err := NewSQLiteStore(opts.Path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil
	case BackendFile:
		return NewFileStore(opts.Path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, opts.Backend)
	}
}
