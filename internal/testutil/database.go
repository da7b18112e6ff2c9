// Package testutil provides shared fixtures for ledger and aggregate tests.
package testutil

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/Veraticus/hamyon/internal/common"
	"github.com/Veraticus/hamyon/internal/ledger"
	"github.com/Veraticus/hamyon/internal/storage"
)

// TestLedger bundles a store with the blob store behind it.
type TestLedger struct {
	Store *ledger.Store
	Blobs *storage.MemoryStore
}

// NewMemoryLedger creates a ledger over a fresh in-memory blob store.
// Logging is discarded unless the caller passes its own WithLogger option.
func NewMemoryLedger(t *testing.T, opts ...ledger.Option) *TestLedger {
	t.Helper()

	blobs := storage.NewMemoryStore()
	all := append([]ledger.Option{ledger.WithLogger(common.DiscardLogger())}, opts...)
	store := ledger.Open(context.Background(), blobs, all...)

	return &TestLedger{Store: store, Blobs: blobs}
}

// NewSQLiteBlobs creates a migrated SQLite blob store in a temp directory.
func NewSQLiteBlobs(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "hamyon.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// FixedIDs returns a generator that replays ids in order, then repeats the last one.
func FixedIDs(ids ...string) ledger.IDGenerator {
	var n atomic.Int64
	return func() string {
		i := int(n.Add(1)) - 1
		if i >= len(ids) {
			i = len(ids) - 1
		}
		return ids[i]
	}
}
