// Package ledger owns the finance document: it loads it from a blob store,
// applies mutations and writes the whole document back after each one.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/hamyon/internal/common"
	"github.com/Veraticus/hamyon/internal/model"
	"github.com/Veraticus/hamyon/internal/storage"
)

// maxIDAttempts bounds id regeneration when a generator collides.
const maxIDAttempts = 8

// ErrIDExhausted means the id generator kept returning ids already in use.
var ErrIDExhausted = errors.New("could not generate a unique id")

// Store is the single owner of FinanceData for one process.
//
// Reads never fail: a missing or unreadable document degrades to the
// defaults. Writes do fail loudly: when the blob store rejects a write the
// error wraps common.ErrPersist and the in-memory snapshot keeps its
// pre-mutation value.
type Store struct {
	blobs     storage.BlobStore
	validator InputValidator
	logger    *slog.Logger
	newID     IDGenerator
	key       string
	data      model.FinanceData
	revision  uint64
	mu        sync.RWMutex
}

// New creates a store over blobs. The snapshot starts at the defaults; call Load to read.
func New(blobs storage.BlobStore, opts ...Option) *Store {
	s := &Store{
		blobs:  blobs,
		key:    DefaultKey,
		newID:  newUUID,
		logger: slog.Default(),
		data:   model.NewFinanceData(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(common.FieldComponent, "ledger")
	return s
}

// Open creates a store and loads the persisted document.
func Open(ctx context.Context, blobs storage.BlobStore, opts ...Option) *Store {
	s := New(blobs, opts...)
	s.Load(ctx)
	return s
}

// Load reads the durable document and makes it the current snapshot.
// An absent, unreadable or corrupt document yields the defaults.
func (s *Store) Load(ctx context.Context) model.FinanceData {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = s.read(ctx)
	return s.data.Clone()
}

func (s *Store) read(ctx context.Context) model.FinanceData {
	raw, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug("no stored document, using defaults", common.FieldKey, s.key)
		return model.NewFinanceData()
	}
	if err != nil {
		s.logger.Warn("failed to read stored document, using defaults",
			common.FieldKey, s.key, common.FieldError, err)
		return model.NewFinanceData()
	}

	data, err := decodeDocument(raw)
	if err != nil {
		s.logger.Warn("stored document is corrupt, using defaults",
			common.FieldKey, s.key, common.FieldError, err)
		return model.NewFinanceData()
	}
	return data
}

// Snapshot returns a copy of the current document without touching storage.
func (s *Store) Snapshot() model.FinanceData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Revision counts successful mutations since the store was created.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// AddTransaction stores a new transaction under a freshly generated id.
func (s *Store) AddTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error) {
	if s.validator != nil {
		if err := s.validator.Transaction(in); err != nil {
			return model.Transaction{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	id, err := s.uniqueID(next.HasTransaction)
	if err != nil {
		return model.Transaction{}, err
	}

	tx := in.Transaction(id)
	next.Transactions = append(next.Transactions, tx)

	if err := s.commit(ctx, "add_transaction", next); err != nil {
		return model.Transaction{}, err
	}

	common.LogInfo(ctx, s.logger, "added transaction", common.Fields{
		common.FieldTransactionID: tx.ID,
		common.FieldCategoryID:    tx.CategoryID,
		"type":                    string(tx.Type),
		"amount":                  tx.Amount.String(),
		"date":                    tx.Date,
	})
	return tx, nil
}

// ImportTransactions adds many transactions with a single write.
// Either all of them are stored or none are.
func (s *Store) ImportTransactions(ctx context.Context, inputs []model.TransactionInput) ([]model.Transaction, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	if s.validator != nil {
		for i, in := range inputs {
			if err := s.validator.Transaction(in); err != nil {
				return nil, fmt.Errorf("transaction at index %d: %w", i, err)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	seen := make(map[string]bool, len(next.Transactions)+len(inputs))
	for _, t := range next.Transactions {
		seen[t.ID] = true
	}

	added := make([]model.Transaction, 0, len(inputs))
	for _, in := range inputs {
		id, err := s.uniqueID(func(id string) bool { return seen[id] })
		if err != nil {
			return nil, err
		}
		seen[id] = true

		tx := in.Transaction(id)
		next.Transactions = append(next.Transactions, tx)
		added = append(added, tx)
	}

	if err := s.commit(ctx, "import_transactions", next); err != nil {
		return nil, err
	}

	common.LogInfo(ctx, s.logger, "imported transactions", common.Fields{
		"count":              len(added),
		common.FieldRevision: s.revision,
	})
	return added, nil
}

// DeleteTransaction removes the transaction with id. A missing id is a no-op.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	kept := next.Transactions[:0]
	for _, t := range next.Transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(next.Transactions) {
		s.logger.Debug("transaction not found, nothing to delete", common.FieldTransactionID, id)
		return nil
	}
	next.Transactions = kept

	if err := s.commit(ctx, "delete_transaction", next); err != nil {
		return err
	}

	common.LogInfo(ctx, s.logger, "deleted transaction", common.Fields{common.FieldTransactionID: id})
	return nil
}

// AddCategory stores a new user category. Its id never collides with an existing one.
func (s *Store) AddCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	if s.validator != nil {
		if err := s.validator.Category(in); err != nil {
			return model.Category{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	id, err := s.uniqueID(next.HasCategory)
	if err != nil {
		return model.Category{}, err
	}

	cat := in.Category(id)
	next.Categories = append(next.Categories, cat)

	if err := s.commit(ctx, "add_category", next); err != nil {
		return model.Category{}, err
	}

	common.LogInfo(ctx, s.logger, "added category", common.Fields{
		common.FieldCategoryID: cat.ID,
		"name":                 cat.Name,
		"type":                 string(cat.Type),
	})
	return cat, nil
}

// DeleteCategory removes the category with id. Transactions that reference
// it are left as they are. A missing id is a no-op.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	kept := next.Categories[:0]
	for _, c := range next.Categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(next.Categories) {
		s.logger.Debug("category not found, nothing to delete", common.FieldCategoryID, id)
		return nil
	}
	next.Categories = kept

	if err := s.commit(ctx, "delete_category", next); err != nil {
		return err
	}

	common.LogInfo(ctx, s.logger, "deleted category", common.Fields{common.FieldCategoryID: id})
	return nil
}

// Reset removes the persisted document; the snapshot returns to the defaults.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.blobs.Delete(ctx, s.key); err != nil {
		common.LogError(ctx, s.logger, err, "failed to reset stored document", common.Fields{
			common.FieldOperation: "reset",
			common.FieldKey:       s.key,
		})
		return fmt.Errorf("%w: %w", common.ErrPersist, err)
	}

	s.data = model.NewFinanceData()
	s.revision++
	common.LogInfo(ctx, s.logger, "reset finance data", common.Fields{common.FieldRevision: s.revision})
	return nil
}

// commit writes next and, only if that succeeds, makes it the snapshot.
// Callers must hold s.mu.
func (s *Store) commit(ctx context.Context, op string, next model.FinanceData) error {
	raw, err := encodeDocument(next)
	if err != nil {
		return fmt.Errorf("%w: encode document: %w", common.ErrPersist, err)
	}

	if err := s.blobs.Put(ctx, s.key, raw); err != nil {
		common.LogError(ctx, s.logger, err, "failed to persist finance data", common.Fields{
			common.FieldOperation: op,
			common.FieldKey:       s.key,
		})
		return fmt.Errorf("%w: %w", common.ErrPersist, err)
	}

	s.data = next
	s.revision++
	return nil
}

func (s *Store) uniqueID(taken func(string) bool) (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if id != "" && !taken(id) {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
