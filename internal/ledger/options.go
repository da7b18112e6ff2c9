package ledger

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/Veraticus/hamyon/internal/model"
)

// InputValidator rejects malformed mutation requests before anything is written.
type InputValidator interface {
	Transaction(in model.TransactionInput) error
	Category(in model.CategoryInput) error
}

// IDGenerator returns a new opaque identifier.
type IDGenerator func() string

// Option configures a Store.
type Option func(*Store)

// WithKey stores the document under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithValidator makes the store reject invalid input itself.
func WithValidator(v InputValidator) Option {
	return func(s *Store) {
		s.validator = v
	}
}

// WithLogger sets the logger used for load degradations and mutations.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// newUUID returns time-ordered ids, so creation order survives in the id itself.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
