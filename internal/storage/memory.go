package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process BlobStore. Values are copied on the way in and out.
type MemoryStore struct {
	values    map[string][]byte
	failWrite error
	mu        sync.RWMutex
	puts      int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Get returns a copy of the value under key.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateCall(ctx, key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value, or returns the injected write failure.
func (s *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	if err := validateCall(ctx, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrite != nil {
		return s.failWrite
	}
	s.values[key] = append([]byte(nil), value...)
	s.puts++
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := validateCall(ctx, key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrite != nil {
		return s.failWrite
	}
	delete(s.values, key)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

// FailWrites makes every later Put and Delete return err. Pass nil to heal.
func (s *MemoryStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrite = err
}

// Puts reports how many successful writes the store has accepted.
func (s *MemoryStore) Puts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puts
}

// Set stores raw bytes directly, bypassing failure injection.
func (s *MemoryStore) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
}
