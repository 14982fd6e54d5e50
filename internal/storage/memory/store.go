package memory

import (
	"context"
	"sync"

	apperrors "docvault/pkg/errors"
)

const errBlobNotFound = "blob not found"

// Store is an in-memory blob store for tests and DB-less operation.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewStore() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, apperrors.NotFound(errBlobNotFound)
	}

	return append([]byte(nil), data...), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, key)
	return nil
}
