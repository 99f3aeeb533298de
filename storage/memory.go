package storage

import (
	"context"
	"sync"

	"github.com/fhelabs/experiment-registry/interfaces"
)

// MemoryStore is an in-process BlobStore used in tests and local
// development. Writes are immediate and always accepted.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// GetData returns the blob stored under key, or ErrNotFound for absent or
// empty keys.
func (s *MemoryStore) GetData(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok || len(data) == 0 {
		return nil, interfaces.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// SetData stores value under key.
func (s *MemoryStore) SetData(ctx context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.data[key] = stored
	s.mu.Unlock()
	return nil
}

// Available always reports true.
func (s *MemoryStore) Available(ctx context.Context) bool {
	return true
}

// Name returns an identifier for logging.
func (s *MemoryStore) Name() string {
	return "memory"
}

// LocationURI returns the URI that identifies this store.
func (s *MemoryStore) LocationURI() string {
	return "memory://"
}

// Keys returns all keys currently held, for test assertions.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
