package memory

import (
	"context"
	"sync"
)

// Store implements ports.Store in process memory. Values are lost on exit.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set overwrites the value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
