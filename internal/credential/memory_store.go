package credential

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore builds an in-memory credential store. Writes to the same
// customer are serialized by the mutex, so a reader never observes a record
// mixing fields from two concurrent puts.
func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string]Record)}
}

func (s *memoryStore) Put(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[rec.CustomerID]; ok {
		rec.CreatedAt = existing.CreatedAt
	}
	s.records[rec.CustomerID] = rec
	return nil
}

func (s *memoryStore) Get(_ context.Context, customerID string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[customerID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}
