package payment

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	payments map[string][]Payment
}

// NewMemoryRepository constructs an in-memory payment log.
func NewMemoryRepository() Repository {
	return &memoryRepository{payments: make(map[string][]Payment)}
}

func (r *memoryRepository) Create(_ context.Context, p Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[p.CustomerID] = append(r.payments[p.CustomerID], p)
	return nil
}

func (r *memoryRepository) ListByCustomer(_ context.Context, customerID string) ([]Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.payments[customerID]
	out := make([]Payment, len(stored))
	copy(out, stored)
	// ULIDs sort lexicographically by creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
