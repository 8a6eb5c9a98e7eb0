package inventory

import (
	"context"
	"sync"

	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
)

// InMemoryRepository implements Repository in process memory. It backs the
// headless simulator and servers started without Redis.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*entities.InventorySnapshot
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*entities.InventorySnapshot),
	}
}

// Get returns a copy of the stored snapshot
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if err := validateKey(input.OwnerID, input.Mode); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, ok := r.store[storageKey(input.OwnerID, input.Mode)]
	if !ok {
		return nil, errors.NotFoundf("inventory for owner %s not found", input.OwnerID)
	}

	return &GetOutput{Snapshot: snap.Clone()}, nil
}

// Save stores a copy of the snapshot
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateKey(input.OwnerID, input.Mode); err != nil {
		return nil, err
	}
	if input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[storageKey(input.OwnerID, input.Mode)] = input.Snapshot.Clone()
	return &SaveOutput{}, nil
}

// Delete removes a snapshot
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := validateKey(input.OwnerID, input.Mode); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := storageKey(input.OwnerID, input.Mode)
	if _, ok := r.store[key]; !ok {
		return nil, errors.NotFoundf("inventory for owner %s not found", input.OwnerID)
	}
	delete(r.store, key)
	return &DeleteOutput{}, nil
}

var _ Repository = (*InMemoryRepository)(nil)
