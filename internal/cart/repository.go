package cart

import (
	"context"
	"sync"
)

// Repository persists one cart blob per user. Implementations must return an
// empty (nil) line slice, not an error, when no blob exists yet.
type Repository interface {
	Load(ctx context.Context, userID int) ([]Line, error)
	Save(ctx context.Context, userID int, lines []Line) error
	Delete(ctx context.Context, userID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	blobs map[int][]Line
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{blobs: make(map[int][]Line)}
}

func (r *InMemoryRepository) Load(_ context.Context, userID int) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.blobs[userID]
	if !ok {
		return nil, nil
	}
	lines := make([]Line, len(stored))
	copy(lines, stored)
	return lines, nil
}

func (r *InMemoryRepository) Save(_ context.Context, userID int, lines []Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]Line, len(lines))
	copy(stored, lines)
	r.blobs[userID] = stored
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.blobs, userID)
	return nil
}
