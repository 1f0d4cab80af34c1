package cart

import (
	"context"
	"log"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Store is the single source of truth for user carts. All mutations are
// total: missing entries are no-ops, never errors. Every mutation is written
// through to the repository before the call returns; a failed write is
// logged and the in-memory state stays authoritative.
type Store struct {
	repo Repository

	mu     sync.RWMutex
	carts  map[int][]Line
	loaded map[int]bool
	sfg    singleflight.Group // dedupes concurrent first loads per user
}

func NewStore(repo Repository) *Store {
	return &Store{
		repo:   repo,
		carts:  make(map[int][]Line),
		loaded: make(map[int]bool),
	}
}

// AddItem inserts a new line with quantity 1, or bumps the quantity of the
// line with the same (product, color, size) tuple. The quantity argument on
// the given line is ignored.
func (s *Store) AddItem(ctx context.Context, userID int, line Line) Change {
	s.ensureLoaded(ctx, userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].matches(line.ProductID, Variant{Color: line.Color, Size: line.Size}) {
			lines[i].Quantity++
			s.carts[userID] = lines
			s.persist(ctx, userID)
			return Change{Kind: ChangeQuantityIncremented, Title: lines[i].Title, Quantity: lines[i].Quantity}
		}
	}

	line.Quantity = 1
	s.carts[userID] = append(lines, line)
	s.persist(ctx, userID)
	return Change{Kind: ChangeAdded, Title: line.Title, Quantity: 1}
}

// RemoveItem deletes the matching line. Removing an absent line is a no-op.
func (s *Store) RemoveItem(ctx context.Context, userID int, productID int, variant Variant) Change {
	s.ensureLoaded(ctx, userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].matches(productID, variant) {
			title := lines[i].Title
			s.carts[userID] = append(lines[:i:i], lines[i+1:]...)
			s.persist(ctx, userID)
			return Change{Kind: ChangeRemoved, Title: title}
		}
	}
	return Change{Kind: ChangeNone}
}

// UpdateQuantity sets the matching line's quantity. A quantity below 1
// removes the line instead; an absent line or an unchanged quantity is a
// no-op.
func (s *Store) UpdateQuantity(ctx context.Context, userID int, productID int, quantity int, variant Variant) Change {
	if quantity < 1 {
		return s.RemoveItem(ctx, userID, productID, variant)
	}

	s.ensureLoaded(ctx, userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].matches(productID, variant) {
			if lines[i].Quantity == quantity {
				return Change{Kind: ChangeNone}
			}
			lines[i].Quantity = quantity
			s.carts[userID] = lines
			s.persist(ctx, userID)
			return Change{Kind: ChangeQuantityUpdated, Title: lines[i].Title, Quantity: quantity}
		}
	}
	return Change{Kind: ChangeNone}
}

// Clear empties the user's cart. The returned change is ChangeCleared only
// when the cart held items and silent is false, so callers notify exactly
// when the original flow would.
func (s *Store) Clear(ctx context.Context, userID int, silent bool) Change {
	s.ensureLoaded(ctx, userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	hadItems := len(s.carts[userID]) > 0
	s.carts[userID] = nil
	if err := s.repo.Delete(ctx, userID); err != nil {
		log.Printf("cart clear persist error for user %d: %v", userID, err)
	}

	if hadItems && !silent {
		return Change{Kind: ChangeCleared}
	}
	return Change{Kind: ChangeNone}
}

// Items returns the cart lines in insertion order.
func (s *Store) Items(ctx context.Context, userID int) []Line {
	s.ensureLoaded(ctx, userID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]Line, len(s.carts[userID]))
	copy(lines, s.carts[userID])
	return lines
}

// Total returns the sum of price times quantity over all lines.
func (s *Store) Total(ctx context.Context, userID int) int64 {
	s.ensureLoaded(ctx, userID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, line := range s.carts[userID] {
		total += line.Price * int64(line.Quantity)
	}
	return total
}

// ItemCount returns the sum of quantities over all lines.
func (s *Store) ItemCount(ctx context.Context, userID int) int {
	s.ensureLoaded(ctx, userID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, line := range s.carts[userID] {
		count += line.Quantity
	}
	return count
}

// GetItem returns the line matching the identity tuple, if any.
func (s *Store) GetItem(ctx context.Context, userID int, productID int, variant Variant) (Line, bool) {
	s.ensureLoaded(ctx, userID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, line := range s.carts[userID] {
		if line.matches(productID, variant) {
			return line, true
		}
	}
	return Line{}, false
}

// ensureLoaded pulls the persisted blob into memory on first access. A load
// failure starts the user with an empty cart rather than surfacing an error.
func (s *Store) ensureLoaded(ctx context.Context, userID int) {
	s.mu.RLock()
	done := s.loaded[userID]
	s.mu.RUnlock()
	if done {
		return
	}

	s.sfg.Do(strconv.Itoa(userID), func() (interface{}, error) {
		lines, err := s.repo.Load(ctx, userID)
		if err != nil {
			log.Printf("cart load error for user %d: %v", userID, err)
			lines = nil
		}

		s.mu.Lock()
		if !s.loaded[userID] {
			s.carts[userID] = lines
			s.loaded[userID] = true
		}
		s.mu.Unlock()
		return nil, nil
	})
}

// persist writes the current lines through to the repository. Callers hold
// the write lock.
func (s *Store) persist(ctx context.Context, userID int) {
	if err := s.repo.Save(ctx, userID, s.carts[userID]); err != nil {
		log.Printf("cart persist error for user %d: %v", userID, err)
	}
}
