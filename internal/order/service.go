package order

import (
	"context"
	"time"

	"github.com/mehkova/storefront-backend/internal/cart"
)

// Service provides business logic for orders.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record stores the outcome of a successful checkout. It satisfies the
// checkout orchestrator's OrderLog dependency.
func (s *Service) Record(_ context.Context, userID int, reference string, lines []cart.Line, total int64) error {
	quantity := 0
	productIDs := make([]int, 0, len(lines))
	for _, line := range lines {
		quantity += line.Quantity
		productIDs = append(productIDs, line.ProductID)
	}

	_, err := s.repo.Create(Order{
		UserID:     userID,
		Reference:  reference,
		Lines:      lines,
		ProductIDs: productIDs,
		Quantity:   quantity,
		Total:      total,
		Status:     "paid",
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	})
	return err
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

// GetByReference looks an order up by its gateway reference, restricted to
// its owner.
func (s *Service) GetByReference(userID int, reference string) (Order, error) {
	ord, err := s.repo.GetByReference(reference)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != userID {
		return Order{}, ErrNotFound
	}
	return ord, nil
}
