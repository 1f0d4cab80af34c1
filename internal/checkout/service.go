package checkout

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/mehkova/storefront-backend/internal/cart"
	"github.com/mehkova/storefront-backend/internal/notify"
)

var ErrCheckoutInProgress = errors.New("checkout already in progress")

// Cart is the slice of the cart store the orchestrator needs.
type Cart interface {
	Items(ctx context.Context, userID int) []cart.Line
	Total(ctx context.Context, userID int) int64
	ItemCount(ctx context.Context, userID int) int
	Clear(ctx context.Context, userID int, silent bool) cart.Change
}

// OrderLog records completed checkouts.
type OrderLog interface {
	Record(ctx context.Context, userID int, reference string, lines []cart.Line, total int64) error
}

// Service coordinates form validation, the payment attempt and post-payment
// cart clearing. Per user it is a small state machine: idle -> validating ->
// processing -> idle, with the cart mutated only after a successful charge.
type Service struct {
	cart     Cart
	orders   OrderLog
	gateway  Gateway
	notifier notify.Notifier

	mu         sync.Mutex
	processing map[int]bool
}

func NewService(c Cart, orders OrderLog, gateway Gateway, notifier notify.Notifier) *Service {
	return &Service{
		cart:       c,
		orders:     orders,
		gateway:    gateway,
		notifier:   notifier,
		processing: make(map[int]bool),
	}
}

// ValidateForm runs the field checks and rejects checkouts of an empty
// cart. An empty map means the form is acceptable.
func (s *Service) ValidateForm(ctx context.Context, userID int, form Form) map[string]string {
	errs := ValidateForm(form)
	if s.cart.ItemCount(ctx, userID) == 0 {
		errs["cart"] = "Your cart is empty"
	}
	return errs
}

// ProcessOrder re-validates, charges the gateway and on success records the
// order and clears the cart. Field errors are returned without any side
// effects and without touching the gateway. The processing flag is always
// reset, whatever the outcome.
func (s *Service) ProcessOrder(ctx context.Context, userID int, form Form) (string, map[string]string, error) {
	if errs := s.ValidateForm(ctx, userID, form); len(errs) > 0 {
		return "", errs, nil
	}

	if !s.begin(userID) {
		return "", nil, ErrCheckoutInProgress
	}
	defer s.end(userID)

	lines := s.cart.Items(ctx, userID)
	total := s.cart.Total(ctx, userID)

	receipt, err := s.gateway.Charge(ctx, total)
	if err != nil {
		if errors.Is(err, ErrDeclined) {
			s.notifier.Error(err.Error())
			return "", nil, err
		}
		s.notifier.Error("An unexpected error occurred")
		return "", nil, err
	}

	if err := s.orders.Record(ctx, userID, receipt.OrderID, lines, total); err != nil {
		// the charge went through; losing the history row must not fail
		// the checkout
		log.Printf("order record error for user %d: %v", userID, err)
	}

	s.notifier.Success("Order completed successfully!")
	s.cart.Clear(ctx, userID, true)

	return receipt.OrderID, nil, nil
}

func (s *Service) begin(userID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing[userID] {
		return false
	}
	s.processing[userID] = true
	return true
}

func (s *Service) end(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.processing, userID)
}
