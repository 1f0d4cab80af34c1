package checkout

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrDeclined is the recoverable outcome of a charge: the cart and form stay
// intact and the customer may retry.
var ErrDeclined = errors.New("Payment processor declined transaction")

type Receipt struct {
	OrderID string
}

// Gateway charges a total amount in the smallest currency unit. A production
// implementation calls a real payment provider; the simulated one below
// stands in for it with the same contract.
type Gateway interface {
	Charge(ctx context.Context, amount int64) (Receipt, error)
}

// SimulatedGateway waits for a fixed delay, then declines a configurable
// fraction of charges at random. The randomness source is injected so tests
// can force either outcome.
type SimulatedGateway struct {
	delay    time.Duration
	failRate float64
	random   func() float64
}

func NewSimulatedGateway(delay time.Duration, failRate float64, random func() float64) *SimulatedGateway {
	if random == nil {
		random = rand.Float64
	}
	return &SimulatedGateway{delay: delay, failRate: failRate, random: random}
}

// NewDefaultGateway mirrors the storefront demo: 1.5s delay, 10% declines.
func NewDefaultGateway() *SimulatedGateway {
	return NewSimulatedGateway(1500*time.Millisecond, 0.1, nil)
}

func (g *SimulatedGateway) Charge(ctx context.Context, _ int64) (Receipt, error) {
	select {
	case <-time.After(g.delay):
	case <-ctx.Done():
		return Receipt{}, ctx.Err()
	}

	if g.random() < g.failRate {
		return Receipt{}, ErrDeclined
	}
	return Receipt{OrderID: newOrderID()}, nil
}

func newOrderID() string {
	return "ord_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
