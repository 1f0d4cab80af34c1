package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehkova/storefront-backend/internal/cart"
	"github.com/mehkova/storefront-backend/internal/notify"
	"github.com/mehkova/storefront-backend/internal/order"
)

// stubGateway returns scripted outcomes and counts invocations.
type stubGateway struct {
	charges  int
	receipts []Receipt
	err      error
}

func (g *stubGateway) Charge(context.Context, int64) (Receipt, error) {
	g.charges++
	if g.err != nil {
		return Receipt{}, g.err
	}
	r := g.receipts[0]
	if len(g.receipts) > 1 {
		g.receipts = g.receipts[1:]
	}
	return r, nil
}

type checkoutFixture struct {
	service  *Service
	store    *cart.Store
	orders   *order.InMemoryRepository
	gateway  *stubGateway
	recorder *notify.Recorder
}

func newFixture(gateway *stubGateway) *checkoutFixture {
	store := cart.NewStore(cart.NewInMemoryRepository())
	orders := order.NewInMemoryRepository()
	recorder := notify.NewRecorder()
	return &checkoutFixture{
		service:  NewService(store, order.NewService(orders), gateway, recorder),
		store:    store,
		orders:   orders,
		gateway:  gateway,
		recorder: recorder,
	}
}

func fillCart(store *cart.Store, userID int) {
	store.AddItem(context.Background(), userID, cart.Line{ProductID: 1, Title: "X", Price: 1000, Image: "i"})
	store.AddItem(context.Background(), userID, cart.Line{ProductID: 1, Title: "X", Price: 1000, Image: "i"})
}

func TestProcessOrder_EmptyCart(t *testing.T) {
	fx := newFixture(&stubGateway{receipts: []Receipt{{OrderID: "ord_abc12345"}}})

	_, fieldErrs, err := fx.service.ProcessOrder(context.Background(), 1, validCardForm())
	require.NoError(t, err)
	assert.Contains(t, fieldErrs, "cart")
	assert.Zero(t, fx.gateway.charges, "gateway must not be invoked for an empty cart")
}

func TestProcessOrder_InvalidExpirySkipsGateway(t *testing.T) {
	fx := newFixture(&stubGateway{receipts: []Receipt{{OrderID: "ord_abc12345"}}})
	fillCart(fx.store, 1)

	form := validCardForm()
	form.CardExpiry = "13/25"

	_, fieldErrs, err := fx.service.ProcessOrder(context.Background(), 1, form)
	require.NoError(t, err)
	assert.Contains(t, fieldErrs, "cardExpiry")
	assert.Zero(t, fx.gateway.charges, "gateway must not be invoked when validation fails")
	assert.Equal(t, 2, fx.store.ItemCount(context.Background(), 1), "cart untouched on validation failure")
}

func TestProcessOrder_Success(t *testing.T) {
	fx := newFixture(&stubGateway{receipts: []Receipt{{OrderID: "ord_abc12345"}}})
	fillCart(fx.store, 1)

	orderID, fieldErrs, err := fx.service.ProcessOrder(context.Background(), 1, validCardForm())
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, "ord_abc12345", orderID)

	// cart cleared exactly once and silently: the only notification is the
	// order confirmation
	assert.Zero(t, fx.store.ItemCount(context.Background(), 1))
	assert.Equal(t, []string{"Order completed successfully!"}, fx.recorder.Successes())

	recorded, err := fx.orders.ListByUser(1)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, "ord_abc12345", recorded[0].Reference)
	assert.Equal(t, int64(2000), recorded[0].Total)
	assert.Equal(t, 2, recorded[0].Quantity)
	assert.Equal(t, "paid", recorded[0].Status)
}

func TestProcessOrder_Decline(t *testing.T) {
	fx := newFixture(&stubGateway{err: ErrDeclined})
	fillCart(fx.store, 1)

	_, fieldErrs, err := fx.service.ProcessOrder(context.Background(), 1, validCardForm())
	assert.Empty(t, fieldErrs)
	assert.ErrorIs(t, err, ErrDeclined)

	// decline leaves the cart for a retry and surfaces exactly one error
	assert.Equal(t, 2, fx.store.ItemCount(context.Background(), 1))
	assert.Equal(t, []string{ErrDeclined.Error()}, fx.recorder.Errors())

	recorded, _ := fx.orders.ListByUser(1)
	assert.Empty(t, recorded)
}

func TestProcessOrder_UnexpectedError(t *testing.T) {
	boom := errors.New("gateway connection reset")
	fx := newFixture(&stubGateway{err: boom})
	fillCart(fx.store, 1)

	_, _, err := fx.service.ProcessOrder(context.Background(), 1, validCardForm())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"An unexpected error occurred"}, fx.recorder.Errors())
	assert.Equal(t, 2, fx.store.ItemCount(context.Background(), 1))

	// processing state was reset: a retry reaches the gateway again
	fx.gateway.err = nil
	fx.gateway.receipts = []Receipt{{OrderID: "ord_retry123"}}
	orderID, _, err := fx.service.ProcessOrder(context.Background(), 1, validCardForm())
	require.NoError(t, err)
	assert.Equal(t, "ord_retry123", orderID)
}

func TestProcessOrder_RepeatedWithRandomDeclines(t *testing.T) {
	// deterministic 1-in-5 decline schedule through the simulated gateway
	tick := 0
	gateway := NewSimulatedGateway(0, 0.1, func() float64 {
		tick++
		if tick%5 == 0 {
			return 0.05 // below the fail rate: decline
		}
		return 0.95
	})

	store := cart.NewStore(cart.NewInMemoryRepository())
	orders := order.NewInMemoryRepository()
	service := NewService(store, order.NewService(orders), gateway, notify.NewRecorder())

	ctx := context.Background()
	seen := make(map[string]bool)
	successes, declines := 0, 0
	for i := 0; i < 50; i++ {
		if store.ItemCount(ctx, 1) == 0 {
			fillCart(store, 1)
		}

		orderID, fieldErrs, err := service.ProcessOrder(ctx, 1, validCardForm())
		require.Empty(t, fieldErrs)
		if errors.Is(err, ErrDeclined) {
			declines++
			assert.Equal(t, 2, store.ItemCount(ctx, 1), "decline must leave the cart intact")
			continue
		}
		require.NoError(t, err)
		successes++
		assert.False(t, seen[orderID], "order ids must be distinct")
		seen[orderID] = true
		assert.Zero(t, store.ItemCount(ctx, 1), "success must clear the cart")
	}

	assert.Equal(t, 40, successes)
	assert.Equal(t, 10, declines)
	recorded, _ := orders.ListByUser(1)
	assert.Len(t, recorded, 40)
}

func TestProcessOrder_GuardsConcurrentCheckout(t *testing.T) {
	fx := newFixture(&stubGateway{receipts: []Receipt{{OrderID: "ord_abc12345"}}})
	fillCart(fx.store, 1)

	if !fx.service.begin(1) {
		t.Fatal("expected to acquire the processing slot")
	}
	_, _, err := fx.service.ProcessOrder(context.Background(), 1, validCardForm())
	assert.ErrorIs(t, err, ErrCheckoutInProgress)
	assert.Zero(t, fx.gateway.charges)
	fx.service.end(1)

	// other users are unaffected by user 1's in-flight checkout
	fillCart(fx.store, 2)
	_, fieldErrs, err := fx.service.ProcessOrder(context.Background(), 2, validCardForm())
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)
}

func TestValidateForm_EmptyCart(t *testing.T) {
	fx := newFixture(&stubGateway{})

	errs := fx.service.ValidateForm(context.Background(), 1, validCardForm())
	assert.Contains(t, errs, "cart")

	fillCart(fx.store, 1)
	errs = fx.service.ValidateForm(context.Background(), 1, validCardForm())
	assert.Empty(t, errs)
}
