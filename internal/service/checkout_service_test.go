package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
)

func validAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		Street:     "14 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
		Country:    "India",
	}
}

func seedCart(t *testing.T, carts *fakeCartRepo, userID string, items ...domain.CartItem) {
	t.Helper()
	require.NoError(t, carts.ReplaceCart(context.Background(), userID, items))
}

func newCheckoutForTest() (*CheckoutService, *fakeCartRepo, *fakeOrderRepo, *fakeOutboxRepo) {
	carts := newFakeCartRepo()
	orders := &fakeOrderRepo{}
	outbox := &fakeOutboxRepo{}
	svc := NewCheckoutService(carts, orders, outbox, &fakeCache{}, zerolog.Nop())
	return svc, carts, orders, outbox
}

func TestPlaceOrderSnapshotsCartAndClearsIt(t *testing.T) {
	svc, carts, orders, _ := newCheckoutForTest()
	ctx := context.Background()

	seedCart(t, carts, "user-1",
		domain.CartItem{CartItemID: "prod-1", ProductID: "prod-1", Name: "Portland Cement", UnitPrice: 350, Quantity: 2},
		domain.CartItem{CartItemID: "prod-2", ProductID: "prod-2", Name: "River Sand", UnitPrice: 80, Quantity: 5},
	)

	order, err := svc.PlaceOrder(ctx, "user-1", validAddress(), PaymentMethodCOD)
	require.NoError(t, err)

	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, float64(350*2+80*5), order.ItemsPrice)
	assert.Equal(t, float64(0), order.ShippingPrice)
	assert.Equal(t, float64(0), order.TaxPrice)
	assert.Equal(t, order.ItemsPrice, order.TotalPrice)
	require.Len(t, orders.orders, 1)

	// Cart is gone once the order exists.
	cart, errGet := carts.GetCart(ctx, "user-1")
	assert.Error(t, errGet)
	assert.Nil(t, cart)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, carts, _, _ := newCheckoutForTest()
	ctx := context.Background()

	// No cart document at all.
	_, err := svc.PlaceOrder(ctx, "user-1", validAddress(), PaymentMethodCOD)
	assert.ErrorIs(t, err, ErrEmptyCart)

	// A cart document with zero lines behaves the same.
	seedCart(t, carts, "user-2")
	_, err = svc.PlaceOrder(ctx, "user-2", validAddress(), PaymentMethodCOD)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderValidatesAddress(t *testing.T) {
	svc, carts, _, _ := newCheckoutForTest()
	seedCart(t, carts, "user-1",
		domain.CartItem{CartItemID: "prod-1", ProductID: "prod-1", UnitPrice: 350, Quantity: 1},
	)

	addr := validAddress()
	addr.City = ""
	_, err := svc.PlaceOrder(context.Background(), "user-1", addr, PaymentMethodCOD)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestPlaceOrderRejectsUnknownPaymentMethod(t *testing.T) {
	svc, carts, _, _ := newCheckoutForTest()
	seedCart(t, carts, "user-1",
		domain.CartItem{CartItemID: "prod-1", ProductID: "prod-1", UnitPrice: 350, Quantity: 1},
	)

	_, err := svc.PlaceOrder(context.Background(), "user-1", validAddress(), "CARD")
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestPlaceOrderRepoFailureLeavesCartIntact(t *testing.T) {
	svc, carts, orders, _ := newCheckoutForTest()
	ctx := context.Background()

	seedCart(t, carts, "user-1",
		domain.CartItem{CartItemID: "prod-1", ProductID: "prod-1", UnitPrice: 350, Quantity: 2},
	)
	orders.createErr = errors.New("write concern failed")

	_, err := svc.PlaceOrder(ctx, "user-1", validAddress(), PaymentMethodCOD)
	require.Error(t, err)

	cart, errGet := carts.GetCart(ctx, "user-1")
	require.NoError(t, errGet)
	assert.Len(t, cart.Items, 1)
}

func TestPlaceOrderOutboxFailureSurfaces(t *testing.T) {
	svc, carts, orders, outbox := newCheckoutForTest()
	ctx := context.Background()

	seedCart(t, carts, "user-1",
		domain.CartItem{CartItemID: "prod-1", ProductID: "prod-1", UnitPrice: 350, Quantity: 2},
	)
	outbox.insertErr = errors.New("write concern failed")

	_, err := svc.PlaceOrder(ctx, "user-1", validAddress(), PaymentMethodCOD)
	require.Error(t, err)

	// The order document was written, but without its event the caller
	// must see the failure, and the cart is not cleared.
	require.Len(t, orders.orders, 1)
	cart, errGet := carts.GetCart(ctx, "user-1")
	require.NoError(t, errGet)
	assert.Len(t, cart.Items, 1)
}

func TestPlaceOrderRecordsOutboxEvent(t *testing.T) {
	svc, carts, _, outbox := newCheckoutForTest()
	ctx := context.Background()

	seedCart(t, carts, "user-1",
		domain.CartItem{CartItemID: "prod-1", ProductID: "prod-1", UnitPrice: 350, Quantity: 2},
	)

	order, err := svc.PlaceOrder(ctx, "user-1", validAddress(), PaymentMethodCOD)
	require.NoError(t, err)

	require.Len(t, outbox.events, 1)
	event := outbox.events[0]
	assert.Equal(t, domain.EventOrderPlaced, event.EventType)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, order.ID, payload["order_id"])
	assert.Equal(t, "user-1", payload["user_id"])
}
