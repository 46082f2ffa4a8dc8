package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Manu2954/Buildora-sub000/internal/cache"
	"github.com/Manu2954/Buildora-sub000/internal/domain"
	"github.com/Manu2954/Buildora-sub000/internal/pricing"
	"github.com/Manu2954/Buildora-sub000/internal/repository"
)

// PaymentMethodCOD is the only payment method on offer.
const PaymentMethodCOD = "COD"

// CheckoutService converts a cart plus shipping input into a persisted
// order in one shot. The cart is cleared only after the order document
// exists; any failure before that leaves the cart untouched so the
// shopper can retry without re-entering anything.
type CheckoutService struct {
	carts  repository.CartRepository
	orders repository.OrderRepository
	outbox repository.OutboxRepository
	cache  cache.CartCache
	log    zerolog.Logger
}

func NewCheckoutService(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	outbox repository.OutboxRepository,
	cache cache.CartCache,
	log zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:  carts,
		orders: orders,
		outbox: outbox,
		cache:  cache,
		log:    log,
	}
}

// PlaceOrder validates input, snapshots every cart line into an order line
// and persists the order.
//
// TODO: accept a client-supplied idempotency key so a double-clicked or
// retried submit cannot create a duplicate order.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, addr domain.ShippingAddress, paymentMethod string) (*domain.Order, error) {
	if err := validateAddress(addr); err != nil {
		return nil, err
	}
	if paymentMethod != PaymentMethodCOD {
		return nil, ErrInvalidPayment
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]domain.OrderItem, len(cart.Items))
	for i, it := range cart.Items {
		items[i] = domain.OrderItem{
			CartItemID: it.CartItemID,
			ProductID:  it.ProductID,
			VariantID:  it.VariantID,
			Name:       it.Name,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
			ImageURL:   it.ImageURL,
		}
	}

	itemsPrice := pricing.Total(cart.Items)
	order := &domain.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: addr,
		PaymentMethod:   paymentMethod,
		ItemsPrice:      itemsPrice,
		ShippingPrice:   pricing.ShippingPrice,
		TaxPrice:        pricing.TaxPrice,
		TotalPrice:      pricing.OrderTotal(itemsPrice),
		Status:          domain.OrderStatusPending,
	}

	if errCreate := s.orders.Create(ctx, order); errCreate != nil {
		s.log.Error().Err(errCreate).Str("user_id", userID).Msg("order create failed")
		return nil, errCreate
	}

	// The event drives downstream fulfilment. A failed insert surfaces
	// instead of leaving a persisted order with no event behind it; the
	// cart is still intact at this point.
	if errEvent := s.recordOrderPlaced(ctx, order); errEvent != nil {
		s.log.Error().Err(errEvent).Str("order_id", order.ID).Msg("order event record failed")
		return nil, errEvent
	}

	// The order exists from here on; a failed cleanup only means a stale
	// cart, which the shopper can clear themselves.
	if errClear := s.carts.DeleteCart(ctx, userID); errClear != nil && !errors.Is(errClear, repository.ErrCartNotFound) {
		s.log.Warn().Err(errClear).Str("user_id", userID).Str("order_id", order.ID).Msg("cart clear after order failed")
	}
	if errCache := s.cache.DeleteCart(ctx, userID); errCache != nil {
		s.log.Warn().Err(errCache).Str("user_id", userID).Msg("cart cache invalidate after order failed")
	}

	return order, nil
}

func (s *CheckoutService) recordOrderPlaced(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(map[string]interface{}{
		"order_id":    order.ID,
		"user_id":     order.UserID,
		"items":       order.Items,
		"total_price": order.TotalPrice,
		"placed_at":   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	event := &domain.OutboxEvent{
		EventType: domain.EventOrderPlaced,
		Payload:   payload,
	}
	if err := s.outbox.Insert(ctx, event); err != nil {
		return fmt.Errorf("failed to record order event: %w", err)
	}
	return nil
}

func validateAddress(addr domain.ShippingAddress) error {
	fields := map[string]string{
		"street":     addr.Street,
		"city":       addr.City,
		"state":      addr.State,
		"postalCode": addr.PostalCode,
		"country":    addr.Country,
	}
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidAddress, name)
		}
	}
	return nil
}
