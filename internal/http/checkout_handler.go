package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
	"github.com/Manu2954/Buildora-sub000/internal/repository"
)

type CheckoutService interface {
	PlaceOrder(ctx context.Context, userID string, addr domain.ShippingAddress, paymentMethod string) (*domain.Order, error)
}

// OrderReader is the slice of the order repository the storefront needs:
// a shopper's own history, nothing else.
type OrderReader interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string, page, limit int64) ([]*domain.Order, int64, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
	orders   OrderReader
	timeout  time.Duration
}

func NewCheckoutHandler(checkout CheckoutService, orders OrderReader, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		orders:   orders,
		timeout:  timeout,
	}
}

type PlaceOrderRequestDTO struct {
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

type OrderListResponseDTO struct {
	Orders []*domain.Order `json:"orders"`
	Total  int64           `json:"total"`
	Page   int64           `json:"page"`
	Limit  int64           `json:"limit"`
}

// POST /api/v1/orders
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := UserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.checkout.PlaceOrder(ctx, userID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// GET /api/v1/orders
func (h *CheckoutHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := UserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	page, limit := pageParams(r)

	orders, total, err := h.orders.ListByUser(ctx, userID, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}

	respondJSON(w, http.StatusOK, OrderListResponseDTO{
		Orders: orders,
		Total:  total,
		Page:   page,
		Limit:  limit,
	})
}

// GET /api/v1/orders/{order_id}
func (h *CheckoutHandler) GetMyOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := UserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID := chi.URLParam(r, "order_id")

	order, err := h.orders.GetByID(ctx, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// Another shopper's order is indistinguishable from a missing one.
	if order.UserID != userID {
		handleServiceError(w, repository.ErrOrderNotFound)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// pageParams reads page/limit query params with the usual defaults.
func pageParams(r *http.Request) (int64, int64) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
