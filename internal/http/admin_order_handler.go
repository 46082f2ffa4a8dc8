package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
	"github.com/Manu2954/Buildora-sub000/internal/repository"
	"github.com/Manu2954/Buildora-sub000/internal/service"
)

type AdminOrderHandler struct {
	repo    repository.OrderRepository
	timeout time.Duration
}

func NewAdminOrderHandler(repo repository.OrderRepository, timeout time.Duration) *AdminOrderHandler {
	return &AdminOrderHandler{repo: repo, timeout: timeout}
}

type UpdateOrderStatusRequestDTO struct {
	Status string `json:"status"`
}

// GET /api/v1/admin/orders
func (h *AdminOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	page, limit := pageParams(r)
	status := domain.OrderStatus(r.URL.Query().Get("status"))

	orders, total, err := h.repo.ListAll(ctx, status, page, limit)
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

// GET /api/v1/admin/orders/{order_id}
func (h *AdminOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.repo.GetByID(ctx, chi.URLParam(r, "order_id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// PUT /api/v1/admin/orders/{order_id}/status
func (h *AdminOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID := chi.URLParam(r, "order_id")

	var req UpdateOrderStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	next := domain.OrderStatus(req.Status)
	switch next {
	case domain.OrderStatusProcessing, domain.OrderStatusShipped,
		domain.OrderStatusDelivered, domain.OrderStatusCancelled:
	default:
		respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}

	order, err := h.repo.GetByID(ctx, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if !order.Status.CanTransitionTo(next) {
		handleServiceError(w, service.ErrIllegalTransition)
		return
	}

	if err := h.repo.UpdateStatus(ctx, orderID, next); err != nil {
		handleServiceError(w, err)
		return
	}

	order.Status = next
	respondJSON(w, http.StatusOK, order)
}
