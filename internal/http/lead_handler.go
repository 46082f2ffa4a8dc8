package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
	"github.com/Manu2954/Buildora-sub000/internal/repository"
)

type LeadHandler struct {
	repo    repository.LeadRepository
	timeout time.Duration
}

func NewLeadHandler(repo repository.LeadRepository, timeout time.Duration) *LeadHandler {
	return &LeadHandler{repo: repo, timeout: timeout}
}

type CreateLeadRequestDTO struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	ProductID string `json:"productId"`
}

type UpdateLeadStatusRequestDTO struct {
	Status string `json:"status"`
}

type LeadListResponseDTO struct {
	Leads []*domain.Lead `json:"leads"`
	Total int64          `json:"total"`
	Page  int64          `json:"page"`
	Limit int64          `json:"limit"`
}

// POST /api/v1/leads is open to anonymous visitors.
func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateLeadRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Name == "" || req.Phone == "" || req.Message == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name, phone and message are required")
		return
	}

	lead := &domain.Lead{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Message:   req.Message,
		ProductID: req.ProductID,
	}

	if err := h.repo.Create(ctx, lead); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, lead)
}

// GET /api/v1/admin/leads
func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	page, limit := pageParams(r)
	status := domain.LeadStatus(r.URL.Query().Get("status"))

	leads, total, err := h.repo.List(ctx, status, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if leads == nil {
		leads = []*domain.Lead{}
	}

	respondJSON(w, http.StatusOK, LeadListResponseDTO{
		Leads: leads,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// PUT /api/v1/admin/leads/{lead_id}/status
func (h *LeadHandler) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	leadID := chi.URLParam(r, "lead_id")

	var req UpdateLeadStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	status := domain.LeadStatus(req.Status)
	switch status {
	case domain.LeadStatusNew, domain.LeadStatusContacted, domain.LeadStatusClosed:
	default:
		respondError(w, http.StatusBadRequest, "invalid_status", "status must be NEW, CONTACTED or CLOSED")
		return
	}

	if err := h.repo.UpdateStatus(ctx, leadID, status); err != nil {
		handleServiceError(w, err)
		return
	}

	lead, err := h.repo.GetByID(ctx, leadID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lead)
}
