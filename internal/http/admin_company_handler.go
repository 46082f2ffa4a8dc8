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

type CompanyHandler struct {
	repo    repository.CompanyRepository
	timeout time.Duration
}

func NewCompanyHandler(repo repository.CompanyRepository, timeout time.Duration) *CompanyHandler {
	return &CompanyHandler{repo: repo, timeout: timeout}
}

type CompanyRequestDTO struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	LogoURL      string `json:"logoUrl"`
	Address      string `json:"address"`
	ContactEmail string `json:"contactEmail"`
	IsActive     bool   `json:"isActive"`
}

type CompanyListResponseDTO struct {
	Companies []*domain.Company `json:"companies"`
	Total     int64             `json:"total"`
	Page      int64             `json:"page"`
	Limit     int64             `json:"limit"`
}

// GET /api/v1/admin/companies
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	page, limit := pageParams(r)

	companies, total, err := h.repo.List(ctx, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if companies == nil {
		companies = []*domain.Company{}
	}

	respondJSON(w, http.StatusOK, CompanyListResponseDTO{
		Companies: companies,
		Total:     total,
		Page:      page,
		Limit:     limit,
	})
}

// GET /api/v1/admin/companies/{company_id}
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	company, err := h.repo.GetByID(ctx, chi.URLParam(r, "company_id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, company)
}

// POST /api/v1/admin/companies
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CompanyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	company := &domain.Company{
		Name:         req.Name,
		Description:  req.Description,
		LogoURL:      req.LogoURL,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		IsActive:     req.IsActive,
	}

	if err := h.repo.Create(ctx, company); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, company)
}

// PUT /api/v1/admin/companies/{company_id}
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	companyID := chi.URLParam(r, "company_id")

	var req CompanyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	company := &domain.Company{
		ID:           companyID,
		Name:         req.Name,
		Description:  req.Description,
		LogoURL:      req.LogoURL,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
		IsActive:     req.IsActive,
	}

	if err := h.repo.Update(ctx, company); err != nil {
		handleServiceError(w, err)
		return
	}

	updated, err := h.repo.GetByID(ctx, companyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DELETE /api/v1/admin/companies/{company_id}
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.repo.Delete(ctx, chi.URLParam(r, "company_id")); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
