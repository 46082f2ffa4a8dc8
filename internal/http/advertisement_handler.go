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

type AdvertisementHandler struct {
	repo    repository.AdvertisementRepository
	timeout time.Duration
}

func NewAdvertisementHandler(repo repository.AdvertisementRepository, timeout time.Duration) *AdvertisementHandler {
	return &AdvertisementHandler{repo: repo, timeout: timeout}
}

type AdvertisementRequestDTO struct {
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	TargetURL string    `json:"targetUrl"`
	Placement string    `json:"placement"`
	IsActive  bool      `json:"isActive"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
}

func (dto AdvertisementRequestDTO) validate() string {
	switch {
	case dto.Title == "":
		return "title is required"
	case dto.ImageURL == "":
		return "imageUrl is required"
	case dto.Placement == "":
		return "placement is required"
	case !dto.EndsAt.After(dto.StartsAt):
		return "endsAt must be after startsAt"
	default:
		return ""
	}
}

// GET /api/v1/advertisements?placement= returns currently live ads only.
func (h *AdvertisementHandler) ListLive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ads, err := h.repo.ListLive(ctx, r.URL.Query().Get("placement"), time.Now())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if ads == nil {
		ads = []*domain.Advertisement{}
	}

	respondJSON(w, http.StatusOK, ads)
}

// GET /api/v1/admin/advertisements
func (h *AdvertisementHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ads, err := h.repo.List(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if ads == nil {
		ads = []*domain.Advertisement{}
	}

	respondJSON(w, http.StatusOK, ads)
}

// POST /api/v1/admin/advertisements
func (h *AdvertisementHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AdvertisementRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	ad := &domain.Advertisement{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Placement: req.Placement,
		IsActive:  req.IsActive,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	}

	if err := h.repo.Create(ctx, ad); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, ad)
}

// PUT /api/v1/admin/advertisements/{ad_id}
func (h *AdvertisementHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	adID := chi.URLParam(r, "ad_id")

	var req AdvertisementRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	ad := &domain.Advertisement{
		ID:        adID,
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Placement: req.Placement,
		IsActive:  req.IsActive,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	}

	if err := h.repo.Update(ctx, ad); err != nil {
		handleServiceError(w, err)
		return
	}

	updated, err := h.repo.GetByID(ctx, adID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DELETE /api/v1/admin/advertisements/{ad_id}
func (h *AdvertisementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.repo.Delete(ctx, chi.URLParam(r, "ad_id")); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
