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

type AdminImageHandler struct {
	repo    repository.ImageRepository
	timeout time.Duration
}

func NewAdminImageHandler(repo repository.ImageRepository, timeout time.Duration) *AdminImageHandler {
	return &AdminImageHandler{repo: repo, timeout: timeout}
}

type RegisterImageRequestDTO struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

type ImageListResponseDTO struct {
	Images []*domain.Image `json:"images"`
	Total  int64           `json:"total"`
	Page   int64           `json:"page"`
	Limit  int64           `json:"limit"`
}

// POST /api/v1/admin/images registers an externally hosted asset in the
// library.
func (h *AdminImageHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req RegisterImageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.URL == "" || req.Filename == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "url and filename are required")
		return
	}

	image := &domain.Image{
		URL:        req.URL,
		Filename:   req.Filename,
		Size:       req.Size,
		UploadedBy: UserIDFromContext(r.Context()),
	}

	if err := h.repo.Create(ctx, image); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, image)
}

// GET /api/v1/admin/images
func (h *AdminImageHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	page, limit := pageParams(r)

	images, total, err := h.repo.List(ctx, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if images == nil {
		images = []*domain.Image{}
	}

	respondJSON(w, http.StatusOK, ImageListResponseDTO{
		Images: images,
		Total:  total,
		Page:   page,
		Limit:  limit,
	})
}

// DELETE /api/v1/admin/images/{image_id}
func (h *AdminImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.repo.Delete(ctx, chi.URLParam(r, "image_id")); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
