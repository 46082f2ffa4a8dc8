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

type AdminUserHandler struct {
	repo    repository.UserRepository
	timeout time.Duration
}

func NewAdminUserHandler(repo repository.UserRepository, timeout time.Duration) *AdminUserHandler {
	return &AdminUserHandler{repo: repo, timeout: timeout}
}

type SetUserActiveRequestDTO struct {
	IsActive bool `json:"isActive"`
}

type UserListResponseDTO struct {
	Users []*domain.User `json:"users"`
	Total int64          `json:"total"`
	Page  int64          `json:"page"`
	Limit int64          `json:"limit"`
}

// GET /api/v1/admin/users
func (h *AdminUserHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	page, limit := pageParams(r)

	users, total, err := h.repo.List(ctx, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}

	respondJSON(w, http.StatusOK, UserListResponseDTO{
		Users: users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// PUT /api/v1/admin/users/{user_id}/active
func (h *AdminUserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := chi.URLParam(r, "user_id")

	var req SetUserActiveRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.repo.SetActive(ctx, userID, req.IsActive); err != nil {
		handleServiceError(w, err)
		return
	}

	user, err := h.repo.GetByID(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
