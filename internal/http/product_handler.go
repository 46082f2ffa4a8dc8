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

type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, int64, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	AddReview(ctx context.Context, productID, userID, userName string, rating int, comment string) error
}

// ProfileReader resolves the display name stamped onto reviews.
type ProfileReader interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

type ProductHandler struct {
	catalog  CatalogService
	profiles ProfileReader
	timeout  time.Duration
}

func NewProductHandler(catalog CatalogService, profiles ProfileReader, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog:  catalog,
		profiles: profiles,
		timeout:  timeout,
	}
}

type ProductListResponseDTO struct {
	Products   []*domain.Product `json:"products"`
	Total      int64             `json:"total"`
	Page       int64             `json:"page"`
	Limit      int64             `json:"limit"`
	TotalPages int64             `json:"totalPages"`
}

type AddReviewRequestDTO struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	page, limit := pageParams(r)

	filter := repository.ProductFilter{
		Category:  q.Get("category"),
		CompanyID: q.Get("company"),
		Search:    q.Get("search"),
		Sort:      q.Get("sort"),
		Page:      page,
		Limit:     limit,
	}

	if raw := q.Get("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := q.Get("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}

	products, total, err := h.catalog.ListProducts(ctx, filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}

	totalPages := total / filter.Limit
	if total%filter.Limit != 0 {
		totalPages++
	}

	respondJSON(w, http.StatusOK, ProductListResponseDTO{
		Products:   products,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	})
}

// GET /api/v1/products/{product_id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")

	product, err := h.catalog.GetProduct(ctx, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// POST /api/v1/products/{product_id}/reviews
func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := UserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID := chi.URLParam(r, "product_id")

	var req AddReviewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, err := h.profiles.Profile(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.catalog.AddReview(ctx, productID, userID, user.Name, req.Rating, req.Comment); err != nil {
		handleServiceError(w, err)
		return
	}

	product, err := h.catalog.GetProduct(ctx, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}
