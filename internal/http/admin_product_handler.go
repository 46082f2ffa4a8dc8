package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
	"github.com/Manu2954/Buildora-sub000/internal/service"
)

// CatalogAdminService is the write side of the catalog.
type CatalogAdminService interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	SetProductActive(ctx context.Context, productID string, active bool) error
}

type BulkUploadService interface {
	Upload(ctx context.Context, companyID string, r io.Reader) (*service.BulkReport, error)
}

type AdminProductHandler struct {
	catalog     CatalogAdminService
	bulk        BulkUploadService
	timeout     time.Duration
	maxBodySize int64
}

func NewAdminProductHandler(catalog CatalogAdminService, bulk BulkUploadService, timeout time.Duration, maxBodySize int64) *AdminProductHandler {
	return &AdminProductHandler{
		catalog:     catalog,
		bulk:        bulk,
		timeout:     timeout,
		maxBodySize: maxBodySize,
	}
}

type ProductRequestDTO struct {
	CompanyID   string           `json:"companyId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Brand       string           `json:"brand"`
	Images      []string         `json:"images"`
	BasePrice   float64          `json:"basePrice"`
	Variants    []domain.Variant `json:"variants"`
	IsActive    bool             `json:"isActive"`
}

func (dto ProductRequestDTO) validate() string {
	switch {
	case dto.Name == "":
		return "name is required"
	case dto.CompanyID == "":
		return "companyId is required"
	case dto.BasePrice <= 0:
		return "basePrice must be positive"
	default:
		for _, v := range dto.Variants {
			if v.Name == "" || v.Price <= 0 {
				return "variants need a name and a positive price"
			}
		}
		return ""
	}
}

// POST /api/v1/admin/products
func (h *AdminProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	product := req.toDomain("")

	if err := h.catalog.CreateProduct(ctx, product); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

// PUT /api/v1/admin/products/{product_id}
func (h *AdminProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	product := req.toDomain(productID)

	if err := h.catalog.UpdateProduct(ctx, product); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// DELETE /api/v1/admin/products/{product_id} is a soft delete.
func (h *AdminProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.catalog.SetProductActive(ctx, chi.URLParam(r, "product_id"), false); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// POST /api/v1/admin/companies/{company_id}/products/bulk
// Body is the raw CSV sheet.
func (h *AdminProductHandler) BulkUpload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	companyID := chi.URLParam(r, "company_id")

	body := http.MaxBytesReader(w, r.Body, h.maxBodySize)
	defer body.Close()

	report, err := h.bulk.Upload(ctx, companyID, body)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func (dto ProductRequestDTO) toDomain(id string) *domain.Product {
	return &domain.Product{
		ID:          id,
		CompanyID:   dto.CompanyID,
		Name:        dto.Name,
		Description: dto.Description,
		Category:    dto.Category,
		Brand:       dto.Brand,
		Images:      dto.Images,
		BasePrice:   dto.BasePrice,
		Variants:    dto.Variants,
		IsActive:    dto.IsActive,
	}
}
