package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/Manu2954/Buildora-sub000/internal/cache"
	"github.com/Manu2954/Buildora-sub000/internal/domain"
	"github.com/Manu2954/Buildora-sub000/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CatalogService serves the storefront read path (cached, singleflighted)
// and the admin write path (which invalidates the cache it serves from).
type CatalogService struct {
	repo  repository.ProductRepository
	cache cache.ProductCache
	log   zerolog.Logger
	sfg   singleflight.Group
}

func NewCatalogService(repo repository.ProductRepository, cache cache.ProductCache, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListProducts normalizes paging before hitting the repository: page and
// limit get sane defaults and limit is capped.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	filter.Search = strings.TrimSpace(filter.Search)

	return s.repo.List(ctx, filter)
}

func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	v, err, _ := s.sfg.Do(productID, func() (interface{}, error) {

		product, err := s.cache.GetProduct(ctx, productID)
		if err == nil {
			return product, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn().Err(err).Str("product_id", productID).Msg("product cache get failed")
		}

		product, errGet := s.repo.GetByID(ctx, productID)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.SetProduct(context.Background(), productID, product); errSet != nil {
				s.log.Warn().Err(errSet).Str("product_id", productID).Msg("product cache set failed")
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	product := v.(*domain.Product)
	if !product.IsActive {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

// AddReview enforces one review per user per product and folds the new
// rating into the stored aggregate.
func (s *CatalogService) AddReview(ctx context.Context, productID, userID, userName string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return repository.ErrProductNotFound
	}
	if product.HasReviewBy(userID) {
		return ErrDuplicateReview
	}

	review := domain.Review{
		UserID:    userID,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	count := product.Ratings.Count + 1
	average := (product.Ratings.Average*float64(product.Ratings.Count) + float64(rating)) / float64(count)
	ratings := domain.Ratings{Average: average, Count: count}

	if err := s.repo.AddReview(ctx, productID, review, ratings); err != nil {
		return err
	}

	s.invalidate(productID)
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	return s.repo.Create(ctx, product)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}
	s.invalidate(product.ID)
	return nil
}

// SetProductActive is the soft delete: deactivated products disappear
// from listings and lookups but stay referenced by order history.
func (s *CatalogService) SetProductActive(ctx context.Context, productID string, active bool) error {
	if err := s.repo.SetActive(ctx, productID, active); err != nil {
		return err
	}
	s.invalidate(productID)
	return nil
}

func (s *CatalogService) invalidate(productID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.DeleteProduct(ctx, productID); err != nil {
		s.log.Warn().Err(err).Str("product_id", productID).Msg("product cache invalidate failed")
	}
}
