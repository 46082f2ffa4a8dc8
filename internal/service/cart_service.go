package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/Manu2954/Buildora-sub000/internal/cache"
	"github.com/Manu2954/Buildora-sub000/internal/domain"
	"github.com/Manu2954/Buildora-sub000/internal/repository"
)

// CartService owns the authoritative view of what each shopper intends to
// buy. All mutations funnel through its named operations; derived totals
// are computed by the pricing package at read time, never stored.
type CartService struct {
	repo     repository.CartRepository
	products repository.ProductRepository
	cache    cache.CartCache
	log      zerolog.Logger
	sfg      singleflight.Group // Prevents cache stampede
}

func NewCartService(repo repository.CartRepository, products repository.ProductRepository, cache cache.CartCache, log zerolog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		products: products,
		cache:    cache,
		log:      log,
	}
}

// GetCart never fails on a missing cart: a shopper who has added nothing
// simply has an empty one. Malformed cache entries are treated as misses.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {

		cart, err := s.cache.GetCart(ctx, userID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("cart cache get failed")
		}

		cart, errGet := s.repo.GetCart(ctx, userID)
		if errGet != nil && errors.Is(errGet, repository.ErrCartNotFound) {
			return s.emptyCart(userID), nil
		}
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			if errSet := s.cache.SetCart(context.Background(), userID, cart); errSet != nil {
				s.log.Warn().Err(errSet).Str("user_id", userID).Msg("cart cache set failed")
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddItem resolves the product/variant so unit price, name and image come
// from the catalog, not the client. Adding a line that already exists
// increments its quantity.
func (s *CartService) AddItem(ctx context.Context, userID, productID, variantID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return repository.ErrProductNotFound
	}

	price := product.BasePrice
	name := product.Name
	if variantID != "" {
		variant := product.Variant(variantID)
		if variant == nil {
			return ErrVariantNotFound
		}
		price = variant.Price
		name = fmt.Sprintf("%s (%s)", product.Name, variant.Name)
	}

	var imageURL string
	if len(product.Images) > 0 {
		imageURL = product.Images[0]
	}

	item := domain.CartItem{
		CartItemID: domain.CartItemKey(productID, variantID),
		ProductID:  productID,
		VariantID:  variantID,
		Name:       name,
		UnitPrice:  price,
		Quantity:   quantity,
		ImageURL:   imageURL,
	}

	if errAdd := s.repo.AddItem(ctx, userID, item); errAdd != nil {
		s.log.Error().Err(errAdd).Str("user_id", userID).Msg("repo add item failed")
		return errAdd
	}

	s.invalidateCache(userID)
	return nil
}

// UpdateQuantity sets the line to exactly quantity, with no upper bound.
// Stock limits are a display-time concern, not a cart concern. A quantity
// of zero or less drops the line entirely rather than leaving a dead
// entry behind.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, cartItemID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, cartItemID)
	}

	if err := s.repo.UpdateItemQuantity(ctx, userID, cartItemID, quantity); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("repo update quantity failed")
		return err
	}

	s.invalidateCache(userID)
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, cartItemID string) error {
	if err := s.repo.RemoveItem(ctx, userID, cartItemID); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("repo remove item failed")
		return err
	}

	s.invalidateCache(userID)
	return nil
}

// ClearCart is idempotent: clearing an already-empty cart succeeds.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	err := s.repo.DeleteCart(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		s.log.Error().Err(err).Str("user_id", userID).Msg("repo delete cart failed")
		return err
	}

	s.invalidateCache(userID)
	return nil
}

// ReplaceCart swaps the whole cart wholesale, the path a client uses to
// sync a locally held cart at startup. Only product IDs, variant IDs and
// quantities are taken from the client; every line is rebuilt from the
// catalog so a synced cart cannot carry tampered prices into checkout.
// Lines with unknown or inactive products, unknown variants, or
// non-positive quantities are dropped; duplicate keys merge by summing.
func (s *CartService) ReplaceCart(ctx context.Context, userID string, items []domain.CartItem) error {
	sanitized, err := s.resolveItems(ctx, items)
	if err != nil {
		return err
	}

	if err := s.repo.ReplaceCart(ctx, userID, sanitized); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("repo replace cart failed")
		return err
	}

	s.invalidateCache(userID)
	return nil
}

func (s *CartService) resolveItems(ctx context.Context, items []domain.CartItem) ([]domain.CartItem, error) {
	now := time.Now()
	merged := make([]domain.CartItem, 0, len(items))
	index := make(map[string]int, len(items))

	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}

		key := domain.CartItemKey(it.ProductID, it.VariantID)
		if i, ok := index[key]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}

		product, err := s.products.GetByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		if !product.IsActive {
			continue
		}

		price := product.BasePrice
		name := product.Name
		if it.VariantID != "" {
			variant := product.Variant(it.VariantID)
			if variant == nil {
				continue
			}
			price = variant.Price
			name = fmt.Sprintf("%s (%s)", product.Name, variant.Name)
		}

		var imageURL string
		if len(product.Images) > 0 {
			imageURL = product.Images[0]
		}

		addedAt := it.AddedAt
		if addedAt.IsZero() {
			addedAt = now
		}

		index[key] = len(merged)
		merged = append(merged, domain.CartItem{
			CartItemID: key,
			ProductID:  it.ProductID,
			VariantID:  it.VariantID,
			Name:       name,
			UnitPrice:  price,
			Quantity:   it.Quantity,
			ImageURL:   imageURL,
			AddedAt:    addedAt,
		})
	}

	return merged, nil
}

func (s *CartService) emptyCart(userID string) *domain.Cart {
	now := time.Now()
	return &domain.Cart{
		UserID:    userID,
		Items:     nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *CartService) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.DeleteCart(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("cart cache invalidate failed")
	}
}
