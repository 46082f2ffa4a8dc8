package cache

import (
	"context"
	"errors"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
)

type CartCache interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	SetCart(ctx context.Context, userID string, cart *domain.Cart) error
	DeleteCart(ctx context.Context, userID string) error
}

type ProductCache interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	SetProduct(ctx context.Context, productID string, product *domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
}

var ErrCacheMiss = errors.New("cache miss")
