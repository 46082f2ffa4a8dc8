package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
	"github.com/Manu2954/Buildora-sub000/pkg/circuitbreaker"
)

// RedisCache serves both the cart and product read paths. Every call runs
// through a circuit breaker: when Redis is down the breaker opens and reads
// degrade to repository hits instead of waiting out timeouts per request.
type RedisCache struct {
	client  *redis.Client
	breaker *circuitbreaker.Breaker
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		breaker: circuitbreaker.New("redis-cache", ErrCacheMiss),
		baseTTL: 15 * time.Minute,
	}
}

func (r *RedisCache) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	if err := r.get(ctx, cartKey(userID), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *RedisCache) SetCart(ctx context.Context, userID string, cart *domain.Cart) error {
	return r.set(ctx, cartKey(userID), cart)
}

func (r *RedisCache) DeleteCart(ctx context.Context, userID string) error {
	return r.del(ctx, cartKey(userID))
}

func (r *RedisCache) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var product domain.Product
	if err := r.get(ctx, productKey(productID), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *RedisCache) SetProduct(ctx context.Context, productID string, product *domain.Product) error {
	return r.set(ctx, productKey(productID), product)
}

func (r *RedisCache) DeleteProduct(ctx context.Context, productID string) error {
	return r.del(ctx, productKey(productID))
}

func (r *RedisCache) get(ctx context.Context, key string, v interface{}) error {
	return r.breaker.Do(func() error {
		data, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		if err != nil {
			return fmt.Errorf("redis get failed: %w", err)
		}

		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("unmarshal cached value failed: %w", err)
		}
		return nil
	})
}

func (r *RedisCache) set(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cached value failed: %w", err)
	}

	// Jitter spreads expiry so hot keys don't all refill at once.
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter

	return r.breaker.Do(func() error {
		if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
			return fmt.Errorf("redis set failed: %w", err)
		}
		return nil
	})
}

func (r *RedisCache) del(ctx context.Context, key string) error {
	return r.breaker.Do(func() error {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("redis delete failed: %w", err)
		}
		return nil
	})
}

func cartKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

func productKey(productID string) string {
	return fmt.Sprintf("product:%s", productID)
}
