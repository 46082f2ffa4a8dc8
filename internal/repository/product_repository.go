package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
)

// ProductFilter narrows and orders a catalog listing.
type ProductFilter struct {
	Category  string
	CompanyID string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	Sort      string // price_asc, price_desc, newest
	Page      int64
	Limit     int64
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error)
	Update(ctx context.Context, product *domain.Product) error
	SetActive(ctx context.Context, id string, active bool) error
	AddReview(ctx context.Context, productID string, review domain.Review, ratings domain.Ratings) error
}

type mongoProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{collection: db.Collection("products")}
}

func (m *mongoProductRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := m.collection.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (m *mongoProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (m *mongoProductRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error) {
	query := bson.M{"is_active": true}

	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.CompanyID != "" {
		query["company_id"] = filter.CompanyID
	}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"brand": regex},
		}
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["base_price"] = price
	}

	total, err := m.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	switch filter.Sort {
	case "price_asc":
		sort = bson.D{{Key: "base_price", Value: 1}}
	case "price_desc":
		sort = bson.D{{Key: "base_price", Value: -1}}
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip((filter.Page - 1) * filter.Limit).
		SetLimit(filter.Limit)

	cursor, err := m.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, total, nil
}

func (m *mongoProductRepository) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"company_id":  product.CompanyID,
		"name":        product.Name,
		"description": product.Description,
		"category":    product.Category,
		"brand":       product.Brand,
		"images":      product.Images,
		"base_price":  product.BasePrice,
		"variants":    product.Variants,
		"is_active":   product.IsActive,
		"updated_at":  product.UpdatedAt,
	}}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": product.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *mongoProductRepository) SetActive(ctx context.Context, id string, active bool) error {
	update := bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now()}}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// AddReview appends the review and writes the pre-computed rating
// aggregate in the same update.
func (m *mongoProductRepository) AddReview(ctx context.Context, productID string, review domain.Review, ratings domain.Ratings) error {
	update := bson.M{
		"$push": bson.M{"reviews": review},
		"$set": bson.M{
			"ratings":    ratings,
			"updated_at": time.Now(),
		},
	}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": productID}, update)
	if err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
