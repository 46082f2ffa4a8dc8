package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
)

type AdvertisementRepository interface {
	Create(ctx context.Context, ad *domain.Advertisement) error
	GetByID(ctx context.Context, id string) (*domain.Advertisement, error)
	List(ctx context.Context) ([]*domain.Advertisement, error)
	ListLive(ctx context.Context, placement string, now time.Time) ([]*domain.Advertisement, error)
	Update(ctx context.Context, ad *domain.Advertisement) error
	Delete(ctx context.Context, id string) error
}

type mongoAdRepository struct {
	collection *mongo.Collection
}

func NewAdvertisementRepository(db *mongo.Database) AdvertisementRepository {
	return &mongoAdRepository{collection: db.Collection("advertisements")}
}

func (m *mongoAdRepository) Create(ctx context.Context, ad *domain.Advertisement) error {
	now := time.Now()
	if ad.ID == "" {
		ad.ID = uuid.NewString()
	}
	ad.CreatedAt = now
	ad.UpdatedAt = now

	if _, err := m.collection.InsertOne(ctx, ad); err != nil {
		return fmt.Errorf("failed to create advertisement: %w", err)
	}
	return nil
}

func (m *mongoAdRepository) GetByID(ctx context.Context, id string) (*domain.Advertisement, error) {
	var ad domain.Advertisement
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ad)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("failed to get advertisement: %w", err)
	}
	return &ad, nil
}

func (m *mongoAdRepository) List(ctx context.Context) ([]*domain.Advertisement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list advertisements: %w", err)
	}
	defer cursor.Close(ctx)

	var ads []*domain.Advertisement
	if err := cursor.All(ctx, &ads); err != nil {
		return nil, fmt.Errorf("failed to decode advertisements: %w", err)
	}
	return ads, nil
}

func (m *mongoAdRepository) ListLive(ctx context.Context, placement string, now time.Time) ([]*domain.Advertisement, error) {
	query := bson.M{
		"is_active": true,
		"starts_at": bson.M{"$lte": now},
		"ends_at":   bson.M{"$gt": now},
	}
	if placement != "" {
		query["placement"] = placement
	}

	cursor, err := m.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list live advertisements: %w", err)
	}
	defer cursor.Close(ctx)

	var ads []*domain.Advertisement
	if err := cursor.All(ctx, &ads); err != nil {
		return nil, fmt.Errorf("failed to decode advertisements: %w", err)
	}
	return ads, nil
}

func (m *mongoAdRepository) Update(ctx context.Context, ad *domain.Advertisement) error {
	ad.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"title":      ad.Title,
		"image_url":  ad.ImageURL,
		"target_url": ad.TargetURL,
		"placement":  ad.Placement,
		"is_active":  ad.IsActive,
		"starts_at":  ad.StartsAt,
		"ends_at":    ad.EndsAt,
		"updated_at": ad.UpdatedAt,
	}}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": ad.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update advertisement: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrAdNotFound
	}
	return nil
}

func (m *mongoAdRepository) Delete(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete advertisement: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrAdNotFound
	}
	return nil
}
