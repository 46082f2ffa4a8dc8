package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Manu2954/Buildora-sub000/internal/domain"
)

type ImageRepository interface {
	Create(ctx context.Context, image *domain.Image) error
	List(ctx context.Context, page, limit int64) ([]*domain.Image, int64, error)
	Delete(ctx context.Context, id string) error
}

type mongoImageRepository struct {
	collection *mongo.Collection
}

func NewImageRepository(db *mongo.Database) ImageRepository {
	return &mongoImageRepository{collection: db.Collection("images")}
}

func (m *mongoImageRepository) Create(ctx context.Context, image *domain.Image) error {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	image.CreatedAt = time.Now()

	if _, err := m.collection.InsertOne(ctx, image); err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

func (m *mongoImageRepository) List(ctx context.Context, page, limit int64) ([]*domain.Image, int64, error) {
	total, err := m.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count images: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list images: %w", err)
	}
	defer cursor.Close(ctx)

	var images []*domain.Image
	if err := cursor.All(ctx, &images); err != nil {
		return nil, 0, fmt.Errorf("failed to decode images: %w", err)
	}

	return images, total, nil
}

func (m *mongoImageRepository) Delete(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrImageNotFound
	}
	return nil
}
