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

type OutboxRepository interface {
	Insert(ctx context.Context, event *domain.OutboxEvent) error
	GetUnprocessed(ctx context.Context, limit int64) ([]*domain.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id string) error
}

type mongoOutboxRepository struct {
	collection *mongo.Collection
}

func NewOutboxRepository(db *mongo.Database) OutboxRepository {
	return &mongoOutboxRepository{collection: db.Collection("outbox")}
}

func (m *mongoOutboxRepository) Insert(ctx context.Context, event *domain.OutboxEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.CreatedAt = time.Now()
	event.Processed = false

	if _, err := m.collection.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

// GetUnprocessed returns pending events oldest first so consumers see
// them in publish order.
func (m *mongoOutboxRepository) GetUnprocessed(ctx context.Context, limit int64) ([]*domain.OutboxEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, bson.M{"processed": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unprocessed events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*domain.OutboxEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode outbox events: %w", err)
	}
	return events, nil
}

func (m *mongoOutboxRepository) MarkProcessed(ctx context.Context, id string) error {
	now := time.Now()
	update := bson.M{"$set": bson.M{"processed": true, "processed_at": now}}

	if _, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to mark event as processed: %w", err)
	}
	return nil
}
