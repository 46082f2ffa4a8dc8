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

type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, status domain.LeadStatus, page, limit int64) ([]*domain.Lead, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) error
}

type mongoLeadRepository struct {
	collection *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) LeadRepository {
	return &mongoLeadRepository{collection: db.Collection("leads")}
}

func (m *mongoLeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	now := time.Now()
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.Status == "" {
		lead.Status = domain.LeadStatusNew
	}
	lead.CreatedAt = now
	lead.UpdatedAt = now

	if _, err := m.collection.InsertOne(ctx, lead); err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

func (m *mongoLeadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	var lead domain.Lead
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&lead)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return &lead, nil
}

func (m *mongoLeadRepository) List(ctx context.Context, status domain.LeadStatus, page, limit int64) ([]*domain.Lead, int64, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	total, err := m.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count leads: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leads: %w", err)
	}
	defer cursor.Close(ctx)

	var leads []*domain.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, 0, fmt.Errorf("failed to decode leads: %w", err)
	}

	return leads, total, nil
}

func (m *mongoLeadRepository) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrLeadNotFound
	}
	return nil
}
