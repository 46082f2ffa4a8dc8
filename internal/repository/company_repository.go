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

type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context, page, limit int64) ([]*domain.Company, int64, error)
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id string) error
}

type mongoCompanyRepository struct {
	collection *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) CompanyRepository {
	return &mongoCompanyRepository{collection: db.Collection("companies")}
}

func (m *mongoCompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	now := time.Now()
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	company.CreatedAt = now
	company.UpdatedAt = now

	if _, err := m.collection.InsertOne(ctx, company); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (m *mongoCompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	var company domain.Company
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &company, nil
}

func (m *mongoCompanyRepository) List(ctx context.Context, page, limit int64) ([]*domain.Company, int64, error) {
	total, err := m.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	defer cursor.Close(ctx)

	var companies []*domain.Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, 0, fmt.Errorf("failed to decode companies: %w", err)
	}

	return companies, total, nil
}

func (m *mongoCompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	company.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"name":          company.Name,
		"description":   company.Description,
		"logo_url":      company.LogoURL,
		"address":       company.Address,
		"contact_email": company.ContactEmail,
		"is_active":     company.IsActive,
		"updated_at":    company.UpdatedAt,
	}}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": company.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (m *mongoCompanyRepository) Delete(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
