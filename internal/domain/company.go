package domain

import "time"

// Company is a manufacturer or dealer whose catalog Buildora resells.
type Company struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Description  string    `bson:"description" json:"description"`
	LogoURL      string    `bson:"logo_url" json:"logoUrl"`
	Address      string    `bson:"address" json:"address"`
	ContactEmail string    `bson:"contact_email" json:"contactEmail"`
	IsActive     bool      `bson:"is_active" json:"isActive"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}
