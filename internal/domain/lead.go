package domain

import "time"

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusClosed    LeadStatus = "CLOSED"
)

// Lead is a sales inquiry left by a visitor, optionally tied to a product.
type Lead struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	Name      string     `bson:"name" json:"name"`
	Phone     string     `bson:"phone" json:"phone"`
	Email     string     `bson:"email,omitempty" json:"email,omitempty"`
	Message   string     `bson:"message" json:"message"`
	ProductID string     `bson:"product_id,omitempty" json:"productId,omitempty"`
	Status    LeadStatus `bson:"status" json:"status"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}
