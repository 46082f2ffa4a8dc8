package domain

import "time"

type Product struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	CompanyID   string    `bson:"company_id" json:"companyId"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Brand       string    `bson:"brand" json:"brand"`
	Images      []string  `bson:"images" json:"images"`
	BasePrice   float64   `bson:"base_price" json:"basePrice"`
	Variants    []Variant `bson:"variants" json:"variants"`
	Ratings     Ratings   `bson:"ratings" json:"ratings"`
	Reviews     []Review  `bson:"reviews" json:"reviews"`
	IsActive    bool      `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// Variant is a purchasable configuration of a product (e.g. a 50kg bag)
// with its own price and stock.
type Variant struct {
	ID    string  `bson:"variant_id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
	Stock int     `bson:"stock" json:"stock"`
	Unit  string  `bson:"unit" json:"unit"`
}

type Ratings struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

type Review struct {
	UserID    string    `bson:"user_id" json:"userId"`
	UserName  string    `bson:"user_name" json:"userName"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Variant looks up a variant by ID. Returns nil when the product has no
// such variant.
func (p *Product) Variant(variantID string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}

// HasReviewBy reports whether the user already reviewed this product.
func (p *Product) HasReviewBy(userID string) bool {
	for _, r := range p.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}
