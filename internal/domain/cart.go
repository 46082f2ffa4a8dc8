package domain

import "time"

type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"-"`
	UserID    string     `bson:"user_id" json:"userId"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}

type CartItem struct {
	CartItemID string    `bson:"cart_item_id" json:"cartItemId"`
	ProductID  string    `bson:"product_id" json:"productId"`
	VariantID  string    `bson:"variant_id,omitempty" json:"variantId,omitempty"`
	Name       string    `bson:"name" json:"name"`
	UnitPrice  float64   `bson:"unit_price" json:"unitPrice"`
	Quantity   int       `bson:"quantity" json:"quantity"`
	ImageURL   string    `bson:"image_url" json:"imageUrl"`
	AddedAt    time.Time `bson:"added_at" json:"addedAt"`
}

// CartItemKey derives the cart line key for a product/variant pair.
// A product without a variant is keyed by the product ID alone.
func CartItemKey(productID, variantID string) string {
	if variantID == "" {
		return productID
	}
	return productID + ":" + variantID
}
