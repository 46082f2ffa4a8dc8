package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether the fulfilment flow allows moving from s
// to next. Orders advance PENDING -> PROCESSING -> SHIPPED -> DELIVERED and
// may be cancelled from any non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing
	case OrderStatusProcessing:
		return next == OrderStatusShipped
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

// OrderItem is a point-in-time snapshot of a cart line. Prices are copied
// at checkout so later catalog edits never rewrite order history.
type OrderItem struct {
	CartItemID string  `bson:"cart_item_id" json:"cartItemId"`
	ProductID  string  `bson:"product_id" json:"productId"`
	VariantID  string  `bson:"variant_id,omitempty" json:"variantId,omitempty"`
	Name       string  `bson:"name" json:"name"`
	UnitPrice  float64 `bson:"unit_price" json:"unitPrice"`
	Quantity   int     `bson:"quantity" json:"quantity"`
	ImageURL   string  `bson:"image_url" json:"imageUrl"`
}

type ShippingAddress struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postal_code" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

type Order struct {
	ID              string          `bson:"_id,omitempty" json:"id"`
	UserID          string          `bson:"user_id" json:"userId"`
	Items           []OrderItem     `bson:"items" json:"orderItems"`
	ShippingAddress ShippingAddress `bson:"shipping_address" json:"shippingAddress"`
	PaymentMethod   string          `bson:"payment_method" json:"paymentMethod"`
	ItemsPrice      float64         `bson:"items_price" json:"itemsPrice"`
	ShippingPrice   float64         `bson:"shipping_price" json:"shippingPrice"`
	TaxPrice        float64         `bson:"tax_price" json:"taxPrice"`
	TotalPrice      float64         `bson:"total_price" json:"totalPrice"`
	Status          OrderStatus     `bson:"status" json:"orderStatus"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updatedAt"`
}
