package models

import "time"

// Product represents a product in the catalog. Prices are decimal strings
// as stored by the catalog owner; this service only reads them.
type Product struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	ImageURLs []string  `db:"-" json:"image_urls"`
	Price     string    `db:"price" json:"price"`
	SalePrice *string   `db:"sale_price" json:"sale_price,omitempty"`
	ColorName string    `db:"color_name" json:"color_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CartItem is one entry of a checkout request
type CartItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

// LineItem is one priced unit of purchase passed to the payment provider.
// UnitAmount is in currency minor units (cents).
type LineItem struct {
	Currency    string   `json:"currency"`
	Name        string   `json:"name"`
	Images      []string `json:"images"`
	UnitAmount  int64    `json:"unit_amount"`
	Quantity    int64    `json:"quantity"`
	Description string   `json:"description"`
}

// WebhookEvent is the verified payment-provider event, reduced to the
// fields this service acts on.
type WebhookEvent struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

// EventTypeCheckoutCompleted is the only event type that triggers fulfillment.
const EventTypeCheckoutCompleted = "checkout.session.completed"

// Collection names in the document store
const (
	CollectionOrders = "orders"
	CollectionForms  = "emails"
)
