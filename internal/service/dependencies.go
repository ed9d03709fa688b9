package service

import (
	"context"

	"storefront-service/internal/models"
)

// ProductLookup resolves a product id to its catalog record.
// A nil product with a nil error means the product does not exist.
type ProductLookup interface {
	Lookup(ctx context.Context, id string) (*models.Product, error)
}

// PaymentProvider is the narrow surface of the payment processor this
// service touches.
type PaymentProvider interface {
	VerifyWebhook(payload []byte, sigHeader string) (*models.WebhookEvent, error)
	CreateSession(ctx context.Context, items []models.LineItem) (string, error)
	RetrieveSession(ctx context.Context, id string) (map[string]interface{}, error)
}

// DocumentStore persists order and form documents.
type DocumentStore interface {
	Put(ctx context.Context, collection, id string, doc map[string]interface{}) error
	Add(ctx context.Context, collection string, doc map[string]interface{}) (string, error)
}

// RetryPublisher enqueues failed fulfillment attempts for the retry worker.
type RetryPublisher interface {
	PublishFulfillmentRequested(ctx context.Context, event *models.FulfillmentRequestedEvent) error
}
