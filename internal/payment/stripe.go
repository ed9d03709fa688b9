package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront-service/config"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"
)

// Client wraps the Stripe SDK for the three calls this service makes:
// webhook signature verification, checkout session creation and checkout
// session retrieval with line items expanded.
type Client struct {
	webhookSecret    string
	successURL       string
	cancelURL        string
	allowedCountries []string
	logger           *zap.Logger
}

// NewClient configures the Stripe SDK and returns a client
func NewClient(stripeCfg config.StripeConfig, checkoutCfg config.CheckoutConfig) *Client {
	stripe.Key = stripeCfg.APIKey

	return &Client{
		webhookSecret:    stripeCfg.WebhookSecret,
		successURL:       checkoutCfg.SuccessURL,
		cancelURL:        checkoutCfg.CancelURL,
		allowedCountries: checkoutCfg.AllowedCountries,
		logger:           util.GetLogger(),
	}
}

// VerifyWebhook checks the signature header against the raw payload bytes.
// The payload must be the unparsed request body; re-serializing it first
// would break signature matching.
func (c *Client) VerifyWebhook(payload []byte, sigHeader string) (*models.WebhookEvent, error) {
	// Endpoints stay pinned to whatever API version they were created with,
	// so the event's api_version rarely matches the SDK's pinned one. Only
	// the signature decides authenticity here.
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	var object struct {
		ID string `json:"id"`
	}
	if len(event.Data.Raw) > 0 {
		if err := json.Unmarshal(event.Data.Raw, &object); err != nil {
			return nil, fmt.Errorf("failed to parse event object: %w", err)
		}
	}

	return &models.WebhookEvent{
		Type:      string(event.Type),
		SessionID: object.ID,
	}, nil
}

// CreateSession creates a Stripe Checkout Session for the given line items
// and returns its id. Payment mode only, card payments, shipping address
// collection restricted to the configured countries.
func (c *Client) CreateSession(ctx context.Context, items []models.LineItem) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes:       stripe.StringSlice([]string{"card"}),
		BillingAddressCollection: stripe.String("auto"),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(c.allowedCountries),
		},
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
		LineItems:  make([]*stripe.CheckoutSessionLineItemParams, 0, len(items)),
	}
	params.Context = ctx

	for _, item := range items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(item.Currency),
				UnitAmount: stripe.Int64(item.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(item.Name),
					Images:      stripe.StringSlice(item.Images),
					Description: stripe.String(item.Description),
				},
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	c.logger.Info("Checkout session created", zap.String("session_id", sess.ID))
	return sess.ID, nil
}

// RetrieveSession fetches the full session detail with line items expanded
// (the webhook event payload omits them) and returns it as a document.
func (c *Client) RetrieveSession(ctx context.Context, id string) (map[string]interface{}, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("line_items")

	sess, err := session.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session %s: %w", id, err)
	}

	var raw []byte
	if sess.LastResponse != nil {
		raw = sess.LastResponse.RawJSON
	}
	if len(raw) == 0 {
		raw, err = json.Marshal(sess)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal checkout session: %w", err)
		}
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}
	return doc, nil
}
