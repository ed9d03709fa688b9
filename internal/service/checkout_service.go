package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// ErrEmptyCheckout is returned when no cart item resolves to a known product.
var ErrEmptyCheckout = errors.New("checkout has no purchasable items")

// CheckoutService builds priced line items from a cart and creates
// checkout sessions with the payment provider.
type CheckoutService struct {
	catalog  ProductLookup
	provider PaymentProvider
	currency string
	logger   *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(catalog ProductLookup, provider PaymentProvider, currency string) *CheckoutService {
	return &CheckoutService{
		catalog:  catalog,
		provider: provider,
		currency: currency,
		logger:   util.GetLogger(),
	}
}

// BuildLineItems resolves each cart item against the catalog and maps the
// survivors 1:1 into line items. Lookups run in parallel; the output keeps
// the cart order. Items whose product no longer exists are dropped, not
// an error.
func (s *CheckoutService) BuildLineItems(ctx context.Context, items []models.CartItem) ([]models.LineItem, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.BuildLineItems")
	defer span.End()

	products := make([]*models.Product, len(items))
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			products[i], errs[i] = s.catalog.Lookup(ctx, id)
		}(i, item.ProductID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	lineItems := make([]models.LineItem, 0, len(items))
	for i, item := range items {
		product := products[i]
		if product == nil {
			util.CartItemsDroppedTotal.Inc()
			s.logger.Info("Dropping cart item, product not in catalog",
				zap.String("product_id", item.ProductID))
			continue
		}

		unitAmount, err := unitAmountFor(product)
		if err != nil {
			return nil, err
		}

		lineItems = append(lineItems, models.LineItem{
			Currency:    s.currency,
			Name:        product.Name,
			Images:      product.ImageURLs,
			UnitAmount:  unitAmount,
			Quantity:    item.Quantity,
			Description: fmt.Sprintf("%s | %s", product.Name, product.ColorName),
		})
	}

	return lineItems, nil
}

// CreateCheckoutSession builds line items for the cart and creates a
// payment session, returning the provider's session id.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, items []models.CartItem) (string, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.CreateCheckoutSession")
	defer span.End()

	lineItems, err := s.BuildLineItems(ctx, items)
	if err != nil {
		util.CheckoutSessionsFailedTotal.WithLabelValues("catalog_error").Inc()
		return "", err
	}

	if len(lineItems) == 0 {
		util.CheckoutSessionsFailedTotal.WithLabelValues("empty_cart").Inc()
		return "", ErrEmptyCheckout
	}

	sessionID, err := s.provider.CreateSession(ctx, lineItems)
	if err != nil {
		util.CheckoutSessionsFailedTotal.WithLabelValues("provider_error").Inc()
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	util.CheckoutSessionsCreatedTotal.Inc()
	s.logger.Info("Checkout session created",
		zap.String("session_id", sessionID),
		zap.Int("line_items", len(lineItems)))

	return sessionID, nil
}

// unitAmountFor converts the effective price (sale price when set) into
// currency minor units.
func unitAmountFor(product *models.Product) (int64, error) {
	price := product.Price
	if product.SalePrice != nil {
		price = *product.SalePrice
	}

	value, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q for product %s: %w", price, product.ID, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative price %q for product %s", price, product.ID)
	}

	return int64(math.Round(value * 100)), nil
}
