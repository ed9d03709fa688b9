package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// ProductStore is the catalog backend
type ProductStore interface {
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
}

// ProductCache is an optional read cache in front of the store
type ProductCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
}

// Client resolves product ids against the catalog, with a Redis
// read-through cache. Cache failures fall back to the database.
type Client struct {
	store  ProductStore
	cache  ProductCache
	logger *zap.Logger
}

// NewClient creates a new catalog client. cache may be nil.
func NewClient(store ProductStore, cache ProductCache) *Client {
	return &Client{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// Lookup returns the product for id, or (nil, nil) when the product does
// not exist. Unknown products are not an error: deleted catalog entries
// are expected while carts referencing them are still live.
func (c *Client) Lookup(ctx context.Context, id string) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "Catalog.Lookup")
	defer span.End()

	start := time.Now()
	defer func() {
		util.CatalogLookupLatency.Observe(time.Since(start).Seconds())
	}()

	key := cacheKey(id)

	if c.cache != nil {
		var cached models.Product
		hit, err := c.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			c.logger.Warn("Product cache read failed, falling back to DB",
				zap.String("product_id", id),
				zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	product, err := c.store.GetProductByID(ctx, id)
	if errors.Is(err, store.ErrProductNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, key, product); err != nil {
			c.logger.Warn("Product cache write failed",
				zap.String("product_id", id),
				zap.Error(err))
		}
	}

	return product, nil
}

func cacheKey(id string) string {
	return "product:" + id
}
