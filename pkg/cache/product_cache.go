package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const productCacheKeyPrefix = "product"

// CachedProduct is the public read model stored in Redis.
// Fields are stored as a Redis hash. Only active products are cached.
type CachedProduct struct {
	ID                uuid.UUID
	BusinessID        uuid.UUID
	Title             string
	Description       string
	Price             decimal.Decimal
	Images            []string
	Category          string
	AvailableQuantity int
	UpdatedAt         time.Time
}

// ProductCache provides structured read/write operations for public product entries.
// Key format: "product:{productID}"
type ProductCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewProductCache creates a new ProductCache backed by the given RedisClient.
func NewProductCache(r *RedisClient, ttl time.Duration) *ProductCache {
	return &ProductCache{client: r, ttl: ttl}
}

// Get retrieves a cached product by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ProductCache) Get(ctx context.Context, id uuid.UUID) (*CachedProduct, error) {
	vals, err := c.client.Client().HGetAll(ctx, ProductKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}
	return decodeProduct(vals)
}

// Set writes a cached product as a Redis hash with the configured TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ProductCache) Set(ctx context.Context, p *CachedProduct) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("cache encode images: %w", err)
	}
	key := ProductKey(p.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		"id", p.ID.String(),
		"business_id", p.BusinessID.String(),
		"title", p.Title,
		"description", p.Description,
		"price", p.Price.String(),
		"images", string(images),
		"category", p.Category,
		"available_quantity", strconv.Itoa(p.AvailableQuantity),
		"updated_at", p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached product. Deleting a missing key is not an error.
func (c *ProductCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Client().Del(ctx, ProductKey(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// ProductKey builds the Redis key: "product:{productID}"
func ProductKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", productCacheKeyPrefix, id)
}

func decodeProduct(vals map[string]string) (*CachedProduct, error) {
	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	businessID, err := uuid.Parse(vals["business_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse business_id: %w", err)
	}
	price, err := decimal.NewFromString(vals["price"])
	if err != nil {
		return nil, fmt.Errorf("cache parse price: %w", err)
	}
	qty, err := strconv.Atoi(vals["available_quantity"])
	if err != nil {
		return nil, fmt.Errorf("cache parse available_quantity: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}
	var images []string
	if err := json.Unmarshal([]byte(vals["images"]), &images); err != nil {
		return nil, fmt.Errorf("cache parse images: %w", err)
	}

	return &CachedProduct{
		ID:                id,
		BusinessID:        businessID,
		Title:             vals["title"],
		Description:       vals["description"],
		Price:             price,
		Images:            images,
		Category:          vals["category"],
		AvailableQuantity: qty,
		UpdatedAt:         updatedAt,
	}, nil
}
