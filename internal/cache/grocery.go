package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freshcart/grocery-api/internal/domain"
	"github.com/freshcart/grocery-api/pkg/pagination"
)

const groceryListKeyPrefix = "groceries:list:"

// GroceryCache caches paginated grocery listings in Redis. Reads are
// best-effort: any Redis failure falls through to the database.
type GroceryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewGroceryCache creates a grocery listing cache.
func NewGroceryCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *GroceryCache {
	return &GroceryCache{client: client, ttl: ttl, logger: logger}
}

func listKey(page, perPage int) string {
	return fmt.Sprintf("%s%d:%d", groceryListKeyPrefix, page, perPage)
}

// GetList returns a cached listing page, or ok=false on miss or error.
func (c *GroceryCache) GetList(ctx context.Context, page, perPage int) (*pagination.Result[domain.Grocery], bool) {
	data, err := c.client.Get(ctx, listKey(page, perPage)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "grocery cache read failed",
				slog.String("error", err.Error()),
			)
		}
		return nil, false
	}

	var result pagination.Result[domain.Grocery]
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.WarnContext(ctx, "grocery cache entry corrupt, dropping",
			slog.String("error", err.Error()),
		)
		_ = c.client.Del(ctx, listKey(page, perPage)).Err()
		return nil, false
	}

	return &result, true
}

// SetList stores a listing page with the configured TTL.
func (c *GroceryCache) SetList(ctx context.Context, page, perPage int, result *pagination.Result[domain.Grocery]) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.WarnContext(ctx, "grocery cache marshal failed",
			slog.String("error", err.Error()),
		)
		return
	}

	if err := c.client.Set(ctx, listKey(page, perPage), data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "grocery cache write failed",
			slog.String("error", err.Error()),
		)
	}
}

// Invalidate drops all cached listing pages. Called after any write that
// changes inventory: admin CRUD and order placement.
func (c *GroceryCache) Invalidate(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, groceryListKeyPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.WarnContext(ctx, "grocery cache scan failed",
			slog.String("error", err.Error()),
		)
		return
	}

	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WarnContext(ctx, "grocery cache invalidation failed",
			slog.String("error", err.Error()),
		)
	}
}
