package product

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"petshop-be/internal/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const activeCatalogKey = "petshop:catalog:active"

// CachedRepository keeps the active catalog in redis. Stock writes made
// through it drop the cached list; orders decrement stock in their own
// transaction, so the list may lag by up to ttl.
type CachedRepository struct {
	Repository
	client *redis.Client
	ttl    time.Duration
}

func NewCachedRepository(repo Repository, client *redis.Client, ttl time.Duration) *CachedRepository {
	return &CachedRepository{Repository: repo, client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// ListActive serves from redis when possible. Any redis failure falls
// through to the wrapped repository.
func (c *CachedRepository) ListActive(ctx context.Context) ([]*Product, error) {
	log := logger.FromCtx(ctx)

	data, err := c.client.Get(ctx, activeCatalogKey).Bytes()
	switch {
	case err == nil:
		var products []*Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		log.Warn("discarding unreadable catalog cache entry")
	case !errors.Is(err, redis.Nil):
		log.Warn("catalog cache read failed", zap.Error(err))
	}

	products, err := c.Repository.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		if err := c.client.Set(ctx, activeCatalogKey, data, c.ttl).Err(); err != nil {
			log.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return products, nil
}

func (c *CachedRepository) SetStock(ctx context.Context, id string, stock int) error {
	err := c.Repository.SetStock(ctx, id, stock)
	c.invalidate(ctx)
	return err
}

func (c *CachedRepository) Restock(ctx context.Context, id string, qty int) (*Product, error) {
	p, err := c.Repository.Restock(ctx, id, qty)
	if err == nil {
		c.invalidate(ctx)
	}
	return p, err
}

func (c *CachedRepository) invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, activeCatalogKey).Err(); err != nil {
		logger.FromCtx(ctx).Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
