package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"petshop-be/internal/logger"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// unreachableRedis fails every command quickly.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestCachedRepository_FallsBackWhenRedisIsDown(t *testing.T) {
	t.Cleanup(logger.Replace(zap.NewNop()))
	ctx := context.Background()

	t.Run("ListActive", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListActive", ctx).Return(catalog(), nil).Once()

		cached := NewCachedRepository(repo, unreachableRedis(t), time.Minute)
		products, err := cached.ListActive(ctx)

		require.NoError(t, err)
		assert.Len(t, products, len(catalog()))
		repo.AssertExpectations(t)
	})

	t.Run("ListActive repository error", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListActive", ctx).Return(nil, errors.New("db down")).Once()

		cached := NewCachedRepository(repo, unreachableRedis(t), time.Minute)
		_, err := cached.ListActive(ctx)

		assert.EqualError(t, err, "db down")
	})

	t.Run("writes pass through", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("SetStock", ctx, "4", 7).Return(nil).Once()
		repo.On("Restock", ctx, "4", 3).Return(&Product{ID: "4", Stock: 8}, nil).Once()
		repo.On("GetStock", ctx, "4").Return(8, nil).Once()

		cached := NewCachedRepository(repo, unreachableRedis(t), time.Minute)

		require.NoError(t, cached.SetStock(ctx, "4", 7))
		p, err := cached.Restock(ctx, "4", 3)
		require.NoError(t, err)
		assert.Equal(t, 8, p.Stock)
		stock, err := cached.GetStock(ctx, "4")
		require.NoError(t, err)
		assert.Equal(t, 8, stock)

		repo.AssertExpectations(t)
	})
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "http://not-redis")
	assert.Error(t, err)
}
