package cache_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/ltsmerch/storefront/internal/cache"
	"github.com/ltsmerch/storefront/internal/config"
	"github.com/ltsmerch/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	ctx := t.Context()
	cfg := &config.CacheConfig{DefaultTTL: 5 * time.Minute}
	product := &models.Product{ID: 7, Name: "Tour Tee", Price: 25.00}

	payload, err := json.Marshal(product)
	require.NoError(t, err)

	t.Run("Get", func(t *testing.T) {
		t.Run("Success - hit", func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			c := cache.NewRedisCache(client, cfg)
			mock.ExpectGet("product:7").SetVal(string(payload))

			got := &models.Product{}
			hit, err := c.Get(ctx, "product:7", got)

			require.NoError(t, err)
			assert.True(t, hit)
			assert.Equal(t, product.Name, got.Name)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Success - miss is not an error", func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			c := cache.NewRedisCache(client, cfg)
			mock.ExpectGet("product:404").RedisNil()

			got := &models.Product{}
			hit, err := c.Get(ctx, "product:404", got)

			require.NoError(t, err)
			assert.False(t, hit)
		})

		t.Run("Error - corrupt payload", func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			c := cache.NewRedisCache(client, cfg)
			mock.ExpectGet("product:7").SetVal("{not json")

			got := &models.Product{}
			hit, err := c.Get(ctx, "product:7", got)

			assert.Error(t, err)
			assert.False(t, hit)
		})
	})

	t.Run("Set", func(t *testing.T) {
		t.Run("Success - explicit ttl", func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			c := cache.NewRedisCache(client, cfg)
			mock.ExpectSet("product:7", payload, 10*time.Minute).SetVal("OK")

			require.NoError(t, c.Set(ctx, "product:7", product, 10*time.Minute))
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Success - zero ttl falls back to the default", func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			c := cache.NewRedisCache(client, cfg)
			mock.ExpectSet("product:7", payload, cfg.DefaultTTL).SetVal("OK")

			require.NoError(t, c.Set(ctx, "product:7", product, 0))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			c := cache.NewRedisCache(client, cfg)
			mock.ExpectDel("product:7").SetVal(1)

			require.NoError(t, c.Delete(ctx, "product:7"))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
