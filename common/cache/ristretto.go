package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/ristretto/v2"
)

// Cache is a size bounded TTL cache where every entry costs 1.
type Cache[K ristretto.Key, V any] struct {
	c   *ristretto.Cache[K, V]
	ttl time.Duration
}

func New[K ristretto.Key, V any](ctx context.Context, numCounters, maxCost int64, ttl time.Duration) (*Cache[K, V], error) {
	logger := log.FromContext(ctx).WithPrefix("cache")
	c, err := ristretto.NewCache(&ristretto.Config[K, V]{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
		OnReject: func(item *ristretto.Item[V]) {
			logger.Debug("Cache item rejected", "key", item.Key)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	return &Cache[K, V]{c: c, ttl: ttl}, nil
}

func (c *Cache[K, V]) Set(key K, value V) error {
	if !c.c.SetWithTTL(key, value, 1, c.ttl) {
		return fmt.Errorf("failed to set value in cache")
	}
	c.c.Wait()
	return nil
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.c.Get(key)
}

func (c *Cache[K, V]) Delete(key K) {
	c.c.Del(key)
}

func (c *Cache[K, V]) Close() {
	c.c.Close()
}
