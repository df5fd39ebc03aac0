package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Stock cache keys
const (
	StockSummaryKey   = "stock:summary"
	StockDashboardKey = "stock:dashboard"

	// kept outside the stock: prefix; it must survive invalidation
	stockGenerationKey = "gen:stock"
)

var errStaleGeneration = errors.New("stock generation changed")

// Cache wraps an optional Redis client. Every method is safe on a nil *Cache
// or a Cache without a client, so callers never branch on whether Redis is
// configured: a miss simply falls through to recomputation.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to addr. An empty addr or a failed ping yields a disabled
// cache rather than an error.
func New(addr, password string, db int, ttl time.Duration) *Cache {
	if addr == "" {
		log.Printf("[Cache] Redis not configured, caching disabled")
		return &Cache{ttl: ttl}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client for graceful degradation
		log.Printf("[Cache] Redis unavailable at %s: %v (caching disabled)", addr, err)
		client.Close()
		return &Cache{ttl: ttl}
	}

	log.Printf("[Cache] Connected to Redis at %s", addr)
	return &Cache{client: client, ttl: ttl}
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Client returns the underlying client, or nil when caching is disabled
func (c *Cache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// Enabled reports whether a Redis client is attached
func (c *Cache) Enabled() bool {
	return c.Client() != nil
}

// TTL is the lifetime of cached views
func (c *Cache) TTL() time.Duration {
	if c == nil {
		return 0
	}
	return c.ttl
}

// Get returns cached data for a key
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Generation returns the stock generation counter. Readers take it before
// computing a view and hand it to SetIfGeneration. ok is false when the
// counter cannot be read, in which case the result must not be cached.
func (c *Cache) Generation(ctx context.Context) (gen int64, ok bool) {
	if !c.Enabled() {
		return 0, false
	}
	gen, err := c.client.Get(ctx, stockGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("[Cache] Read generation failed: %v", err)
		return 0, false
	}
	return gen, true
}

// SetIfGeneration stores data under key only while the generation still
// equals gen. A view computed before a write therefore never lands in the
// cache after that write's invalidation.
func (c *Cache) SetIfGeneration(ctx context.Context, key string, data []byte, gen int64) bool {
	if !c.Enabled() {
		return false
	}
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, stockGenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, stockGenerationKey)

	switch {
	case err == nil:
		return true
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		log.WithField("key", key).Debug("[Cache] Skipped stale write")
	default:
		log.Printf("[Cache] Set %s failed: %v", key, err)
	}
	return false
}

// InvalidateStock bumps the generation and clears every derived stock view
// in one transaction.
// Called when: any product, rack or entry is created, updated or deleted
func (c *Cache) InvalidateStock(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, stockGenerationKey)
		pipe.Del(ctx, StockSummaryKey, StockDashboardKey)
		return nil
	})
	if err != nil {
		log.Printf("[Cache] Invalidate stock failed: %v", err)
	}
}

// PreWarmKey fills key in the background so the next read after an
// invalidation is fast. Non-blocking. The generation is taken before the
// fetch, so a write racing the fetch discards its result.
func (c *Cache) PreWarmKey(key string, fetcher func(ctx context.Context) ([]byte, error)) {
	if !c.Enabled() {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		gen, ok := c.Generation(ctx)
		if !ok {
			return
		}
		data, err := fetcher(ctx)
		if err != nil {
			// next request will just recompute
			return
		}
		c.SetIfGeneration(ctx, key, data, gen)
	}()
}

// IsHealthy returns true if the Redis connection is working
func (c *Cache) IsHealthy(ctx context.Context) bool {
	if !c.Enabled() {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err() == nil
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
