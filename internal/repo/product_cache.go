package repo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Adhandevelop/taller-powerby/internal/models"
)

const (
	productKeyPrefix = "producto:"
	productListKey   = "productos:all"
	// productGenKey is bumped by every write. A fill only lands if the
	// generation it read before loading is still current.
	productGenKey = "productos:gen"
)

// storeIfCurrent sets KEYS[2] only while KEYS[1] still holds ARGV[1].
var storeIfCurrent = redis.NewScript(`
local gen = redis.call("GET", KEYS[1]) or "0"
if gen ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
else
	redis.call("SET", KEYS[2], ARGV[2])
end
return 1
`)

// CachedProductRepository is a read-through redis cache in front of another
// ProductRepository. Writes go to the inner repository first, then bump the
// generation and evict the affected keys in one transaction, so a reader that
// loaded a row before the write cannot repopulate the cache with it.
// Redis failures are logged and never fail a request.
type CachedProductRepository struct {
	inner  ProductRepository
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedProductRepository(inner ProductRepository, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedProductRepository {
	return &CachedProductRepository{
		inner:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func productKey(id string) string {
	return productKeyPrefix + id
}

// load decodes a cached value into dst. It reports false on a miss or any redis error.
func (c *CachedProductRepository) load(ctx context.Context, key string, dst any) bool {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("cache entry corrupted", "key", key, "error", err)
		return false
	}
	return true
}

// generation reads the write counter. It reports false when redis cannot be
// read, in which case the caller skips filling the cache.
func (c *CachedProductRepository) generation(ctx context.Context) (string, bool) {
	gen, err := c.rdb.Get(ctx, productGenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "0", true
	}
	if err != nil {
		c.logger.Warn("cache generation read failed", "error", err)
		return "", false
	}
	return gen, true
}

func (c *CachedProductRepository) store(ctx context.Context, gen, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	keys := []string{productGenKey, key}
	if err := storeIfCurrent.Run(ctx, c.rdb, keys, gen, data, c.ttl.Milliseconds()).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (c *CachedProductRepository) evict(ctx context.Context, ids ...string) {
	keys := []string{productListKey}
	for _, id := range ids {
		keys = append(keys, productKey(id))
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, productGenKey)
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		c.logger.Warn("cache eviction failed", "keys", keys, "error", err)
	}
}

func (c *CachedProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if c.load(ctx, productListKey, &cached) {
		return cached, nil
	}

	gen, fill := c.generation(ctx)
	products, err := c.inner.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if fill {
		c.store(ctx, gen, productListKey, products)
	}
	return products, nil
}

func (c *CachedProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	var cached models.Product
	if c.load(ctx, productKey(id), &cached) {
		return cached, nil
	}

	gen, fill := c.generation(ctx)
	p, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if fill {
		c.store(ctx, gen, productKey(id), p)
	}
	return p, nil
}

func (c *CachedProductRepository) Create(ctx context.Context, product models.Product) (models.Product, error) {
	p, err := c.inner.Create(ctx, product)
	if err != nil {
		return models.Product{}, err
	}
	c.evict(ctx, p.IdProducto)
	return p, nil
}

func (c *CachedProductRepository) Update(ctx context.Context, id string, product models.Product) (models.Product, error) {
	p, err := c.inner.Update(ctx, id, product)
	if err != nil {
		return models.Product{}, err
	}
	c.evict(ctx, id, p.IdProducto)
	return p, nil
}

func (c *CachedProductRepository) Delete(ctx context.Context, id string) (models.Product, error) {
	p, err := c.inner.Delete(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	c.evict(ctx, id)
	return p, nil
}

func (c *CachedProductRepository) Count(ctx context.Context) (int, error) {
	return c.inner.Count(ctx)
}

func (c *CachedProductRepository) Ping(ctx context.Context) (time.Time, error) {
	return c.inner.Ping(ctx)
}
