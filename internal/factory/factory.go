// Package factory picks and wires the repository backend.
package factory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/TemirB/catalog-orders/internal/cache"
	"github.com/TemirB/catalog-orders/internal/config"
	"github.com/TemirB/catalog-orders/internal/domain"
	"github.com/TemirB/catalog-orders/internal/repository"
	"github.com/TemirB/catalog-orders/internal/repository/memory"
	"github.com/TemirB/catalog-orders/internal/repository/postgres"
)

type RepositoryKind int

const (
	Volatile RepositoryKind = iota
	Durable
)

func (k RepositoryKind) String() string {
	if k == Durable {
		return "durable"
	}
	return "volatile"
}

type CacheKind int

const (
	MemoryCache CacheKind = iota
	RedisCache
)

func (k CacheKind) String() string {
	if k == RedisCache {
		return "redis"
	}
	return "memory"
}

// Select maps a backend name to the repository and cache pair. Only
// "postgres" selects the durable pair; any other value falls back to the
// volatile one.
func Select(backend string) (RepositoryKind, CacheKind) {
	if strings.EqualFold(strings.TrimSpace(backend), config.DBTypePostgres) {
		return Durable, RedisCache
	}
	return Volatile, MemoryCache
}

type Repositories struct {
	Products domain.ProductRepository
	Orders   domain.OrderRepository
	Kind     RepositoryKind
	Cache    CacheKind

	closers []func()
}

// Close releases pools in reverse order of creation.
func (r *Repositories) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

type options struct {
	counter cache.Counter
}

type Option func(*options)

// WithCacheCounter reports cache hits and misses to c.
func WithCacheCounter(c cache.Counter) Option {
	return func(o *options) { o.counter = c }
}

func (o options) wrap(c domain.Cache) domain.Cache {
	if o.counter == nil {
		return c
	}
	return cache.Instrument(c, o.counter)
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ...Option) (*Repositories, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	kind, cacheKind := Select(cfg.DBType)
	logger.Info("repository backend selected",
		zap.Stringer("repository", kind),
		zap.Stringer("cache", cacheKind),
	)

	if kind == Volatile {
		return newVolatile(cfg, o)
	}
	return newDurable(ctx, cfg, logger, o)
}

func newVolatile(cfg config.Config, o options) (*Repositories, error) {
	mc, err := cache.NewMemory(cfg.Cache.Cap)
	if err != nil {
		return nil, fmt.Errorf("memory cache: %w", err)
	}
	c := o.wrap(mc)
	store := memory.NewStore()
	return &Repositories{
		Products: memory.NewProductRepository(store, c),
		Orders:   memory.NewOrderRepository(store, c),
		Kind:     Volatile,
		Cache:    MemoryCache,
	}, nil
}

func newDurable(ctx context.Context, cfg config.Config, logger *zap.Logger, o options) (*Repositories, error) {
	client, err := cache.Dial(ctx, &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	rc := cache.NewRedis(client)

	pool, err := postgres.NewPool(ctx, cfg.DSN(), logger)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	repos, err := durable(ctx, pool, o.wrap(rc), cfg, logger)
	if err != nil {
		pool.Close()
		_ = rc.Close()
		return nil, err
	}
	repos.closers = append(repos.closers, func() { _ = rc.Close() }, pool.Close)
	return repos, nil
}

func durable(ctx context.Context, pool *pgxpool.Pool, c domain.Cache, cfg config.Config, logger *zap.Logger) (*Repositories, error) {
	tables := postgres.Tables(cfg.Tables)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		return nil, err
	}
	return Durables(postgres.NewProductStore(pool, tables), postgres.NewOrderStore(pool, tables), c, cfg, logger), nil
}

// Durables builds the cache-aside repositories over the given stores.
func Durables(products repository.ProductStore, orders repository.OrderStore, c domain.Cache, cfg config.Config, logger *zap.Logger) *Repositories {
	return &Repositories{
		Products: repository.NewProductRepository(products, c, cfg.Cache.TTL, logger.Named("products")),
		Orders:   repository.NewOrderRepository(orders, c, cfg.Cache.TTL, logger.Named("orders")),
		Kind:     Durable,
		Cache:    RedisCache,
	}
}
