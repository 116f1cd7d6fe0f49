package cache

import (
	"context"
	"errors"
	"time"

	"github.com/TemirB/catalog-orders/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Redis is a networked cache. Each call is a single command on a pooled
// connection: it either applies fully or fails with no effect.
type Redis struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// Dial opens a client and checks connectivity.
func Dial(ctx context.Context, opts *redis.Options) (*redis.Client, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, &domain.CacheError{Op: "ping", Key: opts.Addr, Err: err}
	}
	return client, nil
}

func (r *Redis) Get(ctx context.Context, key domain.Key, dst any) (bool, error) {
	raw, err := r.client.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, &domain.CacheError{Op: "get", Key: key.String(), Err: err}
	}
	if err := decode("get", key, raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key domain.Key, value any, ttl time.Duration) error {
	raw, err := encode("set", key, value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key.String(), raw, ttl).Err(); err != nil {
		return &domain.CacheError{Op: "set", Key: key.String(), Err: err}
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key domain.Key) error {
	if err := r.client.Del(ctx, key.String()).Err(); err != nil {
		return &domain.CacheError{Op: "delete", Key: key.String(), Err: err}
	}
	return nil
}

func (r *Redis) Close() error { return r.client.Close() }
