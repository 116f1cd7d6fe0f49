package cache

import (
	"context"

	"github.com/TemirB/catalog-orders/internal/domain"
)

// Counter is the part of the metrics port that tracks cache effectiveness.
type Counter interface {
	IncCacheHit()
	IncCacheMiss()
}

type instrumented struct {
	domain.Cache
	counter Counter
}

// Instrument counts hits and misses of c's Get calls. Failed reads are
// counted as neither.
func Instrument(c domain.Cache, counter Counter) domain.Cache {
	return &instrumented{Cache: c, counter: counter}
}

func (c *instrumented) Get(ctx context.Context, key domain.Key, dst any) (bool, error) {
	hit, err := c.Cache.Get(ctx, key, dst)
	switch {
	case err != nil:
	case hit:
		c.counter.IncCacheHit()
	default:
		c.counter.IncCacheMiss()
	}
	return hit, err
}

