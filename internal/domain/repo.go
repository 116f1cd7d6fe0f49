package domain

import (
	"context"
	"time"
)

// Cache stores serialized values under typed keys. Implementations
// serialize value on Set and decode into dst on Get. Failures are
// reported as *CacheError.
type Cache interface {
	Get(ctx context.Context, key Key, dst any) (bool, error)
	Set(ctx context.Context, key Key, value any, ttl time.Duration) error
	Delete(ctx context.Context, key Key) error
}

// ProductRepository returns copies; callers may mutate them freely.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*Product, bool, error)
	FindAll(ctx context.Context) ([]*Product, error)
	Save(ctx context.Context, product *Product) (*Product, error)
	Update(ctx context.Context, product *Product) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*Order, bool, error)
	FindAll(ctx context.Context) ([]*Order, error)
	Save(ctx context.Context, order *Order) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	AddProductItem(ctx context.Context, orderID, productID string, quantity int) error
	RemoveProductItem(ctx context.Context, orderID, productID string) error
	Delete(ctx context.Context, id string) error
}
