package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/catalog-orders/internal/domain"
)

// OrderRepository fronts an OrderStore with a cache.
//
// Targeted mutations (status, items, delete) only drop the order's own entry;
// the orders:all entry may serve the previous state until it expires.
type OrderRepository struct {
	store  OrderStore
	cache  domain.Cache
	ttl    time.Duration
	logger *zap.Logger
}

var _ domain.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(store OrderStore, cache domain.Cache, ttl time.Duration, logger *zap.Logger) *OrderRepository {
	if ttl <= 0 {
		ttl = domain.DefaultTTL
	}
	return &OrderRepository{
		store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, bool, error) {
	const op = "find order by id"
	key := domain.OrderKey(id)

	var snap domain.OrderSnapshot
	hit, err := r.cache.Get(ctx, key, &snap)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	if hit {
		return domain.OrderFromSnapshot(snap), true, nil
	}
	r.logger.Debug("cache miss", zap.Stringer("cache_key", key))

	rows, err := r.store.OrderRows(ctx, id)
	if err != nil {
		return nil, false, r.storeErr(op, err)
	}
	orders := foldOrders(rows)
	if len(orders) == 0 {
		return nil, false, nil
	}

	o := orders[0]
	if err := r.cache.Set(ctx, key, o.Snapshot(), r.ttl); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return o, true, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	const op = "find all orders"
	key := domain.OrdersKey()

	var snaps []domain.OrderSnapshot
	hit, err := r.cache.Get(ctx, key, &snaps)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if hit {
		out := make([]*domain.Order, 0, len(snaps))
		for _, s := range snaps {
			out = append(out, domain.OrderFromSnapshot(s))
		}
		return out, nil
	}
	r.logger.Debug("cache miss", zap.Stringer("cache_key", key))

	rows, err := r.store.AllOrderRows(ctx)
	if err != nil {
		return nil, r.storeErr(op, err)
	}
	orders := foldOrders(rows)

	if err := r.cache.Set(ctx, key, domain.OrderSnapshots(orders), r.ttl); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	const op = "save order"
	header, items := orderRecord(order)
	if err := r.store.InsertOrder(ctx, header, items); err != nil {
		return nil, r.storeErr(op, err)
	}

	if err := r.cache.Set(ctx, domain.OrderKey(order.ID()), order.Snapshot(), r.ttl); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := r.cache.Delete(ctx, domain.OrdersKey()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order.Clone(), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	const op = "update order status"
	if !status.Valid() {
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidStatus)
	}

	ok, err := r.store.UpdateOrderStatus(ctx, id, string(status))
	if err != nil {
		return r.storeErr(op, err)
	}
	if !ok {
		return fmt.Errorf("%s %s: %w", op, id, domain.ErrNotFound)
	}
	return r.invalidate(ctx, op, id)
}

func (r *OrderRepository) AddProductItem(ctx context.Context, orderID, productID string, quantity int) error {
	const op = "add product item"
	if quantity <= 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidQuantity)
	}

	refs, err := r.store.AddOrderItem(ctx, orderID, productID, quantity)
	if err != nil {
		return r.storeErr(op, err)
	}
	if err := missing(op, orderID, productID, refs); err != nil {
		return err
	}
	return r.invalidate(ctx, op, orderID)
}

func (r *OrderRepository) RemoveProductItem(ctx context.Context, orderID, productID string) error {
	const op = "remove product item"
	refs, err := r.store.RemoveOrderItems(ctx, orderID, productID)
	if err != nil {
		return r.storeErr(op, err)
	}
	if err := missing(op, orderID, productID, refs); err != nil {
		return err
	}
	return r.invalidate(ctx, op, orderID)
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	const op = "delete order"
	ok, err := r.store.DeleteOrder(ctx, id)
	if err != nil {
		return r.storeErr(op, err)
	}
	if !ok {
		return fmt.Errorf("%s %s: %w", op, id, domain.ErrNotFound)
	}
	return r.invalidate(ctx, op, id)
}

func (r *OrderRepository) invalidate(ctx context.Context, op, id string) error {
	if err := r.cache.Delete(ctx, domain.OrderKey(id)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func missing(op, orderID, productID string, refs Refs) error {
	switch {
	case !refs.Order:
		return fmt.Errorf("%s: order %s: %w", op, orderID, domain.ErrNotFound)
	case !refs.Product:
		return fmt.Errorf("%s: product %s: %w", op, productID, domain.ErrNotFound)
	}
	return nil
}

func (r *OrderRepository) storeErr(op string, err error) error {
	r.logger.Error("store failure", zap.String("op", op), zap.Error(err))
	return domain.NewStoreError(op, err)
}
