package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/TemirB/catalog-orders/internal/domain"
)

type OrderRepository struct {
	store *Store
	// cache is never consulted, see ProductRepository.
	cache domain.Cache
}

var _ domain.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(store *Store, cache domain.Cache) *OrderRepository {
	return &OrderRepository{store: store, cache: cache}
}

func (r *OrderRepository) FindByID(_ context.Context, id string) (*domain.Order, bool, error) {
	r.store.ordersMu.RLock()
	defer r.store.ordersMu.RUnlock()

	if i := r.store.orderIndex(id); i >= 0 {
		return r.store.orders[i].Clone(), true, nil
	}
	return nil, false, nil
}

func (r *OrderRepository) FindAll(_ context.Context) ([]*domain.Order, error) {
	r.store.ordersMu.RLock()
	defer r.store.ordersMu.RUnlock()

	out := make([]*domain.Order, 0, len(r.store.orders))
	for _, o := range r.store.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

// Save appends without checking for an existing id.
func (r *OrderRepository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.store.ordersMu.Lock()
	r.store.orders = append(r.store.orders, order.Clone())
	r.store.ordersMu.Unlock()
	return order.Clone(), nil
}

// UpdateStatus does nothing when the order is missing. The durable backend
// reports ErrNotFound in that case.
func (r *OrderRepository) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	r.store.ordersMu.Lock()
	defer r.store.ordersMu.Unlock()

	i := r.store.orderIndex(id)
	if i < 0 {
		return nil
	}
	if err := r.store.orders[i].SetStatus(status); err != nil {
		return fmt.Errorf("update order status %s: %w", id, err)
	}
	return nil
}

func (r *OrderRepository) AddProductItem(_ context.Context, orderID, productID string, quantity int) error {
	product, ok := r.store.product(productID)
	if !ok {
		return fmt.Errorf("add product item: product %s: %w", productID, domain.ErrNotFound)
	}

	r.store.ordersMu.Lock()
	defer r.store.ordersMu.Unlock()

	i := r.store.orderIndex(orderID)
	if i < 0 {
		return fmt.Errorf("add product item: order %s: %w", orderID, domain.ErrNotFound)
	}
	if err := r.store.orders[i].AddProduct(*product, quantity); err != nil {
		return fmt.Errorf("add product item: %w", err)
	}
	return nil
}

func (r *OrderRepository) RemoveProductItem(_ context.Context, orderID, productID string) error {
	if _, ok := r.store.product(productID); !ok {
		return fmt.Errorf("remove product item: product %s: %w", productID, domain.ErrNotFound)
	}

	r.store.ordersMu.Lock()
	defer r.store.ordersMu.Unlock()

	i := r.store.orderIndex(orderID)
	if i < 0 {
		return fmt.Errorf("remove product item: order %s: %w", orderID, domain.ErrNotFound)
	}
	r.store.orders[i].RemoveProduct(productID)
	return nil
}

func (r *OrderRepository) Delete(_ context.Context, id string) error {
	r.store.ordersMu.Lock()
	defer r.store.ordersMu.Unlock()

	i := r.store.orderIndex(id)
	if i < 0 {
		return fmt.Errorf("delete order %s: %w", id, domain.ErrNotFound)
	}
	r.store.orders = slices.Delete(r.store.orders, i, i+1)
	return nil
}
