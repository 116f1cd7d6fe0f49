package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/TemirB/catalog-orders/internal/domain"
)

type ProductRepository struct {
	store *Store
	// cache is accepted for parity with the durable backend and never read:
	// the store already holds the authoritative copy.
	cache domain.Cache
}

var _ domain.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository(store *Store, cache domain.Cache) *ProductRepository {
	return &ProductRepository{store: store, cache: cache}
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*domain.Product, bool, error) {
	p, ok := r.store.product(id)
	return p, ok, nil
}

func (r *ProductRepository) FindAll(_ context.Context) ([]*domain.Product, error) {
	r.store.productsMu.RLock()
	defer r.store.productsMu.RUnlock()

	out := make([]*domain.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		out = append(out, p.Clone())
	}
	return out, nil
}

// Save appends without checking for an existing id.
func (r *ProductRepository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.store.productsMu.Lock()
	r.store.products = append(r.store.products, product.Clone())
	r.store.productsMu.Unlock()
	return product.Clone(), nil
}

func (r *ProductRepository) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.store.productsMu.Lock()
	defer r.store.productsMu.Unlock()

	i := r.store.productIndex(product.ID())
	if i < 0 {
		return nil, fmt.Errorf("update product %s: %w", product.ID(), domain.ErrNotFound)
	}
	r.store.products[i] = product.Clone()
	return product.Clone(), nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.store.productsMu.Lock()
	defer r.store.productsMu.Unlock()

	i := r.store.productIndex(id)
	if i < 0 {
		return fmt.Errorf("delete product %s: %w", id, domain.ErrNotFound)
	}
	r.store.products = slices.Delete(r.store.products, i, i+1)
	return nil
}
