package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/catalog-orders/internal/domain"
)

// ProductRepository fronts a ProductStore with a cache. Reads populate the
// cache, writes refresh the entity entry and drop the collection entry.
type ProductRepository struct {
	store  ProductStore
	cache  domain.Cache
	ttl    time.Duration
	logger *zap.Logger
}

var _ domain.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository(store ProductStore, cache domain.Cache, ttl time.Duration, logger *zap.Logger) *ProductRepository {
	if ttl <= 0 {
		ttl = domain.DefaultTTL
	}
	return &ProductRepository{
		store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, bool, error) {
	const op = "find product by id"
	key := domain.ProductKey(id)

	var snap domain.ProductSnapshot
	hit, err := r.cache.Get(ctx, key, &snap)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	if hit {
		return domain.ProductFromSnapshot(snap), true, nil
	}
	r.logger.Debug("cache miss", zap.Stringer("cache_key", key))

	row, ok, err := r.store.ProductByID(ctx, id)
	if err != nil {
		return nil, false, r.storeErr(op, err)
	}
	if !ok {
		return nil, false, nil
	}

	p := row.product()
	if err := r.cache.Set(ctx, key, p.Snapshot(), r.ttl); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return p, true, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	const op = "find all products"
	key := domain.ProductsKey()

	var snaps []domain.ProductSnapshot
	hit, err := r.cache.Get(ctx, key, &snaps)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if hit {
		out := make([]*domain.Product, 0, len(snaps))
		for _, s := range snaps {
			out = append(out, domain.ProductFromSnapshot(s))
		}
		return out, nil
	}
	r.logger.Debug("cache miss", zap.Stringer("cache_key", key))

	rows, err := r.store.Products(ctx)
	if err != nil {
		return nil, r.storeErr(op, err)
	}
	out := make([]*domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.product())
	}

	if err := r.cache.Set(ctx, key, domain.ProductSnapshots(out), r.ttl); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	const op = "save product"
	if err := r.store.InsertProduct(ctx, productRow(product)); err != nil {
		return nil, r.storeErr(op, err)
	}
	if err := r.refresh(ctx, product); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product.Clone(), nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	const op = "update product"
	ok, err := r.store.UpdateProduct(ctx, productRow(product))
	if err != nil {
		return nil, r.storeErr(op, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", op, product.ID(), domain.ErrNotFound)
	}
	if err := r.refresh(ctx, product); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product.Clone(), nil
}

// Delete drops the cache entries before touching the store.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	const op = "delete product"
	if err := r.cache.Delete(ctx, domain.ProductKey(id)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := r.cache.Delete(ctx, domain.ProductsKey()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ok, err := r.store.DeleteProduct(ctx, id)
	if err != nil {
		return r.storeErr(op, err)
	}
	if !ok {
		return fmt.Errorf("%s %s: %w", op, id, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepository) refresh(ctx context.Context, p *domain.Product) error {
	if err := r.cache.Set(ctx, domain.ProductKey(p.ID()), p.Snapshot(), r.ttl); err != nil {
		return err
	}
	return r.cache.Delete(ctx, domain.ProductsKey())
}

func (r *ProductRepository) storeErr(op string, err error) error {
	r.logger.Error("store failure", zap.String("op", op), zap.Error(err))
	return domain.NewStoreError(op, err)
}
