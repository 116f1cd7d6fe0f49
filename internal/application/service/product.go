package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/TemirB/catalog-orders/internal/domain"
	"github.com/TemirB/catalog-orders/internal/observability"
)

//go:generate mockgen -source internal/domain/repo.go -destination=internal/application/service/repository_mock_test.go -package=service

type ProductService struct {
	repo    domain.ProductRepository
	logger  *zap.Logger
	metrics observability.Metrics
}

func NewProductService(repo domain.ProductRepository, logger *zap.Logger, metrics observability.Metrics) *ProductService {
	return &ProductService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *ProductService) Create(ctx context.Context, name string, price decimal.Decimal) (*domain.Product, error) {
	p, err := domain.NewProduct(name, price)
	if err != nil {
		return nil, err
	}

	t0 := time.Now()
	saved, err := s.repo.Save(ctx, p)
	s.metrics.ObserveWrite("product", "create", convertToMs(t0), err == nil)
	if err != nil {
		s.logger.Error("Error while saving product", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created", zap.String("product_id", saved.ID()))
	return saved, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	t0 := time.Now()
	p, ok, err := s.repo.FindByID(ctx, id)
	s.metrics.ObserveLookup("product", convertToMs(t0), ok)
	if err != nil {
		s.logger.Error("Can't find product", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	t0 := time.Now()
	products, err := s.repo.FindAll(ctx)
	s.metrics.ObserveLookup("products", convertToMs(t0), err == nil)
	if err != nil {
		s.logger.Error("Can't list products", zap.Error(err))
		return nil, err
	}
	return products, nil
}

// Update loads the product, applies the new name and price and stores it.
func (s *ProductService) Update(ctx context.Context, id, name string, price decimal.Decimal) (*domain.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.ChangePrice(price); err != nil {
		return nil, err
	}
	p.ChangeName(name)

	t0 := time.Now()
	updated, err := s.repo.Update(ctx, p)
	s.metrics.ObserveWrite("product", "update", convertToMs(t0), err == nil)
	if err != nil {
		s.logger.Error("Error while updating product", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product updated", zap.String("product_id", id))
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	t0 := time.Now()
	err := s.repo.Delete(ctx, id)
	s.metrics.ObserveWrite("product", "delete", convertToMs(t0), err == nil)
	if err != nil {
		s.logger.Error("Error while deleting product", zap.String("product_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}
