package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/catalog-orders/internal/domain"
	"github.com/TemirB/catalog-orders/internal/observability"
)

type ItemInput struct {
	ProductID string
	Quantity  int
}

type OrderService struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	logger   *zap.Logger
	metrics  observability.Metrics
}

func NewOrderService(orders domain.OrderRepository, products domain.ProductRepository, logger *zap.Logger, metrics observability.Metrics) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		logger:   logger,
		metrics:  metrics,
	}
}

// Create builds a pending order from items and saves it.
func (s *OrderService) Create(ctx context.Context, items []ItemInput) (*domain.Order, error) {
	o, err := s.Prepare(ctx, items)
	if err != nil {
		return nil, err
	}
	return s.Place(ctx, o)
}

// Prepare builds a pending order from items without saving it. Every product
// must exist.
func (s *OrderService) Prepare(ctx context.Context, items []ItemInput) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	o := domain.NewOrder()
	for _, it := range items {
		p, err := s.product(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if err := o.AddProduct(*p, it.Quantity); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Place saves a prepared order. Placing the same order again after a failed
// attempt keeps its id.
func (s *OrderService) Place(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	t0 := time.Now()
	saved, err := s.orders.Save(ctx, o)
	s.metrics.ObserveWrite("order", "create", convertToMs(t0), err == nil)
	if err != nil {
		s.logger.Error("Error while saving order", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", saved.ID()),
		zap.Int("items", len(saved.Items())),
	)
	return saved, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	t0 := time.Now()
	o, ok, err := s.orders.FindByID(ctx, id)
	s.metrics.ObserveLookup("order", convertToMs(t0), ok)
	if err != nil {
		s.logger.Error("Can't find order", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context) ([]*domain.Order, error) {
	t0 := time.Now()
	orders, err := s.orders.FindAll(ctx)
	s.metrics.ObserveLookup("orders", convertToMs(t0), err == nil)
	if err != nil {
		s.logger.Error("Can't list orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.write("status", id, func() error { return s.orders.UpdateStatus(ctx, id, st) }); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *OrderService) AddItem(ctx context.Context, orderID, productID string, quantity int) (*domain.Order, error) {
	if _, err := s.Get(ctx, orderID); err != nil {
		return nil, err
	}
	if _, err := s.product(ctx, productID); err != nil {
		return nil, err
	}

	err := s.write("add_item", orderID, func() error {
		return s.orders.AddProductItem(ctx, orderID, productID, quantity)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

func (s *OrderService) RemoveItem(ctx context.Context, orderID, productID string) (*domain.Order, error) {
	if _, err := s.Get(ctx, orderID); err != nil {
		return nil, err
	}
	if _, err := s.product(ctx, productID); err != nil {
		return nil, err
	}

	err := s.write("remove_item", orderID, func() error {
		return s.orders.RemoveProductItem(ctx, orderID, productID)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.write("delete", id, func() error { return s.orders.Delete(ctx, id) })
}

func (s *OrderService) write(op, id string, fn func() error) error {
	t0 := time.Now()
	err := fn()
	ms := convertToMs(t0)
	s.metrics.ObserveWrite("order", op, ms, err == nil)
	if err != nil {
		s.logger.Error("Error while changing order",
			zap.String("op", op),
			zap.String("order_id", id),
			zap.Error(err),
		)
		return err
	}
	s.logger.Info("Order changed",
		zap.String("op", op),
		zap.String("order_id", id),
		zap.Float64("db_write_ms", ms),
	)
	return nil
}

func (s *OrderService) product(ctx context.Context, id string) (*domain.Product, error) {
	p, ok, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}
