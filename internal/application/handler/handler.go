package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/catalog-orders/internal/application/service"
	"github.com/TemirB/catalog-orders/internal/config"
	"github.com/TemirB/catalog-orders/internal/domain"
	"github.com/TemirB/catalog-orders/internal/kafka"
	"github.com/TemirB/catalog-orders/internal/observability"
	"github.com/TemirB/catalog-orders/internal/pkg/retry"
)

var (
	ErrBadJSON     = errors.New("bad json")
	ErrRejected    = errors.New("order rejected")
	ErrCreate      = errors.New("create order failed")
	ErrCircuitOpen = errors.New("circuit breaker open")
)

//go:generate mockgen -source=handler.go -destination=handler_mock_test.go -package=handler

type Service interface {
	Prepare(ctx context.Context, items []service.ItemInput) (*domain.Order, error)
	Place(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

type brk interface {
	Allow() (func(success bool), error)
}

type createOrder struct {
	Items []struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
}

type Handler struct {
	service     Service
	breaker     brk
	logger      *zap.Logger
	metrics     observability.Metrics
	retryPolicy config.Retry
}

func NewHandler(service Service, breaker brk, retryPolicy config.Retry, logger *zap.Logger, metrics observability.Metrics) *Handler {
	return &Handler{
		service:     service,
		breaker:     breaker,
		logger:      logger,
		metrics:     metrics,
		retryPolicy: retryPolicy,
	}
}

// Handle is called by the consumer for a single order-intake message.
// Malformed or rejected commands are marked with kafka.ErrSkip so the
// consumer commits past them.
func (h *Handler) Handle(ctx context.Context, message kafkago.Message) error {
	t0 := time.Now()
	err := h.handle(ctx, message)
	h.metrics.ObserveKafka(float64(time.Since(t0).Microseconds())/1000.0, err == nil)
	return err
}

func (h *Handler) handle(ctx context.Context, message kafkago.Message) error {
	done, err := h.breaker.Allow()
	if err != nil {
		h.logger.Warn("circuit breaker is open",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}

	var cmd createOrder
	if err := json.Unmarshal(message.Value, &cmd); err != nil {
		h.logger.Error("bad json format",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		// the downstream was never called
		done(true)
		return fmt.Errorf("%w: %w", ErrBadJSON, kafka.ErrSkip)
	}

	items := make([]service.ItemInput, 0, len(cmd.Items))
	for _, it := range cmd.Items {
		items = append(items, service.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	// The order is built once so every retry saves the same id.
	var prepared, order *domain.Order
	err = retry.Do(ctx, h.retryPolicy, func() error {
		var err error
		if prepared == nil {
			prepared, err = h.service.Prepare(ctx, items)
			if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) {
				return retry.Permanent(err)
			}
			if err != nil {
				return err
			}
		}
		order, err = h.service.Place(ctx, prepared)
		return err
	})

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("order rejected",
			zap.Error(err),
			zap.Int("items", len(items)),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		done(true)
		return fmt.Errorf("%w: %w: %w", ErrRejected, err, kafka.ErrSkip)
	default:
		h.logger.Error("create order failed after retries",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		done(false)
		return fmt.Errorf("%w: %w", ErrCreate, err)
	}

	done(true)
	h.logger.Info("successfully processed order",
		zap.String("order_id", order.ID()),
		zap.Int("partition", message.Partition),
		zap.Int64("offset", message.Offset),
		zap.Int("key_bytes", len(message.Key)),
		zap.Int("value_bytes", len(message.Value)),
	)
	return nil
}
