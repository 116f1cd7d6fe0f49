package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TemirB/catalog-orders/internal/application/handler"
	"github.com/TemirB/catalog-orders/internal/application/service"
	"github.com/TemirB/catalog-orders/internal/config"
	"github.com/TemirB/catalog-orders/internal/factory"
	"github.com/TemirB/catalog-orders/internal/httpapi"
	"github.com/TemirB/catalog-orders/internal/kafka"
	"github.com/TemirB/catalog-orders/internal/observability"
	"github.com/TemirB/catalog-orders/internal/pkg/breaker"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics, metricsHandler := observability.NewSink(cfg.Metrics, "catalog_orders")

	repos, err := factory.New(ctx, cfg, logger, factory.WithCacheCounter(metrics))
	if err != nil {
		logger.Fatal("Can't build repositories", zap.Error(err))
	}
	defer repos.Close()
	logger.Info("Repositories ready",
		zap.Stringer("store", repos.Kind),
		zap.Stringer("cache", repos.Cache),
		zap.String("metrics", cfg.Metrics),
	)

	products := service.NewProductService(repos.Products, logger, metrics)
	orders := service.NewOrderService(repos.Orders, repos.Products, logger, metrics)

	g, ctx := errgroup.WithContext(ctx)

	var opts []httpapi.Option
	if metricsHandler != nil {
		opts = append(opts, httpapi.WithMetricsHandler(metricsHandler))
	}
	server := httpapi.New(products, orders, logger, metrics, opts...)
	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		return server.ListenAndServe(ctx, cfg.HTTPAddr)
	})

	if cfg.Kafka.Enabled() {
		if err := kafka.EnsureTopic(ctx, cfg.Kafka, logger); err != nil {
			logger.Fatal("Can't ensure kafka topic", zap.Error(err))
		}

		reader := kafka.NewReader(cfg.Kafka)
		defer reader.Close()

		h := handler.NewHandler(orders, breaker.New("order-intake", cfg.Breaker, logger), cfg.Retry, logger, metrics)
		consumer := kafka.NewConsumer(h, reader, cfg.Kafka.Workers, logger)
		g.Go(func() error {
			consumer.Start(ctx)
			return nil
		})
	} else {
		logger.Info("Kafka order intake disabled")
	}

	if err := g.Wait(); err != nil {
		logger.Error("Stopped with error", zap.Error(err))
		return
	}
	logger.Info("Stopped")
}
