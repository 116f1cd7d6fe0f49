package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/TemirB/catalog-orders/internal/application/service"
	"github.com/TemirB/catalog-orders/internal/domain"
	"github.com/TemirB/catalog-orders/internal/observability"
)

//go:generate mockgen -source=httpapi.go -destination=httpapi_mock_test.go -package=httpapi

type ProductService interface {
	Create(ctx context.Context, name string, price decimal.Decimal) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id, name string, price decimal.Decimal) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type OrderService interface {
	Create(ctx context.Context, items []service.ItemInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
	AddItem(ctx context.Context, orderID, productID string, quantity int) (*domain.Order, error)
	RemoveItem(ctx context.Context, orderID, productID string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type Server struct {
	products ProductService
	orders   OrderService
	router   chi.Router
	logger   *zap.Logger
	metrics  observability.Metrics

	metricsHandler http.Handler
}

type Option func(*Server)

// WithMetricsHandler exposes h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metricsHandler = h }
}

func New(products ProductService, orders OrderService, logger *zap.Logger, metrics observability.Metrics, opts ...Option) *Server {
	s := &Server{
		products: products,
		orders:   orders,
		logger:   logger,
		metrics:  metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Server-Timing", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(ServerTimingApp(s.metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.metricsHandler)
	}

	r.Route("/products", func(r chi.Router) {
		r.Post("/", s.createProduct)
		r.Get("/", s.listProducts)
		r.Get("/{id}", s.getProduct)
		r.Put("/{id}", s.updateProduct)
		r.Delete("/{id}", s.deleteProduct)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", s.createOrder)
		r.Get("/", s.listOrders)
		r.Get("/{id}", s.getOrder)
		r.Delete("/{id}", s.deleteOrder)
		r.Patch("/{id}/status", s.updateOrderStatus)
		r.Post("/{id}/items", s.addOrderItem)
		r.Delete("/{id}/items/{productId}", s.removeOrderItem)
	})

	s.router = r
}

// writeError maps domain errors to status codes. Store and cache failures are
// hidden behind a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, errUnsupportedMedia):
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
	default:
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		http.Error(w, "service error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Handler() http.Handler { return s.router }
