package main

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Spammer publishes order-intake commands to Kafka at a fixed rate.
type Spammer struct {
	writer     *kafka.Writer
	logger     *zap.Logger
	productIDs []string
	isRunning  atomic.Bool
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	totalSent  atomic.Int64
	startedAt  time.Time
}

type SpamRequest struct {
	Rate     int    `json:"rate"`
	Duration string `json:"duration"`
}

func NewSpammer(brokers []string, topic string, productIDs []string, logger *zap.Logger) *Spammer {
	ctx, cancel := context.WithCancel(context.Background())

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}

	return &Spammer{
		writer:     writer,
		logger:     logger,
		productIDs: productIDs,
		ctx:        ctx,
		cancel:     cancel,
		startedAt:  time.Now(),
	}
}

func (s *Spammer) StartSpam(rate int, duration time.Duration) {
	if s.isRunning.Swap(true) {
		return
	}
	s.totalSent.Store(0)

	s.logger.Info("Starting spam", zap.Int("rate", rate), zap.Duration("duration", duration))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.isRunning.Store(false)

		ticker := time.NewTicker(time.Second / time.Duration(rate))
		defer ticker.Stop()

		timer := time.NewTimer(duration)
		defer timer.Stop()

		for {
			select {
			case <-ticker.C:
				jsonData, err := json.Marshal(fakeOrder(s.productIDs))
				if err != nil {
					s.logger.Error("Error marshaling message", zap.Error(err))
					continue
				}

				err = s.writer.WriteMessages(s.ctx, kafka.Message{
					Value: jsonData,
					Time:  time.Now(),
				})
				if err != nil {
					s.logger.Warn("Error sending message to Kafka", zap.Error(err))
				} else {
					s.totalSent.Add(1)
				}

			case <-timer.C:
				s.logger.Info("Spam completed", zap.Int64("total_sent", s.totalSent.Load()))
				return

			case <-s.ctx.Done():
				s.logger.Info("Spam stopped", zap.Int64("total_sent", s.totalSent.Load()))
				return
			}
		}
	}()
}

func (s *Spammer) StopSpam() {
	if s.isRunning.Load() {
		s.cancel()
		s.wg.Wait()

		s.ctx, s.cancel = context.WithCancel(context.Background())
	}
}

func (s *Spammer) Close() {
	s.StopSpam()
	_ = s.writer.Close()
}

// fakeOrder builds an order-intake command over the known product ids.
func fakeOrder(productIDs []string) map[string]interface{} {
	n := 1 + rand.Intn(3)
	items := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, map[string]interface{}{
			"productId": productIDs[rand.Intn(len(productIDs))],
			"quantity":  1 + rand.Intn(5),
		})
	}
	return map[string]interface{}{"items": items}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func main() {
	_ = godotenv.Load("env/.env")

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	brokers := []string{"kafka:9092"}
	if envBrokers := splitCSV(os.Getenv("KAFKA_BROKERS")); len(envBrokers) > 0 {
		brokers = envBrokers
	}

	topic := "orders"
	if envTopic := os.Getenv("KAFKA_TOPIC"); envTopic != "" {
		topic = envTopic
	}

	productIDs := splitCSV(os.Getenv("PRODUCT_IDS"))
	if len(productIDs) == 0 {
		logger.Fatal("PRODUCT_IDS must list at least one product id")
	}

	spammer := NewSpammer(brokers, topic, productIDs, logger)
	defer spammer.Close()

	r := chi.NewRouter()

	r.Post("/start", func(w http.ResponseWriter, r *http.Request) {
		var req SpamRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if req.Rate <= 0 {
			req.Rate = 10
		}

		duration, err := time.ParseDuration(req.Duration)
		if err != nil {
			http.Error(w, "Invalid duration format: "+err.Error(), http.StatusBadRequest)
			return
		}

		spammer.StartSpam(req.Rate, duration)

		writeJSON(w, map[string]interface{}{
			"status":   "started",
			"rate":     req.Rate,
			"duration": duration.String(),
		})
	})

	r.Post("/stop", func(w http.ResponseWriter, _ *http.Request) {
		spammer.StopSpam()

		writeJSON(w, map[string]interface{}{
			"status":     "stopped",
			"total_sent": spammer.totalSent.Load(),
		})
	})

	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]interface{}{
			"is_running": spammer.isRunning.Load(),
			"total_sent": spammer.totalSent.Load(),
			"uptime":     time.Since(spammer.startedAt).String(),
		})
	})

	port := ":8082"
	if envPort := os.Getenv("SPAMMER_PORT"); envPort != "" {
		port = ":" + envPort
	}

	logger.Info("Spammer server started", zap.String("addr", port), zap.Strings("product_ids", productIDs))
	if err := http.ListenAndServe(port, r); err != nil {
		logger.Fatal("Spammer server failed", zap.Error(err))
	}
}
