package kafka

import (
	"context"
	"errors"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/catalog-orders/internal/config"
)

// ErrSkip marks a message that can never succeed. The consumer commits past it.
var ErrSkip = errors.New("skip message")

type MessageHandler interface {
	Handle(ctx context.Context, msg kafkago.Message) error
}

type Reader interface {
	Config() kafkago.ReaderConfig
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type Consumer struct {
	handler MessageHandler
	reader  Reader
	zlogger *zap.Logger

	workerPoolSize int
	jobs           chan jobItem

	retryBackoff    time.Duration
	maxRetryBackoff time.Duration
}

type jobItem struct {
	msg    kafkago.Message
	result chan error
}

// NewReader builds a group reader with manual commits.
func NewReader(cfg config.Kafka) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.Group,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        time.Second,
		CommitInterval: 0,
	})
}

func NewConsumer(handler MessageHandler, reader Reader, workerPoolSize int, logger *zap.Logger) *Consumer {
	if workerPoolSize < 1 {
		workerPoolSize = 1
	}
	return &Consumer{
		handler:        handler,
		reader:         reader,
		zlogger:        logger,
		workerPoolSize: workerPoolSize,
		jobs:           make(chan jobItem, workerPoolSize*2),

		retryBackoff:    200 * time.Millisecond,
		maxRetryBackoff: 10 * time.Second,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	rc := c.reader.Config()
	c.zlogger.Info("Starting Kafka consumer",
		zap.Strings("brokers", rc.Brokers),
		zap.String("group", rc.GroupID),
		zap.String("topic", rc.Topic),
		zap.Strings("group_topic", rc.GroupTopics),
	)

	for i := 0; i < c.workerPoolSize; i++ {
		go c.worker(ctx, i)
	}

	// Each fetched message is handed to a worker and the loop waits for its
	// result before fetching the next one, so offsets are committed in fetch order.
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.zlogger.Debug("Attempting to fetch message from Kafka")
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// exit by context
				return
			}
			if isBenignFetchTimeout(err) {
				c.zlogger.Debug("fetch timeout (idle), backing off", zap.Error(err))
				sleepWithContext(ctx, 10*time.Second)
				continue
			}

			// Frequent temporary errors during rebalancing/coordinator = just wait and continue
			c.zlogger.Warn("FetchMessage error, backing off", zap.Error(err))
			sleepWithContext(ctx, 500*time.Millisecond)
			continue
		}

		if !c.process(ctx, msg) {
			return
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.zlogger.Warn(
				"commit failed",
				zap.Error(err),
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
			sleepWithContext(ctx, 200*time.Millisecond)
			continue
		}
		c.zlogger.Debug("message committed",
			zap.String("topic", msg.Topic), zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))
	}
}

// process hands msg to a worker until it succeeds or is marked ErrSkip.
// A failed message is redelivered in place with growing backoff, so later
// offsets are never committed past it. It returns false once ctx is done.
func (c *Consumer) process(ctx context.Context, msg kafkago.Message) bool {
	backoff := c.retryBackoff
	for attempt := 1; ; attempt++ {
		done := make(chan error, 1)
		select {
		case c.jobs <- jobItem{msg: msg, result: done}:
		case <-ctx.Done():
			return false
		}

		var procErr error
		select {
		case procErr = <-done:
		case <-ctx.Done():
			return false
		}

		if procErr == nil {
			return true
		}
		if errors.Is(procErr, ErrSkip) {
			c.zlogger.Warn("skipping message", zap.Error(procErr),
				zap.String("topic", msg.Topic), zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))
			return true
		}

		c.zlogger.Error("handler failed; redelivering message", zap.Error(procErr),
			zap.String("topic", msg.Topic), zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt), zap.Duration("backoff", backoff))
		sleepWithContext(ctx, backoff)
		if ctx.Err() != nil {
			return false
		}
		backoff = min(backoff*2, c.maxRetryBackoff)
	}
}

// worker handles one message at a time and reports on its result channel.
func (c *Consumer) worker(ctx context.Context, id int) {
	logger := c.zlogger.With(zap.Int("worker", id))

	for {
		select {
		case <-ctx.Done():
			return
		case it := <-c.jobs:
			// Protection against accidental channel closure
			if it.result == nil {
				continue
			}

			msg := it.msg
			start := time.Now()

			err := c.handler.Handle(ctx, msg)

			elapsed := time.Since(start)
			if err != nil && !errors.Is(err, ErrSkip) {
				logger.Error("message handling failed",
					zap.Error(err),
					zap.String("topic", msg.Topic),
					zap.Int("partition", msg.Partition),
					zap.Int64("offset", msg.Offset),
					zap.Duration("elapsed", elapsed),
				)
				it.result <- err
				continue
			}
			if err != nil {
				it.result <- err
				continue
			}

			logger.Debug("message handled",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Int("key_bytes", len(msg.Key)),
				zap.Int("value_bytes", len(msg.Value)),
				zap.Duration("elapsed", elapsed),
			)

			it.result <- nil
		}
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func isBenignFetchTimeout(err error) bool {
	s := err.Error()
	return strings.Contains(s, "Request Timed Out") ||
		strings.Contains(s, "no messages received from kafka within the allocated time")
}
