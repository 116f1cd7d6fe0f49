package breaker

import (
	"errors"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/TemirB/catalog-orders/internal/config"
)

var ErrOpenState = errors.New("circuit breaker is open")

type State = gobreaker.State

const (
	Closed   = gobreaker.StateClosed
	HalfOpen = gobreaker.StateHalfOpen
	Open     = gobreaker.StateOpen
)

// Breaker opens after Threshold consecutive failures, stays open for
// OpenTimeout and then lets MaxHalfOpen trial calls through.
type Breaker struct {
	cb *gobreaker.TwoStepCircuitBreaker
}

func New(name string, cfg config.Breaker, logger *zap.Logger) *Breaker {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = 1
	}
	return &Breaker{
		cb: gobreaker.NewTwoStepCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: cfg.MaxHalfOpen,
			Timeout:     cfg.OpenTimeout,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state changed",
					zap.String("breaker", name),
					zap.Stringer("from", from),
					zap.Stringer("to", to),
				)
			},
		}),
	}
}

// Allow reserves a call. The caller reports the outcome through done.
func (b *Breaker) Allow() (done func(success bool), err error) {
	done, err = b.cb.Allow()
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrOpenState
	}
	return done, err
}

func (b *Breaker) State() State { return b.cb.State() }
