package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/logging"
	"github.com/simaogato/kidbank-backend/internal/metrics"
)

// BreakerSettings configures Breaker
type BreakerSettings struct {
	MaxRequests      uint32        // Allowed while half-open
	Interval         time.Duration // Closed-state counter reset period, 0 never resets
	Timeout          time.Duration // Open-state duration before probing again
	FailureThreshold uint32        // Consecutive failures that open the breaker
}

// Breaker wraps a PriceOracle with a circuit breaker. While open, fetches fail
// immediately with domain.ErrPriceUnavailable.
type Breaker struct {
	next    domain.PriceOracle
	cb      *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
	logger  *logging.Logger
}

// NewBreaker creates a circuit breaker named name around next
func NewBreaker(name string, next domain.PriceOracle, settings BreakerSettings, m *metrics.Metrics) *Breaker {
	logger := logging.L().Named("quote").Named("breaker")
	b := &Breaker{next: next, metrics: m, logger: logger}

	threshold := settings.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// a caller giving up is not an endpoint failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			b.metrics.SetBreakerState(name, stateValue(to))
		},
	})
	b.metrics.SetBreakerState(name, stateValue(gobreaker.StateClosed))

	return b
}

// FetchPrice implements domain.PriceOracle
func (b *Breaker) FetchPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.FetchPrice(ctx, ticker)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			b.metrics.ObserveQuote(metrics.QuoteBreakerOpen, 0)
			return decimal.Zero, fmt.Errorf("%s: %v: %w", domain.NormalizeTicker(ticker), err, domain.ErrPriceUnavailable)
		}
		return decimal.Zero, err
	}
	return result.(decimal.Decimal), nil
}

// State returns the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func stateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
