package quote

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/metrics"
)

// stubOracle returns a fixed result and counts calls
type stubOracle struct {
	price decimal.Decimal
	err   error
	calls int
}

func (s *stubOracle) FetchPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	s.calls++
	return s.price, s.err
}

func TestBreaker_PassesThrough(t *testing.T) {
	next := &stubOracle{price: decimal.NewFromInt(440)}
	b := NewBreaker("quote", next, BreakerSettings{MaxRequests: 1, Timeout: time.Minute, FailureThreshold: 2}, nil)

	price, err := b.FetchPrice(context.Background(), "VOO")

	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(440)))
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	next := &stubOracle{err: fmt.Errorf("down: %w", domain.ErrPriceUnavailable)}
	b := NewBreaker("quote", next, BreakerSettings{MaxRequests: 1, Timeout: time.Minute, FailureThreshold: 2}, metrics.New("test"))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := b.FetchPrice(ctx, "VOO")
		assert.ErrorIs(t, err, domain.ErrPriceUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.FetchPrice(ctx, "VOO")

	assert.ErrorIs(t, err, domain.ErrPriceUnavailable)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Equal(t, 2, next.calls, "open breaker must not call the endpoint")
}

func TestBreaker_CanceledCallsDoNotTrip(t *testing.T) {
	next := &stubOracle{err: context.Canceled}
	b := NewBreaker("quote", next, BreakerSettings{MaxRequests: 1, Timeout: time.Minute, FailureThreshold: 1}, nil)

	for i := 0; i < 5; i++ {
		_, err := b.FetchPrice(context.Background(), "VOO")
		assert.True(t, errors.Is(err, context.Canceled))
	}

	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.Equal(t, 5, next.calls)
}
