// Package quote fetches latest market prices from a Yahoo Finance style
// chart endpoint.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/logging"
	"github.com/simaogato/kidbank-backend/internal/metrics"
)

// pricePath locates the spot price in a chart response
const pricePath = "$.chart.result[0].meta.regularMarketPrice"

// maxBodyBytes caps the response body read from the quote endpoint
const maxBodyBytes = 1 << 20

// Client implements domain.PriceOracle over HTTP.
// It neither caches nor retries.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *logging.Logger
	metrics   *metrics.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for fetch failures
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics records every fetch
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a quote client for baseURL, e.g. https://query1.finance.yahoo.com
func NewClient(baseURL, userAgent string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
		logger:    logging.L().Named("quote"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPrice returns the latest price of ticker.
// Any transport error, non-2xx status, malformed body or non-positive price
// is reported as domain.ErrPriceUnavailable.
func (c *Client) FetchPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	start := time.Now()
	symbol := domain.NormalizeTicker(ticker)

	price, err := c.fetch(ctx, symbol)
	if err != nil {
		c.metrics.ObserveQuote(metrics.QuoteError, time.Since(start))
		c.logger.Warn("price fetch failed",
			zap.String("ticker", symbol),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return decimal.Zero, fmt.Errorf("%s: %v: %w", symbol, err, domain.ErrPriceUnavailable)
	}

	c.metrics.ObserveQuote(metrics.QuoteOK, time.Since(start))
	return price, nil
}

func (c *Client) fetch(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if symbol == "" {
		return decimal.Zero, fmt.Errorf("empty ticker")
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decimal.Zero, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decode body: %w", err)
	}

	return extractPrice(body)
}

// extractPrice reads the spot price out of a decoded chart response
func extractPrice(body any) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(pricePath, body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("read %s: %w", pricePath, err)
	}
	// jsonpath may wrap a single match in a list
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return decimal.Zero, fmt.Errorf("no match for %s", pricePath)
		}
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		return decimal.Zero, fmt.Errorf("price is not a number: %v", jval)
	}
	price := decimal.NewFromFloat(val)
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("price %s is not positive", price)
	}
	return price, nil
}
