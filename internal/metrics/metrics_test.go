package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("kidbank")
	require.NoError(t, reg.Register(m))

	m.ObserveGRPC("/kidbank.v1.KidBankService/CreateKid", "OK", 10*time.Millisecond)
	m.ObserveHTTP("GET", "/healthz", "OK", time.Millisecond)
	m.ObserveQuote(QuoteOK, 200*time.Millisecond)
	m.ObserveQuote(QuoteError, time.Second)
	m.ObserveQuote(QuoteError, time.Second)
	m.SetBreakerState("quote", 2)

	families := gather(t, reg)

	require.Contains(t, families, "kidbank_grpc_requests_total")
	require.Contains(t, families, "kidbank_http_requests_total")
	require.Contains(t, families, "kidbank_quote_fetch_duration_seconds")

	quotes := families["kidbank_quote_fetches_total"]
	require.NotNil(t, quotes)
	byResult := map[string]float64{}
	for _, metric := range quotes.GetMetric() {
		byResult[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, 1.0, byResult[QuoteOK])
	assert.Equal(t, 2.0, byResult[QuoteError])

	breaker := families["kidbank_circuit_breaker_state"]
	require.NotNil(t, breaker)
	assert.Equal(t, 2.0, breaker.GetMetric()[0].GetGauge().GetValue())
}

func TestMetrics_NilIsNoOp(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveGRPC("m", "OK", time.Second)
		m.ObserveHTTP("GET", "/", "OK", time.Second)
		m.ObserveQuote(QuoteOK, time.Second)
		m.SetBreakerState("quote", 0)
	})
}
