package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/logging"
	"github.com/simaogato/kidbank-backend/internal/metrics"
	"github.com/simaogato/kidbank-backend/internal/usecase/dashboard"
)

const testToken = "ops-token"

// MockAccountDetailer is a mock implementation of AccountDetailer for testing
type MockAccountDetailer struct {
	mock.Mock
}

func (m *MockAccountDetailer) GetAccountDetail(ctx context.Context, accountID string) (*dashboard.AccountDetail, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.AccountDetail), args.Error(1)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestServer(t *testing.T, accounts AccountDetailer, store Pinger) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New("test")
	require.NoError(t, reg.Register(m))

	h := NewHandler(accounts, store, testToken, logging.NewNoOpLogger())
	srv := httptest.NewServer(NewRouter(h, m, reg))
	t.Cleanup(srv.Close)
	return srv, reg
}

func get(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedCode   int
		expectedStatus string
	}{
		{name: "Healthy", pingErr: nil, expectedCode: http.StatusOK, expectedStatus: "healthy"},
		{name: "Store Down", pingErr: errors.New("connection refused"), expectedCode: http.StatusServiceUnavailable, expectedStatus: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			srv, _ := newTestServer(t, new(MockAccountDetailer), pingerFunc(func(context.Context) error { return tt.pingErr }))

			// Execute
			resp := get(t, srv.URL+"/healthz", "")

			// Assert
			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expectedStatus, body["status"])
		})
	}
}

func TestStatement_Success(t *testing.T) {
	// Setup
	accounts := new(MockAccountDetailer)
	kid := &domain.Kid{ID: uuid.New(), Name: "Avery"}
	account := &domain.Account{ID: uuid.New(), KidID: kid.ID, Name: "Allowance", Kind: domain.AccountKindChecking}
	detail := &dashboard.AccountDetail{Account: account, Kid: kid, BalanceCents: 14500}
	accounts.On("GetAccountDetail", mock.Anything, account.ID.String()).Return(detail, nil)
	srv, reg := newTestServer(t, accounts, pingerFunc(func(context.Context) error { return nil }))

	// Execute
	resp := get(t, srv.URL+"/accounts/"+account.ID.String()+"/statement.pdf", testToken)

	// Assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), account.ID.String())
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
	accounts.AssertExpectations(t)

	// The route template, not the id, labels the request
	families, err := reg.Gather()
	require.NoError(t, err)
	var endpoints []string
	for _, family := range families {
		if family.GetName() != "test_http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "endpoint" {
					endpoints = append(endpoints, label.GetValue())
				}
			}
		}
	}
	assert.Contains(t, endpoints, "/accounts/{id}/statement.pdf")
}

func TestStatement_Errors(t *testing.T) {
	tests := []struct {
		name         string
		token        string
		serviceErr   error
		expectedCode int
	}{
		{name: "Missing Token", token: "", expectedCode: http.StatusUnauthorized},
		{name: "Wrong Token", token: "nope", expectedCode: http.StatusUnauthorized},
		{name: "Token Prefix", token: testToken[:3], expectedCode: http.StatusUnauthorized},
		{name: "Token With Suffix", token: testToken + "x", expectedCode: http.StatusUnauthorized},
		{name: "Malformed ID", token: testToken, serviceErr: fmt.Errorf("account id: %w", domain.ErrInvalidID), expectedCode: http.StatusBadRequest},
		{name: "Unknown Account", token: testToken, serviceErr: fmt.Errorf("account: %w", domain.ErrNotFound), expectedCode: http.StatusNotFound},
		{name: "Store Failure", token: testToken, serviceErr: errors.New("connection reset"), expectedCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			accounts := new(MockAccountDetailer)
			if tt.serviceErr != nil {
				accounts.On("GetAccountDetail", mock.Anything, "abc").Return(nil, tt.serviceErr)
			}
			srv, _ := newTestServer(t, accounts, pingerFunc(func(context.Context) error { return nil }))

			// Execute
			resp := get(t, srv.URL+"/accounts/abc/statement.pdf", tt.token)

			// Assert
			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json"))
			if tt.serviceErr == nil {
				accounts.AssertNotCalled(t, "GetAccountDetail", mock.Anything, mock.Anything)
			} else {
				accounts.AssertExpectations(t)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, new(MockAccountDetailer), pingerFunc(func(context.Context) error { return nil }))

	get(t, srv.URL+"/healthz", "")
	resp := get(t, srv.URL+"/metrics", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_http_requests_total{endpoint="/healthz",method="GET",status="OK"} 1`)
}
