// Package web serves the operational HTTP endpoints: health, metrics and
// account statements.
package web

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/simaogato/kidbank-backend/internal/domain"
	"github.com/simaogato/kidbank-backend/internal/logging"
	"github.com/simaogato/kidbank-backend/internal/report"
	"github.com/simaogato/kidbank-backend/internal/usecase/dashboard"
)

// AccountDetailer loads the detail view of one account
type AccountDetailer interface {
	GetAccountDetail(ctx context.Context, accountID string) (*dashboard.AccountDetail, error)
}

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the ops endpoints
type Handler struct {
	accounts AccountDetailer
	store    Pinger
	token    string
	logger   *logging.Logger
	now      func() time.Time
}

// NewHandler creates a Handler. Statements require token.
func NewHandler(accounts AccountDetailer, store Pinger, token string, logger *logging.Logger) *Handler {
	return &Handler{
		accounts: accounts,
		store:    store,
		token:    token,
		logger:   logger,
		now:      time.Now,
	}
}

// HealthCheck reports the store status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	health := map[string]string{
		"status": "healthy",
		"store":  "ok",
	}
	code := http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("store health check failed", zap.Error(err))
		health["status"] = "unhealthy"
		health["store"] = err.Error()
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, health)
}

// Statement renders the PDF statement of one account
func (h *Handler) Statement(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		return
	}

	id := mux.Vars(r)["id"]
	detail, err := h.accounts.GetAccountDetail(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	// Render fully before writing so a failure can still become a 500
	var buf bytes.Buffer
	if err := report.WriteStatementPDF(&buf, detail, h.now()); err != nil {
		h.writeError(w, err)
		return
	}

	filename := "statement-" + detail.Account.ID.String() + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// authorized accepts the raw token or a Bearer token
func (h *Handler) authorized(r *http.Request) bool {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	header = strings.TrimPrefix(header, "Bearer ")
	return header != "" && subtle.ConstantTimeCompare([]byte(header), []byte(h.token)) == 1
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("statement failed", zap.Error(err))
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrDomain):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOracle):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
