package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/api-sage/account-management/internal/adapter/http/models"
	"github.com/api-sage/account-management/internal/logger"
)

const (
	HeaderCustomerID = "X-Customer-ID"
	HeaderRequestID  = "X-Request-ID"
)

type contextKey string

const (
	customerIDKey contextKey = "customerID"
	requestIDKey  contextKey = "requestID"
)

// CustomerContext asserts the caller's customer identity from the
// X-Customer-ID header and stashes it, plus the optional X-Request-ID, in the
// request context. Requests without a customer id are client errors.
func CustomerContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customerID := strings.TrimSpace(r.Header.Get(HeaderCustomerID))
			if customerID == "" {
				logger.Info("customer context middleware missing customer id", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(models.ErrorBody{
					Error:   "Missing customer id",
					Message: "X-Customer-ID header is required",
				})
				return
			}

			ctx := context.WithValue(r.Context(), customerIDKey, customerID)
			if requestID := strings.TrimSpace(r.Header.Get(HeaderRequestID)); requestID != "" {
				ctx = context.WithValue(ctx, requestIDKey, requestID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerID returns the asserted customer id, or "" outside the middleware.
func CustomerID(ctx context.Context) string {
	id, _ := ctx.Value(customerIDKey).(string)
	return id
}

// RequestID returns the tracing id supplied by the caller, if any. It is
// echoed into logs only.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
