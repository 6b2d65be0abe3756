package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/account-management/internal/adapter/http/middleware"
	"github.com/api-sage/account-management/internal/logger"
)

func requestFields(r *http.Request) logger.Fields {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"query":  r.URL.RawQuery,
	}
	if requestID := middleware.RequestID(r.Context()); requestID != "" {
		fields["requestId"] = requestID
	}
	return fields
}

func logRequest(r *http.Request, payload any) {
	fields := requestFields(r)
	if payload != nil {
		fields["payload"] = logger.SanitizePayload(payload)
	}
	logger.Info("http request", fields)
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	fields := requestFields(r)
	fields["status"] = status
	fields["durationMs"] = time.Since(start).Milliseconds()
	if payload != nil {
		fields["response"] = logger.SanitizePayload(payload)
	}
	logger.Info("http response", fields)
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := requestFields(r)
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}
