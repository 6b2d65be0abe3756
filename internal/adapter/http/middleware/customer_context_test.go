package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/api-sage/account-management/internal/adapter/http/middleware"
	"github.com/api-sage/account-management/internal/adapter/http/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerContextMissingHeader(t *testing.T) {
	handler := middleware.CustomerContext()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a customer id")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/accounts", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body models.ErrorBody
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "Missing customer id", body.Error)
	assert.Equal(t, "X-Customer-ID header is required", body.Message)
}

func TestCustomerContextBlankHeader(t *testing.T) {
	handler := middleware.CustomerContext()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a blank customer id")
	}))

	request := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	request.Header.Set(middleware.HeaderCustomerID, "   ")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCustomerContextPropagatesIdentity(t *testing.T) {
	var gotCustomerID, gotRequestID string
	handler := middleware.CustomerContext()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCustomerID = middleware.CustomerID(r.Context())
		gotRequestID = middleware.RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	request.Header.Set(middleware.HeaderCustomerID, "customer-123")
	request.Header.Set(middleware.HeaderRequestID, "req-42")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "customer-123", gotCustomerID)
	assert.Equal(t, "req-42", gotRequestID)
}

func TestCustomerContextAccessorsOutsideMiddleware(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/accounts", nil)

	assert.Empty(t, middleware.CustomerID(request.Context()))
	assert.Empty(t, middleware.RequestID(request.Context()))
}
