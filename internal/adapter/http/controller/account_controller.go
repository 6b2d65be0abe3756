package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/account-management/internal/adapter/http/middleware"
	"github.com/api-sage/account-management/internal/adapter/http/models"
	"github.com/api-sage/account-management/internal/domain"
	"github.com/api-sage/account-management/internal/usecase/service_interfaces"
)

const (
	apiVersion         = "1.0.0"
	defaultCloseReason = "CUSTOMER_REQUEST"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, customerContext func(http.Handler) http.Handler) {
	// Health stays outside the customer-context requirement.
	mux.HandleFunc("/accounts/health", c.health)

	collection := http.Handler(http.HandlerFunc(c.accounts))
	item := http.Handler(http.HandlerFunc(c.accountByID))
	if customerContext != nil {
		collection = customerContext(collection)
		item = customerContext(item)
	}
	mux.Handle("/accounts", collection)
	mux.Handle("/accounts/", item)
}

func (c *AccountController) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:  "UP",
		Message: "Banking Account Management API is running",
		Version: apiVersion,
	})
}

func (c *AccountController) accounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.listAccounts(w, r)
	case http.MethodPost:
		c.createAccount(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, models.ErrorBody{Error: "Method not allowed"})
	}
}

func (c *AccountController) accountByID(w http.ResponseWriter, r *http.Request) {
	accountID := strings.TrimPrefix(r.URL.Path, "/accounts/")
	if accountID == "" || strings.Contains(accountID, "/") {
		writeJSON(w, http.StatusNotFound, models.ErrorBody{Error: "Not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		c.getAccount(w, r, accountID)
	case http.MethodPut:
		c.updateAccount(w, r, accountID)
	case http.MethodDelete:
		c.closeAccount(w, r, accountID)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, models.ErrorBody{Error: "Method not allowed"})
	}
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	query, err := models.ParseListAccountsQuery(r.URL.Query())
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}

	response, err := c.service.ListAccounts(r.Context(), middleware.CustomerID(r.Context()), query)
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request, accountID string) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetAccount(r.Context(), accountID, middleware.CustomerID(r.Context()))
	if err != nil {
		c.writeError(w, r, err, accountID)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorBody{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateAccount(r.Context(), middleware.CustomerID(r.Context()), req)
	if err != nil {
		c.writeError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) updateAccount(w http.ResponseWriter, r *http.Request, accountID string) {
	start := time.Now()

	var req models.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorBody{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}
	logRequest(r, req)

	response, err := c.service.UpdateAccount(r.Context(), accountID, middleware.CustomerID(r.Context()), req)
	if err != nil {
		c.writeError(w, r, err, accountID)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) closeAccount(w http.ResponseWriter, r *http.Request, accountID string) {
	start := time.Now()
	logRequest(r, nil)

	reason := strings.TrimSpace(r.URL.Query().Get("reason"))
	if reason == "" {
		reason = defaultCloseReason
	}

	if err := c.service.CloseAccount(r.Context(), accountID, middleware.CustomerID(r.Context()), reason); err != nil {
		c.writeError(w, r, err, accountID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	logResponse(r, http.StatusNoContent, nil, start)
}

// writeError maps the domain error taxonomy onto status codes. Everything not
// in the taxonomy is an internal failure and carries no detail out.
func (c *AccountController) writeError(w http.ResponseWriter, r *http.Request, err error, accountID string) {
	var validation *domain.ValidationError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &validation):
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, models.ErrorBody{
			Error:      "Validation failed",
			Message:    validation.Error(),
			Violations: validation.Violations,
		})
	case errors.Is(err, domain.ErrAccountNotFound):
		logError(r, err, map[string]any{"accountId": accountID})
		writeJSON(w, http.StatusNotFound, models.ErrorBody{
			Error:     "Account not found",
			AccountID: accountID,
		})
	case errors.Is(err, domain.ErrAccessDenied):
		logError(r, err, map[string]any{"accountId": accountID})
		writeJSON(w, http.StatusForbidden, models.ErrorBody{
			Error:   "Access denied",
			Message: "Account does not belong to customer",
		})
	case errors.As(err, &conflict):
		logError(r, err, map[string]any{"accountId": accountID})
		writeJSON(w, http.StatusConflict, models.ErrorBody{
			Error:   "Account cannot be closed",
			Message: conflict.Reason,
		})
	case errors.Is(err, domain.ErrNumberGeneration):
		logError(r, err, nil)
		writeJSON(w, http.StatusInternalServerError, models.ErrorBody{
			Error:   "Failed to create account",
			Message: "Unable to allocate an account number",
		})
	default:
		logError(r, err, map[string]any{"accountId": accountID})
		writeJSON(w, http.StatusInternalServerError, models.ErrorBody{
			Error:   "Internal server error",
			Message: "The request could not be processed",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
