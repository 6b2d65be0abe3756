package models_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/api-sage/account-management/internal/adapter/http/models"
	"github.com/api-sage/account-management/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() models.CreateAccountRequest {
	deposit := decimal.RequireFromString("1000.00")
	return models.CreateAccountRequest{
		AccountType:    "SAVINGS",
		Currency:       "USD",
		InitialDeposit: &deposit,
		CustomerDetails: &models.CustomerDetails{
			FirstName:   "John",
			LastName:    "Doe",
			Email:       "john.doe@example.com",
			PhoneNumber: "+1234567890",
		},
		AccountNickname: "My Savings Account",
	}
}

func TestCreateAccountRequestValid(t *testing.T) {
	require.NoError(t, validCreateRequest().Validate())
}

func TestCreateAccountRequestAggregatesViolations(t *testing.T) {
	err := models.CreateAccountRequest{}.Validate()

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Violations, "accountType is required")
	assert.Contains(t, validation.Violations, "currency is required")
	assert.Contains(t, validation.Violations, "initialDeposit is required")
	assert.Contains(t, validation.Violations, "customerDetails are required")
}

func TestCreateAccountRequestFieldRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.CreateAccountRequest)
		violation string
	}{
		{
			name:      "unknown account type",
			mutate:    func(r *models.CreateAccountRequest) { r.AccountType = "CRYPTO" },
			violation: "accountType must be one of CHECKING, SAVINGS, MONEY_MARKET, CERTIFICATE_DEPOSIT, LOAN, CREDIT_CARD, INVESTMENT",
		},
		{
			name:      "lowercase currency",
			mutate:    func(r *models.CreateAccountRequest) { r.Currency = "usd" },
			violation: "currency must be a valid ISO 4217 code",
		},
		{
			name: "negative deposit",
			mutate: func(r *models.CreateAccountRequest) {
				negative := decimal.RequireFromString("-1.00")
				r.InitialDeposit = &negative
			},
			violation: "initialDeposit cannot be negative",
		},
		{
			name:      "missing first name",
			mutate:    func(r *models.CreateAccountRequest) { r.CustomerDetails.FirstName = "  " },
			violation: "firstName is required",
		},
		{
			name:      "first name too long",
			mutate:    func(r *models.CreateAccountRequest) { r.CustomerDetails.FirstName = strings.Repeat("a", 51) },
			violation: "firstName must not exceed 50 characters",
		},
		{
			name:      "bad email",
			mutate:    func(r *models.CreateAccountRequest) { r.CustomerDetails.Email = "not-an-email" },
			violation: "email format is invalid",
		},
		{
			name:      "bad phone",
			mutate:    func(r *models.CreateAccountRequest) { r.CustomerDetails.PhoneNumber = "0123" },
			violation: "phoneNumber format is invalid",
		},
		{
			name:      "nickname too long",
			mutate:    func(r *models.CreateAccountRequest) { r.AccountNickname = strings.Repeat("a", 51) },
			violation: "accountNickname must not exceed 50 characters",
		},
		{
			name:      "nickname bad characters",
			mutate:    func(r *models.CreateAccountRequest) { r.AccountNickname = "savings!@#" },
			violation: "accountNickname contains invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			err := req.Validate()

			var validation *domain.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Contains(t, validation.Violations, tt.violation)
		})
	}
}

func TestCreateAccountRequestOptionalContactFields(t *testing.T) {
	req := validCreateRequest()
	req.CustomerDetails.Email = ""
	req.CustomerDetails.PhoneNumber = ""
	req.AccountNickname = ""

	require.NoError(t, req.Validate())
}

func TestCreateAccountRequestZeroDepositAllowed(t *testing.T) {
	req := validCreateRequest()
	zero := decimal.Zero
	req.InitialDeposit = &zero

	require.NoError(t, req.Validate())
}

func TestUpdateAccountRequestValidate(t *testing.T) {
	require.NoError(t, models.UpdateAccountRequest{}.Validate())

	nickname := "Updated Nickname"
	require.NoError(t, models.UpdateAccountRequest{AccountNickname: &nickname}.Validate())

	bad := strings.Repeat("a", 51)
	err := models.UpdateAccountRequest{AccountNickname: &bad}.Validate()
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Violations, "accountNickname must not exceed 50 characters")
}

func TestParseListAccountsQueryDefaults(t *testing.T) {
	query, err := models.ParseListAccountsQuery(url.Values{})

	require.NoError(t, err)
	assert.Equal(t, 0, query.Page)
	assert.Equal(t, 10, query.Size)
	assert.Equal(t, "createdAt", query.SortBy)
	assert.Equal(t, domain.SortDesc, query.SortDir)
	assert.Nil(t, query.AccountType)
	assert.Nil(t, query.Status)
	assert.Nil(t, query.Currency)
}

func TestParseListAccountsQueryFilters(t *testing.T) {
	values := url.Values{
		"accountType": {"SAVINGS"},
		"status":      {"ACTIVE"},
		"currency":    {"EUR"},
		"page":        {"2"},
		"size":        {"5"},
		"sortBy":      {"balance"},
		"sortDir":     {"asc"},
	}

	query, err := models.ParseListAccountsQuery(values)

	require.NoError(t, err)
	require.NotNil(t, query.AccountType)
	assert.Equal(t, domain.AccountTypeSavings, *query.AccountType)
	require.NotNil(t, query.Status)
	assert.Equal(t, domain.AccountStatusActive, *query.Status)
	require.NotNil(t, query.Currency)
	assert.Equal(t, "EUR", *query.Currency)
	assert.Equal(t, 2, query.Page)
	assert.Equal(t, 5, query.Size)
	assert.Equal(t, "balance", query.SortBy)
	assert.Equal(t, domain.SortAsc, query.SortDir)
}

func TestParseListAccountsQueryInvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		violation string
	}{
		{"bad account type", url.Values{"accountType": {"CRYPTO"}}, "accountType is not a valid account type"},
		{"bad status", url.Values{"status": {"OPEN"}}, "status is not a valid account status"},
		{"bad currency", url.Values{"currency": {"usd"}}, "currency must be a valid ISO 4217 code"},
		{"negative page", url.Values{"page": {"-1"}}, "page must be a non-negative integer"},
		{"non-numeric page", url.Values{"page": {"abc"}}, "page must be a non-negative integer"},
		{"zero size", url.Values{"size": {"0"}}, "size must be a positive integer"},
		{"bad sort field", url.Values{"sortBy": {"accountNumber"}}, "sortBy is not a sortable field"},
		{"bad sort direction", url.Values{"sortDir": {"sideways"}}, "sortDir must be asc or desc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := models.ParseListAccountsQuery(tt.values)

			var validation *domain.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Contains(t, validation.Violations, tt.violation)
		})
	}
}

func TestListAccountsQueryFilterFusesCustomerScope(t *testing.T) {
	query, err := models.ParseListAccountsQuery(url.Values{"status": {"ACTIVE"}})
	require.NoError(t, err)

	filter := query.Filter("customer-123")

	assert.Equal(t, "customer-123", filter.CustomerID)
	require.NotNil(t, filter.Status)
	assert.Equal(t, domain.AccountStatusActive, *filter.Status)
	assert.Nil(t, filter.AccountType)
}
