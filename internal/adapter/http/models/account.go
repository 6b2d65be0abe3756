package models

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/account-management/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_\.]+$`)
)

type CustomerDetails struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

type CreateAccountRequest struct {
	AccountType     string            `json:"accountType"`
	Currency        string            `json:"currency"`
	InitialDeposit  *decimal.Decimal  `json:"initialDeposit"`
	CustomerDetails *CustomerDetails  `json:"customerDetails"`
	AccountNickname string            `json:"accountNickname,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

func (r CreateAccountRequest) Validate() error {
	var violations []string

	if strings.TrimSpace(r.AccountType) == "" {
		violations = append(violations, "accountType is required")
	} else if _, ok := domain.ParseAccountType(r.AccountType); !ok {
		violations = append(violations, "accountType must be one of CHECKING, SAVINGS, MONEY_MARKET, CERTIFICATE_DEPOSIT, LOAN, CREDIT_CARD, INVESTMENT")
	}

	if strings.TrimSpace(r.Currency) == "" {
		violations = append(violations, "currency is required")
	} else if !currencyPattern.MatchString(r.Currency) {
		violations = append(violations, "currency must be a valid ISO 4217 code")
	}

	if r.InitialDeposit == nil {
		violations = append(violations, "initialDeposit is required")
	} else if r.InitialDeposit.IsNegative() {
		violations = append(violations, "initialDeposit cannot be negative")
	}

	if r.CustomerDetails == nil {
		violations = append(violations, "customerDetails are required")
	} else {
		violations = append(violations, r.CustomerDetails.validate()...)
	}

	violations = append(violations, validateNickname(r.AccountNickname)...)

	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

func (d CustomerDetails) validate() []string {
	var violations []string

	if strings.TrimSpace(d.FirstName) == "" {
		violations = append(violations, "firstName is required")
	} else if len(d.FirstName) > 50 {
		violations = append(violations, "firstName must not exceed 50 characters")
	}

	if strings.TrimSpace(d.LastName) == "" {
		violations = append(violations, "lastName is required")
	} else if len(d.LastName) > 50 {
		violations = append(violations, "lastName must not exceed 50 characters")
	}

	if d.Email != "" && !emailPattern.MatchString(d.Email) {
		violations = append(violations, "email format is invalid")
	}

	if d.PhoneNumber != "" && !phonePattern.MatchString(d.PhoneNumber) {
		violations = append(violations, "phoneNumber format is invalid")
	}

	return violations
}

func validateNickname(nickname string) []string {
	var violations []string
	if nickname == "" {
		return nil
	}
	if len(nickname) > 50 {
		violations = append(violations, "accountNickname must not exceed 50 characters")
	}
	if !nicknamePattern.MatchString(nickname) {
		violations = append(violations, "accountNickname contains invalid characters")
	}
	return violations
}

// UpdateAccountRequest carries the only customer-mutable fields. Both are
// pointers so "omitted" and "present but empty" stay distinguishable: an
// omitted metadata map leaves the stored one untouched, an empty one wipes it.
type UpdateAccountRequest struct {
	AccountNickname *string            `json:"accountNickname,omitempty"`
	Metadata        *map[string]string `json:"metadata,omitempty"`
}

func (r UpdateAccountRequest) Validate() error {
	var violations []string
	if r.AccountNickname != nil {
		violations = append(violations, validateNickname(*r.AccountNickname)...)
	}
	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

// ListAccountsQuery is the parsed and defaulted form of the list endpoint's
// query string.
type ListAccountsQuery struct {
	AccountType *domain.AccountType
	Status      *domain.AccountStatus
	Currency    *string
	Page        int
	Size        int
	SortBy      string
	SortDir     domain.SortDirection
}

// ParseListAccountsQuery applies the documented defaults (page 0, size 10,
// createdAt desc) and collects every invalid parameter as a violation.
func ParseListAccountsQuery(values url.Values) (ListAccountsQuery, error) {
	q := ListAccountsQuery{
		Page:    0,
		Size:    10,
		SortBy:  "createdAt",
		SortDir: domain.SortDesc,
	}
	var violations []string

	if raw := strings.TrimSpace(values.Get("accountType")); raw != "" {
		parsed, ok := domain.ParseAccountType(raw)
		if !ok {
			violations = append(violations, "accountType is not a valid account type")
		} else {
			q.AccountType = &parsed
		}
	}

	if raw := strings.TrimSpace(values.Get("status")); raw != "" {
		parsed, ok := domain.ParseAccountStatus(raw)
		if !ok {
			violations = append(violations, "status is not a valid account status")
		} else {
			q.Status = &parsed
		}
	}

	if raw := strings.TrimSpace(values.Get("currency")); raw != "" {
		if !currencyPattern.MatchString(raw) {
			violations = append(violations, "currency must be a valid ISO 4217 code")
		} else {
			q.Currency = &raw
		}
	}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			violations = append(violations, "page must be a non-negative integer")
		} else {
			q.Page = parsed
		}
	}

	if raw := strings.TrimSpace(values.Get("size")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			violations = append(violations, "size must be a positive integer")
		} else {
			q.Size = parsed
		}
	}

	if raw := strings.TrimSpace(values.Get("sortBy")); raw != "" {
		if !domain.IsSortableField(raw) {
			violations = append(violations, "sortBy is not a sortable field")
		} else {
			q.SortBy = raw
		}
	}

	if raw := strings.TrimSpace(values.Get("sortDir")); raw != "" {
		parsed, ok := domain.ParseSortDirection(strings.ToLower(raw))
		if !ok {
			violations = append(violations, "sortDir must be asc or desc")
		} else {
			q.SortDir = parsed
		}
	}

	if len(violations) > 0 {
		return ListAccountsQuery{}, domain.NewValidationError(violations...)
	}
	return q, nil
}

// Filter fuses the mandatory customer scope with the optional filters; the
// customer scope cannot be omitted by construction.
func (q ListAccountsQuery) Filter(customerID string) domain.AccountFilter {
	return domain.AccountFilter{
		CustomerID:  customerID,
		AccountType: q.AccountType,
		Status:      q.Status,
		Currency:    q.Currency,
	}
}

func (q ListAccountsQuery) PageRequest() domain.PageRequest {
	return domain.PageRequest{
		Page:    q.Page,
		Size:    q.Size,
		SortBy:  q.SortBy,
		SortDir: q.SortDir,
	}
}

type MonetaryAmount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type AccountResponse struct {
	AccountID        string            `json:"accountId"`
	AccountNumber    string            `json:"accountNumber"`
	AccountType      string            `json:"accountType"`
	Status           string            `json:"status"`
	Currency         string            `json:"currency"`
	Balance          MonetaryAmount    `json:"balance"`
	AvailableBalance MonetaryAmount    `json:"availableBalance"`
	AccountNickname  string            `json:"accountNickname,omitempty"`
	CustomerID       string            `json:"customerId"`
	BranchID         string            `json:"branchId,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	LastActivityAt   time.Time         `json:"lastActivityAt"`
	Metadata         map[string]string `json:"metadata"`
}

type AccountListResponse struct {
	Accounts      []AccountResponse `json:"accounts"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
	CurrentPage   int               `json:"currentPage"`
	Size          int               `json:"size"`
	HasNext       bool              `json:"hasNext"`
	HasPrevious   bool              `json:"hasPrevious"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// ErrorBody is the uniform error payload; Violations is populated only for
// validation failures.
type ErrorBody struct {
	Error      string   `json:"error"`
	Message    string   `json:"message,omitempty"`
	AccountID  string   `json:"accountId,omitempty"`
	Violations []string `json:"violations,omitempty"`
}
