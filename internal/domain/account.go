package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking           AccountType = "CHECKING"
	AccountTypeSavings            AccountType = "SAVINGS"
	AccountTypeMoneyMarket        AccountType = "MONEY_MARKET"
	AccountTypeCertificateDeposit AccountType = "CERTIFICATE_DEPOSIT"
	AccountTypeLoan               AccountType = "LOAN"
	AccountTypeCreditCard         AccountType = "CREDIT_CARD"
	AccountTypeInvestment         AccountType = "INVESTMENT"
)

func ParseAccountType(raw string) (AccountType, bool) {
	switch AccountType(raw) {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeMoneyMarket,
		AccountTypeCertificateDeposit, AccountTypeLoan, AccountTypeCreditCard,
		AccountTypeInvestment:
		return AccountType(raw), true
	}
	return "", false
}

type AccountStatus string

const (
	AccountStatusPendingApproval AccountStatus = "PENDING_APPROVAL"
	AccountStatusActive          AccountStatus = "ACTIVE"
	AccountStatusInactive        AccountStatus = "INACTIVE"
	AccountStatusFrozen          AccountStatus = "FROZEN"
	AccountStatusSuspended       AccountStatus = "SUSPENDED"
	AccountStatusClosed          AccountStatus = "CLOSED"
)

func ParseAccountStatus(raw string) (AccountStatus, bool) {
	switch AccountStatus(raw) {
	case AccountStatusPendingApproval, AccountStatusActive, AccountStatusInactive,
		AccountStatusFrozen, AccountStatusSuspended, AccountStatusClosed:
		return AccountStatus(raw), true
	}
	return "", false
}

type Account struct {
	AccountID        string
	AccountNumber    string
	AccountType      AccountType
	Status           AccountStatus
	Currency         string
	Balance          decimal.Decimal
	AvailableBalance decimal.Decimal
	AccountNickname  string
	CustomerID       string
	BranchID         string
	FirstName        string
	LastName         string
	Email            string
	PhoneNumber      string
	Address          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	LastActivityAt   time.Time
	Metadata         map[string]string
}

// NewAccount builds a funded account owned by customerID. Accounts created
// through this path start ACTIVE; unfunded accounts start PENDING_APPROVAL via
// NewPendingAccount.
func NewAccount(
	accountNumber string,
	accountType AccountType,
	currency string,
	initialDeposit decimal.Decimal,
	customerID string,
) Account {
	now := time.Now().UTC()
	return Account{
		AccountID:        uuid.NewString(),
		AccountNumber:    accountNumber,
		AccountType:      accountType,
		Status:           AccountStatusActive,
		Currency:         currency,
		Balance:          initialDeposit,
		AvailableBalance: initialDeposit,
		CustomerID:       customerID,
		CreatedAt:        now,
		UpdatedAt:        now,
		LastActivityAt:   now,
		Metadata:         map[string]string{},
	}
}

func NewPendingAccount(accountNumber string, accountType AccountType, currency string, customerID string) Account {
	account := NewAccount(accountNumber, accountType, currency, decimal.Zero, customerID)
	account.Status = AccountStatusPendingApproval
	return account
}

// OwnedBy reports whether the account belongs to the requesting customer.
func (a Account) OwnedBy(customerID string) bool {
	return a.CustomerID == customerID
}

// Touch refreshes the mutation timestamps. Every persisted mutation must call
// it so UpdatedAt and LastActivityAt stay accurate without relying on store
// triggers.
func (a *Account) Touch() {
	now := time.Now().UTC()
	a.UpdatedAt = now
	a.LastActivityAt = now
}

// Close transitions the account to CLOSED. The transition is legal only for a
// non-CLOSED account with an exactly zero balance; CLOSED is terminal.
func (a *Account) Close() error {
	if a.Status == AccountStatusClosed {
		return &ConflictError{Reason: "account is already closed"}
	}
	if !a.Balance.IsZero() {
		return &ConflictError{Reason: "cannot close account with non-zero balance"}
	}
	a.Status = AccountStatusClosed
	a.Touch()
	return nil
}

// SetBalance keeps AvailableBalance mirrored; no hold semantics are modeled.
func (a *Account) SetBalance(balance decimal.Decimal) {
	a.Balance = balance
	a.AvailableBalance = balance
}

// SetMetadata replaces the metadata map wholesale; partial merges are not
// supported.
func (a *Account) SetMetadata(metadata map[string]string) {
	if metadata == nil {
		metadata = map[string]string{}
	}
	a.Metadata = metadata
}
