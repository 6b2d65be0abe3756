package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/api-sage/account-management/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountRepository is an in-memory implementation of the account store
// contract. It backs unit tests and local demos and mirrors the postgres
// implementation's semantics, including duplicate-number detection and the
// locked re-check on close.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	byNumber map[string]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]domain.Account),
		byNumber: make(map[string]string),
	}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byNumber[account.AccountNumber]; exists {
		return domain.Account{}, domain.ErrDuplicateAccountNumber
	}

	stored := cloneAccount(account)
	r.accounts[stored.AccountID] = stored
	r.byNumber[stored.AccountNumber] = stored.AccountID

	return cloneAccount(stored), nil
}

func (r *AccountRepository) GetByID(_ context.Context, accountID string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return cloneAccount(account), nil
}

func (r *AccountRepository) List(_ context.Context, filter domain.AccountFilter, page domain.PageRequest) ([]domain.Account, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Account
	for _, account := range r.accounts {
		if !matches(account, filter) {
			continue
		}
		matched = append(matched, cloneAccount(account))
	}

	sortAccounts(matched, page.SortBy, page.SortDir)

	total := int64(len(matched))
	start := page.Offset()
	if start >= len(matched) {
		return []domain.Account{}, total, nil
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func (r *AccountRepository) Update(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[account.AccountID]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	stored.AccountNickname = account.AccountNickname
	stored.Metadata = cloneMetadata(account.Metadata)
	stored.UpdatedAt = account.UpdatedAt
	stored.LastActivityAt = account.LastActivityAt
	r.accounts[stored.AccountID] = stored

	return cloneAccount(stored), nil
}

func (r *AccountRepository) Close(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}

	if err := stored.Close(); err != nil {
		return err
	}
	r.accounts[accountID] = stored

	return nil
}

func (r *AccountRepository) Delete(_ context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}

	delete(r.accounts, accountID)
	delete(r.byNumber, stored.AccountNumber)

	return nil
}

func (r *AccountRepository) ExistsByID(_ context.Context, accountID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.accounts[accountID]
	return ok, nil
}

func (r *AccountRepository) ExistsByAccountNumber(_ context.Context, accountNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byNumber[accountNumber]
	return ok, nil
}

func (r *AccountRepository) CountForCustomer(_ context.Context, customerID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, account := range r.accounts {
		if account.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (r *AccountRepository) CountActiveForCustomer(_ context.Context, customerID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, account := range r.accounts {
		if account.CustomerID == customerID && account.Status == domain.AccountStatusActive {
			count++
		}
	}
	return count, nil
}

// SetBalance adjusts a stored balance directly, standing in for the money
// movement features this service does not own.
func (r *AccountRepository) SetBalance(accountID string, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	stored.SetBalance(balance)
	r.accounts[accountID] = stored

	return nil
}

func matches(account domain.Account, filter domain.AccountFilter) bool {
	if account.CustomerID != filter.CustomerID {
		return false
	}
	if filter.AccountType != nil && account.AccountType != *filter.AccountType {
		return false
	}
	if filter.Status != nil && account.Status != *filter.Status {
		return false
	}
	if filter.Currency != nil && account.Currency != *filter.Currency {
		return false
	}
	return true
}

func sortAccounts(accounts []domain.Account, sortBy string, dir domain.SortDirection) {
	sort.SliceStable(accounts, func(i, j int) bool {
		a, b := accounts[i], accounts[j]
		cmp := compareAccounts(a, b, sortBy)
		if cmp == 0 {
			// Stable tiebreaker keeps pagination deterministic.
			return a.AccountID < b.AccountID
		}
		if dir == domain.SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareAccounts(a, b domain.Account, sortBy string) int {
	switch sortBy {
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case "lastActivityAt":
		return a.LastActivityAt.Compare(b.LastActivityAt)
	case "accountType":
		return strings.Compare(string(a.AccountType), string(b.AccountType))
	case "status":
		return strings.Compare(string(a.Status), string(b.Status))
	case "currency":
		return strings.Compare(a.Currency, b.Currency)
	case "balance":
		return a.Balance.Cmp(b.Balance)
	case "accountNickname":
		return strings.Compare(a.AccountNickname, b.AccountNickname)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func cloneAccount(account domain.Account) domain.Account {
	cloned := account
	cloned.Metadata = cloneMetadata(account.Metadata)
	return cloned
}

func cloneMetadata(metadata map[string]string) map[string]string {
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}
