package repo_interfaces

import (
	"context"

	"github.com/api-sage/account-management/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, accountID string) (domain.Account, error)
	// List returns one page of the customer's accounts plus the total count of
	// the filtered set.
	List(ctx context.Context, filter domain.AccountFilter, page domain.PageRequest) ([]domain.Account, int64, error)
	Update(ctx context.Context, account domain.Account) (domain.Account, error)
	// Close re-checks the closure preconditions under store-level locking and
	// sets the account CLOSED, so a concurrent deposit cannot slip between the
	// balance check and the status write.
	Close(ctx context.Context, accountID string) error
	Delete(ctx context.Context, accountID string) error
	ExistsByID(ctx context.Context, accountID string) (bool, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
	CountForCustomer(ctx context.Context, customerID string) (int64, error)
	CountActiveForCustomer(ctx context.Context, customerID string) (int64, error)
}
