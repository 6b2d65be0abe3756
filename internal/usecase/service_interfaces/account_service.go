package service_interfaces

import (
	"context"

	"github.com/api-sage/account-management/internal/adapter/http/models"
)

type AccountService interface {
	CreateAccount(ctx context.Context, customerID string, req models.CreateAccountRequest) (models.AccountResponse, error)
	GetAccount(ctx context.Context, accountID, customerID string) (models.AccountResponse, error)
	ListAccounts(ctx context.Context, customerID string, query models.ListAccountsQuery) (models.AccountListResponse, error)
	UpdateAccount(ctx context.Context, accountID, customerID string, req models.UpdateAccountRequest) (models.AccountResponse, error)
	CloseAccount(ctx context.Context, accountID, customerID, reason string) error
	ActiveAccountCount(ctx context.Context, customerID string) (int64, error)
	AccountExists(ctx context.Context, accountID string) (bool, error)
}
