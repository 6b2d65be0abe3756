package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/account-management/internal/adapter/http/models"
	"github.com/api-sage/account-management/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-management/internal/domain"
	"github.com/api-sage/account-management/internal/logger"
)

const maskToken = "****"

type AccountService struct {
	accountRepo     repo_interfaces.AccountRepository
	numberGen       NumberGenerator
	defaultBranchID string
	maxAttempts     int
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	numberGen NumberGenerator,
	defaultBranchID string,
	maxAttempts int,
) *AccountService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &AccountService{
		accountRepo:     accountRepo,
		numberGen:       numberGen,
		defaultBranchID: strings.TrimSpace(defaultBranchID),
		maxAttempts:     maxAttempts,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, customerID string, req models.CreateAccountRequest) (models.AccountResponse, error) {
	logger.Info("account service create account request", logger.Fields{
		"customerId": customerID,
		"payload":    logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return models.AccountResponse{}, err
	}

	accountType, _ := domain.ParseAccountType(req.AccountType)
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))

	account := domain.NewAccount(
		"",
		accountType,
		currency,
		*req.InitialDeposit,
		customerID,
	)
	account.FirstName = req.CustomerDetails.FirstName
	account.LastName = req.CustomerDetails.LastName
	account.Email = req.CustomerDetails.Email
	account.PhoneNumber = req.CustomerDetails.PhoneNumber
	account.Address = req.CustomerDetails.Address
	account.AccountNickname = req.AccountNickname
	account.BranchID = s.defaultBranchID
	account.SetMetadata(req.Metadata)

	created, err := s.persistWithUniqueNumber(ctx, account)
	if err != nil {
		logger.Error("account service create account failed", err, logger.Fields{
			"customerId": customerID,
		})
		return models.AccountResponse{}, err
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId":  created.AccountID,
		"customerId": created.CustomerID,
	})

	return mapToAccountResponse(created), nil
}

// persistWithUniqueNumber retries candidate numbers until the insert succeeds.
// The store's unique index is the authority; the existence pre-check only
// saves a doomed insert. Retries are bounded so adversarial collisions cannot
// spin the loop forever.
func (s *AccountService) persistWithUniqueNumber(ctx context.Context, account domain.Account) (domain.Account, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		number, err := s.numberGen.Generate()
		if err != nil {
			return domain.Account{}, fmt.Errorf("%w: %v", domain.ErrNumberGeneration, err)
		}

		exists, err := s.accountRepo.ExistsByAccountNumber(ctx, number)
		if err != nil {
			return domain.Account{}, fmt.Errorf("check account number: %w", err)
		}
		if exists {
			logger.Warn("account service generated colliding account number", logger.Fields{
				"attempt": attempt,
			})
			continue
		}

		account.AccountNumber = number
		created, err := s.accountRepo.Create(ctx, account)
		if errors.Is(err, domain.ErrDuplicateAccountNumber) {
			logger.Warn("account service lost account number race", logger.Fields{
				"attempt": attempt,
			})
			continue
		}
		if err != nil {
			return domain.Account{}, fmt.Errorf("create account: %w", err)
		}
		return created, nil
	}

	return domain.Account{}, domain.ErrNumberGeneration
}

func (s *AccountService) GetAccount(ctx context.Context, accountID, customerID string) (models.AccountResponse, error) {
	logger.Info("account service get account request", logger.Fields{
		"accountId":  accountID,
		"customerId": customerID,
	})

	account, err := s.authorizedAccount(ctx, accountID, customerID)
	if err != nil {
		return models.AccountResponse{}, err
	}

	return mapToAccountResponse(account), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, customerID string, query models.ListAccountsQuery) (models.AccountListResponse, error) {
	logger.Info("account service list accounts request", logger.Fields{
		"customerId": customerID,
		"page":       query.Page,
		"size":       query.Size,
	})

	page := query.PageRequest()
	accounts, total, err := s.accountRepo.List(ctx, query.Filter(customerID), page)
	if err != nil {
		logger.Error("account service list accounts failed", err, logger.Fields{
			"customerId": customerID,
		})
		return models.AccountListResponse{}, fmt.Errorf("list accounts: %w", err)
	}

	views := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, mapToAccountResponse(account))
	}

	meta := domain.NewPageMetadata(page, total)
	return models.AccountListResponse{
		Accounts:      views,
		TotalElements: meta.TotalElements,
		TotalPages:    meta.TotalPages,
		CurrentPage:   meta.CurrentPage,
		Size:          meta.Size,
		HasNext:       meta.HasNext,
		HasPrevious:   meta.HasPrevious,
	}, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, accountID, customerID string, req models.UpdateAccountRequest) (models.AccountResponse, error) {
	logger.Info("account service update account request", logger.Fields{
		"accountId":  accountID,
		"customerId": customerID,
		"payload":    logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service update account validation failed", err, nil)
		return models.AccountResponse{}, err
	}

	account, err := s.authorizedAccount(ctx, accountID, customerID)
	if err != nil {
		return models.AccountResponse{}, err
	}

	if req.AccountNickname != nil {
		account.AccountNickname = *req.AccountNickname
	}
	if req.Metadata != nil {
		account.SetMetadata(*req.Metadata)
	}
	account.Touch()

	updated, err := s.accountRepo.Update(ctx, account)
	if err != nil {
		logger.Error("account service update account failed", err, logger.Fields{
			"accountId": accountID,
		})
		return models.AccountResponse{}, fmt.Errorf("update account: %w", err)
	}

	logger.Info("account service update account success", logger.Fields{
		"accountId": accountID,
	})
	return mapToAccountResponse(updated), nil
}

func (s *AccountService) CloseAccount(ctx context.Context, accountID, customerID, reason string) error {
	logger.Info("account service close account request", logger.Fields{
		"accountId":  accountID,
		"customerId": customerID,
		"reason":     reason,
	})

	account, err := s.authorizedAccount(ctx, accountID, customerID)
	if err != nil {
		return err
	}

	// Close on the copy surfaces precondition conflicts with the right error
	// ordering; the repository re-verifies them under a row lock before the
	// status write so a racing deposit cannot be lost.
	if err := account.Close(); err != nil {
		logger.Warn("account service close account rejected", logger.Fields{
			"accountId": accountID,
			"reason":    err.Error(),
		})
		return err
	}

	if err := s.accountRepo.Close(ctx, accountID); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			return err
		}
		logger.Error("account service close account failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("close account: %w", err)
	}

	logger.Info("account service close account success", logger.Fields{
		"accountId": accountID,
		"reason":    reason,
	})
	return nil
}

func (s *AccountService) ActiveAccountCount(ctx context.Context, customerID string) (int64, error) {
	return s.accountRepo.CountActiveForCustomer(ctx, customerID)
}

func (s *AccountService) AccountExists(ctx context.Context, accountID string) (bool, error) {
	return s.accountRepo.ExistsByID(ctx, accountID)
}

// authorizedAccount resolves the account and enforces ownership. Existence is
// checked first; a failed ownership check reveals nothing about the account.
func (s *AccountService) authorizedAccount(ctx context.Context, accountID, customerID string) (domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}

	if !account.OwnedBy(customerID) {
		logger.Warn("account service ownership check failed", logger.Fields{
			"accountId":  accountID,
			"customerId": customerID,
		})
		return domain.Account{}, domain.ErrAccessDenied
	}

	return account, nil
}

// maskAccountNumber keeps the last four digits and hides the rest. The raw
// number never appears in a response payload.
func maskAccountNumber(accountNumber string) string {
	if len(accountNumber) < 4 {
		return maskToken
	}
	return maskToken + accountNumber[len(accountNumber)-4:]
}

func mapToAccountResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		AccountID:        account.AccountID,
		AccountNumber:    maskAccountNumber(account.AccountNumber),
		AccountType:      string(account.AccountType),
		Status:           string(account.Status),
		Currency:         account.Currency,
		Balance:          models.MonetaryAmount{Amount: account.Balance, Currency: account.Currency},
		AvailableBalance: models.MonetaryAmount{Amount: account.AvailableBalance, Currency: account.Currency},
		AccountNickname:  account.AccountNickname,
		CustomerID:       account.CustomerID,
		BranchID:         account.BranchID,
		CreatedAt:        account.CreatedAt,
		UpdatedAt:        account.UpdatedAt,
		LastActivityAt:   account.LastActivityAt,
		Metadata:         account.Metadata,
	}
}
