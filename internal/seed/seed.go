// Package seed loads a handful of demo accounts into an empty store so a
// fresh deployment has data to explore.
package seed

import (
	"context"
	"fmt"

	"github.com/api-sage/account-management/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-management/internal/domain"
	"github.com/api-sage/account-management/internal/logger"
	"github.com/shopspring/decimal"
)

type NumberGenerator interface {
	Generate() (string, error)
}

type sample struct {
	customerID  string
	accountType domain.AccountType
	deposit     string
	firstName   string
	lastName    string
	email       string
	phone       string
	address     string
	nickname    string
	branchID    string
	metadata    map[string]string
}

var samples = []sample{
	{
		customerID: "customer-001", accountType: domain.AccountTypeChecking, deposit: "1500.00",
		firstName: "John", lastName: "Smith", email: "john.smith@email.com", phone: "+1234567890",
		address: "123 Main Street, New York, NY 10001", nickname: "Primary Checking", branchID: "NYC-001",
		metadata: map[string]string{"preferredBranch": "NYC-001", "accountPurpose": "primary"},
	},
	{
		customerID: "customer-002", accountType: domain.AccountTypeSavings, deposit: "5000.00",
		firstName: "Jane", lastName: "Doe", email: "jane.doe@email.com", phone: "+1987654321",
		address: "456 Oak Avenue, Los Angeles, CA 90210", nickname: "Emergency Fund", branchID: "LA-002",
		metadata: map[string]string{"preferredBranch": "LA-002", "accountPurpose": "savings", "interestRate": "2.5"},
	},
	{
		customerID: "customer-003", accountType: domain.AccountTypeMoneyMarket, deposit: "10000.00",
		firstName: "Robert", lastName: "Johnson", email: "bob.johnson@email.com", phone: "+1555666777",
		address: "789 Pine Street, Chicago, IL 60601", nickname: "Investment Fund", branchID: "CHI-003",
		metadata: map[string]string{"preferredBranch": "CHI-003", "accountPurpose": "investment", "riskLevel": "moderate"},
	},
	{
		customerID: "customer-001", accountType: domain.AccountTypeSavings, deposit: "2500.00",
		firstName: "John", lastName: "Smith", email: "john.smith@email.com", phone: "+1234567890",
		address: "123 Main Street, New York, NY 10001", nickname: "Vacation Fund", branchID: "NYC-001",
		metadata: map[string]string{"preferredBranch": "NYC-001", "accountPurpose": "vacation", "targetAmount": "5000"},
	},
	{
		customerID: "customer-004", accountType: domain.AccountTypeCertificateDeposit, deposit: "15000.00",
		firstName: "Maria", lastName: "Garcia", email: "maria.garcia@email.com", phone: "+1444555666",
		address: "321 Elm Street, Miami, FL 33101", nickname: "5-Year CD", branchID: "MIA-004",
		metadata: map[string]string{"preferredBranch": "MIA-004", "accountPurpose": "long-term-savings", "maturityDate": "2030-12-12", "interestRate": "4.2"},
	},
	{
		customerID: "customer-005", accountType: domain.AccountTypeInvestment, deposit: "25000.00",
		firstName: "David", lastName: "Wilson", email: "david.wilson@email.com", phone: "+1777888999",
		address: "555 Market Street, San Francisco, CA 94105", nickname: "Retirement Portfolio", branchID: "SF-005",
		metadata: map[string]string{"preferredBranch": "SF-005", "accountPurpose": "retirement", "portfolioType": "aggressive"},
	},
}

// Load creates the demo accounts unless the store already holds data for the
// first sample customer.
func Load(ctx context.Context, repo repo_interfaces.AccountRepository, numberGen NumberGenerator) error {
	count, err := repo.CountForCustomer(ctx, samples[0].customerID)
	if err != nil {
		return fmt.Errorf("check existing sample data: %w", err)
	}
	if count > 0 {
		logger.Info("sample data already present, skipping seed", nil)
		return nil
	}

	for _, s := range samples {
		number, err := numberGen.Generate()
		if err != nil {
			return fmt.Errorf("generate sample account number: %w", err)
		}

		deposit, err := decimal.NewFromString(s.deposit)
		if err != nil {
			return fmt.Errorf("parse sample deposit %q: %w", s.deposit, err)
		}

		account := domain.NewAccount(number, s.accountType, "USD", deposit, s.customerID)
		account.FirstName = s.firstName
		account.LastName = s.lastName
		account.Email = s.email
		account.PhoneNumber = s.phone
		account.Address = s.address
		account.AccountNickname = s.nickname
		account.BranchID = s.branchID
		account.SetMetadata(s.metadata)

		if _, err := repo.Create(ctx, account); err != nil {
			return fmt.Errorf("seed account for %s: %w", s.customerID, err)
		}
	}

	logger.Info("sample data created", logger.Fields{"accounts": len(samples)})
	return nil
}
