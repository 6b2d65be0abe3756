package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/account-management/internal/domain"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `account_id, account_number, account_type, status, currency,
	balance, available_balance, account_nickname, customer_id, branch_id,
	first_name, last_name, email, phone_number, address,
	created_at, updated_at, last_activity_at`

// sortColumns maps the exposed sort fields onto columns; anything else is
// rejected before it reaches this layer.
var sortColumns = map[string]string{
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
	"lastActivityAt":  "last_activity_at",
	"accountType":     "account_type",
	"status":          "status",
	"currency":        "currency",
	"balance":         "balance",
	"accountNickname": "account_nickname",
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	account_id,
	account_number,
	account_type,
	status,
	currency,
	balance,
	available_balance,
	account_nickname,
	customer_id,
	branch_id,
	first_name,
	last_name,
	email,
	phone_number,
	address,
	created_at,
	updated_at,
	last_activity_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Account{}, fmt.Errorf("begin create account tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		query,
		account.AccountID,
		account.AccountNumber,
		account.AccountType,
		account.Status,
		account.Currency,
		account.Balance,
		account.AvailableBalance,
		nullableString(account.AccountNickname),
		account.CustomerID,
		nullableString(account.BranchID),
		account.FirstName,
		account.LastName,
		nullableString(account.Email),
		nullableString(account.PhoneNumber),
		nullableString(account.Address),
		account.CreatedAt,
		account.UpdatedAt,
		account.LastActivityAt,
	); err != nil {
		if isUniqueViolation(err, "account_number") {
			return domain.Account{}, domain.ErrDuplicateAccountNumber
		}
		return domain.Account{}, fmt.Errorf("insert account: %w", err)
	}

	if err := replaceMetadata(ctx, tx, account.AccountID, account.Metadata); err != nil {
		return domain.Account{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Account{}, fmt.Errorf("commit create account tx: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID string) (domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE account_id = $1`, accountColumns)

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, accountID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	metadata, err := r.loadMetadata(ctx, []string{account.AccountID})
	if err != nil {
		return domain.Account{}, err
	}
	account.Metadata = metadataFor(metadata, account.AccountID)

	return account, nil
}

func (r *AccountRepository) List(ctx context.Context, filter domain.AccountFilter, page domain.PageRequest) ([]domain.Account, int64, error) {
	where, args := buildFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM accounts ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	column, ok := sortColumns[page.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported sort field %q", page.SortBy)
	}
	direction := "ASC"
	if page.SortDir == domain.SortDesc {
		direction = "DESC"
	}

	listQuery := fmt.Sprintf(
		`SELECT %s FROM accounts %s ORDER BY %s %s, account_id ASC LIMIT $%d OFFSET $%d`,
		accountColumns, where, column, direction, len(args)+1, len(args)+2,
	)
	listArgs := append(append([]any{}, args...), page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	var ids []string
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
		ids = append(ids, account.AccountID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate account rows: %w", err)
	}

	if len(ids) > 0 {
		metadata, err := r.loadMetadata(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range accounts {
			accounts[i].Metadata = metadataFor(metadata, accounts[i].AccountID)
		}
	}

	return accounts, total, nil
}

func (r *AccountRepository) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
UPDATE accounts SET
	account_nickname = $2,
	updated_at = $3,
	last_activity_at = $4
WHERE account_id = $1`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Account{}, fmt.Errorf("begin update account tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(
		ctx,
		query,
		account.AccountID,
		nullableString(account.AccountNickname),
		account.UpdatedAt,
		account.LastActivityAt,
	)
	if err != nil {
		return domain.Account{}, fmt.Errorf("update account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Account{}, fmt.Errorf("update account rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if err := replaceMetadata(ctx, tx, account.AccountID, account.Metadata); err != nil {
		return domain.Account{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Account{}, fmt.Errorf("commit update account tx: %w", err)
	}

	return account, nil
}

// Close re-validates the closure preconditions under a row lock before
// flipping the status, so a deposit committed after the service's check cannot
// be lost.
func (r *AccountRepository) Close(ctx context.Context, accountID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin close account tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var status domain.AccountStatus
	var balance decimal.Decimal
	err = tx.QueryRowContext(
		ctx,
		`SELECT status, balance FROM accounts WHERE account_id = $1 FOR UPDATE`,
		accountID,
	).Scan(&status, &balance)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("lock account for close: %w", err)
	}

	if status == domain.AccountStatusClosed {
		return &domain.ConflictError{Reason: "account is already closed"}
	}
	if !balance.IsZero() {
		return &domain.ConflictError{Reason: "cannot close account with non-zero balance"}
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(
		ctx,
		`UPDATE accounts SET status = $2, updated_at = $3, last_activity_at = $3 WHERE account_id = $1`,
		accountID,
		domain.AccountStatusClosed,
		now,
	); err != nil {
		return fmt.Errorf("close account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit close account tx: %w", err)
	}

	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, accountID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) ExistsByID(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1)`,
		accountID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("account exists by id: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`,
		accountNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("account exists by number: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) CountForCustomer(ctx context.Context, customerID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM accounts WHERE customer_id = $1`,
		customerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count accounts for customer: %w", err)
	}
	return count, nil
}

func (r *AccountRepository) CountActiveForCustomer(ctx context.Context, customerID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM accounts WHERE customer_id = $1 AND status = $2`,
		customerID,
		domain.AccountStatusActive,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active accounts for customer: %w", err)
	}
	return count, nil
}

func buildFilter(filter domain.AccountFilter) (string, []any) {
	clauses := []string{"customer_id = $1"}
	args := []any{filter.CustomerID}

	if filter.AccountType != nil {
		args = append(args, *filter.AccountType)
		clauses = append(clauses, fmt.Sprintf("account_type = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Currency != nil {
		args = append(args, *filter.Currency)
		clauses = append(clauses, fmt.Sprintf("currency = $%d", len(args)))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	var nickname, branchID, email, phoneNumber, address sql.NullString

	err := row.Scan(
		&account.AccountID,
		&account.AccountNumber,
		&account.AccountType,
		&account.Status,
		&account.Currency,
		&account.Balance,
		&account.AvailableBalance,
		&nickname,
		&account.CustomerID,
		&branchID,
		&account.FirstName,
		&account.LastName,
		&email,
		&phoneNumber,
		&address,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.LastActivityAt,
	)
	if err != nil {
		return domain.Account{}, err
	}

	account.AccountNickname = nickname.String
	account.BranchID = branchID.String
	account.Email = email.String
	account.PhoneNumber = phoneNumber.String
	account.Address = address.String
	account.Metadata = map[string]string{}

	return account, nil
}

func (r *AccountRepository) loadMetadata(ctx context.Context, accountIDs []string) (map[string]map[string]string, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT account_id, metadata_key, metadata_value FROM account_metadata WHERE account_id = ANY($1)`,
		pq.Array(accountIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("load account metadata: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[string]string)
	for rows.Next() {
		var accountID, key, value string
		if err := rows.Scan(&accountID, &key, &value); err != nil {
			return nil, fmt.Errorf("scan metadata row: %w", err)
		}
		if out[accountID] == nil {
			out[accountID] = map[string]string{}
		}
		out[accountID][key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metadata rows: %w", err)
	}

	return out, nil
}

// replaceMetadata swaps the side table's entries wholesale; updates never
// merge with prior keys.
func replaceMetadata(ctx context.Context, tx *sql.Tx, accountID string, metadata map[string]string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM account_metadata WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("clear account metadata: %w", err)
	}

	for key, value := range metadata {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO account_metadata (account_id, metadata_key, metadata_value) VALUES ($1, $2, $3)`,
			accountID,
			key,
			value,
		); err != nil {
			return fmt.Errorf("insert account metadata: %w", err)
		}
	}

	return nil
}

func metadataFor(loaded map[string]map[string]string, accountID string) map[string]string {
	if m, ok := loaded[accountID]; ok {
		return m
	}
	return map[string]string{}
}

func nullableString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func isUniqueViolation(err error, constraintFragment string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != "23505" {
		return false
	}
	return constraintFragment == "" || strings.Contains(pqErr.Constraint, constraintFragment)
}
