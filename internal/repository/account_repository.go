package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bankafrica/bankapp/internal/models"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// AccountWriteRepository is the PostgreSQL AccountStore.
type AccountWriteRepository struct {
	db *sql.DB
}

func NewAccountWriteRepository(db *sql.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

func (r *AccountWriteRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO bank_accounts (id, account_holder_name, balance, account_number, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.AccountHolderName, account.Balance,
		account.AccountNumber, account.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateAccountNumber
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountWriteRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, account_holder_name, balance, account_number, created_at
		FROM bank_accounts
		WHERE id = $1
	`
	return scanAccount(r.db.QueryRowContext(ctx, query, id))
}

// UpdateBalance locks the row for the duration of the read-modify-write so
// concurrent deposits and withdrawals on one account cannot lose updates.
func (r *AccountWriteRepository) UpdateBalance(ctx context.Context, id string, fn BalanceFunc) (*models.Account, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := `
		SELECT id, account_holder_name, balance, account_number, created_at
		FROM bank_accounts
		WHERE id = $1
		FOR UPDATE
	`
	account, err := scanAccount(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	newBalance, err := fn(account.Balance)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE bank_accounts SET balance = $2 WHERE id = $1`, id, newBalance); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit balance update: %w", err)
	}

	account.Balance = newBalance
	return account, nil
}

func (r *AccountWriteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID, &account.AccountHolderName, &account.Balance,
		&account.AccountNumber, &account.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}
