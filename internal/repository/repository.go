package repository

import (
	"context"
	"errors"

	"github.com/bankafrica/bankapp/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound               = errors.New("record not found")
	ErrDuplicateAccountNumber = errors.New("account number already exists")
	ErrDuplicateEmail         = errors.New("email already exists")
	ErrDuplicateIDNumber      = errors.New("id number already exists")
	ErrDuplicateAccountOwner  = errors.New("account already owned by another user")
)

// BalanceFunc computes the new balance from the current one. Returning an
// error aborts the update and leaves the stored balance untouched.
type BalanceFunc func(current decimal.Decimal) (decimal.Decimal, error)

// AccountStore is the durable record store for accounts.
type AccountStore interface {
	// Create inserts a new account. ErrDuplicateAccountNumber is returned when
	// the account number is already taken.
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	// UpdateBalance runs fn and persists its result atomically with respect
	// to other updates of the same account.
	UpdateBalance(ctx context.Context, id string, fn BalanceFunc) (*models.Account, error)
	Delete(ctx context.Context, id string) error
}

// UserStore is the durable record store for user identities.
type UserStore interface {
	// Create inserts a new user. ErrDuplicateEmail or ErrDuplicateIDNumber is
	// returned when a unique field is already taken.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByIDNumber(ctx context.Context, idNumber string) (bool, error)
}
