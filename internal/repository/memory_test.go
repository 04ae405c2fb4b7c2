package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bankafrica/bankapp/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(id, number, balance string) *models.Account {
	return &models.Account{
		ID:                id,
		AccountHolderName: "John Doe",
		Balance:           decimal.RequireFromString(balance),
		AccountNumber:     number,
		CreatedAt:         time.Now().UTC(),
	}
}

func TestMemoryAccountRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()

	require.NoError(t, repo.Create(ctx, newTestAccount("acc-1", "1234567890", "100.00")))

	got, err := repo.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "1234567890", got.AccountNumber)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("100")))

	got.Balance = decimal.NewFromInt(999)
	again, err := repo.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, again.Balance.Equal(decimal.NewFromInt(100)), "returned accounts must be copies")

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAccountRepository_DuplicateAccountNumber(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()

	require.NoError(t, repo.Create(ctx, newTestAccount("acc-1", "1234567890", "0")))
	err := repo.Create(ctx, newTestAccount("acc-2", "1234567890", "0"))
	assert.ErrorIs(t, err, ErrDuplicateAccountNumber)
}

func TestMemoryAccountRepository_UpdateBalanceAbortsOnError(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()
	require.NoError(t, repo.Create(ctx, newTestAccount("acc-1", "1234567890", "50.00")))

	boom := errors.New("boom")
	_, err := repo.UpdateBalance(ctx, "acc-1", func(decimal.Decimal) (decimal.Decimal, error) {
		return decimal.Zero, boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(50)))

	_, err = repo.UpdateBalance(ctx, "missing", func(d decimal.Decimal) (decimal.Decimal, error) { return d, nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAccountRepository_ConcurrentUpdatesAreSerialised(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()
	require.NoError(t, repo.Create(ctx, newTestAccount("acc-1", "1234567890", "1000.00")))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.UpdateBalance(ctx, "acc-1", func(current decimal.Decimal) (decimal.Decimal, error) {
				return current.Add(decimal.NewFromInt(10)), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "1500.00", got.Balance.StringFixed(2))
}

func TestMemoryAccountRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()
	require.NoError(t, repo.Create(ctx, newTestAccount("acc-1", "1234567890", "0")))

	require.NoError(t, repo.Delete(ctx, "acc-1"))
	assert.ErrorIs(t, repo.Delete(ctx, "acc-1"), ErrNotFound)

	// the number is free again
	assert.NoError(t, repo.Create(ctx, newTestAccount("acc-2", "1234567890", "0")))
}

func newTestUser(id, email, idNumber, accountID string) *models.User {
	return &models.User{
		ID:           id,
		FirstName:    "John",
		LastName:     "Doe",
		Email:        email,
		IDNumber:     idNumber,
		PhoneNumber:  "0712345678",
		PasswordHash: "hash",
		AccountID:    accountID,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, newTestUser("usr-1", "john@example.com", "9001015000000", "acc-1")))

	tests := []struct {
		name string
		user *models.User
		want error
	}{
		{"duplicate email", newTestUser("usr-2", "john@example.com", "9001015000001", "acc-2"), ErrDuplicateEmail},
		{"duplicate id number", newTestUser("usr-2", "jane@example.com", "9001015000000", "acc-2"), ErrDuplicateIDNumber},
		{"shared account", newTestUser("usr-2", "jane@example.com", "9001015000001", "acc-1"), ErrDuplicateAccountOwner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, repo.Create(ctx, tt.user), tt.want)
		})
	}

	byEmail, err := repo.GetByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", byEmail.ID)

	byID, err := repo.GetByID(ctx, "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", byID.Email)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := repo.ExistsByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByIDNumber(ctx, "9001015000001")
	require.NoError(t, err)
	assert.False(t, exists)
}
