package repository

import (
	"context"
	"sync"

	"github.com/bankafrica/bankapp/internal/models"
)

// MemoryAccountRepository keeps accounts in process memory. A single mutex
// guards the map, so every UpdateBalance is a serialised read-modify-write.
type MemoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	numbers  map[string]string
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		accounts: make(map[string]*models.Account),
		numbers:  make(map[string]string),
	}
}

func (r *MemoryAccountRepository) Create(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.numbers[account.AccountNumber]; taken {
		return ErrDuplicateAccountNumber
	}
	cp := *account
	r.accounts[account.ID] = &cp
	r.numbers[account.AccountNumber] = account.ID
	return nil
}

func (r *MemoryAccountRepository) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *MemoryAccountRepository) UpdateBalance(_ context.Context, id string, fn BalanceFunc) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	newBalance, err := fn(a.Balance)
	if err != nil {
		return nil, err
	}
	a.Balance = newBalance
	cp := *a
	return &cp, nil
}

func (r *MemoryAccountRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.numbers, a.AccountNumber)
	delete(r.accounts, id)
	return nil
}

// MemoryUserRepository keeps users in process memory with unique indexes on
// email, id number and owned account.
type MemoryUserRepository struct {
	mu         sync.RWMutex
	users      map[string]*models.User
	byEmail    map[string]string
	byIDNumber map[string]string
	byAccount  map[string]string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:      make(map[string]*models.User),
		byEmail:    make(map[string]string),
		byIDNumber: make(map[string]string),
		byAccount:  make(map[string]string),
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return ErrDuplicateEmail
	}
	if _, taken := r.byIDNumber[user.IDNumber]; taken {
		return ErrDuplicateIDNumber
	}
	if _, taken := r.byAccount[user.AccountID]; taken {
		return ErrDuplicateAccountOwner
	}
	cp := *user
	cp.Account = nil
	r.users[user.ID] = &cp
	r.byEmail[user.Email] = user.ID
	r.byIDNumber[user.IDNumber] = user.ID
	r.byAccount[user.AccountID] = user.ID
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(id)
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return r.get(id)
}

func (r *MemoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *MemoryUserRepository) ExistsByIDNumber(_ context.Context, idNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byIDNumber[idNumber]
	return ok, nil
}

// get must be called with r.mu held.
func (r *MemoryUserRepository) get(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}
