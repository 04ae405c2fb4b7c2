package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bankafrica/bankapp/internal/bankerr"
	"github.com/bankafrica/bankapp/internal/cqrs"
	"github.com/bankafrica/bankapp/internal/events"
	"github.com/bankafrica/bankapp/internal/models"
	"github.com/bankafrica/bankapp/internal/repository"
	"github.com/bankafrica/bankapp/internal/utils"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxAccountNumberAttempts bounds the retry loop on account-number collisions.
const maxAccountNumberAttempts = 5

const (
	operationDeposit    = "deposit"
	operationWithdrawal = "withdrawal"
)

// EventPublisher appends a domain event to a stream. Publishing is
// best-effort: failures are logged by the caller and never fail a command.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// AccountCommandService writes account state and keeps the read model in sync.
type AccountCommandService struct {
	store     repository.AccountStore
	readRepo  *repository.AccountReadRepository
	publisher EventPublisher
	log       zerolog.Logger

	newAccountNumber func() (string, error)
	now              func() time.Time
}

func NewAccountCommandService(
	store repository.AccountStore,
	readRepo *repository.AccountReadRepository,
	publisher EventPublisher,
	log zerolog.Logger,
) *AccountCommandService {
	return &AccountCommandService{
		store:            store,
		readRepo:         readRepo,
		publisher:        publisher,
		log:              log.With().Str("component", "account_commands").Logger(),
		newAccountNumber: utils.GenerateAccountNumber,
		now:              time.Now,
	}
}

// CreateAccount opens an account for holderName. A missing or negative
// opening balance opens the account empty.
func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	opening := decimal.Zero
	if cmd.InitialBalance != nil && cmd.InitialBalance.IsPositive() {
		opening = *cmd.InitialBalance
	}
	if hasSubCentPrecision(opening) {
		return nil, bankerr.InvalidAmount("Amount cannot have more than two decimal places")
	}

	account := &models.Account{
		ID:                utils.GenerateID("acc"),
		AccountHolderName: cmd.HolderName,
		Balance:           opening,
		CreatedAt:         s.now().UTC(),
	}

	var lastErr error
	for attempt := 1; attempt <= maxAccountNumberAttempts; attempt++ {
		number, err := s.newAccountNumber()
		if err != nil {
			return nil, err
		}
		account.AccountNumber = number

		lastErr = s.store.Create(ctx, account)
		if lastErr == nil {
			break
		}
		if !errors.Is(lastErr, repository.ErrDuplicateAccountNumber) {
			return nil, lastErr
		}
		s.log.Debug().Int("attempt", attempt).Msg("account number collision, retrying")
	}
	if lastErr != nil {
		return nil, fmt.Errorf("failed to allocate a unique account number after %d attempts: %w",
			maxAccountNumberAttempts, lastErr)
	}

	s.readRepo.CacheAccount(ctx, account)
	s.publish(ctx, events.AccountCreated, events.AccountCreatedEvent{
		AccountID:         account.ID,
		AccountNumber:     account.AccountNumber,
		AccountHolderName: account.AccountHolderName,
		OpeningBalance:    models.FormatMoney(account.Balance),
	})
	return account, nil
}

func (s *AccountCommandService) Deposit(ctx context.Context, cmd cqrs.DepositCommand) (*models.Account, error) {
	return s.applyBalanceChange(ctx, cmd.AccountID, operationDeposit, cmd.Amount,
		func(current decimal.Decimal) (decimal.Decimal, error) {
			if !cmd.Amount.IsPositive() {
				return decimal.Zero, bankerr.InvalidAmount("Deposit amount must be positive")
			}
			if hasSubCentPrecision(cmd.Amount) {
				return decimal.Zero, bankerr.InvalidAmount("Amount cannot have more than two decimal places")
			}
			return current.Add(cmd.Amount), nil
		})
}

func (s *AccountCommandService) Withdraw(ctx context.Context, cmd cqrs.WithdrawCommand) (*models.Account, error) {
	return s.applyBalanceChange(ctx, cmd.AccountID, operationWithdrawal, cmd.Amount.Neg(),
		func(current decimal.Decimal) (decimal.Decimal, error) {
			if !cmd.Amount.IsPositive() {
				return decimal.Zero, bankerr.InvalidAmount("Withdrawal amount must be positive")
			}
			if hasSubCentPrecision(cmd.Amount) {
				return decimal.Zero, bankerr.InvalidAmount("Amount cannot have more than two decimal places")
			}
			if current.LessThan(cmd.Amount) {
				return decimal.Zero, bankerr.InsufficientFunds("Insufficient funds. Current balance: %s",
					models.FormatMoney(current))
			}
			return current.Sub(cmd.Amount), nil
		})
}

// DiscardAccount removes an account that was opened as part of a
// registration which could not be completed.
func (s *AccountCommandService) DiscardAccount(ctx context.Context, accountID string) error {
	if err := s.store.Delete(ctx, accountID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	s.readRepo.InvalidateAccount(ctx, accountID)
	return nil
}

// applyBalanceChange runs fn inside the store's atomic per-account update, so
// the amount and funds checks see the same balance that gets written.
func (s *AccountCommandService) applyBalanceChange(
	ctx context.Context,
	accountID, operation string,
	change decimal.Decimal,
	fn repository.BalanceFunc,
) (*models.Account, error) {
	account, err := s.store.UpdateBalance(ctx, accountID, fn)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, bankerr.NotFound("Account not found with ID: %s", accountID)
	}
	if err != nil {
		return nil, err
	}

	// Concurrent updates can finish out of order once the row lock is
	// released, so the cached copy is dropped rather than overwritten.
	s.readRepo.InvalidateAccount(ctx, account.ID)
	s.publish(ctx, events.BalanceUpdated, events.BalanceUpdatedEvent{
		AccountID:  account.ID,
		Operation:  operation,
		Change:     models.FormatMoney(change),
		NewBalance: models.FormatMoney(account.Balance),
	})
	return account, nil
}

func (s *AccountCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, eventType, data); err != nil {
		s.log.Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}

// hasSubCentPrecision reports whether d carries a non-zero digit beyond the
// second decimal place.
func hasSubCentPrecision(d decimal.Decimal) bool {
	return !d.Equal(d.Truncate(2))
}
