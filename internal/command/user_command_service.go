package command

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bankafrica/bankapp/internal/bankerr"
	"github.com/bankafrica/bankapp/internal/cqrs"
	"github.com/bankafrica/bankapp/internal/events"
	"github.com/bankafrica/bankapp/internal/models"
	"github.com/bankafrica/bankapp/internal/repository"
	"github.com/bankafrica/bankapp/internal/utils"
	"github.com/bankafrica/bankapp/internal/validation"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const minPasswordLength = 6

var minimumInitialDeposit = decimal.RequireFromString("100.00")

// AccountOpener is the part of the account ledger that registration needs.
type AccountOpener interface {
	CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error)
	DiscardAccount(ctx context.Context, accountID string) error
}

// UserCommandService onboards new users. Every registration opens exactly
// one account for the user.
type UserCommandService struct {
	users     repository.UserStore
	accounts  AccountOpener
	publisher EventPublisher
	log       zerolog.Logger
	now       func() time.Time
}

func NewUserCommandService(
	users repository.UserStore,
	accounts AccountOpener,
	publisher EventPublisher,
	log zerolog.Logger,
) *UserCommandService {
	return &UserCommandService{
		users:     users,
		accounts:  accounts,
		publisher: publisher,
		log:       log.With().Str("component", "user_commands").Logger(),
		now:       time.Now,
	}
}

// Register validates the input, opens the user's account with the initial
// deposit and stores the identity. Checks fail fast in a fixed order:
// field formats, then uniqueness, then the minimum deposit.
func (s *UserCommandService) Register(ctx context.Context, cmd cqrs.RegisterUserCommand) (*models.User, error) {
	if err := validateRegistration(cmd); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, bankerr.Conflict("Email already registered")
	}
	taken, err = s.users.ExistsByIDNumber(ctx, cmd.IDNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, bankerr.Conflict("ID number already registered")
	}

	if cmd.InitialDeposit.LessThan(minimumInitialDeposit) {
		return nil, bankerr.Validation("Minimum initial deposit is 100.00")
	}

	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           utils.GenerateID("usr"),
		FirstName:    cmd.FirstName,
		LastName:     cmd.LastName,
		Email:        cmd.Email,
		IDNumber:     cmd.IDNumber,
		PhoneNumber:  cmd.PhoneNumber,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}

	account, err := s.accounts.CreateAccount(ctx, cqrs.CreateAccountCommand{
		HolderName:     user.FullName(),
		InitialBalance: cmd.InitialDeposit,
	})
	if err != nil {
		return nil, err
	}
	user.AccountID = account.ID

	if err := s.users.Create(ctx, user); err != nil {
		if discardErr := s.accounts.DiscardAccount(ctx, account.ID); discardErr != nil {
			s.log.Error().Err(discardErr).Str("account_id", account.ID).Msg("failed to discard account of failed registration")
		}
		return nil, translateUserStoreError(err)
	}
	user.Account = account

	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserRegistered, events.UserRegisteredEvent{
		UserID:    user.ID,
		Email:     user.Email,
		AccountID: account.ID,
	}); err != nil {
		s.log.Warn().Err(err).Str("event", events.UserRegistered).Msg("failed to publish event")
	}

	s.log.Info().Str("user_id", user.ID).Str("account_id", account.ID).Msg("user registered")
	return user, nil
}

func validateRegistration(cmd cqrs.RegisterUserCommand) error {
	switch {
	case validation.Blank(cmd.FirstName):
		return bankerr.Validation("First name cannot be empty")
	case validation.Blank(cmd.LastName):
		return bankerr.Validation("Last name cannot be empty")
	case !validation.Email(cmd.Email):
		return bankerr.Validation("Invalid email format")
	case !validation.IDNumber(cmd.IDNumber):
		return bankerr.Validation("Invalid ID number format")
	case !validation.Phone(cmd.PhoneNumber):
		return bankerr.Validation("Invalid phone number format")
	case validation.Blank(cmd.Password) || utf8.RuneCountInString(cmd.Password) < minPasswordLength:
		return bankerr.Validation("Password must be at least 6 characters")
	case cmd.InitialDeposit == nil:
		return bankerr.Validation("Initial deposit cannot be null")
	case !cmd.InitialDeposit.IsPositive():
		return bankerr.Validation("Initial deposit must be positive")
	case hasSubCentPrecision(*cmd.InitialDeposit):
		return bankerr.Validation("Initial deposit cannot have more than two decimal places")
	}
	return nil
}

// translateUserStoreError turns a unique-index violation that slipped past
// the pre-checks (a concurrent registration) into the same conflict the
// pre-check would have reported.
func translateUserStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return bankerr.Conflict("Email already registered")
	case errors.Is(err, repository.ErrDuplicateIDNumber):
		return bankerr.Conflict("ID number already registered")
	default:
		return err
	}
}
