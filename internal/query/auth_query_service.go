package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/bankafrica/bankapp/internal/auth"
	"github.com/bankafrica/bankapp/internal/bankerr"
	"github.com/bankafrica/bankapp/internal/cqrs"
	"github.com/bankafrica/bankapp/internal/models"
	"github.com/bankafrica/bankapp/internal/repository"
	"github.com/bankafrica/bankapp/internal/utils"
	"github.com/bankafrica/bankapp/internal/validation"
)

// AuthQueryService handles login, token refresh and user lookups. There's no
// CommandService for auth because these operations don't mutate application
// state.
type AuthQueryService struct {
	users    repository.UserStore
	accounts AccountReader
	tokens   *auth.TokenIssuer
}

func NewAuthQueryService(users repository.UserStore, accounts AccountReader, tokens *auth.TokenIssuer) *AuthQueryService {
	return &AuthQueryService{users: users, accounts: accounts, tokens: tokens}
}

// Login checks the credentials and returns the user with its account and a
// signed token. Unknown email and wrong password produce the same error.
func (s *AuthQueryService) Login(ctx context.Context, cmd cqrs.LoginCommand) (*models.User, string, error) {
	if !validation.Email(cmd.Email) {
		return nil, "", bankerr.Validation("Invalid email format")
	}
	if validation.Blank(cmd.Password) {
		return nil, "", bankerr.Validation("Password cannot be empty")
	}

	user, err := s.users.GetByEmail(ctx, cmd.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", bankerr.Auth("Invalid email or password")
	}
	if err != nil {
		return nil, "", err
	}
	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		return nil, "", bankerr.Auth("Invalid email or password")
	}

	if err := s.attachAccount(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthQueryService) RefreshToken(_ context.Context, cmd cqrs.RefreshTokenCommand) (string, error) {
	claims, err := s.tokens.Parse(cmd.Token)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(claims.UserID, claims.Email)
}

// GetUserByID returns the user with its account, or nil with no error when
// no user has the id.
func (s *AuthQueryService) GetUserByID(ctx context.Context, q cqrs.GetUserQuery) (*models.User, error) {
	return s.lookup(ctx, func() (*models.User, error) { return s.users.GetByID(ctx, q.UserID) })
}

// GetUserByEmail returns the user with its account, or nil with no error
// when no user has the email.
func (s *AuthQueryService) GetUserByEmail(ctx context.Context, q cqrs.GetUserByEmailQuery) (*models.User, error) {
	return s.lookup(ctx, func() (*models.User, error) { return s.users.GetByEmail(ctx, q.Email) })
}

func (s *AuthQueryService) lookup(ctx context.Context, find func() (*models.User, error)) (*models.User, error) {
	user, err := find()
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachAccount(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthQueryService) attachAccount(ctx context.Context, user *models.User) error {
	account, err := s.accounts.GetByID(ctx, user.AccountID)
	if err != nil {
		return fmt.Errorf("failed to load account %s of user %s: %w", user.AccountID, user.ID, err)
	}
	user.Account = account
	return nil
}
