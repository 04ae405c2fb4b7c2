package query

import (
	"context"
	"errors"

	"github.com/bankafrica/bankapp/internal/cqrs"
	"github.com/bankafrica/bankapp/internal/models"
	"github.com/bankafrica/bankapp/internal/repository"
)

// AccountReader loads accounts through the cache-aside read model.
type AccountReader interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

type AccountQueryService struct {
	readRepo AccountReader
}

func NewAccountQueryService(readRepo AccountReader) *AccountQueryService {
	return &AccountQueryService{readRepo: readRepo}
}

// GetAccount returns the account, or nil with no error when no account has
// the given id.
func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.Account, error) {
	account, err := s.readRepo.GetByID(ctx, q.AccountID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}
