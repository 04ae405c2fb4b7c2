package repository

import (
	"context"
	"time"

	"github.com/bankafrica/bankapp/internal/models"
	sharedredis "github.com/bankafrica/bankapp/internal/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const accountViewKeyPrefix = "account:view:"

// AccountCacheTTL bounds how long a cached balance can be served after a
// missed invalidation.
const AccountCacheTTL = time.Minute

// AccountCacheEntry is the Redis representation of an account. Balance keeps
// full decimal precision.
type AccountCacheEntry struct {
	ID                string          `json:"id"`
	AccountHolderName string          `json:"accountHolderName"`
	Balance           decimal.Decimal `json:"balance"`
	AccountNumber     string          `json:"accountNumber"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// AccountCache is the subset of ViewCache used for accounts.
type AccountCache interface {
	Get(ctx context.Context, key string) (*AccountCacheEntry, bool)
	Set(ctx context.Context, key string, value *AccountCacheEntry)
	Delete(ctx context.Context, key string)
}

// NewAccountCache returns a Redis-backed AccountCache.
func NewAccountCache(client goredis.Cmdable, log zerolog.Logger) AccountCache {
	return sharedredis.NewViewCache[AccountCacheEntry](client, AccountCacheTTL, log)
}

// AccountReadRepository serves account reads from Redis first and falls back
// to the AccountStore, warming the cache on every cold read. A nil cache
// disables caching.
type AccountReadRepository struct {
	store AccountStore
	cache AccountCache
}

func NewAccountReadRepository(store AccountStore, cache AccountCache) *AccountReadRepository {
	return &AccountReadRepository{store: store, cache: cache}
}

func (r *AccountReadRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	key := accountViewKeyPrefix + id

	if r.cache != nil {
		if entry, ok := r.cache.Get(ctx, key); ok {
			return cacheEntryToAccount(entry), nil
		}
	}

	account, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.CacheAccount(ctx, account)
	return account, nil
}

// CacheAccount stores or refreshes the cached copy of an account.
func (r *AccountReadRepository) CacheAccount(ctx context.Context, a *models.Account) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, accountViewKeyPrefix+a.ID, &AccountCacheEntry{
		ID:                a.ID,
		AccountHolderName: a.AccountHolderName,
		Balance:           a.Balance,
		AccountNumber:     a.AccountNumber,
		CreatedAt:         a.CreatedAt,
	})
}

// InvalidateAccount drops the cached copy; the next read goes to the store.
func (r *AccountReadRepository) InvalidateAccount(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, accountViewKeyPrefix+id)
}

func cacheEntryToAccount(e *AccountCacheEntry) *models.Account {
	return &models.Account{
		ID:                e.ID,
		AccountHolderName: e.AccountHolderName,
		Balance:           e.Balance,
		AccountNumber:     e.AccountNumber,
		CreatedAt:         e.CreatedAt,
	}
}
