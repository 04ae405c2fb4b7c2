package redis

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryKV implements the Get, Set and Del subset of Cmdable used by
// ViewCache.
type memoryKV struct {
	goredis.Cmdable
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryKV) Get(_ context.Context, key string) *goredis.StringCmd {
	if m.err != nil {
		return goredis.NewStringResult("", m.err)
	}
	v, ok := m.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (m *memoryKV) Set(_ context.Context, key string, value any, ttl time.Duration) *goredis.StatusCmd {
	if m.err != nil {
		return goredis.NewStatusResult("", m.err)
	}
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = ttl
	return goredis.NewStatusResult("OK", nil)
}

func (m *memoryKV) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	if m.err != nil {
		return goredis.NewIntResult(0, m.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

type view struct {
	ID      string `json:"id"`
	Balance string `json:"balance"`
}

func TestViewCacheRoundTrip(t *testing.T) {
	kv := newMemoryKV()
	cache := NewViewCache[view](kv, time.Minute, zerolog.Nop())
	ctx := context.Background()

	_, ok := cache.Get(ctx, "account:view:acc-1")
	assert.False(t, ok)

	cache.Set(ctx, "account:view:acc-1", &view{ID: "acc-1", Balance: "10.00"})
	assert.Equal(t, time.Minute, kv.ttls["account:view:acc-1"])

	got, ok := cache.Get(ctx, "account:view:acc-1")
	require.True(t, ok)
	assert.Equal(t, "10.00", got.Balance)

	cache.Delete(ctx, "account:view:acc-1")
	_, ok = cache.Get(ctx, "account:view:acc-1")
	assert.False(t, ok)
}

func TestViewCacheCorruptEntryIsAMiss(t *testing.T) {
	kv := newMemoryKV()
	kv.data["k"] = "{not json"
	var buf bytes.Buffer
	cache := NewViewCache[view](kv, 0, zerolog.New(&buf))

	_, ok := cache.Get(context.Background(), "k")
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "view cache entry is corrupt")
}

func TestViewCacheFailuresAreLoggedNotReturned(t *testing.T) {
	kv := newMemoryKV()
	kv.err = errors.New("connection refused")
	var buf bytes.Buffer
	cache := NewViewCache[view](kv, time.Minute, zerolog.New(&buf))
	ctx := context.Background()

	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)
	cache.Set(ctx, "k", &view{ID: "acc-1"})
	cache.Delete(ctx, "k")

	logs := buf.String()
	assert.Equal(t, 3, strings.Count(logs, "connection refused"))
}

func TestNewClientFailsFastWhenUnreachable(t *testing.T) {
	start := time.Now()
	_, err := NewClient(Options{
		Addr:         "127.0.0.1:1",
		PoolSize:     1,
		DialTimeout:  500 * time.Millisecond,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	assert.ErrorContains(t, err, "failed to connect to redis at 127.0.0.1:1")
	assert.Less(t, time.Since(start), 5*time.Second)
}
