package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	keys    map[string]time.Duration
	err     error
	setCall int
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.setCall++
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.keys[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisRevoker_RevokeAndCheck(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	rdb := &fakeRedis{keys: map[string]time.Duration{}}
	r := NewRedisRevoker(rdb)
	r.now = func() time.Time { return now }
	ctx := context.Background()

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-1", now.Add(10*time.Minute)))
	assert.Equal(t, 10*time.Minute, rdb.keys["revoked:jti-1"])

	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRedisRevoker_AlreadyExpiredIsSkipped(t *testing.T) {
	now := time.Now()
	rdb := &fakeRedis{keys: map[string]time.Duration{}}
	r := NewRedisRevoker(rdb)
	r.now = func() time.Time { return now }

	require.NoError(t, r.Revoke(context.Background(), "old", now.Add(-time.Second)))
	assert.Zero(t, rdb.setCall)
}

func TestRedisRevoker_Errors(t *testing.T) {
	rdb := &fakeRedis{keys: map[string]time.Duration{}, err: errors.New("redis down")}
	r := NewRedisRevoker(rdb)

	assert.Error(t, r.Revoke(context.Background(), "x", time.Now().Add(time.Hour)))
	_, err := r.IsRevoked(context.Background(), "x")
	assert.Error(t, err)
}

func TestNoopRevoker(t *testing.T) {
	var r Revoker = NoopRevoker{}
	require.NoError(t, r.Revoke(context.Background(), "x", time.Now().Add(time.Hour)))
	revoked, err := r.IsRevoked(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, revoked)
}
