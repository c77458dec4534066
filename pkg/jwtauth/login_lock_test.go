package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/miloszfede/filmweb/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLockTestEnv(t *testing.T) (*LoginLock, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{}
	cfg.App.Name = "filmweb"
	cfg.JWT.MaxLoginAttempts = 3
	cfg.JWT.LockDuration = 5 * time.Minute

	return NewLoginLock(rdb, cfg), mr
}

func TestLoginLock_LocksAfterMaxAttempts(t *testing.T) {
	lock, _ := newLockTestEnv(t)
	ctx := context.Background()

	locked, err := lock.IsLocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)

	for i := 0; i < 2; i++ {
		require.NoError(t, lock.RecordFailure(ctx, "alice"))
		locked, err = lock.IsLocked(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, locked)
	}

	require.NoError(t, lock.RecordFailure(ctx, "alice"))
	locked, err = lock.IsLocked(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestLoginLock_LockExpires(t *testing.T) {
	lock, mr := newLockTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, lock.RecordFailure(ctx, "alice"))
	}
	locked, err := lock.IsLocked(ctx, "alice")
	require.NoError(t, err)
	require.True(t, locked)

	mr.FastForward(6 * time.Minute)

	locked, err = lock.IsLocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestLoginLock_ClearResetsCounter(t *testing.T) {
	lock, _ := newLockTestEnv(t)
	ctx := context.Background()

	require.NoError(t, lock.RecordFailure(ctx, "alice"))
	require.NoError(t, lock.RecordFailure(ctx, "alice"))
	require.NoError(t, lock.Clear(ctx, "alice"))

	// Two more failures after a clear must not lock.
	require.NoError(t, lock.RecordFailure(ctx, "alice"))
	require.NoError(t, lock.RecordFailure(ctx, "alice"))

	locked, err := lock.IsLocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestLoginLock_UsersAreIndependent(t *testing.T) {
	lock, _ := newLockTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, lock.RecordFailure(ctx, "alice"))
	}

	locked, err := lock.IsLocked(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, locked)
}
