package jwtauth

import (
	"context"
	"fmt"

	"github.com/miloszfede/filmweb/internal/config"

	"github.com/go-redis/redis/v8"
)

var (
	loginFailureKey = "cache:%s:login_failures:%s"
	accountLockKey  = "cache:%s:account_lock:%s"
)

// LoginLock throttles password guessing: after MaxLoginAttempts consecutive
// failures the account is locked for LockDuration.
type LoginLock struct {
	RedisClient *redis.Client
	Config      *config.Config
}

func NewLoginLock(client *redis.Client, config *config.Config) *LoginLock {
	return &LoginLock{
		RedisClient: client,
		Config:      config,
	}
}

func (ll *LoginLock) failureKey(username string) string {
	return fmt.Sprintf(loginFailureKey, ll.Config.App.Name, username)
}

func (ll *LoginLock) lockKey(username string) string {
	return fmt.Sprintf(accountLockKey, ll.Config.App.Name, username)
}

func (ll *LoginLock) IsLocked(ctx context.Context, username string) (bool, error) {
	exists, err := ll.RedisClient.Exists(ctx, ll.lockKey(username)).Result()
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

// RecordFailure increments the failure counter and, once the threshold is
// reached, sets the lock and resets the counter. The check-and-set runs
// under WATCH so concurrent failures do not lose increments.
func (ll *LoginLock) RecordFailure(ctx context.Context, username string) error {
	key := ll.failureKey(username)

	txf := func(tx *redis.Tx) error {
		count, err := tx.Get(ctx, key).Int()
		if err != nil && err != redis.Nil {
			return err
		}

		newCount := count + 1
		if newCount >= ll.Config.JWT.MaxLoginAttempts {
			if err := tx.Set(ctx, ll.lockKey(username), "1", ll.Config.JWT.LockDuration).Err(); err != nil {
				return err
			}
			return tx.Del(ctx, key).Err()
		}
		return tx.Set(ctx, key, newCount, ll.Config.JWT.LockDuration).Err()
	}

	return ll.RedisClient.Watch(ctx, txf, key)
}

// Clear removes the failure counter and any lock after a successful login.
func (ll *LoginLock) Clear(ctx context.Context, username string) error {
	_, err := ll.RedisClient.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, ll.failureKey(username))
		pipe.Del(ctx, ll.lockKey(username))
		return nil
	})
	return err
}
