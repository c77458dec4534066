package jwtauth

import (
	"context"
	"fmt"
	"time"

	"github.com/miloszfede/filmweb/internal/config"

	"github.com/go-redis/redis/v8"
)

var blacklistKey = "cache:%s:jwt:bl:%s"

// Blacklist revokes tokens before their natural expiry. Entries are keyed
// by the token's jti claim and expire together with the token, so the set
// never needs sweeping.
type Blacklist struct {
	RedisClient *redis.Client
	Config      *config.Config
}

func NewBlacklist(client *redis.Client, config *config.Config) *Blacklist {
	return &Blacklist{
		RedisClient: client,
		Config:      config,
	}
}

func (b *Blacklist) key(jti string) string {
	return fmt.Sprintf(blacklistKey, b.Config.App.Name, jti)
}

// IsRevoked reports whether the jti has been blacklisted. Redis errors are
// treated as "not revoked" so an outage does not lock everyone out.
func (b *Blacklist) IsRevoked(ctx context.Context, jti string) bool {
	if jti == "" {
		return false
	}
	exists, err := b.RedisClient.Exists(ctx, b.key(jti)).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

// Revoke blacklists the jti for the remaining lifetime of its token.
// Already-expired tokens are a no-op.
func (b *Blacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return fmt.Errorf("revoke: empty jti")
	}
	remaining := time.Until(expiresAt)
	if remaining <= 0 {
		return nil
	}
	return b.RedisClient.Set(ctx, b.key(jti), 1, remaining).Err()
}
