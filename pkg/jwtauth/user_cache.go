package jwtauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/miloszfede/filmweb/internal/config"
	"github.com/miloszfede/filmweb/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

var userCacheKey = "cache:%s:jwt:mid:ui:%d"

// UserFinder is the slice of the user service the cache needs.
// *service.UserServiceImpl satisfies it.
type UserFinder interface {
	GetUserByID(id uint) (*model.User, error)
}

// UserCache keeps the authenticated user's record in redis so the auth
// middleware does not hit the database on every request. Missing users are
// cached as an empty record to stop repeated lookups.
type UserCache struct {
	RedisClient *redis.Client
	Config      *config.Config
	Users       UserFinder
}

func NewUserCache(
	client *redis.Client,
	config *config.Config,
	users UserFinder,
) *UserCache {
	return &UserCache{
		RedisClient: client,
		Config:      config,
		Users:       users,
	}
}

func (uc *UserCache) key(userID uint) string {
	return fmt.Sprintf(userCacheKey, uc.Config.App.Name, userID)
}

// Get returns the user and whether it came from cache. A nil user with a
// nil error means the user no longer exists.
func (uc *UserCache) Get(ctx context.Context, userID uint) (*model.User, bool, error) {
	key := uc.key(userID)

	if user := uc.fromCache(ctx, key); user != nil {
		if user.ID == 0 {
			return nil, true, nil
		}
		return user, true, nil
	}

	user, err := uc.Users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			uc.store(ctx, key, &model.User{})
			return nil, false, nil
		}
		return nil, false, err
	}

	user.PasswordHash = ""
	uc.store(ctx, key, user)
	return user, false, nil
}

// Invalidate drops the cached record, e.g. after a fresh login.
func (uc *UserCache) Invalidate(ctx context.Context, userID uint) {
	uc.RedisClient.Del(ctx, uc.key(userID))
}

func (uc *UserCache) fromCache(ctx context.Context, key string) *model.User {
	cached, err := uc.RedisClient.Get(ctx, key).Result()
	switch {
	case err == redis.Nil:
		return nil
	case err != nil:
		return nil
	case cached == "":
		uc.RedisClient.Del(ctx, key)
		return nil
	}
	var user model.User
	if err := json.Unmarshal([]byte(cached), &user); err != nil {
		uc.RedisClient.Del(ctx, key)
		return nil
	}
	return &user
}

func (uc *UserCache) store(ctx context.Context, key string, u *model.User) {
	marshaled, err := json.Marshal(u)
	if err != nil {
		return
	}
	uc.RedisClient.Set(ctx, key, string(marshaled), uc.Config.JWT.CacheDuration)
}
