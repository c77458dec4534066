// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/miloszfede/filmweb/internal/model"
	"github.com/miloszfede/filmweb/internal/repository"
	"github.com/miloszfede/filmweb/pkg/jwtauth"
	"github.com/miloszfede/filmweb/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrAlreadyExists rejects a registration whose username or email is
	// taken. ErrInvalidCredentials covers both unknown username and wrong
	// password so a caller cannot tell which one failed.
	ErrAlreadyExists      = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountLocked      = errors.New("account temporarily locked")
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
}

type AuthServiceImpl struct {
	userRepo    repository.UserRepository
	hasher      PasswordHasher
	tokenIssuer TokenIssuer
	loginLock   *jwtauth.LoginLock
	logger      logger.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	tokenIssuer TokenIssuer,
	loginLock *jwtauth.LoginLock,
	logger logger.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		loginLock:   loginLock,
		logger:      logger.With(zap.String("module", "auth_service")),
	}
}

// Register creates a user and mints a token for it. The existence pre-check
// is a fast path; the unique indexes remain the authoritative guard, so a
// concurrent duplicate insert still comes back as ErrAlreadyExists.
func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	exists, err := s.userRepo.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, "", fmt.Errorf("checking existing user: %w", err)
	}
	if exists {
		return nil, "", ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrAlreadyExists
		}
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.tokenIssuer.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", username))
	return user, token, nil
}

// Login verifies credentials and mints a fresh token. Repeated failures
// lock the account for the configured duration.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	locked, err := s.loginLock.IsLocked(ctx, username)
	if err != nil {
		s.logger.Warn("login lock check failed", zap.Error(err))
	} else if locked {
		return nil, "", ErrAccountLocked
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("looking up user: %w", err)
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		if err := s.loginLock.RecordFailure(ctx, username); err != nil {
			s.logger.Warn("recording login failure failed", zap.Error(err))
		}
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}

	if err := s.loginLock.Clear(ctx, username); err != nil {
		s.logger.Warn("clearing login failures failed", zap.Error(err))
	}

	s.logger.Info("user logged in", zap.Uint("user_id", user.ID))
	return user, token, nil
}
