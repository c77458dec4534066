// internal/service/token.go
package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/miloszfede/filmweb/internal/config"
	"github.com/miloszfede/filmweb/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by the access token.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the numeric user id from the subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// TokenIssuer mints and verifies HMAC-signed bearer tokens.
type TokenIssuer interface {
	Issue(user *model.User) (string, error)
	Validate(tokenString string) (*Claims, error)
}

type JWTIssuer struct {
	signingKey []byte
	issuer     string
	audience   string
	ttl        time.Duration
	now        func() time.Time
}

func NewTokenIssuer(cfg *config.Config) (*JWTIssuer, error) {
	if cfg.JWT.SigningKey == "" {
		return nil, errors.New("jwt signing key is not configured")
	}
	return &JWTIssuer{
		signingKey: []byte(cfg.JWT.SigningKey),
		issuer:     cfg.JWT.Issuer,
		audience:   cfg.JWT.Audience,
		ttl:        cfg.JWT.TTL(),
		now:        time.Now,
	}, nil
}

func (i *JWTIssuer) Issue(user *model.User) (string, error) {
	now := i.now()
	claims := &Claims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.signingKey)
}

func (i *JWTIssuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return i.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return i.now() }),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
