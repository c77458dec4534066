// internal/middleware/jwt.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/miloszfede/filmweb/internal/service"
	"github.com/miloszfede/filmweb/pkg/jwtauth"
	"github.com/miloszfede/filmweb/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Keys under which the middleware stores the authenticated identity in the
// gin context. Handlers read these instead of re-parsing the token.
const (
	ContextClaimsKey = "authClaims"
	ContextUserKey   = "currentUser"
	ContextUserIDKey = "userID"
)

type JWTMiddleware struct {
	tokenIssuer service.TokenIssuer
	blacklist   *jwtauth.Blacklist
	userCache   *jwtauth.UserCache
	logger      logger.Logger
}

func NewJWTMiddleware(
	tokenIssuer service.TokenIssuer,
	blacklist *jwtauth.Blacklist,
	userCache *jwtauth.UserCache,
	logger logger.Logger,
) *JWTMiddleware {
	return &JWTMiddleware{
		tokenIssuer: tokenIssuer,
		blacklist:   blacklist,
		userCache:   userCache,
		logger:      logger.With(zap.String("module", "jwt_middleware")),
	}
}

// Handle authenticates the request from its bearer token. On success the
// claims and the current user record are stored in the gin context.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ExtractToken(ctx)
		if token == "" {
			unauthorized(ctx, "authorization token required")
			return
		}

		claims, err := m.tokenIssuer.Validate(token)
		if err != nil {
			unauthorized(ctx, "invalid or expired token")
			return
		}

		if m.blacklist.IsRevoked(ctx.Request.Context(), claims.ID) {
			m.logger.Warn("revoked token used", zap.String("jti", claims.ID))
			unauthorized(ctx, "token revoked")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			unauthorized(ctx, "invalid or expired token")
			return
		}

		user, _, err := m.userCache.Get(ctx.Request.Context(), userID)
		if err != nil {
			m.logger.Error("user lookup failed", zap.Uint("user_id", userID), zap.Error(err))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"message": "internal server error",
			})
			return
		}
		if user == nil {
			unauthorized(ctx, "user no longer exists")
			return
		}

		ctx.Set(ContextClaimsKey, claims)
		ctx.Set(ContextUserKey, user)
		ctx.Set(ContextUserIDKey, user.ID)

		ctx.Next()
	}
}

// ExtractToken pulls the bearer token from the Authorization header, the
// "token" query parameter, or the "jwt" cookie, in that order.
func ExtractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if token := ctx.Query("token"); token != "" {
		return token
	}
	if cookie, err := ctx.Cookie("jwt"); err == nil {
		return cookie
	}
	return ""
}

// CurrentClaims returns the validated claims stored by Handle.
func CurrentClaims(ctx *gin.Context) (*service.Claims, bool) {
	v, ok := ctx.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}

func unauthorized(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": message,
	})
}
