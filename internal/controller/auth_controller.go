// internal/controller/auth_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/miloszfede/filmweb/internal/middleware"
	"github.com/miloszfede/filmweb/internal/service"
	"github.com/miloszfede/filmweb/internal/utils"
	"github.com/miloszfede/filmweb/pkg/jwtauth"
	"github.com/miloszfede/filmweb/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type AuthController struct {
	authService service.AuthService
	blacklist   *jwtauth.Blacklist
	logger      logger.Logger
}

func NewAuthController(
	authService service.AuthService,
	blacklist *jwtauth.Blacklist,
	logger logger.Logger,
) *AuthController {
	return &AuthController{
		authService: authService,
		blacklist:   blacklist,
		logger:      logger.With(zap.String("module", "auth_controller")),
	}
}

func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "username, email and password are required")
		return
	}

	user, token, err := c.authService.Register(ctx.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			utils.Error(ctx, http.StatusBadRequest, err.Error())
			return
		}
		c.logger.Error("registration failed", zap.String("username", req.Username), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, "registration failed")
		return
	}

	utils.Success(ctx, AuthResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	})
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "username and password are required")
		return
	}

	user, token, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			utils.Error(ctx, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrAccountLocked):
			utils.Error(ctx, http.StatusTooManyRequests, err.Error())
		default:
			c.logger.Error("login failed", zap.String("username", req.Username), zap.Error(err))
			utils.Error(ctx, http.StatusInternalServerError, "login failed")
		}
		return
	}

	utils.Success(ctx, AuthResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	})
}

// Me returns the claims of the authenticated caller.
func (c *AuthController) Me(ctx *gin.Context) {
	claims, ok := middleware.CurrentClaims(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "not authenticated")
		return
	}

	utils.Success(ctx, gin.H{
		"userId":   claims.Subject,
		"username": claims.Username,
		"email":    claims.Email,
	})
}

// Logout revokes the presented token for the rest of its lifetime.
func (c *AuthController) Logout(ctx *gin.Context) {
	claims, ok := middleware.CurrentClaims(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := c.blacklist.Revoke(ctx.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		c.logger.Error("token revocation failed", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, "logout failed")
		return
	}

	utils.Success(ctx, gin.H{"message": "logout successful"})
}
