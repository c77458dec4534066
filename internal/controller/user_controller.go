// internal/controller/user_controller.go
package controller

import (
	"net/http"

	"github.com/miloszfede/filmweb/internal/service"
	"github.com/miloszfede/filmweb/internal/utils"
	"github.com/miloszfede/filmweb/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	userService service.UserService
	logger      logger.Logger
}

func NewUserController(
	userService service.UserService,
	logger logger.Logger,
) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger.With(zap.String("module", "user_controller")),
	}
}

// GetUser returns the public profile of a user by username.
func (c *UserController) GetUser(ctx *gin.Context) {
	username := ctx.Param("username")

	user, err := c.userService.GetUserByUsername(username)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, "user not found")
		return
	}

	utils.Success(ctx, gin.H{
		"userId":   user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}
