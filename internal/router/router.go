package router

import (
	"strings"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/miloszfede/filmweb/internal/config"
	"github.com/miloszfede/filmweb/internal/controller"
	"github.com/miloszfede/filmweb/internal/middleware"
	"github.com/miloszfede/filmweb/pkg/logger"
)

type Router struct {
	Engine *gin.Engine
	Config *config.Config
	Logger logger.Logger
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	movieController *controller.MovieController,
	jwtMiddleware *middleware.JWTMiddleware,
	rateLimiter *middleware.RateLimiterMiddleware,
	cfg *config.Config,
	logger logger.Logger,
) *Router {
	switch strings.ToLower(cfg.App.Mode) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	zapLogger, ok := logger.(interface {
		GetZapLogger() *zap.Logger
	})
	if ok {
		r.Use(ginzap.Ginzap(zapLogger.GetZapLogger(), time.RFC3339, true))
		r.Use(ginzap.RecoveryWithZap(zapLogger.GetZapLogger(), true))
	} else {
		logger.Warn("zap logger not available, using default gin logger")
		r.Use(gin.Logger(), gin.Recovery())
	}

	// CORS must run before any handler so preflights succeed.
	r.Use(middleware.NewCORS(cfg))

	RegisterValidators()

	// Public routes
	public := r.Group("/api")
	public.Use(rateLimiter.Handle(10, 5*time.Second))
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})
		public.POST("/auth/register", authController.Register)
		public.POST("/auth/login", authController.Login)
		public.GET("/movies/search", movieController.Search)
		public.GET("/movies/:id", movieController.Details)
	}

	// Routes requiring a valid bearer token
	auth := r.Group("/api")
	auth.Use(jwtMiddleware.Handle())
	{
		auth.GET("/auth/me", authController.Me)
		auth.POST("/auth/logout", authController.Logout)
		auth.GET("/users/:username", userController.GetUser)
	}

	return &Router{
		Engine: r,
		Config: cfg,
		Logger: logger,
	}
}
