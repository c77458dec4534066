// cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"github.com/miloszfede/filmweb/internal/config"
	"github.com/miloszfede/filmweb/internal/controller"
	"github.com/miloszfede/filmweb/internal/middleware"
	"github.com/miloszfede/filmweb/internal/repository"
	"github.com/miloszfede/filmweb/internal/router"
	"github.com/miloszfede/filmweb/internal/service"
	"github.com/miloszfede/filmweb/internal/tmdb"
	"github.com/miloszfede/filmweb/pkg/db"
	"github.com/miloszfede/filmweb/pkg/jwtauth"
	"github.com/miloszfede/filmweb/pkg/logger"
	"github.com/miloszfede/filmweb/pkg/redis"

	"github.com/google/wire"
)

var configSet = wire.NewSet(
	config.LoadConfig,
)

var dbSet = wire.NewSet(
	db.NewDB,
)

var redisSet = wire.NewSet(
	redis.NewRedisClient,
)

var loggerSet = wire.NewSet(
	logger.NewZapLogger,
	wire.Bind(new(logger.Logger), new(*logger.ZapLogger)),
)

var repositorySet = wire.NewSet(
	repository.NewUserRepository,
	wire.Bind(new(repository.UserRepository), new(*repository.UserRepositoryImpl)),
)

var serviceSet = wire.NewSet(
	service.NewBcryptHasher,
	wire.Bind(new(service.PasswordHasher), new(*service.BcryptHasher)),
	service.NewTokenIssuer,
	wire.Bind(new(service.TokenIssuer), new(*service.JWTIssuer)),
	service.NewUserService,
	wire.Bind(new(service.UserService), new(*service.UserServiceImpl)),
	service.NewAuthService,
	wire.Bind(new(service.AuthService), new(*service.AuthServiceImpl)),
	service.NewMovieService,
	wire.Bind(new(service.MovieService), new(*service.MovieServiceImpl)),
)

var tmdbSet = wire.NewSet(
	tmdb.NewClient,
	wire.Bind(new(service.MovieClient), new(*tmdb.Client)),
)

var jwtauthSet = wire.NewSet(
	jwtauth.NewBlacklist,
	jwtauth.NewLoginLock,
	jwtauth.NewUserCache,
	wire.Bind(new(jwtauth.UserFinder), new(*service.UserServiceImpl)),
)

var middlewareSet = wire.NewSet(
	middleware.NewJWTMiddleware,
	middleware.NewRateLimiterMiddleware,
)

var controllerSet = wire.NewSet(
	controller.NewAuthController,
	controller.NewUserController,
	controller.NewMovieController,
)

var routerSet = wire.NewSet(
	router.NewRouter,
)

// InitializeApp wires the whole application together.
func InitializeApp(configPath string) (*router.Router, func(), error) {
	wire.Build(
		configSet,
		dbSet,
		redisSet,
		loggerSet,
		repositorySet,
		serviceSet,
		tmdbSet,
		jwtauthSet,
		middlewareSet,
		controllerSet,
		routerSet,
	)
	return nil, nil, nil
}
