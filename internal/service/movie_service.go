// internal/service/movie_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/miloszfede/filmweb/internal/config"
	"github.com/miloszfede/filmweb/internal/tmdb"
	"github.com/miloszfede/filmweb/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// MovieClient is the outbound surface MovieService proxies. *tmdb.Client
// satisfies it.
type MovieClient interface {
	SearchMovies(ctx context.Context, query string, page int) (*tmdb.SearchResponse, error)
	GetMovieDetails(ctx context.Context, movieID int) (*tmdb.MovieDetails, error)
}

type MovieService interface {
	Search(ctx context.Context, query string, page int) (*tmdb.SearchResponse, error)
	Details(ctx context.Context, movieID int) (*tmdb.MovieDetails, error)
}

// MovieServiceImpl fronts the TMDB client with a redis response cache.
// Cache failures are logged and degrade to a direct TMDB call.
type MovieServiceImpl struct {
	client      MovieClient
	redisClient *redis.Client
	cfg         *config.Config
	keyPrefix   string
	logger      logger.Logger
}

func NewMovieService(
	client MovieClient,
	redisClient *redis.Client,
	cfg *config.Config,
	logger logger.Logger,
) *MovieServiceImpl {
	return &MovieServiceImpl{
		client:      client,
		redisClient: redisClient,
		cfg:         cfg,
		keyPrefix:   "cache:" + cfg.App.Name + ":tmdb:",
		logger:      logger.With(zap.String("module", "movie_service")),
	}
}

func (s *MovieServiceImpl) Search(ctx context.Context, query string, page int) (*tmdb.SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	key := fmt.Sprintf("%ssearch:%s:%d", s.keyPrefix, query, page)

	var cached tmdb.SearchResponse
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := s.client.SearchMovies(ctx, query, page)
	if err != nil {
		return nil, err
	}
	s.setCached(ctx, key, result)
	return result, nil
}

func (s *MovieServiceImpl) Details(ctx context.Context, movieID int) (*tmdb.MovieDetails, error) {
	key := fmt.Sprintf("%smovie:%d", s.keyPrefix, movieID)

	var cached tmdb.MovieDetails
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := s.client.GetMovieDetails(ctx, movieID)
	if err != nil {
		return nil, err
	}
	s.setCached(ctx, key, result)
	return result, nil
}

func (s *MovieServiceImpl) getCached(ctx context.Context, key string, out interface{}) bool {
	cached, err := s.redisClient.Get(ctx, key).Result()
	switch {
	case err == redis.Nil:
		return false
	case err != nil:
		s.logger.Warn("movie cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal([]byte(cached), out); err != nil {
		s.redisClient.Del(ctx, key)
		return false
	}
	return true
}

func (s *MovieServiceImpl) setCached(ctx context.Context, key string, v interface{}) {
	marshaled, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, key, string(marshaled), s.cfg.TMDB.CacheTTL).Err(); err != nil {
		s.logger.Warn("movie cache write failed", zap.String("key", key), zap.Error(err))
	}
}
