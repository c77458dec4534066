// internal/controller/movie_controller.go
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/miloszfede/filmweb/internal/service"
	"github.com/miloszfede/filmweb/internal/tmdb"
	"github.com/miloszfede/filmweb/internal/utils"
	"github.com/miloszfede/filmweb/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MovieController struct {
	movieService service.MovieService
	logger       logger.Logger
}

func NewMovieController(
	movieService service.MovieService,
	logger logger.Logger,
) *MovieController {
	return &MovieController{
		movieService: movieService,
		logger:       logger.With(zap.String("module", "movie_controller")),
	}
}

// Search handles GET /api/movies/search?query=...&page=N.
func (c *MovieController) Search(ctx *gin.Context) {
	query := ctx.Query("query")
	if query == "" {
		utils.Error(ctx, http.StatusBadRequest, "query parameter is required")
		return
	}

	page := 1
	if raw := ctx.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.Error(ctx, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = parsed
	}

	result, err := c.movieService.Search(ctx.Request.Context(), query, page)
	if err != nil {
		c.handleMovieError(ctx, err)
		return
	}

	utils.Success(ctx, result)
}

// Details handles GET /api/movies/:id.
func (c *MovieController) Details(ctx *gin.Context) {
	movieID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || movieID < 1 {
		utils.Error(ctx, http.StatusBadRequest, "movie id must be a positive integer")
		return
	}

	movie, err := c.movieService.Details(ctx.Request.Context(), movieID)
	if err != nil {
		c.handleMovieError(ctx, err)
		return
	}

	utils.Success(ctx, movie)
}

func (c *MovieController) handleMovieError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, tmdb.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, "movie not found")
	case errors.Is(err, tmdb.ErrUnavailable):
		utils.Error(ctx, http.StatusServiceUnavailable, "movie service unavailable")
	default:
		c.logger.Error("movie lookup failed", zap.Error(err))
		utils.Error(ctx, http.StatusBadGateway, "movie lookup failed")
	}
}
