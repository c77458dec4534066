package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/miloszfede/filmweb/internal/config"
	"github.com/miloszfede/filmweb/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		TMDB: config.TMDBConfig{
			BaseURL: srv.URL,
			APIKey:  "test-key",
			Timeout: 2 * time.Second,
		},
	}
	return NewClient(cfg, logger.NewNop()), srv
}

func TestClient_SearchMovies(t *testing.T) {
	var gotPath, gotKey, gotQuery, gotPage string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		gotQuery = r.URL.Query().Get("query")
		gotPage = r.URL.Query().Get("page")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 603, "title": "The Matrix", "poster_path": "/p.jpg",
				 "release_date": "1999-03-30", "vote_average": 8.2, "overview": "..."}
			],
			"total_results": 1,
			"total_pages": 1
		}`))
	})

	result, err := client.SearchMovies(context.Background(), "matrix", 1)
	require.NoError(t, err)

	assert.Equal(t, "/search/movie", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "matrix", gotQuery)
	assert.Equal(t, "1", gotPage)

	require.Len(t, result.Results, 1)
	assert.Equal(t, 603, result.Results[0].ID)
	assert.Equal(t, "The Matrix", result.Results[0].Title)
	assert.Equal(t, 1, result.TotalResults)
}

func TestClient_SearchMovies_DefaultsPage(t *testing.T) {
	var gotPage string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		_, _ = w.Write([]byte(`{"page":1,"results":[],"total_results":0,"total_pages":0}`))
	})

	_, err := client.SearchMovies(context.Background(), "matrix", 0)
	require.NoError(t, err)
	assert.Equal(t, "1", gotPage)
}

func TestClient_GetMovieDetails(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{
			"id": 603, "title": "The Matrix", "overview": "...", "runtime": 136,
			"genres": [{"id": 28, "name": "Action"}], "status": "Released",
			"release_date": "1999-03-30", "vote_average": 8.2
		}`))
	})

	movie, err := client.GetMovieDetails(context.Background(), 603)
	require.NoError(t, err)

	assert.Equal(t, "/movie/603", gotPath)
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, 136, movie.Runtime)
	require.Len(t, movie.Genres, 1)
	assert.Equal(t, "Action", movie.Genres[0].Name)
}

func TestClient_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetMovieDetails(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < 5; i++ {
		_, err := client.SearchMovies(context.Background(), "matrix", 1)
		require.Error(t, err)
	}

	_, err := client.SearchMovies(context.Background(), "matrix", 1)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 10; i++ {
		_, err := client.GetMovieDetails(context.Background(), 1)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}
