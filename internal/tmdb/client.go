// internal/tmdb/client.go
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/miloszfede/filmweb/internal/config"
	"github.com/miloszfede/filmweb/pkg/logger"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("movie not found")
	ErrUnavailable = errors.New("movie service unavailable")
)

// Client talks to the TMDB v3 API. Outbound calls run through a circuit
// breaker so a TMDB outage fails fast instead of tying up handlers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	logger     logger.Logger
}

func NewClient(cfg *config.Config, log logger.Logger) *Client {
	st := gobreaker.Settings{
		Name:    "tmdb",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 &&
				float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		// A 404 is a well-formed answer, not a TMDB failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.TMDB.Timeout},
		baseURL:    strings.TrimRight(cfg.TMDB.BaseURL, "/"),
		apiKey:     cfg.TMDB.APIKey,
		cb:         gobreaker.NewCircuitBreaker(st),
		logger:     log.With(zap.String("module", "tmdb_client")),
	}
}

func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	var out SearchResponse
	if err := c.get(ctx, "/search/movie", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetMovieDetails(ctx context.Context, movieID int) (*MovieDetails, error) {
	var out MovieDetails
	if err := c.get(ctx, "/movie/"+strconv.Itoa(movieID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	requestURL := c.baseURL + path + "?" + params.Encode()

	_, err := c.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, ErrNotFound
		case resp.StatusCode != http.StatusOK:
			c.logger.Warn("unexpected tmdb response",
				zap.String("path", path),
				zap.Int("status", resp.StatusCode))
			return nil, fmt.Errorf("tmdb returned status %d", resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decoding tmdb response: %w", err)
		}
		return nil, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return ErrUnavailable
		}
		return err
	}
	return nil
}
