// internal/tmdb/models.go
package tmdb

// Wire shapes returned by the TMDB v3 API. Only the fields the frontend
// consumes are mapped; the rest of the payload is dropped on decode.

type SearchResponse struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"total_results"`
	TotalPages   int            `json:"total_pages"`
}

type SearchResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float32 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

type MovieDetails struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float32 `json:"vote_average"`
	Runtime      int     `json:"runtime"`
	Genres       []Genre `json:"genres"`
	Status       string  `json:"status"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
