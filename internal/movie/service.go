package movie

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/FrancielliAndreghetto/moviefavs/pkg/httpclient"
	"github.com/FrancielliAndreghetto/moviefavs/pkg/logger"
)

// DefaultLanguage is the locale sent with every catalog request
const DefaultLanguage = "pt-BR"

// APIError wraps any catalog failure, preserving the cause
type APIError struct {
	Op  string
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Service adapts the external movie catalog (TMDB-shaped API). It appends
// the API key and locale to every request and normalizes paginated
// responses.
type Service struct {
	client   *httpclient.Client
	baseURL  string
	apiKey   string
	language string
}

// NewService creates a catalog adapter. Fails fast when no API key is
// configured.
func NewService(client *httpclient.Client, baseURL, apiKey string) (*Service, error) {
	if apiKey == "" {
		return nil, errors.New("movie catalog API key is not configured")
	}
	return &Service{
		client:   client,
		baseURL:  baseURL,
		apiKey:   apiKey,
		language: DefaultLanguage,
	}, nil
}

type pageResponse struct {
	Results      []MovieSummary `json:"results"`
	TotalResults *int           `json:"total_results"`
	TotalPages   *int           `json:"total_pages"`
	Page         *int           `json:"page"`
}

func (s *Service) params(extra url.Values) url.Values {
	p := url.Values{}
	p.Set("api_key", s.apiKey)
	p.Set("language", s.language)
	for key, values := range extra {
		for _, v := range values {
			p.Add(key, v)
		}
	}
	return p
}

func (s *Service) fetchPage(ctx context.Context, op, path string, page int, extra url.Values) (*MoviePage, error) {
	if page < 1 {
		page = 1
	}
	if extra == nil {
		extra = url.Values{}
	}
	extra.Set("page", strconv.Itoa(page))

	var resp pageResponse
	if err := s.client.GetJSON(ctx, s.baseURL+path, s.params(extra), &resp); err != nil {
		logger.Error(ctx).Err(err).Str("operation", op).Msg("Movie catalog request failed")
		return nil, &APIError{Op: op, Err: err}
	}

	return normalizePage(resp), nil
}

func normalizePage(resp pageResponse) *MoviePage {
	page := &MoviePage{
		Results:      resp.Results,
		TotalResults: 0,
		TotalPages:   0,
		Page:         1,
	}
	if page.Results == nil {
		page.Results = []MovieSummary{}
	}
	if resp.TotalResults != nil {
		page.TotalResults = *resp.TotalResults
	}
	if resp.TotalPages != nil {
		page.TotalPages = *resp.TotalPages
	}
	if resp.Page != nil {
		page.Page = *resp.Page
	}
	return page
}

// SearchMovies searches the catalog by title
func (s *Service) SearchMovies(ctx context.Context, query string, page int) (*MoviePage, error) {
	extra := url.Values{}
	extra.Set("query", query)
	return s.fetchPage(ctx, "search movies", "/search/movie", page, extra)
}

// GetPopular lists popular movies
func (s *Service) GetPopular(ctx context.Context, page int) (*MoviePage, error) {
	return s.fetchPage(ctx, "get popular movies", "/movie/popular", page, nil)
}

// GetNowPlaying lists movies currently in theaters
func (s *Service) GetNowPlaying(ctx context.Context, page int) (*MoviePage, error) {
	return s.fetchPage(ctx, "get now playing movies", "/movie/now_playing", page, nil)
}

// GetUpcoming lists upcoming movies
func (s *Service) GetUpcoming(ctx context.Context, page int) (*MoviePage, error) {
	return s.fetchPage(ctx, "get upcoming movies", "/movie/upcoming", page, nil)
}

// GetTopRated lists top rated movies
func (s *Service) GetTopRated(ctx context.Context, page int) (*MoviePage, error) {
	return s.fetchPage(ctx, "get top rated movies", "/movie/top_rated", page, nil)
}

// GetMovieDetails fetches full details for a single movie
func (s *Service) GetMovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error) {
	var details MovieDetails
	path := fmt.Sprintf("%s/movie/%d", s.baseURL, movieID)
	if err := s.client.GetJSON(ctx, path, s.params(nil), &details); err != nil {
		logger.Error(ctx).Err(err).Int64("movie_id", movieID).Msg("Movie catalog request failed")
		return nil, &APIError{Op: "get movie details", Err: err}
	}
	return &details, nil
}

// GetGenres fetches the genre list
func (s *Service) GetGenres(ctx context.Context) ([]Genre, error) {
	var resp struct {
		Genres []Genre `json:"genres"`
	}
	if err := s.client.GetJSON(ctx, s.baseURL+"/genre/movie/list", s.params(nil), &resp); err != nil {
		logger.Error(ctx).Err(err).Msg("Movie catalog request failed")
		return nil, &APIError{Op: "get genres", Err: err}
	}
	if resp.Genres == nil {
		return []Genre{}, nil
	}
	return resp.Genres, nil
}
