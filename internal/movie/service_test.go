package movie

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancielliAndreghetto/moviefavs/pkg/httpclient"
)

// catalogServer records the last request and serves a canned JSON payload.
type catalogServer struct {
	*httptest.Server
	lastPath  string
	lastQuery map[string]string
	status    int
	payload   any
}

func newCatalogServer(t *testing.T) *catalogServer {
	t.Helper()
	cs := &catalogServer{status: http.StatusOK}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.lastPath = r.URL.Path
		cs.lastQuery = map[string]string{}
		for key := range r.URL.Query() {
			cs.lastQuery[key] = r.URL.Query().Get(key)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(cs.status)
		if cs.payload != nil {
			json.NewEncoder(w).Encode(cs.payload)
		}
	}))
	t.Cleanup(cs.Close)
	return cs
}

func newTestService(t *testing.T, server *catalogServer) *Service {
	t.Helper()
	svc, err := NewService(httpclient.New(5*time.Second), server.URL, "test-key")
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresAPIKey(t *testing.T) {
	_, err := NewService(httpclient.New(0), "http://example.com", "")
	require.Error(t, err)
}

func TestSearchMoviesSendsCredentialsAndQuery(t *testing.T) {
	server := newCatalogServer(t)
	server.payload = map[string]any{
		"results":       []map[string]any{{"id": 1, "title": "Dune"}},
		"total_results": 1,
		"total_pages":   1,
		"page":          1,
	}
	svc := newTestService(t, server)

	page, err := svc.SearchMovies(context.Background(), "dune", 2)
	require.NoError(t, err)

	assert.Equal(t, "/search/movie", server.lastPath)
	assert.Equal(t, "test-key", server.lastQuery["api_key"])
	assert.Equal(t, DefaultLanguage, server.lastQuery["language"])
	assert.Equal(t, "dune", server.lastQuery["query"])
	assert.Equal(t, "2", server.lastQuery["page"])

	require.Len(t, page.Results, 1)
	assert.Equal(t, "Dune", page.Results[0].Title)
}

func TestFetchPageClampsPageToOne(t *testing.T) {
	server := newCatalogServer(t)
	server.payload = map[string]any{"results": []map[string]any{}}
	svc := newTestService(t, server)

	_, err := svc.GetPopular(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "/movie/popular", server.lastPath)
	assert.Equal(t, "1", server.lastQuery["page"])
}

func TestNormalizePageDefaults(t *testing.T) {
	server := newCatalogServer(t)
	// Upstream omitted every field entirely.
	server.payload = map[string]any{}
	svc := newTestService(t, server)

	page, err := svc.GetTopRated(context.Background(), 1)
	require.NoError(t, err)

	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
	assert.Equal(t, 0, page.TotalResults)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 1, page.Page)
}

func TestCatalogErrorIsWrapped(t *testing.T) {
	server := newCatalogServer(t)
	server.status = http.StatusUnauthorized
	server.payload = map[string]any{"status_message": "Invalid API key"}
	svc := newTestService(t, server)

	_, err := svc.GetNowPlaying(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "get now playing movies", apiErr.Op)

	var statusErr *httpclient.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestGetMovieDetails(t *testing.T) {
	server := newCatalogServer(t)
	server.payload = map[string]any{
		"id":       603,
		"title":    "The Matrix",
		"overview": "A hacker learns the truth.",
		"genres":   []map[string]any{{"id": 878, "name": "Science Fiction"}},
	}
	svc := newTestService(t, server)

	details, err := svc.GetMovieDetails(context.Background(), 603)
	require.NoError(t, err)

	assert.Equal(t, "/movie/603", server.lastPath)
	assert.Equal(t, "test-key", server.lastQuery["api_key"])
	assert.Equal(t, int64(603), details.ID)
	assert.Equal(t, "The Matrix", details.Title)
	require.Len(t, details.Genres, 1)
	assert.Equal(t, "Science Fiction", details.Genres[0].Name)
}

func TestGetGenres(t *testing.T) {
	server := newCatalogServer(t)
	server.payload = map[string]any{
		"genres": []map[string]any{{"id": 28, "name": "Action"}, {"id": 35, "name": "Comedy"}},
	}
	svc := newTestService(t, server)

	genres, err := svc.GetGenres(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "Action", genres[0].Name)
}

func TestGetGenresEmptyNeverNil(t *testing.T) {
	server := newCatalogServer(t)
	server.payload = map[string]any{}
	svc := newTestService(t, server)

	genres, err := svc.GetGenres(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, genres)
	assert.Empty(t, genres)
}
