package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/FrancielliAndreghetto/moviefavs/internal/movie"
)

// MovieHandler handles HTTP requests for catalog browsing. Catalog failures
// are logged by the adapter and answered with a generic 500; upstream error
// details never reach the client.
type MovieHandler struct {
	catalog *movie.Service
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(catalog *movie.Service) *MovieHandler {
	return &MovieHandler{catalog: catalog}
}

// RegisterRoutes wires the catalog endpoints into the router
func (h *MovieHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/movies/search", h.Search).Methods(http.MethodGet)
	router.HandleFunc("/movies/genres", h.Genres).Methods(http.MethodGet)
	router.HandleFunc("/movies/popular", h.Popular).Methods(http.MethodGet)
	router.HandleFunc("/movies/top-rated", h.TopRated).Methods(http.MethodGet)
	router.HandleFunc("/movies/now-playing", h.NowPlaying).Methods(http.MethodGet)
	router.HandleFunc("/movies/upcoming", h.Upcoming).Methods(http.MethodGet)
	router.HandleFunc("/movies/{id}", h.Show).Methods(http.MethodGet)
}

// Search handles GET /movies/search?query&page
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusUnprocessableEntity, "The query field is required")
		return
	}

	page, err := h.catalog.SearchMovies(r.Context(), query, pageParam(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search movies")
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Show handles GET /movies/{id}
func (h *MovieHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid movie ID")
		return
	}

	details, err := h.catalog.GetMovieDetails(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get movie details")
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// Genres handles GET /movies/genres
func (h *MovieHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalog.GetGenres(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get genres")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"genres": genres})
}

// Popular handles GET /movies/popular?page
func (h *MovieHandler) Popular(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "Failed to get popular movies", h.catalog.GetPopular)
}

// NowPlaying handles GET /movies/now-playing?page
func (h *MovieHandler) NowPlaying(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "Failed to get now playing movies", h.catalog.GetNowPlaying)
}

// Upcoming handles GET /movies/upcoming?page
func (h *MovieHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "Failed to get upcoming movies", h.catalog.GetUpcoming)
}

// TopRated handles GET /movies/top-rated?page
func (h *MovieHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "Failed to get top rated movies", h.catalog.GetTopRated)
}

func (h *MovieHandler) page(w http.ResponseWriter, r *http.Request, fallback string, fetch func(context.Context, int) (*movie.MoviePage, error)) {
	page, err := fetch(r.Context(), pageParam(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, fallback)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}
