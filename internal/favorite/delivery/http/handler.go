package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/domain"
	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/usecase/command"
	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/usecase/query"
	userhttp "github.com/FrancielliAndreghetto/moviefavs/internal/user/delivery/http"
	userdomain "github.com/FrancielliAndreghetto/moviefavs/internal/user/domain"
	"github.com/FrancielliAndreghetto/moviefavs/pkg/logger"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_requests_total",
			Help: "Total number of favorites requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "favorites_request_duration_seconds",
			Help:    "Duration of favorites requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func init() {
	prometheus.MustRegister(requestCounter, requestLatency)
}

// FavoriteHandler handles HTTP requests for the favorites workflow
type FavoriteHandler struct {
	addHandler    *command.AddFavoriteHandler
	removeHandler *command.RemoveFavoriteHandler
	listHandler   *query.ListFavoritesHandler
	checkHandler  *query.CheckFavoriteHandler

	users  userdomain.UserRepository
	tokens userdomain.TokenRepository
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(repo domain.FavoriteRepository, users userdomain.UserRepository, tokens userdomain.TokenRepository) *FavoriteHandler {
	return &FavoriteHandler{
		addHandler:    command.NewAddFavoriteHandler(repo),
		removeHandler: command.NewRemoveFavoriteHandler(repo),
		listHandler:   query.NewListFavoritesHandler(repo),
		checkHandler:  query.NewCheckFavoriteHandler(repo),
		users:         users,
		tokens:        tokens,
	}
}

// RegisterRoutes wires the favorites endpoints into the router. Every route
// requires a valid bearer token.
func (h *FavoriteHandler) RegisterRoutes(router *mux.Router) {
	authed := userhttp.AuthMiddleware(h.users, h.tokens)

	router.HandleFunc("/favorites", h.metrics("/favorites", authed(h.List))).Methods(http.MethodGet)
	router.HandleFunc("/favorites", h.metrics("/favorites", authed(h.Store))).Methods(http.MethodPost)
	router.HandleFunc("/favorites/{movieId}", h.metrics("/favorites/{movieId}", authed(h.Destroy))).Methods(http.MethodDelete)
	router.HandleFunc("/favorites/{movieId}/check", h.metrics("/favorites/{movieId}/check", authed(h.Check))).Methods(http.MethodGet)
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *FavoriteHandler) metrics(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// List handles GET /favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := userhttp.UserIDFromContext(r.Context())

	favorites, err := h.listHandler.Handle(query.ListFavoritesQuery{UserID: userID})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list favorites")
		respondError(w, http.StatusInternalServerError, "Failed to list favorites")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"favorites": favorites,
	})
}

// Store handles POST /favorites
func (h *FavoriteHandler) Store(w http.ResponseWriter, r *http.Request) {
	userID, _ := userhttp.UserIDFromContext(r.Context())

	var input domain.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	favorite, err := h.addHandler.Handle(command.AddFavoriteCommand{UserID: userID, Data: input})
	if err != nil {
		h.respondDomainError(w, r, err, "Failed to add favorite")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{
		"favorite": favorite,
		"message":  "Movie added to favorites",
	})
}

// Destroy handles DELETE /favorites/{movieId}
func (h *FavoriteHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	userID, _ := userhttp.UserIDFromContext(r.Context())

	movieID, err := parseMovieID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid movie ID")
		return
	}

	if err := h.removeHandler.Handle(command.RemoveFavoriteCommand{UserID: userID, MovieID: movieID}); err != nil {
		h.respondDomainError(w, r, err, "Failed to remove favorite")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"message": "Movie removed from favorites",
	})
}

// Check handles GET /favorites/{movieId}/check
func (h *FavoriteHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, _ := userhttp.UserIDFromContext(r.Context())

	movieID, err := parseMovieID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid movie ID")
		return
	}

	isFavorite, err := h.checkHandler.Handle(query.CheckFavoriteQuery{UserID: userID, MovieID: movieID})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to check favorite")
		respondError(w, http.StatusInternalServerError, "Failed to check favorite")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"is_favorite": isFavorite,
	})
}

func (h *FavoriteHandler) respondDomainError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusUnprocessableEntity, "The "+validationErr.Field+" field is required")
	case errors.Is(err, domain.ErrDuplicateFavorite):
		respondError(w, http.StatusConflict, "Movie already in favorites")
	case errors.Is(err, domain.ErrFavoriteNotFound):
		respondError(w, http.StatusNotFound, "Movie not found in favorites")
	default:
		logger.Error(r.Context()).Err(err).Msg(fallback)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

func parseMovieID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["movieId"], 10, 64)
}

func respondSuccess(w http.ResponseWriter, status int, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}
