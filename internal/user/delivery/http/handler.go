package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/FrancielliAndreghetto/moviefavs/internal/user/domain"
	"github.com/FrancielliAndreghetto/moviefavs/internal/user/usecase/command"
	"github.com/FrancielliAndreghetto/moviefavs/internal/user/usecase/query"
	"github.com/FrancielliAndreghetto/moviefavs/pkg/logger"
)

var validate = validator.New()

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total number of auth requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_request_duration_seconds",
			Help:    "Duration of auth requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func init() {
	prometheus.MustRegister(requestCounter, requestLatency)
}

// AuthHandler handles HTTP requests for registration, login and sessions
type AuthHandler struct {
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
	logoutHandler   *command.LogoutUserHandler
	getUserHandler  *query.GetUserHandler

	users  domain.UserRepository
	tokens domain.TokenRepository
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users domain.UserRepository, tokens domain.TokenRepository) *AuthHandler {
	return &AuthHandler{
		registerHandler: command.NewRegisterUserHandler(users, tokens),
		loginHandler:    command.NewLoginUserHandler(users, tokens),
		logoutHandler:   command.NewLogoutUserHandler(tokens),
		getUserHandler:  query.NewGetUserHandler(users),
		users:           users,
		tokens:          tokens,
	}
}

// RegisterRoutes wires the auth endpoints into the router
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	authed := AuthMiddleware(h.users, h.tokens)

	router.HandleFunc("/auth/register", h.metrics("/auth/register", h.Register)).Methods(http.MethodPost)
	router.HandleFunc("/auth/login", h.metrics("/auth/login", h.Login)).Methods(http.MethodPost)
	router.HandleFunc("/auth/logout", h.metrics("/auth/logout", authed(h.Logout))).Methods(http.MethodPost)
	router.HandleFunc("/auth/me", h.metrics("/auth/me", authed(h.Me))).Methods(http.MethodGet)
}

// responseWriter captures the status code for metrics
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *AuthHandler) metrics(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		requestLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

type registerRequest struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return
	}

	result, err := h.registerHandler.Handle(command.RegisterUserCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(w, r, err, "Registration failed")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]any{
		"user":       result.User,
		"token":      result.Token,
		"token_type": result.TokenType,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return
	}

	result, err := h.loginHandler.Handle(command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(w, r, err, "Login failed")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"user":       result.User,
		"token":      result.Token,
		"token_type": result.TokenType,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID, _ := TokenIDFromContext(r.Context())

	if err := h.logoutHandler.Handle(command.LogoutUserCommand{TokenID: tokenID}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Logout failed")
		respondError(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"message": "Logged out successfully",
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{ID: userID})
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"user": user,
	})
}

func (h *AuthHandler) respondAuthError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		respondError(w, authErr.Status, authErr.Message)
		return
	}

	logger.Error(r.Context()).Err(err).Msg(fallback)
	respondError(w, http.StatusInternalServerError, fallback)
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		switch first.Tag() {
		case "required":
			return "The " + jsonFieldName(first.Field()) + " field is required"
		case "email":
			return "The email must be a valid email address"
		case "min":
			return "The " + jsonFieldName(first.Field()) + " must be at least " + first.Param() + " characters"
		case "eqfield":
			return "The password confirmation does not match"
		}
	}
	return "Invalid request"
}

func jsonFieldName(field string) string {
	switch field {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "PasswordConfirmation":
		return "password_confirmation"
	default:
		return field
	}
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
