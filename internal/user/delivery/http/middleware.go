package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	userdomain "github.com/FrancielliAndreghetto/moviefavs/internal/user/domain"
	"github.com/FrancielliAndreghetto/moviefavs/pkg/auth"
	"github.com/FrancielliAndreghetto/moviefavs/pkg/logger"
)

type contextKey string

const (
	// UserIDKey holds the authenticated user's id in the request context
	UserIDKey contextKey = "user_id"
	// TokenIDKey holds the id of the access token used for the request
	TokenIDKey contextKey = "token_id"
)

// AuthMiddleware validates the opaque bearer token against the credential
// store and loads the owning user into the request context.
func AuthMiddleware(users userdomain.UserRepository, tokens userdomain.TokenRepository) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			tokenID, secret, err := auth.SplitToken(parts[1])
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			token, err := tokens.FindByID(tokenID)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			hash := auth.HashToken(secret)
			if subtle.ConstantTimeCompare([]byte(hash), []byte(token.TokenHash)) != 1 {
				respondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			user, err := users.FindByID(token.UserID)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			if err := tokens.TouchLastUsed(token.ID); err != nil {
				logger.Logger.Warn().Err(err).Uint("token_id", token.ID).Msg("Failed to stamp token usage")
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, TokenIDKey, token.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// UserIDFromContext extracts the authenticated user id set by AuthMiddleware
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok
}

// TokenIDFromContext extracts the access token id set by AuthMiddleware
func TokenIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(TokenIDKey).(uint)
	return id, ok
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}
