package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/FrancielliAndreghetto/moviefavs/pkg/events"
)

// User mirrors the server's user payload
type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type authResponse struct {
	Success   bool   `json:"success"`
	User      *User  `json:"user"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// AuthStore manages the session: it performs register/login/logout against
// the API and caches the authenticated user in memory. It is constructed
// explicitly and torn down with Reset; there is no package-level state.
type AuthStore struct {
	client *Client
	bus    *events.Bus

	mu   sync.RWMutex
	user *User
}

// NewAuthStore creates an auth store over the given API client and bus
func NewAuthStore(client *Client, bus *events.Bus) *AuthStore {
	return &AuthStore{client: client, bus: bus}
}

// Register creates an account and opens a session with the returned token
func (s *AuthStore) Register(ctx context.Context, name, email, password, passwordConfirmation string) (*User, error) {
	body := map[string]string{
		"name":                  name,
		"email":                 email,
		"password":              password,
		"password_confirmation": passwordConfirmation,
	}

	var resp authResponse
	if err := s.client.post(ctx, "/auth/register", body, &resp); err != nil {
		s.emitError(err, "register")
		return nil, err
	}

	s.openSession(resp)
	return resp.User, nil
}

// Login authenticates and opens a session with the returned token
func (s *AuthStore) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := s.client.post(ctx, "/auth/login", body, &resp); err != nil {
		s.emitError(err, "login")
		return nil, err
	}

	s.openSession(resp)
	return resp.User, nil
}

// Logout revokes the server-side token and closes the local session. A
// server answer of 401 means the token was already gone; the local session
// is closed either way.
func (s *AuthStore) Logout(ctx context.Context) error {
	err := s.client.post(ctx, "/auth/logout", nil, nil)

	var apiErr *APIError
	if err != nil && !(errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized) {
		s.emitError(err, "logout")
		return err
	}

	s.closeSession()
	return nil
}

// Me refreshes the cached user from the server
func (s *AuthStore) Me(ctx context.Context) (*User, error) {
	var resp struct {
		Success bool  `json:"success"`
		User    *User `json:"user"`
	}
	if err := s.client.get(ctx, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = resp.User
	s.mu.Unlock()
	return resp.User, nil
}

// User returns the cached authenticated user, or nil
func (s *AuthStore) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a session is open
func (s *AuthStore) IsAuthenticated() bool {
	return s.client.Token() != "" && s.User() != nil
}

// Reset drops all local session state without calling the server
func (s *AuthStore) Reset() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.client.ClearToken()
}

func (s *AuthStore) openSession(resp authResponse) {
	s.client.SetToken(resp.Token)
	s.mu.Lock()
	s.user = resp.User
	s.mu.Unlock()

	s.bus.Emit(events.UserLoggedIn, resp.User)
}

func (s *AuthStore) closeSession() {
	s.mu.Lock()
	user := s.user
	s.user = nil
	s.mu.Unlock()
	s.client.ClearToken()

	s.bus.Emit(events.UserLoggedOut, user)
}

func (s *AuthStore) emitError(err error, context string) {
	s.bus.Emit(events.ErrorOccurred, ErrorPayload{Message: err.Error(), Context: context})
}

// ErrorPayload is delivered with events.ErrorOccurred
type ErrorPayload struct {
	Message string
	Context string
}
