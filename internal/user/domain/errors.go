package domain

import (
	"errors"
	"net/http"
)

// ErrUserNotFound is returned when a user lookup finds nothing
var ErrUserNotFound = errors.New("user not found")

// ErrTokenNotFound is returned when a token lookup finds nothing
var ErrTokenNotFound = errors.New("token not found")

// AuthError is a credential failure carrying the HTTP status the API
// surface should answer with.
type AuthError struct {
	Message string
	Status  int
}

func (e *AuthError) Error() string {
	return e.Message
}

// ErrEmailTaken builds the duplicate-registration error
func ErrEmailTaken() *AuthError {
	return &AuthError{Message: "Email already registered", Status: http.StatusUnprocessableEntity}
}

// ErrInvalidCredentials builds the bad-login error. The same error covers an
// unknown email and a wrong password so the two cases are indistinguishable.
func ErrInvalidCredentials() *AuthError {
	return &AuthError{Message: "Invalid credentials", Status: http.StatusUnauthorized}
}
