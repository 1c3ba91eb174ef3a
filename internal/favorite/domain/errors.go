package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateFavorite is returned when the (user, movie) pair already exists.
// The repository also maps unique constraint violations to it, so concurrent
// adds that pass the existence check still surface as a duplicate.
var ErrDuplicateFavorite = errors.New("movie already in favorites")

// ErrFavoriteNotFound is returned when removing a movie that is not favorited
var ErrFavoriteNotFound = errors.New("movie not found in favorites")

// ValidationError reports a missing or empty required field
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s is required", e.Field)
}
