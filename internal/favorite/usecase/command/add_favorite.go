package command

import (
	"fmt"

	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/domain"
)

// AddFavoriteCommand represents the command to favorite a movie
type AddFavoriteCommand struct {
	UserID uint
	Data   domain.CreateInput
}

// AddFavoriteHandler handles the add favorite command
type AddFavoriteHandler struct {
	repo domain.FavoriteRepository
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(repo domain.FavoriteRepository) *AddFavoriteHandler {
	return &AddFavoriteHandler{repo: repo}
}

// Handle executes the add favorite command. Field validation runs before the
// duplicate check, so an incomplete payload for an already-favorited movie
// reports the missing field rather than the duplicate.
func (h *AddFavoriteHandler) Handle(cmd AddFavoriteCommand) (*domain.Favorite, error) {
	if cmd.Data.MovieID == 0 {
		return nil, &domain.ValidationError{Field: "movie_id"}
	}
	if cmd.Data.MovieTitle == "" {
		return nil, &domain.ValidationError{Field: "movie_title"}
	}

	exists, err := h.repo.Exists(cmd.UserID, cmd.Data.MovieID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing favorite: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateFavorite
	}

	// The existence check above is best effort; a concurrent add can slip
	// past it, in which case Create reports ErrDuplicateFavorite from the
	// unique constraint.
	favorite, err := h.repo.Create(cmd.UserID, cmd.Data)
	if err != nil {
		return nil, err
	}
	return favorite, nil
}
