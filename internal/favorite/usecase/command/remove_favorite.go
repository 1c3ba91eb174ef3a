package command

import (
	"fmt"

	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/domain"
)

// RemoveFavoriteCommand represents the command to unfavorite a movie
type RemoveFavoriteCommand struct {
	UserID  uint
	MovieID int64
}

// RemoveFavoriteHandler handles the remove favorite command
type RemoveFavoriteHandler struct {
	repo domain.FavoriteRepository
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(repo domain.FavoriteRepository) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{repo: repo}
}

// Handle executes the remove favorite command
func (h *RemoveFavoriteHandler) Handle(cmd RemoveFavoriteCommand) error {
	exists, err := h.repo.Exists(cmd.UserID, cmd.MovieID)
	if err != nil {
		return fmt.Errorf("failed to check existing favorite: %w", err)
	}
	if !exists {
		return domain.ErrFavoriteNotFound
	}

	// A concurrent remove may win the race between the check and the
	// delete; a false result here is not an error.
	if _, err := h.repo.DeleteByMovie(cmd.UserID, cmd.MovieID); err != nil {
		return err
	}
	return nil
}
