package query

import (
	"fmt"

	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/domain"
)

// CheckFavoriteQuery asks whether a user has favorited a movie
type CheckFavoriteQuery struct {
	UserID  uint
	MovieID int64
}

// CheckFavoriteHandler handles the check favorite query
type CheckFavoriteHandler struct {
	repo domain.FavoriteRepository
}

// NewCheckFavoriteHandler creates a new check favorite handler
func NewCheckFavoriteHandler(repo domain.FavoriteRepository) *CheckFavoriteHandler {
	return &CheckFavoriteHandler{repo: repo}
}

// Handle executes the check favorite query
func (h *CheckFavoriteHandler) Handle(q CheckFavoriteQuery) (bool, error) {
	exists, err := h.repo.Exists(q.UserID, q.MovieID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}
