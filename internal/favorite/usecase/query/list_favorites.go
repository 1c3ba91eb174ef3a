package query

import (
	"fmt"

	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/domain"
)

// ListFavoritesQuery represents the query for a user's favorites
type ListFavoritesQuery struct {
	UserID uint
}

// ListFavoritesHandler handles the list favorites query
type ListFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(repo domain.FavoriteRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{repo: repo}
}

// Handle executes the list favorites query, newest first
func (h *ListFavoritesHandler) Handle(q ListFavoritesQuery) ([]domain.Favorite, error) {
	favorites, err := h.repo.List(q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}
