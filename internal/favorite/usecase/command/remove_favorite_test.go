package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/domain"
)

func TestRemoveFavorite(t *testing.T) {
	repo := newMemoryFavoriteRepo()
	add := NewAddFavoriteHandler(repo)
	remove := NewRemoveFavoriteHandler(repo)

	_, err := add.Handle(AddFavoriteCommand{
		UserID: 1,
		Data:   domain.CreateInput{MovieID: 42, MovieTitle: "Dune"},
	})
	require.NoError(t, err)

	require.NoError(t, remove.Handle(RemoveFavoriteCommand{UserID: 1, MovieID: 42}))

	exists, err := repo.Exists(1, 42)
	require.NoError(t, err)
	assert.False(t, exists)

	list, err := repo.List(1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRemoveFavoriteNotFound(t *testing.T) {
	repo := newMemoryFavoriteRepo()
	remove := NewRemoveFavoriteHandler(repo)

	err := remove.Handle(RemoveFavoriteCommand{UserID: 1, MovieID: 42})
	assert.ErrorIs(t, err, domain.ErrFavoriteNotFound)
	assert.Empty(t, repo.favorites, "store must be unchanged")
}

func TestRemoveFavoriteScopedToUser(t *testing.T) {
	repo := newMemoryFavoriteRepo()
	add := NewAddFavoriteHandler(repo)
	remove := NewRemoveFavoriteHandler(repo)

	_, err := add.Handle(AddFavoriteCommand{
		UserID: 1,
		Data:   domain.CreateInput{MovieID: 42, MovieTitle: "Dune"},
	})
	require.NoError(t, err)

	// Another user cannot remove user 1's favorite.
	err = remove.Handle(RemoveFavoriteCommand{UserID: 2, MovieID: 42})
	assert.ErrorIs(t, err, domain.ErrFavoriteNotFound)

	exists, err := repo.Exists(1, 42)
	require.NoError(t, err)
	assert.True(t, exists)
}
