package query

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/domain"
)

type stubFavoriteRepo struct {
	favorites []domain.Favorite
}

func (r *stubFavoriteRepo) List(userID uint) ([]domain.Favorite, error) {
	out := []domain.Favorite{}
	for _, f := range r.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *stubFavoriteRepo) Create(userID uint, input domain.CreateInput) (*domain.Favorite, error) {
	return nil, nil
}

func (r *stubFavoriteRepo) DeleteByMovie(userID uint, movieID int64) (bool, error) {
	return false, nil
}

func (r *stubFavoriteRepo) Exists(userID uint, movieID int64) (bool, error) {
	for _, f := range r.favorites {
		if f.UserID == userID && f.MovieID == movieID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubFavoriteRepo) FindByMovie(userID uint, movieID int64) (*domain.Favorite, error) {
	return nil, domain.ErrFavoriteNotFound
}

func seeded(t0 time.Time) *stubFavoriteRepo {
	return &stubFavoriteRepo{favorites: []domain.Favorite{
		{ID: 1, UserID: 1, MovieID: 10, MovieTitle: "first", CreatedAt: t0},
		{ID: 2, UserID: 1, MovieID: 20, MovieTitle: "second", CreatedAt: t0.Add(time.Minute)},
		{ID: 3, UserID: 1, MovieID: 30, MovieTitle: "third", CreatedAt: t0.Add(2 * time.Minute)},
		{ID: 4, UserID: 2, MovieID: 40, MovieTitle: "other user", CreatedAt: t0.Add(3 * time.Minute)},
	}}
}

func TestListFavoritesNewestFirst(t *testing.T) {
	repo := seeded(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	handler := NewListFavoritesHandler(repo)

	favorites, err := handler.Handle(ListFavoritesQuery{UserID: 1})
	require.NoError(t, err)
	require.Len(t, favorites, 3)

	assert.Equal(t, int64(30), favorites[0].MovieID)
	assert.Equal(t, int64(20), favorites[1].MovieID)
	assert.Equal(t, int64(10), favorites[2].MovieID)
}

func TestListFavoritesScopedToUser(t *testing.T) {
	repo := seeded(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	handler := NewListFavoritesHandler(repo)

	favorites, err := handler.Handle(ListFavoritesQuery{UserID: 2})
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, int64(40), favorites[0].MovieID)

	favorites, err = handler.Handle(ListFavoritesQuery{UserID: 3})
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestCheckFavorite(t *testing.T) {
	repo := seeded(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	handler := NewCheckFavoriteHandler(repo)

	isFavorite, err := handler.Handle(CheckFavoriteQuery{UserID: 1, MovieID: 10})
	require.NoError(t, err)
	assert.True(t, isFavorite)

	isFavorite, err = handler.Handle(CheckFavoriteQuery{UserID: 1, MovieID: 99})
	require.NoError(t, err)
	assert.False(t, isFavorite)

	// User 1 cannot see user 2's favorite.
	isFavorite, err = handler.Handle(CheckFavoriteQuery{UserID: 1, MovieID: 40})
	require.NoError(t, err)
	assert.False(t, isFavorite)
}
