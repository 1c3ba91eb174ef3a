package command

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/domain"
)

// memoryFavoriteRepo is an in-memory FavoriteRepository for tests. Each
// insert gets a strictly later creation time so ordering is deterministic.
type memoryFavoriteRepo struct {
	seq       uint
	clock     time.Time
	favorites []domain.Favorite

	// createErr, when set, is returned by Create regardless of state. It
	// simulates the store rejecting an insert (e.g. unique constraint).
	createErr error
}

func newMemoryFavoriteRepo() *memoryFavoriteRepo {
	return &memoryFavoriteRepo{clock: time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)}
}

func (r *memoryFavoriteRepo) List(userID uint) ([]domain.Favorite, error) {
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

func (r *memoryFavoriteRepo) Create(userID uint, input domain.CreateInput) (*domain.Favorite, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, f := range r.favorites {
		if f.UserID == userID && f.MovieID == input.MovieID {
			return nil, domain.ErrDuplicateFavorite
		}
	}
	r.seq++
	r.clock = r.clock.Add(time.Second)
	favorite := domain.Favorite{
		ID:          r.seq,
		UserID:      userID,
		MovieID:     input.MovieID,
		MovieTitle:  input.MovieTitle,
		PosterPath:  input.PosterPath,
		Overview:    input.Overview,
		VoteAverage: input.VoteAverage,
		ReleaseDate: input.ReleaseDate,
		GenreIDs:    domain.GenreIDs(input.GenreIDs),
		CreatedAt:   r.clock,
		UpdatedAt:   r.clock,
	}
	r.favorites = append(r.favorites, favorite)
	return &favorite, nil
}

func (r *memoryFavoriteRepo) DeleteByMovie(userID uint, movieID int64) (bool, error) {
	for i, f := range r.favorites {
		if f.UserID == userID && f.MovieID == movieID {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryFavoriteRepo) Exists(userID uint, movieID int64) (bool, error) {
	for _, f := range r.favorites {
		if f.UserID == userID && f.MovieID == movieID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryFavoriteRepo) FindByMovie(userID uint, movieID int64) (*domain.Favorite, error) {
	for _, f := range r.favorites {
		if f.UserID == userID && f.MovieID == movieID {
			found := f
			return &found, nil
		}
	}
	return nil, domain.ErrFavoriteNotFound
}

func TestAddFavorite(t *testing.T) {
	repo := newMemoryFavoriteRepo()
	handler := NewAddFavoriteHandler(repo)

	favorite, err := handler.Handle(AddFavoriteCommand{
		UserID: 1,
		Data:   domain.CreateInput{MovieID: 42, MovieTitle: "Dune"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), favorite.MovieID)
	assert.Equal(t, "Dune", favorite.MovieTitle)
	assert.Equal(t, uint(1), favorite.UserID)

	exists, err := repo.Exists(1, 42)
	require.NoError(t, err)
	assert.True(t, exists)

	list, err := repo.List(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(42), list[0].MovieID)
}

func TestAddFavoriteDuplicate(t *testing.T) {
	repo := newMemoryFavoriteRepo()
	handler := NewAddFavoriteHandler(repo)

	_, err := handler.Handle(AddFavoriteCommand{
		UserID: 1,
		Data:   domain.CreateInput{MovieID: 42, MovieTitle: "Dune"},
	})
	require.NoError(t, err)

	_, err = handler.Handle(AddFavoriteCommand{
		UserID: 1,
		Data:   domain.CreateInput{MovieID: 42, MovieTitle: "Dune"},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateFavorite)

	list, err := repo.List(1)
	require.NoError(t, err)
	assert.Len(t, list, 1, "duplicate add must not insert a second row")
}

func TestAddFavoriteValidation(t *testing.T) {
	repo := newMemoryFavoriteRepo()
	handler := NewAddFavoriteHandler(repo)

	var validationErr *domain.ValidationError

	_, err := handler.Handle(AddFavoriteCommand{
		UserID: 1,
		Data:   domain.CreateInput{MovieTitle: "Dune"},
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "movie_id", validationErr.Field)

	_, err = handler.Handle(AddFavoriteCommand{
		UserID: 1,
		Data:   domain.CreateInput{MovieID: 42},
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "movie_title", validationErr.Field)

	assert.Empty(t, repo.favorites)
}

func TestAddFavoriteValidationRunsBeforeDuplicateCheck(t *testing.T) {
	repo := newMemoryFavoriteRepo()
	handler := NewAddFavoriteHandler(repo)

	_, err := handler.Handle(AddFavoriteCommand{
		UserID: 1,
		Data:   domain.CreateInput{MovieID: 42, MovieTitle: "Dune"},
	})
	require.NoError(t, err)

	// Already favorited, but the title is missing: the validation error
	// wins because validation runs first.
	var validationErr *domain.ValidationError
	_, err = handler.Handle(AddFavoriteCommand{
		UserID: 1,
		Data:   domain.CreateInput{MovieID: 42},
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "movie_title", validationErr.Field)
}

func TestAddFavoriteConstraintRejectionBecomesDuplicate(t *testing.T) {
	// Two concurrent adds can both pass the existence check; the second
	// insert is then rejected by the store's unique constraint. The
	// handler must surface that rejection as the duplicate error.
	repo := newMemoryFavoriteRepo()
	repo.createErr = domain.ErrDuplicateFavorite
	handler := NewAddFavoriteHandler(repo)

	_, err := handler.Handle(AddFavoriteCommand{
		UserID: 1,
		Data:   domain.CreateInput{MovieID: 42, MovieTitle: "Dune"},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateFavorite)
}
