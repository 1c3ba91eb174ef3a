package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/domain"
)

// GormFavoriteRepository implements FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// List retrieves a user's favorites, most recently created first
func (r *GormFavoriteRepository) List(userID uint) ([]domain.Favorite, error) {
	favorites := []domain.Favorite{}
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// Create inserts a favorite for the user. A unique constraint violation on
// (user_id, movie_id) is reported as domain.ErrDuplicateFavorite; the
// constraint, not the caller's existence check, is the source of truth.
func (r *GormFavoriteRepository) Create(userID uint, input domain.CreateInput) (*domain.Favorite, error) {
	favorite := &domain.Favorite{
		UserID:       userID,
		MovieID:      input.MovieID,
		MovieTitle:   input.MovieTitle,
		PosterPath:   input.PosterPath,
		BackdropPath: input.BackdropPath,
		Overview:     input.Overview,
		VoteAverage:  input.VoteAverage,
		ReleaseDate:  input.ReleaseDate,
		GenreIDs:     domain.GenreIDs(input.GenreIDs),
	}

	if err := r.db.Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateFavorite
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}
	return favorite, nil
}

// DeleteByMovie removes the user's favorite for the movie. Returns false
// with no error when nothing was deleted.
func (r *GormFavoriteRepository) DeleteByMovie(userID uint, movieID int64) (bool, error) {
	result := r.db.
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether the user has favorited the movie
func (r *GormFavoriteRepository) Exists(userID uint, movieID int64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Favorite{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// FindByMovie retrieves the user's favorite for the movie, if any
func (r *GormFavoriteRepository) FindByMovie(userID uint, movieID int64) (*domain.Favorite, error) {
	var favorite domain.Favorite
	err := r.db.
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("failed to find favorite: %w", err)
	}
	return &favorite, nil
}

// AutoMigrate runs database migrations for the favorites table
func (r *GormFavoriteRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Favorite{})
}
