package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// GenreIDs is an ordered list of catalog genre identifiers, stored as JSON
type GenreIDs []int

// Value implements driver.Valuer
func (g GenreIDs) Value() (driver.Value, error) {
	if g == nil {
		return nil, nil
	}
	return json.Marshal(g)
}

// Scan implements sql.Scanner
func (g *GenreIDs) Scan(value any) error {
	if value == nil {
		*g = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, g)
	case string:
		return json.Unmarshal([]byte(v), g)
	default:
		return fmt.Errorf("unsupported genre_ids column type %T", value)
	}
}

// Favorite is a user's saved reference to a catalog movie. Display metadata
// is a snapshot taken at save time, not a live reference to the catalog.
type Favorite struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_movie"`
	MovieID      int64     `json:"movie_id" gorm:"not null;uniqueIndex:idx_user_movie"`
	MovieTitle   string    `json:"movie_title"`
	PosterPath   *string   `json:"poster_path"`
	BackdropPath *string   `json:"backdrop_path"`
	Overview     *string   `json:"overview"`
	VoteAverage  *float64  `json:"vote_average"`
	ReleaseDate  *string   `json:"release_date"`
	GenreIDs     GenreIDs  `json:"genre_ids" gorm:"type:jsonb"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// CreateInput carries the snapshot data persisted when a movie is favorited
type CreateInput struct {
	MovieID      int64    `json:"movie_id"`
	MovieTitle   string   `json:"movie_title"`
	PosterPath   *string  `json:"poster_path"`
	BackdropPath *string  `json:"backdrop_path"`
	Overview     *string  `json:"overview"`
	VoteAverage  *float64 `json:"vote_average"`
	ReleaseDate  *string  `json:"release_date"`
	GenreIDs     []int    `json:"genre_ids"`
}

// FavoriteRepository defines the contract for favorite data access. Every
// operation is scoped by userID; a user can never reach another user's rows.
type FavoriteRepository interface {
	List(userID uint) ([]Favorite, error)
	Create(userID uint, input CreateInput) (*Favorite, error)
	DeleteByMovie(userID uint, movieID int64) (bool, error)
	Exists(userID uint, movieID int64) (bool, error)
	FindByMovie(userID uint, movieID int64) (*Favorite, error)
}
