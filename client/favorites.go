package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/FrancielliAndreghetto/moviefavs/pkg/events"
)

// Favorite mirrors the server's favorite payload
type Favorite struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	MovieID     int64     `json:"movie_id"`
	MovieTitle  string    `json:"movie_title"`
	PosterPath  *string   `json:"poster_path"`
	Overview    *string   `json:"overview"`
	VoteAverage *float64  `json:"vote_average"`
	ReleaseDate *string   `json:"release_date"`
	GenreIDs    []int     `json:"genre_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FavoriteInput is the payload sent when favoriting a movie
type FavoriteInput struct {
	MovieID     int64    `json:"movie_id"`
	MovieTitle  string   `json:"movie_title"`
	PosterPath  *string  `json:"poster_path,omitempty"`
	Overview    *string  `json:"overview,omitempty"`
	VoteAverage *float64 `json:"vote_average,omitempty"`
	ReleaseDate *string  `json:"release_date,omitempty"`
	GenreIDs    []int    `json:"genre_ids,omitempty"`
}

// FavoriteStore caches the user's favorites in memory. The cache is only
// mutated after the server confirms a change, and every mutation is
// announced on the event bus for unrelated widgets (toasts, counters).
type FavoriteStore struct {
	client *Client
	bus    *events.Bus

	mu        sync.RWMutex
	favorites []Favorite
}

// NewFavoriteStore creates a favorite store over the given API client and bus
func NewFavoriteStore(client *Client, bus *events.Bus) *FavoriteStore {
	return &FavoriteStore{client: client, bus: bus}
}

// Fetch replaces the local cache with the server's favorites list
func (s *FavoriteStore) Fetch(ctx context.Context) error {
	var resp struct {
		Success   bool       `json:"success"`
		Favorites []Favorite `json:"favorites"`
	}
	if err := s.client.get(ctx, "/favorites", nil, &resp); err != nil {
		s.emitError(err, "fetchFavorites")
		return err
	}

	s.mu.Lock()
	s.favorites = resp.Favorites
	s.mu.Unlock()
	return nil
}

// Add favorites a movie. The local cache is updated only once the server
// has confirmed the insert.
func (s *FavoriteStore) Add(ctx context.Context, input FavoriteInput) (*Favorite, error) {
	var resp struct {
		Success  bool      `json:"success"`
		Favorite *Favorite `json:"favorite"`
	}
	if err := s.client.post(ctx, "/favorites", input, &resp); err != nil {
		s.emitError(err, "addFavorite")
		return nil, err
	}

	if resp.Favorite != nil {
		s.mu.Lock()
		s.favorites = append([]Favorite{*resp.Favorite}, s.favorites...)
		s.mu.Unlock()
	}

	s.bus.Emit(events.FavoriteAdded, resp.Favorite)
	return resp.Favorite, nil
}

// Remove unfavorites a movie, dropping it from the cache after the server
// confirms the delete.
func (s *FavoriteStore) Remove(ctx context.Context, movieID int64) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/favorites/%d", movieID), nil); err != nil {
		s.emitError(err, "removeFavorite")
		return err
	}

	s.mu.Lock()
	kept := s.favorites[:0]
	for _, f := range s.favorites {
		if f.MovieID != movieID {
			kept = append(kept, f)
		}
	}
	s.favorites = kept
	s.mu.Unlock()

	s.bus.Emit(events.FavoriteRemoved, movieID)
	return nil
}

// Toggle adds the movie when absent and removes it when present
func (s *FavoriteStore) Toggle(ctx context.Context, input FavoriteInput) error {
	if s.IsFavorite(input.MovieID) {
		return s.Remove(ctx, input.MovieID)
	}
	_, err := s.Add(ctx, input)
	return err
}

// IsFavorite reports whether the movie is in the local cache
func (s *FavoriteStore) IsFavorite(movieID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.favorites {
		if f.MovieID == movieID {
			return true
		}
	}
	return false
}

// MovieIDs lists the cached favorite movie ids
func (s *FavoriteStore) MovieIDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.favorites))
	for _, f := range s.favorites {
		ids = append(ids, f.MovieID)
	}
	return ids
}

// Favorites returns a copy of the cached favorites
func (s *FavoriteStore) Favorites() []Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Favorite, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// Reset clears the local cache (used on logout)
func (s *FavoriteStore) Reset() {
	s.mu.Lock()
	s.favorites = nil
	s.mu.Unlock()
}

func (s *FavoriteStore) emitError(err error, context string) {
	s.bus.Emit(events.ErrorOccurred, ErrorPayload{Message: err.Error(), Context: context})
}
