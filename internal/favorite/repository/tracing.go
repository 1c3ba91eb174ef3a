package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/domain"
)

var tracer = otel.Tracer("favorite-repository")

// GormFavoriteRepositoryWithTracing wraps GormFavoriteRepository with tracing
type GormFavoriteRepositoryWithTracing struct {
	*GormFavoriteRepository
}

// NewGormFavoriteRepositoryWithTracing creates a new repository with tracing
func NewGormFavoriteRepositoryWithTracing(db *gorm.DB) *GormFavoriteRepositoryWithTracing {
	return &GormFavoriteRepositoryWithTracing{
		GormFavoriteRepository: NewGormFavoriteRepository(db),
	}
}

// ListWithContext lists favorites inside a span
func (r *GormFavoriteRepositoryWithTracing) ListWithContext(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	_, span := tracer.Start(ctx, "repository.List",
		trace.WithAttributes(attribute.Int("user.id", int(userID))),
	)
	defer span.End()

	favorites, err := r.GormFavoriteRepository.List(userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("favorites.count", len(favorites)))
	return favorites, nil
}

// CreateWithContext creates a favorite inside a span
func (r *GormFavoriteRepositoryWithTracing) CreateWithContext(ctx context.Context, userID uint, input domain.CreateInput) (*domain.Favorite, error) {
	_, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int64("movie.id", input.MovieID),
		),
	)
	defer span.End()

	favorite, err := r.GormFavoriteRepository.Create(userID, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("favorite.id", int(favorite.ID)))
	return favorite, nil
}

// DeleteByMovieWithContext deletes a favorite inside a span
func (r *GormFavoriteRepositoryWithTracing) DeleteByMovieWithContext(ctx context.Context, userID uint, movieID int64) (bool, error) {
	_, span := tracer.Start(ctx, "repository.DeleteByMovie",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int64("movie.id", movieID),
		),
	)
	defer span.End()

	deleted, err := r.GormFavoriteRepository.DeleteByMovie(userID, movieID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	span.SetAttributes(attribute.Bool("favorite.deleted", deleted))
	return deleted, nil
}

// ExistsWithContext checks a favorite inside a span
func (r *GormFavoriteRepositoryWithTracing) ExistsWithContext(ctx context.Context, userID uint, movieID int64) (bool, error) {
	_, span := tracer.Start(ctx, "repository.Exists",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int64("movie.id", movieID),
		),
	)
	defer span.End()

	exists, err := r.GormFavoriteRepository.Exists(userID, movieID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	span.SetAttributes(attribute.Bool("favorite.exists", exists))
	return exists, nil
}
