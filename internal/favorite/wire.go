//go:build wireinject
// +build wireinject

package favorite

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/delivery/http"
	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/domain"
	"github.com/FrancielliAndreghetto/moviefavs/internal/favorite/repository"
	userdomain "github.com/FrancielliAndreghetto/moviefavs/internal/user/domain"
)

// ProvideFavoriteRepository provides the favorite repository
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewGormFavoriteRepository(db)
}

// RepositorySet groups favorite persistence providers
var RepositorySet = wire.NewSet(
	ProvideFavoriteRepository,
)

// InitializeHTTPHandler builds the favorites HTTP handler with its dependencies
func InitializeHTTPHandler(db *gorm.DB, users userdomain.UserRepository, tokens userdomain.TokenRepository) (*http.FavoriteHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewFavoriteHandler,
	)
	return nil, nil
}
