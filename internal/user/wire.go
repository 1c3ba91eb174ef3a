//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/FrancielliAndreghetto/moviefavs/internal/user/delivery/http"
	"github.com/FrancielliAndreghetto/moviefavs/internal/user/domain"
	"github.com/FrancielliAndreghetto/moviefavs/internal/user/repository"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// ProvideTokenRepository provides the access token repository
func ProvideTokenRepository(db *gorm.DB) domain.TokenRepository {
	return repository.NewGormTokenRepository(db)
}

// RepositorySet groups credential store providers
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
	ProvideTokenRepository,
)

// InitializeHTTPHandler builds the auth HTTP handler with its dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.AuthHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewAuthHandler,
	)
	return nil, nil
}
