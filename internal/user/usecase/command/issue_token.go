package command

import (
	"fmt"

	"github.com/FrancielliAndreghetto/moviefavs/internal/user/domain"
	"github.com/FrancielliAndreghetto/moviefavs/pkg/auth"
)

// TokenType is the scheme clients present the token under
const TokenType = "Bearer"

const tokenName = "api-token"

// issueToken mints a fresh opaque token for the user and persists its hash.
// The returned plaintext is the only copy that ever exists.
func issueToken(tokens domain.TokenRepository, userID uint) (string, error) {
	secret := auth.NewTokenSecret()

	token := &domain.AccessToken{
		UserID:    userID,
		Name:      tokenName,
		TokenHash: auth.HashToken(secret),
	}
	if err := tokens.Create(token); err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return auth.FormatToken(token.ID, secret), nil
}
