package command

import (
	"errors"
	"fmt"

	"github.com/FrancielliAndreghetto/moviefavs/internal/user/domain"
	"github.com/FrancielliAndreghetto/moviefavs/pkg/auth"
)

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginUserHandler handles user login
type LoginUserHandler struct {
	users  domain.UserRepository
	tokens domain.TokenRepository
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(users domain.UserRepository, tokens domain.TokenRepository) *LoginUserHandler {
	return &LoginUserHandler{users: users, tokens: tokens}
}

// Handle executes the login user command
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*AuthResult, error) {
	user, err := h.users.FindByEmail(cmd.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials()
		}
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, domain.ErrInvalidCredentials()
	}

	token, err := issueToken(h.tokens, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token, TokenType: TokenType}, nil
}
