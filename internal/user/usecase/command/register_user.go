package command

import (
	"errors"
	"fmt"

	"github.com/FrancielliAndreghetto/moviefavs/internal/user/domain"
	"github.com/FrancielliAndreghetto/moviefavs/pkg/auth"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by registration and login
type AuthResult struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
}

// RegisterUserHandler handles user registration
type RegisterUserHandler struct {
	users  domain.UserRepository
	tokens domain.TokenRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(users domain.UserRepository, tokens domain.TokenRepository) *RegisterUserHandler {
	return &RegisterUserHandler{users: users, tokens: tokens}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*AuthResult, error) {
	existing, err := h.users.FindByEmail(cmd.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken()
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: hashed,
	}
	if err := h.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := issueToken(h.tokens, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token, TokenType: TokenType}, nil
}
