package command

import "github.com/FrancielliAndreghetto/moviefavs/internal/user/domain"

// LogoutUserCommand revokes the token used by the current session
type LogoutUserCommand struct {
	TokenID uint
}

// LogoutUserHandler handles user logout
type LogoutUserHandler struct {
	tokens domain.TokenRepository
}

// NewLogoutUserHandler creates a new logout user handler
func NewLogoutUserHandler(tokens domain.TokenRepository) *LogoutUserHandler {
	return &LogoutUserHandler{tokens: tokens}
}

// Handle executes the logout command. Revoking a token that is already gone
// succeeds, so repeated logouts are harmless.
func (h *LogoutUserHandler) Handle(cmd LogoutUserCommand) error {
	if cmd.TokenID == 0 {
		return nil
	}
	return h.tokens.Delete(cmd.TokenID)
}
