package domain

import "time"

// AccessToken is an opaque bearer credential bound to a user. Only the
// SHA-256 digest of the secret is stored; revoking a token deletes the row.
// A user may hold several tokens at once (one per session/device).
type AccessToken struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"not null;index"`
	User       *User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name       string     `json:"name" gorm:"not null"`
	TokenHash  string     `json:"-" gorm:"uniqueIndex;not null"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName specifies the table name
func (AccessToken) TableName() string {
	return "access_tokens"
}

// TokenRepository defines the contract for access token persistence
type TokenRepository interface {
	Create(token *AccessToken) error
	FindByID(id uint) (*AccessToken, error)
	TouchLastUsed(id uint) error
	Delete(id uint) error
	DeleteForUser(userID uint) error
}
