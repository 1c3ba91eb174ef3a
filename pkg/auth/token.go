package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NewTokenSecret generates the random secret part of an access token.
// Only a hash of it is ever persisted.
func NewTokenSecret() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// HashToken returns the hex-encoded SHA-256 digest of a token secret
func HashToken(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// FormatToken builds the plaintext bearer token handed to clients: the
// token record id joined with the unhashed secret.
func FormatToken(id uint, secret string) string {
	return fmt.Sprintf("%d|%s", id, secret)
}

// SplitToken parses a plaintext bearer token back into its record id and
// secret. Returns an error for anything that does not match "<id>|<secret>".
func SplitToken(token string) (uint, string, error) {
	idPart, secret, ok := strings.Cut(token, "|")
	if !ok || secret == "" {
		return 0, "", fmt.Errorf("malformed token")
	}
	id, err := strconv.ParseUint(idPart, 10, 32)
	if err != nil {
		return 0, "", fmt.Errorf("malformed token id")
	}
	return uint(id), secret, nil
}
