package domain

import (
	"strings"
	"time"
)

// User is the stored identity record. RefreshTokenHash is the fingerprint of
// the single currently-valid refresh token; nil means no active session.
type User struct {
	ID               string
	Email            string
	PasswordHash     string // argon2 encoded
	RefreshTokenHash *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Public returns the projection safe to hand to callers. The credential hash
// never leaves the service layer.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
	}
}

// PublicUser is the caller-facing view of a user.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// NormalizeEmail canonicalises an email address for lookup and storage:
// lowercase, surrounding whitespace removed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
