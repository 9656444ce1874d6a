package domain

import "time"

// PasswordResetToken models a stored single-use reset credential. Only the
// SHA-256 fingerprint of the raw token is persisted; the raw value exists
// solely in the email sent to the user.
//
// Used is permanent once set. It flips to true either on a successful confirm
// or when an expired token is first presented, so a consumed and an
// expired-then-touched token are indistinguishable afterwards.
type PasswordResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
