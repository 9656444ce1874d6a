package store

import (
	"context"
	"errors"
	"time"

	"github.com/tarotlyfe/tarotlyfe/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	PasswordResetTokens() PasswordResetTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up by normalized email. Used by login, the
	// registration fast-path check, and reset requests.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// A duplicate email surfaces as ErrAlreadyExists via the unique index;
	// this, not the pre-check, is the guarantee against concurrent
	// registrations.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetRefreshTokenHash overwrites the stored refresh-token fingerprint,
	// implicitly invalidating any previous session.
	SetRefreshTokenHash(ctx context.Context, userID string, tokenHash string) error

	// ClearRefreshTokenHash nulls the fingerprint, forcing re-login.
	ClearRefreshTokenHash(ctx context.Context, userID string) error
}

type PasswordResetTokens interface {
	// CreateResetToken writes a new reset token (token_hash is the SHA-256
	// fingerprint of the raw token).
	CreateResetToken(ctx context.Context, t domain.PasswordResetToken) error

	// GetActiveResetTokenByHash returns a not-yet-used token by hash. Expiry
	// is the service's concern; the predicate here is used = 0 only.
	GetActiveResetTokenByHash(ctx context.Context, hash string) (domain.PasswordResetToken, error)

	// MarkResetTokenUsed flips used to 1 with a conditional update on
	// used = 0. Returns ErrNotFound when the token was already consumed, so
	// the loser of a concurrent confirm observes it.
	MarkResetTokenUsed(ctx context.Context, id string) error

	// DeleteExpiredResetTokens removes consumed rows and rows expired as of
	// now; housekeeping. The caller supplies the clock.
	DeleteExpiredResetTokens(ctx context.Context, now time.Time) error
}
