package sqlite

import (
	"context"
	"time"

	"github.com/tarotlyfe/tarotlyfe/internal/auth/domain"
)

type passwordResetTokensRepo struct {
	db dbtx
}

const resetTokenColumns = `id, user_id, token_hash, expires_at, used, created_at, updated_at`

func (r *passwordResetTokensRepo) CreateResetToken(ctx context.Context, t domain.PasswordResetToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO password_reset_tokens (id, user_id, token_hash, expires_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.UserID, t.TokenHash, bindTime(t.ExpiresAt))
	return mapConflict(err)
}

func (r *passwordResetTokensRepo) GetActiveResetTokenByHash(ctx context.Context, hash string) (domain.PasswordResetToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+resetTokenColumns+` FROM password_reset_tokens WHERE token_hash = ? AND used = 0`,
		hash)
	return scanResetToken(row)
}

func (r *passwordResetTokensRepo) MarkResetTokenUsed(ctx context.Context, id string) error {
	// The used = 0 predicate makes consumption race-safe: at most one caller
	// sees a row flip, every other observes ErrNotFound.
	res, err := r.db.ExecContext(ctx,
		`UPDATE password_reset_tokens SET used = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND used = 0`,
		id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *passwordResetTokensRepo) DeleteExpiredResetTokens(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE used = 1 OR expires_at < ?`,
		bindTime(now))
	return err
}
