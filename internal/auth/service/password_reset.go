package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tarotlyfe/tarotlyfe/internal/auth/apierr"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/domain"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/mail"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/store"
	"github.com/tarotlyfe/tarotlyfe/pkg/cryptox"
	"github.com/tarotlyfe/tarotlyfe/pkg/idx"
	"github.com/tarotlyfe/tarotlyfe/pkg/slogx"
)

// PasswordResetService implements the two-step reset flow: request a token by
// email, then confirm with the token and a new password.
type PasswordResetService struct {
	Store  store.Store
	Tokens *TokenService
	Mailer mail.Sender

	ResetTTL    time.Duration
	FrontendURL string

	Now func() time.Time
}

func (s *PasswordResetService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RequestReset starts the flow. It never reveals whether the email has an
// account: lookup misses, storage failures and email delivery failures are all
// logged and swallowed, and every path returns nil.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	l := slogx.FromContext(ctx)
	email = domain.NormalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("password reset requested for unknown email")
		} else {
			l.Error("password reset: user lookup failed", slog.Any("error", err))
		}
		return nil
	}

	raw, hash, err := s.Tokens.GenerateResetToken()
	if err != nil {
		l.Error("password reset: token generation failed", slog.Any("error", err))
		return nil
	}

	token := domain.PasswordResetToken{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: s.now().Add(s.ResetTTL),
	}
	if err := s.Store.PasswordResetTokens().CreateResetToken(ctx, token); err != nil {
		l.Error("password reset: token insert failed", slog.Any("error", err))
		return nil
	}

	subject, htmlBody, textBody := mail.BuildResetEmail(s.FrontendURL, raw, s.ResetTTL)
	if res := s.Mailer.Send(ctx, user.Email, subject, htmlBody, textBody); !res.Success {
		// The token stays valid; the user can retry the request.
		l.Error("password reset: email delivery failed",
			slog.String("user_id", user.ID),
			slog.String("send_error", res.Error),
		)
	} else {
		l.Info("password reset email sent",
			slog.String("user_id", user.ID),
			slog.String("message_id", res.MessageID),
		)
	}
	return nil
}

// ConfirmReset consumes a reset token and sets the new password. The token is
// single use; consumption, the password update and the forced logout commit in
// one transaction. An expired token is marked used on first touch, so the
// first attempt reports expiry and any retry reports an invalid token.
func (s *PasswordResetService) ConfirmReset(ctx context.Context, rawToken, newPassword string) error {
	l := slogx.FromContext(ctx)

	token, err := s.Store.PasswordResetTokens().GetActiveResetTokenByHash(ctx, s.Tokens.HashOpaqueToken(rawToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierr.ErrInvalidToken
		}
		l.Error("password reset: token lookup failed", slog.Any("error", err))
		return apierr.ErrServer
	}

	if s.now().After(token.ExpiresAt) {
		// Burn the expired token so a replay cannot distinguish it from one
		// that never existed.
		if err := s.Store.PasswordResetTokens().MarkResetTokenUsed(ctx, token.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apierr.ErrInvalidToken
			}
			l.Error("password reset: expired token burn failed", slog.Any("error", err))
			return apierr.ErrServer
		}
		return apierr.ErrExpiredToken
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		l.Error("password reset: password hashing failed", slog.Any("error", err))
		return apierr.ErrServer
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Consume first: the conditional update decides the winner of any
		// concurrent confirm with the same token.
		if err := tx.PasswordResetTokens().MarkResetTokenUsed(ctx, token.ID); err != nil {
			return err
		}
		if err := tx.Users().UpdatePasswordHash(ctx, token.UserID, hash); err != nil {
			return err
		}
		// Force re-login everywhere.
		return tx.Users().ClearRefreshTokenHash(ctx, token.UserID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierr.ErrInvalidToken
		}
		l.Error("password reset: confirm transaction failed", slog.Any("error", err))
		return apierr.ErrServer
	}

	l.Info("password reset completed", slog.String("user_id", token.UserID))
	return nil
}
