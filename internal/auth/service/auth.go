package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tarotlyfe/tarotlyfe/internal/auth/apierr"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/domain"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/store"
	"github.com/tarotlyfe/tarotlyfe/pkg/cryptox"
	"github.com/tarotlyfe/tarotlyfe/pkg/idx"
	"github.com/tarotlyfe/tarotlyfe/pkg/slogx"
)

// AuthService implements registration and login.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService

	// now is swappable for tests.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates a new account. Email is normalized before any lookup or
// write. The pre-check gives the common duplicate a fast 409; the unique index
// in the store is the authoritative guard against concurrent registrations,
// and its ErrAlreadyExists maps to the same result.
func (s *AuthService) Register(ctx context.Context, email, password string) (domain.PublicUser, error) {
	l := slogx.FromContext(ctx)
	email = domain.NormalizeEmail(email)

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.PublicUser{}, apierr.ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		l.Error("register: user lookup failed", slog.Any("error", err))
		return domain.PublicUser{}, apierr.ErrServer
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("register: password hashing failed", slog.Any("error", err))
		return domain.PublicUser{}, apierr.ErrServer
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicUser{}, apierr.ErrDuplicateEmail
		}
		l.Error("register: user insert failed", slog.Any("error", err))
		return domain.PublicUser{}, apierr.ErrServer
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return user.Public(), nil
}

// Login verifies credentials and issues an access token plus a fresh opaque
// refresh token. An unknown email and a wrong password both return
// ErrInvalidCredentials so callers cannot probe for accounts. Issuing a new
// refresh token overwrites the stored fingerprint, ending any prior session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	l := slogx.FromContext(ctx)
	email = domain.NormalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AuthResult{}, apierr.ErrInvalidCredentials
		}
		l.Error("login: user lookup failed", slog.Any("error", err))
		return domain.AuthResult{}, apierr.ErrServer
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.AuthResult{}, apierr.ErrInvalidCredentials
	}

	accessToken, err := s.Tokens.IssueAccessToken(user.ID, user.Email, s.now())
	if err != nil {
		l.Error("login: access token signing failed", slog.Any("error", err))
		return domain.AuthResult{}, apierr.ErrServer
	}

	refreshToken, err := s.Tokens.IssueRefreshToken()
	if err != nil {
		l.Error("login: refresh token generation failed", slog.Any("error", err))
		return domain.AuthResult{}, apierr.ErrServer
	}

	if err := s.Store.Users().SetRefreshTokenHash(ctx, user.ID, s.Tokens.HashOpaqueToken(refreshToken)); err != nil {
		l.Error("login: refresh token persist failed", slog.Any("error", err))
		return domain.AuthResult{}, apierr.ErrServer
	}

	l.Info("user logged in", slog.String("user_id", user.ID))
	return domain.AuthResult{
		User:         user.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetUser returns the public view of a user by id.
func (s *AuthService) GetUser(ctx context.Context, userID string) (domain.PublicUser, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, apierr.ErrInvalidCredentials
		}
		slogx.FromContext(ctx).Error("user lookup failed", slog.Any("error", err))
		return domain.PublicUser{}, apierr.ErrServer
	}
	return user.Public(), nil
}
