package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tarotlyfe/tarotlyfe/internal/auth/apierr"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/mail"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/service"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/store"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/store/drivers/sqlite"
	"github.com/tarotlyfe/tarotlyfe/pkg/cryptox"
	"github.com/tarotlyfe/tarotlyfe/pkg/jwtx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test-*")
	if err != nil {
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))
	os.Exit(m.Run())
}

type sentEmail struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// recordingSender captures outgoing mail so tests can inspect it. Setting Fail
// simulates a provider outage.
type recordingSender struct {
	Sent []sentEmail
	Fail bool
}

func (s *recordingSender) Send(_ context.Context, to, subject, htmlBody, textBody string) mail.Result {
	if s.Fail {
		return mail.Result{Error: "provider unavailable"}
	}
	s.Sent = append(s.Sent, sentEmail{To: to, Subject: subject, HTMLBody: htmlBody, TextBody: textBody})
	return mail.Result{Success: true, MessageID: "test-message"}
}

type authStack struct {
	Store  store.Store
	Auth   *service.AuthService
	Reset  *service.PasswordResetService
	Tokens *service.TokenService
	Mailer *recordingSender
}

func newAuthStack(t *testing.T) *authStack {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	signer, err := jwtx.NewHS256([]byte("test-secret"), "tarotlyfe-test")
	require.NoError(t, err)

	tokens := &service.TokenService{
		Signer:    signer,
		Verifier:  signer,
		Issuer:    "tarotlyfe-test",
		AccessTTL: time.Hour,
	}
	mailer := &recordingSender{}

	return &authStack{
		Store:  s,
		Tokens: tokens,
		Mailer: mailer,
		Auth: &service.AuthService{
			Store:  s,
			Tokens: tokens,
		},
		Reset: &service.PasswordResetService{
			Store:       s,
			Tokens:      tokens,
			Mailer:      mailer,
			ResetTTL:    time.Hour,
			FrontendURL: "https://app.tarotlyfe.com",
		},
	}
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	user, err := stack.Auth.Register(ctx, "Alice@Example.COM ", "Sup3rSecret")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice@example.com", user.Email)

	// Login accepts any casing of the registered email.
	result, err := stack.Auth.Login(ctx, "ALICE@example.com", "Sup3rSecret")
	require.NoError(t, err)
	require.Equal(t, user.ID, result.User.ID)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)

	claims, err := stack.Tokens.VerifyAccessToken(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID())
	require.Equal(t, "alice@example.com", claims.Email)

	// The stored fingerprint matches the issued refresh token.
	stored, err := stack.Store.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshTokenHash)
	require.Equal(t, stack.Tokens.HashOpaqueToken(result.RefreshToken), *stored.RefreshTokenHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	_, err := stack.Auth.Register(ctx, "bob@example.com", "Sup3rSecret")
	require.NoError(t, err)

	_, err = stack.Auth.Register(ctx, "BOB@example.com", "An0therPass")
	require.ErrorIs(t, err, apierr.ErrDuplicateEmail)
}

func TestRegisterConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	// All workers race past the lookup pre-check; the unique index on email
	// is what guarantees a single account.
	const workers = 8

	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = stack.Auth.Register(ctx, "race@example.com", "Sup3rSecret")
		}(i)
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, apierr.ErrDuplicateEmail)
	}
	require.Equal(t, 1, created)

	// Exactly one row exists and it still logs in.
	_, err := stack.Auth.Login(ctx, "race@example.com", "Sup3rSecret")
	require.NoError(t, err)
}

func TestLoginInvalidCredentialsIndistinguishable(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	_, err := stack.Auth.Register(ctx, "carol@example.com", "Sup3rSecret")
	require.NoError(t, err)

	_, unknownErr := stack.Auth.Login(ctx, "nobody@example.com", "Sup3rSecret")
	_, wrongPassErr := stack.Auth.Login(ctx, "carol@example.com", "WrongPass1")

	require.ErrorIs(t, unknownErr, apierr.ErrInvalidCredentials)
	require.ErrorIs(t, wrongPassErr, apierr.ErrInvalidCredentials)
	// Identical error values, not merely the same code.
	require.Equal(t, unknownErr, wrongPassErr)
}

func TestLoginRotatesRefreshToken(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	user, err := stack.Auth.Register(ctx, "dave@example.com", "Sup3rSecret")
	require.NoError(t, err)

	first, err := stack.Auth.Login(ctx, "dave@example.com", "Sup3rSecret")
	require.NoError(t, err)

	second, err := stack.Auth.Login(ctx, "dave@example.com", "Sup3rSecret")
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	stored, err := stack.Store.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshTokenHash)
	require.Equal(t, stack.Tokens.HashOpaqueToken(second.RefreshToken), *stored.RefreshTokenHash)
}

// resetTokenFromEmail pulls the raw token out of the last reset email's link.
func resetTokenFromEmail(t *testing.T, sender *recordingSender) string {
	t.Helper()
	require.NotEmpty(t, sender.Sent)

	body := sender.Sent[len(sender.Sent)-1].TextBody
	i := strings.Index(body, "token=")
	require.GreaterOrEqual(t, i, 0)

	token := body[i+len("token="):]
	if j := strings.IndexAny(token, "\n\r "); j >= 0 {
		token = token[:j]
	}
	require.NotEmpty(t, token)
	return token
}
