package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "tarotlyfe"

func newTestSigner(t *testing.T) *HS256 {
	t.Helper()
	s, err := NewHS256([]byte("test-secret-please-rotate"), testIssuer)
	require.NoError(t, err)
	return s
}

func TestNewHS256RejectsEmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256(nil, testIssuer)
	require.Error(t, err)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestSigner(t)

	now := time.Now()
	claims := NewAccessClaims("01J5TESTUSER", "a@x.com", testIssuer, time.Hour, now)

	token, err := s.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01J5TESTUSER", parsed.UserID())
	require.Equal(t, "a@x.com", parsed.Email)
	require.Equal(t, testIssuer, parsed.Issuer)
	require.WithinDuration(t, now.Add(time.Hour), parsed.ExpiresAt.Time, time.Second)
}

func TestVerifyFailures(t *testing.T) {
	t.Parallel()
	s := newTestSigner(t)

	t.Run("expired token", func(t *testing.T) {
		claims := NewAccessClaims("u1", "a@x.com", testIssuer, time.Hour,
			time.Now().Add(-2*time.Hour))
		token, err := s.Sign(claims)
		require.NoError(t, err)

		_, err = s.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewHS256([]byte("a-different-secret"), testIssuer)
		require.NoError(t, err)

		token, err := other.Sign(NewAccessClaims("u1", "a@x.com", testIssuer, time.Hour, time.Now()))
		require.NoError(t, err)

		_, err = s.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := s.Sign(NewAccessClaims("u1", "a@x.com", "someone-else", time.Hour, time.Now()))
		require.NoError(t, err)

		_, err = s.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage input", func(t *testing.T) {
		for _, in := range []string{"", "abc", "a.b.c", "ey.ey.ey"} {
			_, err := s.Verify(in)
			require.ErrorIs(t, err, ErrInvalidToken, "input: %q", in)
		}
	})
}
