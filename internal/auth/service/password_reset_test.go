package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tarotlyfe/tarotlyfe/internal/auth/apierr"
)

func TestRequestResetUnknownEmailSilent(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	err := stack.Reset.RequestReset(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.Empty(t, stack.Mailer.Sent)
}

func TestRequestResetSendsEmail(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	_, err := stack.Auth.Register(ctx, "erin@example.com", "Sup3rSecret")
	require.NoError(t, err)

	require.NoError(t, stack.Reset.RequestReset(ctx, "ERIN@example.com"))
	require.Len(t, stack.Mailer.Sent, 1)
	require.Equal(t, "erin@example.com", stack.Mailer.Sent[0].To)
	require.Equal(t, "Reset Your TarotLyfe Password", stack.Mailer.Sent[0].Subject)
	require.Contains(t, stack.Mailer.Sent[0].TextBody, "https://app.tarotlyfe.com/reset-password?token=")
}

func TestRequestResetSurvivesEmailFailure(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	_, err := stack.Auth.Register(ctx, "frank@example.com", "Sup3rSecret")
	require.NoError(t, err)

	stack.Mailer.Fail = true
	require.NoError(t, stack.Reset.RequestReset(ctx, "frank@example.com"))
}

func TestConfirmResetChangesPasswordAndLogsOut(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	_, err := stack.Auth.Register(ctx, "grace@example.com", "OldPass123")
	require.NoError(t, err)
	_, err = stack.Auth.Login(ctx, "grace@example.com", "OldPass123")
	require.NoError(t, err)

	require.NoError(t, stack.Reset.RequestReset(ctx, "grace@example.com"))
	token := resetTokenFromEmail(t, stack.Mailer)

	require.NoError(t, stack.Reset.ConfirmReset(ctx, token, "NewPass456"))

	// Old password no longer works, new one does.
	_, err = stack.Auth.Login(ctx, "grace@example.com", "OldPass123")
	require.ErrorIs(t, err, apierr.ErrInvalidCredentials)
	_, err = stack.Auth.Login(ctx, "grace@example.com", "NewPass456")
	require.NoError(t, err)
}

func TestConfirmResetForcesLogout(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	user, err := stack.Auth.Register(ctx, "heidi@example.com", "OldPass123")
	require.NoError(t, err)
	_, err = stack.Auth.Login(ctx, "heidi@example.com", "OldPass123")
	require.NoError(t, err)

	require.NoError(t, stack.Reset.RequestReset(ctx, "heidi@example.com"))
	token := resetTokenFromEmail(t, stack.Mailer)
	require.NoError(t, stack.Reset.ConfirmReset(ctx, token, "NewPass456"))

	stored, err := stack.Store.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Nil(t, stored.RefreshTokenHash)
}

func TestConfirmResetSingleUse(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	_, err := stack.Auth.Register(ctx, "ivan@example.com", "OldPass123")
	require.NoError(t, err)

	require.NoError(t, stack.Reset.RequestReset(ctx, "ivan@example.com"))
	token := resetTokenFromEmail(t, stack.Mailer)

	require.NoError(t, stack.Reset.ConfirmReset(ctx, token, "NewPass456"))

	// Replay with the consumed token fails, and the password stays at the
	// value the first confirm set.
	err = stack.Reset.ConfirmReset(ctx, token, "Attacker789")
	require.ErrorIs(t, err, apierr.ErrInvalidToken)

	_, err = stack.Auth.Login(ctx, "ivan@example.com", "NewPass456")
	require.NoError(t, err)
	_, err = stack.Auth.Login(ctx, "ivan@example.com", "Attacker789")
	require.ErrorIs(t, err, apierr.ErrInvalidCredentials)
}

func TestConfirmResetConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	_, err := stack.Auth.Register(ctx, "liam@example.com", "OldPass123")
	require.NoError(t, err)

	require.NoError(t, stack.Reset.RequestReset(ctx, "liam@example.com"))
	token := resetTokenFromEmail(t, stack.Mailer)

	// Every worker presents the same token with its own password; the
	// conditional used = 0 update picks exactly one winner.
	const workers = 8

	errs := make([]error, workers)
	passwords := make([]string, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		passwords[i] = fmt.Sprintf("NewPass%d23", i)
		go func(i int) {
			defer wg.Done()
			errs[i] = stack.Reset.ConfirmReset(ctx, token, passwords[i])
		}(i)
	}
	wg.Wait()

	winner := -1
	for i, err := range errs {
		if err == nil {
			require.Equal(t, -1, winner, "two confirms succeeded")
			winner = i
			continue
		}
		require.ErrorIs(t, err, apierr.ErrInvalidToken)
	}
	require.GreaterOrEqual(t, winner, 0)

	// Only the winner's password took effect.
	_, err = stack.Auth.Login(ctx, "liam@example.com", passwords[winner])
	require.NoError(t, err)
	for i, password := range passwords {
		if i == winner {
			continue
		}
		_, err = stack.Auth.Login(ctx, "liam@example.com", password)
		require.ErrorIs(t, err, apierr.ErrInvalidCredentials)
	}
}

func TestConfirmResetUnknownToken(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	err := stack.Reset.ConfirmReset(ctx, "never-issued", "NewPass456")
	require.ErrorIs(t, err, apierr.ErrInvalidToken)
}

func TestConfirmResetExpiredToken(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	_, err := stack.Auth.Register(ctx, "judy@example.com", "OldPass123")
	require.NoError(t, err)

	require.NoError(t, stack.Reset.RequestReset(ctx, "judy@example.com"))
	token := resetTokenFromEmail(t, stack.Mailer)

	// Jump the clock past the TTL.
	stack.Reset.Now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	err = stack.Reset.ConfirmReset(ctx, token, "NewPass456")
	require.ErrorIs(t, err, apierr.ErrExpiredToken)

	// The expired attempt consumed the token, so a retry reports it invalid.
	err = stack.Reset.ConfirmReset(ctx, token, "NewPass456")
	require.ErrorIs(t, err, apierr.ErrInvalidToken)

	// Password unchanged throughout.
	_, err = stack.Auth.Login(ctx, "judy@example.com", "OldPass123")
	require.NoError(t, err)
}

func TestHousekeepingSweepsConsumedTokens(t *testing.T) {
	ctx := context.Background()
	stack := newAuthStack(t)

	_, err := stack.Auth.Register(ctx, "kate@example.com", "OldPass123")
	require.NoError(t, err)

	require.NoError(t, stack.Reset.RequestReset(ctx, "kate@example.com"))
	token := resetTokenFromEmail(t, stack.Mailer)
	require.NoError(t, stack.Reset.ConfirmReset(ctx, token, "NewPass456"))

	require.NoError(t, stack.Store.PasswordResetTokens().DeleteExpiredResetTokens(ctx, time.Now()))

	// Swept rows stay consumed; replay still fails.
	err = stack.Reset.ConfirmReset(ctx, token, "Another789")
	require.ErrorIs(t, err, apierr.ErrInvalidToken)
}
