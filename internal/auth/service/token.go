package service

import (
	"time"

	"github.com/tarotlyfe/tarotlyfe/pkg/cryptox"
	"github.com/tarotlyfe/tarotlyfe/pkg/jwtx"
)

// TokenService mints and verifies the two token kinds the service deals in:
// short-lived signed access tokens, and opaque random tokens (refresh and
// password reset) stored server side only as SHA-256 fingerprints. Refresh
// tokens carry no server-side expiry; their lifetime is the refresh cookie's
// MaxAge.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier

	Issuer    string
	AccessTTL time.Duration
}

// IssueAccessToken signs a JWT for the user. The subject is the user id and
// email rides along as a custom claim.
func (s *TokenService) IssueAccessToken(userID, email string, now time.Time) (string, error) {
	claims := jwtx.NewAccessClaims(userID, email, s.Issuer, s.AccessTTL, now)
	return s.Signer.Sign(claims)
}

// VerifyAccessToken parses and validates a signed access token.
func (s *TokenService) VerifyAccessToken(token string) (*jwtx.AccessClaims, error) {
	return s.Verifier.Verify(token)
}

// IssueRefreshToken generates a fresh opaque refresh token. The raw value goes
// to the client; only HashOpaqueToken(raw) is ever persisted.
func (s *TokenService) IssueRefreshToken() (string, error) {
	return cryptox.GenerateToken(cryptox.TokenSize256)
}

// GenerateResetToken returns a raw password reset token and its fingerprint.
func (s *TokenService) GenerateResetToken() (raw string, hash string, err error) {
	raw, err = cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", "", err
	}
	return raw, cryptox.FingerprintToken(raw), nil
}

// HashOpaqueToken fingerprints a raw opaque token for storage or lookup.
func (s *TokenService) HashOpaqueToken(raw string) string {
	return cryptox.FingerprintToken(raw)
}
