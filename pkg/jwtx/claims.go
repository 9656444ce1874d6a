// Package jwtx wraps github.com/golang-jwt/jwt/v5 with the access-token claim
// set and HS256 signer/verifier used by the auth service. Access tokens are
// stateless: nothing here touches storage.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is how long an access token stays valid unless
// configured otherwise.
const DefaultAccessTokenTTL = time.Hour

// AccessClaims are the claims embedded in the signed access token.
// The subject is the user ID; the email rides along so callers can identify
// the session without a storage lookup.
type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim.
func (c *AccessClaims) UserID() string { return c.Subject }

// NewAccessClaims builds the claim set for a user at the given time.
func NewAccessClaims(userID, email, issuer string, ttl time.Duration, now time.Time) AccessClaims {
	return AccessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
