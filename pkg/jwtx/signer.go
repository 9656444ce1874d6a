package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken reports a token whose signature, structure or expiry failed
// verification. Callers should not distinguish the causes.
var ErrInvalidToken = errors.New("jwtx: invalid or expired token")

// Signer signs access-token claim sets.
type Signer interface {
	Sign(claims AccessClaims) (string, error)
}

// Verifier verifies compact access tokens and returns their claims.
type Verifier interface {
	Verify(token string) (*AccessClaims, error)
}

// HS256 signs and verifies access tokens with a single shared server secret.
type HS256 struct {
	secret []byte
	issuer string
}

// NewHS256 constructs an HS256 signer/verifier. The secret must be non-empty;
// issuer is stamped into every token and enforced on verification.
func NewHS256(secret []byte, issuer string) (*HS256, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty signing secret")
	}
	return &HS256{secret: secret, issuer: issuer}, nil
}

// Sign produces a compact HS256 JWT for the given claims.
func (h *HS256) Sign(claims AccessClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a compact token. Signature mismatch, expiry,
// wrong algorithm and malformed input all collapse into ErrInvalidToken.
func (h *HS256) Verify(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return h.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(h.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
