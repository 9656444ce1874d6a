// Package apierr defines the tagged error values the service layer raises and
// the HTTP boundary writes. Every domain failure carries a kind, an HTTP
// status, a stable machine-readable code and a human message; validation
// failures additionally carry field-level details.
package apierr

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tarotlyfe/tarotlyfe/pkg/httpx"
)

// Kind tags the failure class so the boundary can match exhaustively.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindInvalidCredentials
	KindDuplicateEmail
	KindInvalidToken
	KindExpiredToken
	KindNotFound
	KindServer
)

// Stable machine-readable codes, part of the API contract.
const (
	CodeValidationError    = "validation_error"
	CodeInvalidCredentials = "invalid_credentials"
	CodeDuplicateEmail     = "duplicate_email"
	CodeInvalidToken       = "invalid_token"
	CodeExpiredToken       = "expired_token"
	CodeNotFound           = "not_found"
	CodeServerError        = "server_error"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the API failure value. It implements error so services can return
// it directly and handlers can recover it with errors.As.
type Error struct {
	Kind    Kind         `json:"-"`
	Status  int          `json:"-"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes the error to w using the API envelope
// {"error":{"code","message","details"?}}.
func (e *Error) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(map[string]*Error{"error": e})
}

var (
	// ErrDuplicateEmail is returned when a registration targets an email that
	// already has an account. The pre-check and the storage constraint both
	// funnel into this one value.
	ErrDuplicateEmail = &Error{
		Kind:    KindDuplicateEmail,
		Status:  http.StatusConflict,
		Code:    CodeDuplicateEmail,
		Message: "Email already registered",
	}

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	// The single shared value is deliberate: callers must not be able to tell
	// the two cases apart.
	ErrInvalidCredentials = &Error{
		Kind:    KindInvalidCredentials,
		Status:  http.StatusUnauthorized,
		Code:    CodeInvalidCredentials,
		Message: "Invalid email or password",
	}

	// ErrInvalidToken covers a reset token that was never issued, was already
	// consumed, or was marked used after an expired attempt.
	ErrInvalidToken = &Error{
		Kind:    KindInvalidToken,
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidToken,
		Message: "Invalid or expired reset token",
	}

	// ErrExpiredToken is returned on the first touch of an expired reset
	// token, so clients can offer to request a new link.
	ErrExpiredToken = &Error{
		Kind:    KindExpiredToken,
		Status:  http.StatusBadRequest,
		Code:    CodeExpiredToken,
		Message: "Invalid or expired reset token",
	}

	// ErrServer is the catch-all for storage and other unexpected failures.
	ErrServer = &Error{
		Kind:    KindServer,
		Status:  http.StatusInternalServerError,
		Code:    CodeServerError,
		Message: "Internal server error",
	}
)

// Validation builds a 400 carrying per-field details.
func Validation(details ...FieldError) *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Code:    CodeValidationError,
		Message: "Request validation failed",
		Details: details,
	}
}

// NotFound builds the 404 envelope for unmatched routes.
func NotFound(method, path string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("Route %s %s not found", method, path),
	}
}
